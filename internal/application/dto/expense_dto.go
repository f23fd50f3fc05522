package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest body para POST /api/expenses.
// type=product: product_id, quantity y unit_price obligatorios.
// type=misc: amount y description obligatorios.
type CreateExpenseRequest struct {
	Type        string          `json:"type"`
	ProductID   string          `json:"product_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price,omitempty"`
	Amount      decimal.Decimal `json:"amount,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ExpenseResponse egreso en respuestas.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Type        string          `json:"type"`
	ProductID   string          `json:"product_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseListResponse listado paginado.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
