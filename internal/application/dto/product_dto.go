package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products. El stock inicial es
// opcional; las mutaciones posteriores pasan siempre por los workflows.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	WarehouseID  string          `json:"warehouse_id"`
	InitialStock decimal.Decimal `json:"initial_stock"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se
// tocan. Stock y bodega no se modifican por acá (se manejan vía workflows).
type UpdateProductRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Unit     *string `json:"unit,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Stock       decimal.Decimal `json:"stock"`
	Unit        string          `json:"unit"`
	WarehouseID string          `json:"warehouse_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
