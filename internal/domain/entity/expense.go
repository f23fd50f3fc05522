package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de gasto/egreso.
const (
	ExpenseTypeProduct = "product" // venta o consumo de producto (descuenta stock)
	ExpenseTypeMisc    = "misc"    // gasto general sin producto asociado
)

// Expense representa un egreso de la operación. Para type=product lleva el
// producto vinculado y la cantidad vendida/consumida; su creación descuenta
// stock en la misma transacción.
type Expense struct {
	ID          string
	Number      string // folio GTO-YYYYMM-NNNN
	Type        string
	ProductID   string // solo type=product
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // Quantity*UnitPrice o monto directo en misc
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}
