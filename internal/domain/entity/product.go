package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo o producto del campo (semilla, agroquímico,
// combustible, repuesto). Stock es la cantidad disponible; WarehouseID es la
// bodega dueña del producto y se reasigna al recibir una transferencia.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Category    string // semilla, agroquimico, combustible, repuesto, otro
	Stock       decimal.Decimal
	Unit        string // kg, lt, un, bolsa
	WarehouseID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
