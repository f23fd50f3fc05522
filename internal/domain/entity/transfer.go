package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transferencia entre bodegas. El ciclo es lineal:
// pending -> approved|rejected; approved -> shipped; shipped -> completed.
// Pasado shipped no hay vuelta atrás (el stock de origen ya fue descontado).
const (
	TransferStatusPending   = "pending"
	TransferStatusApproved  = "approved"
	TransferStatusRejected  = "rejected"
	TransferStatusShipped   = "shipped"
	TransferStatusCompleted = "completed"
)

// Transfer representa el movimiento de productos de una bodega a otra.
type Transfer struct {
	ID                string
	Number            string // folio TRF-YYYYMM-NNNN
	SourceWarehouseID string
	TargetWarehouseID string
	Items             []TransferItem
	Status            string
	RequestedBy       string
	ApprovedBy        string
	RejectReason      string
	ShippedAt         *time.Time
	CompletedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TransferItem línea de producto a transferir. QuantityReceived se fija al
// recibir; nil significa que se recibió la cantidad enviada.
type TransferItem struct {
	ProductID        string
	Quantity         decimal.Decimal
	QuantityReceived *decimal.Decimal
}
