package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra.
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusApproved  = "approved"
	PurchaseStatusPartial   = "partial_delivered"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusCancelled = "cancelled"
)

// Estados de una entrega (sub-registro de una compra).
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusCompleted = "completed"
	DeliveryStatusCancelled = "cancelled"
)

// Purchase representa una orden de compra a un proveedor, con entregas
// parciales. Los agregados TotalDelivered/TotalPending se recalculan a partir
// de las entregas completadas; siempre TotalDelivered + TotalPending ==
// TotalOrdered.
type Purchase struct {
	ID             string
	Number         string // folio COM-YYYYMM-NNNN
	Supplier       string
	Items          []PurchaseItem
	Deliveries     []Delivery
	TotalOrdered   decimal.Decimal
	TotalDelivered decimal.Decimal
	TotalPending   decimal.Decimal
	Status         string
	CreatedBy      string
	ApprovedBy     string
	CancelReason   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PurchaseItem línea de producto pedida en una compra.
type PurchaseItem struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Delivery representa una entrega parcial o total de una compra. Las
// cantidades recibidas pueden diferir de las pedidas; se fijan al completar.
type Delivery struct {
	ID           string
	PurchaseID   string
	WarehouseID  string // bodega destino
	Status       string
	Items        []DeliveryItem
	CancelReason string
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DeliveryItem línea de una entrega. QuantityReceived queda en cero hasta que
// la entrega se completa.
type DeliveryItem struct {
	ProductID        string
	Quantity         decimal.Decimal // cantidad anunciada
	QuantityReceived decimal.Decimal // cantidad efectivamente recibida
}
