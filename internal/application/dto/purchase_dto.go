package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea pedida en una compra.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	Supplier string                `json:"supplier"`
	Items    []PurchaseItemRequest `json:"items"`
}

// AddDeliveryRequest body para POST /api/purchases/:id/deliveries.
// Items vacío anuncia todas las líneas pendientes de la compra.
type AddDeliveryRequest struct {
	WarehouseID string                `json:"warehouse_id"`
	Items       []DeliveryItemRequest `json:"items,omitempty"`
}

// DeliveryItemRequest línea anunciada en una entrega.
type DeliveryItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ReceivedLine cantidad efectivamente recibida de un producto.
type ReceivedLine struct {
	ProductID        string          `json:"product_id"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
}

// CompleteDeliveryRequest body para POST /api/deliveries/:id/complete.
// Received vacío recibe las cantidades anunciadas.
type CompleteDeliveryRequest struct {
	Received []ReceivedLine `json:"received,omitempty"`
}

// CancelRequest body para cancelaciones/rechazos con razón.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// PurchaseItemResponse línea pedida en respuestas.
type PurchaseItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// DeliveryResponse entrega en respuestas.
type DeliveryResponse struct {
	ID           string                 `json:"id"`
	WarehouseID  string                 `json:"warehouse_id"`
	Status       string                 `json:"status"`
	Items        []DeliveryItemResponse `json:"items"`
	CancelReason string                 `json:"cancel_reason,omitempty"`
	CompletedAt  *time.Time             `json:"completed_at,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// DeliveryItemResponse línea de entrega en respuestas.
type DeliveryItemResponse struct {
	ProductID        string          `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
}

// PurchaseResponse compra con sus entregas y agregados.
type PurchaseResponse struct {
	ID             string                 `json:"id"`
	Number         string                 `json:"number"`
	Supplier       string                 `json:"supplier"`
	Items          []PurchaseItemResponse `json:"items"`
	Deliveries     []DeliveryResponse     `json:"deliveries"`
	TotalOrdered   decimal.Decimal        `json:"total_ordered"`
	TotalDelivered decimal.Decimal        `json:"total_delivered"`
	TotalPending   decimal.Decimal        `json:"total_pending"`
	Status         string                 `json:"status"`
	CreatedBy      string                 `json:"created_by"`
	ApprovedBy     string                 `json:"approved_by,omitempty"`
	CancelReason   string                 `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// PurchaseListResponse listado paginado.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
