package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest línea a transferir.
type TransferItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	SourceWarehouseID string                `json:"source_warehouse_id"`
	TargetWarehouseID string                `json:"target_warehouse_id"`
	Items             []TransferItemRequest `json:"items"`
}

// ReceiveTransferRequest body para POST /api/transfers/:id/receive.
// Received vacío recibe las cantidades enviadas.
type ReceiveTransferRequest struct {
	Received []ReceivedLine `json:"received,omitempty"`
}

// TransferItemResponse línea en respuestas.
type TransferItemResponse struct {
	ProductID        string           `json:"product_id"`
	Quantity         decimal.Decimal  `json:"quantity"`
	QuantityReceived *decimal.Decimal `json:"quantity_received,omitempty"`
}

// TransferResponse transferencia en respuestas.
type TransferResponse struct {
	ID                string                 `json:"id"`
	Number            string                 `json:"number"`
	SourceWarehouseID string                 `json:"source_warehouse_id"`
	TargetWarehouseID string                 `json:"target_warehouse_id"`
	Items             []TransferItemResponse `json:"items"`
	Status            string                 `json:"status"`
	RequestedBy       string                 `json:"requested_by"`
	ApprovedBy        string                 `json:"approved_by,omitempty"`
	RejectReason      string                 `json:"reject_reason,omitempty"`
	ShippedAt         *time.Time             `json:"shipped_at,omitempty"`
	CompletedAt       *time.Time             `json:"completed_at,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// TransferListResponse listado paginado.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
