package repository

import "github.com/jcastillo/AgroStock-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras y sus
// entregas. GetByID y GetForUpdate devuelven la compra con items y entregas
// cargadas (las entregas con sus propias líneas).
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	// GetForUpdate bloquea la fila de la compra (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Purchase, error)
	// Update persiste estado, agregados y campos de auditoría (no las líneas).
	Update(purchase *entity.Purchase) error
	List(status string, limit, offset int) ([]*entity.Purchase, error)

	CreateDelivery(delivery *entity.Delivery) error
	GetDeliveryByID(id string) (*entity.Delivery, error)
	// UpdateDelivery persiste estado, razón de cancelación, completed_at y
	// las cantidades recibidas de las líneas.
	UpdateDelivery(delivery *entity.Delivery) error
}
