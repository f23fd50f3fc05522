package repository

import "github.com/jcastillo/AgroStock-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para transferencias
// entre bodegas.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la fila de la transferencia (SELECT FOR UPDATE)
	// para que dos envíos/recepciones concurrentes serialicen.
	GetForUpdate(id string) (*entity.Transfer, error)
	// Update persiste estado, sellos de auditoría y cantidades recibidas.
	Update(transfer *entity.Transfer) error
	List(status string, limit, offset int) ([]*entity.Transfer, error)
}
