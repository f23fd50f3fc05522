package repository

import "github.com/jcastillo/AgroStock-api/internal/domain/entity"

// ActivityFilter filtros para el listado de bitácora.
type ActivityFilter struct {
	Entity   string
	EntityID string
	Action   string
	UserID   string
	Search   string // texto libre contra entity_name y description
}

// ActivityRepository define el puerto de la bitácora de auditoría.
// Append-only: no existe Update ni Delete.
type ActivityRepository interface {
	Create(activity *entity.Activity) error
	List(filter ActivityFilter, limit, offset int) ([]*entity.Activity, error)
}
