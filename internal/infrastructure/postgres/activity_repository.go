package postgres

import (
	"context"
	"fmt"

	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo bitácora de auditoría sobre PostgreSQL. Append-only: la tabla
// no recibe UPDATE ni DELETE desde la aplicación.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador de bitácora. Pasar pool o tx
// (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create inserta un registro de bitácora.
func (r *ActivityRepo) Create(activity *entity.Activity) error {
	query := `
		INSERT INTO activities (id, type, action, entity, entity_id, entity_name, description, metadata, user_id, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		activity.ID, activity.Type, activity.Action, activity.Entity, activity.EntityID,
		activity.EntityName, activity.Description, activity.Metadata,
		activity.UserID, activity.UserName, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List lista la bitácora, más reciente primero, con filtros opcionales.
// El search llega ya normalizado (minúsculas, sin tildes) y se compara
// contra unaccent(lower(...)) de entity_name y description.
func (r *ActivityRepo) List(filter repository.ActivityFilter, limit, offset int) ([]*entity.Activity, error) {
	query := `
		SELECT id, type, action, entity, entity_id, entity_name, description, metadata, user_id, user_name, created_at
		FROM activities
		WHERE ($1 = '' OR entity = $1)
		  AND ($2 = '' OR entity_id = $2)
		  AND ($3 = '' OR action = $3)
		  AND ($4 = '' OR user_id = $4)
		  AND ($5 = '' OR unaccent(lower(entity_name)) LIKE '%' || $5 || '%' OR unaccent(lower(description)) LIKE '%' || $5 || '%')
		ORDER BY created_at DESC LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(context.Background(), query,
		filter.Entity, filter.EntityID, filter.Action, filter.UserID, filter.Search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Action, &a.Entity, &a.EntityID, &a.EntityName,
			&a.Description, &a.Metadata, &a.UserID, &a.UserName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
