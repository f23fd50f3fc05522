package postgres

import (
	"context"
	"fmt"

	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

var _ repository.FolioRepository = (*FolioRepo)(nil)

// FolioRepo contador de folios sobre PostgreSQL. El upsert con RETURNING
// incrementa y lee en una sola sentencia atómica: dos transacciones
// concurrentes serializan sobre la fila del contador y nunca reciben el
// mismo consecutivo.
type FolioRepo struct {
	q Querier
}

// NewFolioRepository construye el adaptador del contador. Pasar la tx del
// workflow que inserta el registro numerado.
func NewFolioRepository(q Querier) *FolioRepo {
	return &FolioRepo{q: q}
}

// Next devuelve el siguiente consecutivo para el prefijo y período dados.
func (r *FolioRepo) Next(prefix, period string) (int, error) {
	query := `
		INSERT INTO folio_counters (prefix, period, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, period)
		DO UPDATE SET last_seq = folio_counters.last_seq + 1
		RETURNING last_seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, prefix, period).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next folio %s-%s: %w", prefix, period, err)
	}
	return seq, nil
}
