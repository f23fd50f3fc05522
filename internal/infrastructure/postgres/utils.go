package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jcastillo/AgroStock-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint
// único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isSerializationFailure verifica si un error es un fallo de serialización
// (40001) o un deadlock detectado (40P01): dos workflows que chocaron sobre
// las mismas filas. El caller reenvía el workflow si así lo decide.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01")
}

// mapError traduce los errores de la base a los sentinelas del dominio.
func mapError(err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isSerializationFailure(err):
		return domain.ErrConflict
	}
	return err
}
