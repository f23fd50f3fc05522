package repository

// FolioRepository entrega el siguiente consecutivo para un prefijo y período
// (YYYYMM). Debe usarse dentro de la misma transacción que inserta el
// registro numerado: el contador se incrementa de forma atómica en la base,
// de modo que dos creaciones concurrentes nunca obtienen el mismo número.
type FolioRepository interface {
	Next(prefix, period string) (int, error)
}
