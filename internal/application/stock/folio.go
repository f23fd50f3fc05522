package stock

import (
	"fmt"
	"time"

	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

// Prefijos de folio por entidad.
const (
	FolioPrefixPurchase   = "COM"
	FolioPrefixTransfer   = "TRF"
	FolioPrefixExpense    = "GTO"
	FolioPrefixFumigation = "FUM"
)

// FolioPeriod devuelve el período YYYYMM al que pertenece el folio.
func FolioPeriod(t time.Time) string {
	return t.Format("200601")
}

// FormatFolio arma el folio PREFIX-YYYYMM-NNNN.
func FormatFolio(prefix, period string, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, period, seq)
}

// NextFolio obtiene el siguiente folio para el prefijo en el período de now.
// Debe llamarse con el folioRepo atado a la transacción que inserta el
// registro: el contador es atómico en la base y dos creaciones concurrentes
// nunca reciben el mismo consecutivo.
func NextFolio(folioRepo repository.FolioRepository, prefix string, now time.Time) (string, error) {
	period := FolioPeriod(now)
	seq, err := folioRepo.Next(prefix, period)
	if err != nil {
		return "", fmt.Errorf("folio %s-%s: %w", prefix, period, err)
	}
	return FormatFolio(prefix, period, seq), nil
}
