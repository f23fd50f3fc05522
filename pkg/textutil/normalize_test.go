package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcastillo/AgroStock-api/pkg/textutil"
)

func TestNormalize_QuitaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "glifosato", textutil.Normalize("Glifósato"))
	assert.Equal(t, "urea granulada", textutil.Normalize("ÚREA GRANULADA"))
	assert.Equal(t, "nino", textutil.Normalize("Niño"))
}

func TestMatches_InsensibleATildes(t *testing.T) {
	assert.True(t, textutil.Matches("Fumigación lote 7", "fumigacion"))
	assert.True(t, textutil.Matches("Glifosato 48%", "GLIFÓSATO"))
	assert.False(t, textutil.Matches("Urea", "glifosato"))
	// needle vacío siempre coincide (filtro apagado)
	assert.True(t, textutil.Matches("cualquier cosa", ""))
}
