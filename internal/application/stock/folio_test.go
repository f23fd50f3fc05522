package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastillo/AgroStock-api/internal/application/stock"
)

func TestFormatFolio_CeroPadding(t *testing.T) {
	assert.Equal(t, "GTO-202608-0001", stock.FormatFolio(stock.FolioPrefixExpense, "202608", 1))
	assert.Equal(t, "COM-202612-0042", stock.FormatFolio(stock.FolioPrefixPurchase, "202612", 42))
	assert.Equal(t, "TRF-202601-12345", stock.FormatFolio(stock.FolioPrefixTransfer, "202601", 12345))
}

func TestFolioPeriod_EscopaPorMes(t *testing.T) {
	assert.Equal(t, "202608", stock.FolioPeriod(time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "202609", stock.FolioPeriod(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNextFolio_ConsecutivoPorPrefijoYPeriodo(t *testing.T) {
	folios := newFakeFolioRepo()
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	f1, err := stock.NextFolio(folios, stock.FolioPrefixExpense, now)
	require.NoError(t, err)
	f2, err := stock.NextFolio(folios, stock.FolioPrefixExpense, now)
	require.NoError(t, err)
	other, err := stock.NextFolio(folios, stock.FolioPrefixTransfer, now)
	require.NoError(t, err)

	assert.Equal(t, "GTO-202608-0001", f1)
	assert.Equal(t, "GTO-202608-0002", f2)
	assert.Equal(t, "TRF-202608-0001", other, "cada prefijo lleva su propio contador")
}
