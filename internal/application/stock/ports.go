package stock

import (
	"context"

	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que todas las escrituras del
// workflow se aplican o ninguna: si fn devuelve error se hace Rollback.
// No reintenta: un conflicto de serialización sube al caller como
// domain.ErrConflict y es él quien decide reenviar el workflow.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		transferRepo repository.TransferRepository,
		expenseRepo repository.ExpenseRepository,
		folioRepo repository.FolioRepository,
	) error) error
}
