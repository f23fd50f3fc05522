package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastillo/AgroStock-api/internal/application/audit"
	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

// ExpenseUseCase crea egresos. Para type=product descuenta el stock del
// producto vinculado en la misma transacción: o se crea el egreso y baja el
// stock, o no pasa nada.
type ExpenseUseCase struct {
	txRunner    TxRunner
	expenseRepo repository.ExpenseRepository
	recorder    *audit.Recorder
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(txRunner TxRunner, expenseRepo repository.ExpenseRepository, recorder *audit.Recorder) *ExpenseUseCase {
	return &ExpenseUseCase{txRunner: txRunner, expenseRepo: expenseRepo, recorder: recorder}
}

// ExpenseInput entrada para crear un egreso.
// type=product: ProductID, Quantity y UnitPrice obligatorios.
// type=misc: Amount y Description obligatorios.
type ExpenseInput struct {
	Type        string
	ProductID   string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	Description string
}

// Create valida la entrada y persiste el egreso. En type=product bloquea la
// fila del producto, verifica stock disponible >= cantidad vendida y
// descuenta; con stock insuficiente devuelve domain.ErrInsufficientStock
// nombrando el producto y no persiste nada.
func (uc *ExpenseUseCase) Create(ctx context.Context, actor audit.Actor, in ExpenseInput) (*entity.Expense, error) {
	switch in.Type {
	case entity.ExpenseTypeProduct:
		if in.ProductID == "" || !in.Quantity.IsPositive() || in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	case entity.ExpenseTypeMisc:
		if in.Description == "" || !in.Amount.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	exp := &entity.Expense{
		ID:          uuid.New().String(),
		Type:        in.Type,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Amount:      in.Amount,
		Description: in.Description,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
	}
	if in.Type == entity.ExpenseTypeProduct {
		exp.Amount = in.Quantity.Mul(in.UnitPrice)
	}

	var productName string
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		_ repository.TransferRepository,
		expenseRepo repository.ExpenseRepository,
		folioRepo repository.FolioRepository,
	) error {
		if in.Type == entity.ExpenseTypeProduct {
			// Bloquea la fila del producto; la validación y el descuento
			// quedan dentro de la misma transacción.
			product, err := productRepo.GetForUpdate(in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.Stock.LessThan(in.Quantity) {
				return fmt.Errorf("%w: %s (disponible %s, solicitado %s)",
					domain.ErrInsufficientStock, product.Name, product.Stock, in.Quantity)
			}
			if err := productRepo.UpdateStock(product.ID, product.Stock.Sub(in.Quantity)); err != nil {
				return err
			}
			productName = product.Name
		}

		number, err := NextFolio(folioRepo, FolioPrefixExpense, now)
		if err != nil {
			return err
		}
		exp.Number = number
		return expenseRepo.Create(exp)
	})
	if err != nil {
		return nil, err
	}

	name := exp.Description
	if productName != "" {
		name = productName
	}
	uc.recorder.Record(actor, "expense", entity.ActivityActionCreate, exp.ID, name,
		fmt.Sprintf("egreso %s creado", exp.Number),
		map[string]any{"number": exp.Number, "type": exp.Type, "amount": exp.Amount})
	return exp, nil
}

// GetByID devuelve un egreso.
func (uc *ExpenseUseCase) GetByID(id string) (*entity.Expense, error) {
	exp, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}
	return exp, nil
}

// List lista egresos con paginación, opcionalmente por tipo.
func (uc *ExpenseUseCase) List(expenseType string, limit, offset int) ([]*entity.Expense, error) {
	return uc.expenseRepo.List(expenseType, limit, offset)
}
