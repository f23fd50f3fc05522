package stock_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastillo/AgroStock-api/internal/application/audit"
	"github.com/jcastillo/AgroStock-api/internal/application/stock"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
	"github.com/jcastillo/AgroStock-api/pkg/logger"
)

// Fakes en memoria de los puertos de persistencia. El fakeTxRunner es
// pass-through: los workflows validan antes de escribir, así que los casos de
// fallo no necesitan rollback real para dejar los fakes intactos.

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateStock(id string, s decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("producto %s no existe", id)
	}
	p.Stock = s
	p.UpdatedAt = time.Now()
	return nil
}
func (r *fakeProductRepo) UpdateStockAndWarehouse(id string, s decimal.Decimal, wh string) error {
	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("producto %s no existe", id)
	}
	p.Stock = s
	p.WarehouseID = wh
	p.UpdatedAt = time.Now()
	return nil
}
func (r *fakeProductRepo) List(_, _ string, _, _ int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakePurchaseRepo struct {
	purchases  map[string]*entity.Purchase
	deliveries map[string]*entity.Delivery
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{
		purchases:  make(map[string]*entity.Purchase),
		deliveries: make(map[string]*entity.Delivery),
	}
}

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error { r.purchases[p.ID] = p; return nil }
func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	return r.withChildren(id), nil
}
func (r *fakePurchaseRepo) GetForUpdate(id string) (*entity.Purchase, error) {
	return r.withChildren(id), nil
}
func (r *fakePurchaseRepo) withChildren(id string) *entity.Purchase {
	p, ok := r.purchases[id]
	if !ok {
		return nil
	}
	p.Deliveries = nil
	for _, d := range r.deliveries {
		if d.PurchaseID == id {
			p.Deliveries = append(p.Deliveries, *d)
		}
	}
	return p
}
func (r *fakePurchaseRepo) Update(p *entity.Purchase) error                     { r.purchases[p.ID] = p; return nil }
func (r *fakePurchaseRepo) List(_ string, _, _ int) ([]*entity.Purchase, error) { return nil, nil }
func (r *fakePurchaseRepo) CreateDelivery(d *entity.Delivery) error {
	r.deliveries[d.ID] = d
	return nil
}
func (r *fakePurchaseRepo) GetDeliveryByID(id string) (*entity.Delivery, error) {
	return r.deliveries[id], nil
}
func (r *fakePurchaseRepo) UpdateDelivery(d *entity.Delivery) error {
	r.deliveries[d.ID] = d
	return nil
}

type fakeTransferRepo struct {
	transfers map[string]*entity.Transfer
}

func newFakeTransferRepo(transfers ...*entity.Transfer) *fakeTransferRepo {
	m := make(map[string]*entity.Transfer)
	for _, t := range transfers {
		m[t.ID] = t
	}
	return &fakeTransferRepo{transfers: m}
}

func (r *fakeTransferRepo) Create(t *entity.Transfer) error { r.transfers[t.ID] = t; return nil }
func (r *fakeTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return r.transfers[id], nil
}
func (r *fakeTransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.transfers[id], nil
}
func (r *fakeTransferRepo) Update(t *entity.Transfer) error                     { r.transfers[t.ID] = t; return nil }
func (r *fakeTransferRepo) List(_ string, _, _ int) ([]*entity.Transfer, error) { return nil, nil }

type fakeExpenseRepo struct {
	expenses []*entity.Expense
}

func (r *fakeExpenseRepo) Create(e *entity.Expense) error {
	r.expenses = append(r.expenses, e)
	return nil
}
func (r *fakeExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	for _, e := range r.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}
func (r *fakeExpenseRepo) List(_ string, _, _ int) ([]*entity.Expense, error) {
	return r.expenses, nil
}

type fakeFolioRepo struct {
	counters map[string]int
}

func newFakeFolioRepo() *fakeFolioRepo { return &fakeFolioRepo{counters: make(map[string]int)} }

func (r *fakeFolioRepo) Next(prefix, period string) (int, error) {
	key := prefix + "-" + period
	r.counters[key]++
	return r.counters[key], nil
}

type fakeActivityRepo struct {
	activities []*entity.Activity
}

func (r *fakeActivityRepo) Create(a *entity.Activity) error {
	r.activities = append(r.activities, a)
	return nil
}
func (r *fakeActivityRepo) List(_ repository.ActivityFilter, _, _ int) ([]*entity.Activity, error) {
	return r.activities, nil
}

// fakeTxRunner ejecuta fn directamente contra los fakes compartidos. El repo
// de compras es el puerto, no el fake concreto, para poder envolverlo en
// tests de lecturas obsoletas.
type fakeTxRunner struct {
	products  *fakeProductRepo
	purchases repository.PurchaseRepository
	transfers *fakeTransferRepo
	expenses  *fakeExpenseRepo
	folios    *fakeFolioRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	transferRepo repository.TransferRepository,
	expenseRepo repository.ExpenseRepository,
	folioRepo repository.FolioRepository,
) error) error {
	return fn(r.products, r.purchases, r.transfers, r.expenses, r.folios)
}

var _ stock.TxRunner = (*fakeTxRunner)(nil)

// testEnv agrupa fakes y usecases listos para un test.
type testEnv struct {
	products   *fakeProductRepo
	purchases  *fakePurchaseRepo
	transfers  *fakeTransferRepo
	expenses   *fakeExpenseRepo
	activities *fakeActivityRepo

	expenseUC  *stock.ExpenseUseCase
	deliveryUC *stock.DeliveryUseCase
	transferUC *stock.TransferUseCase
}

func newTestEnv(products ...*entity.Product) *testEnv {
	env := &testEnv{
		products:   newFakeProductRepo(products...),
		purchases:  newFakePurchaseRepo(),
		transfers:  newFakeTransferRepo(),
		expenses:   &fakeExpenseRepo{},
		activities: &fakeActivityRepo{},
	}
	runner := &fakeTxRunner{
		products:  env.products,
		purchases: env.purchases,
		transfers: env.transfers,
		expenses:  env.expenses,
		folios:    newFakeFolioRepo(),
	}
	recorder := audit.NewRecorder(env.activities, logger.New(logger.Config{Env: "test", Level: "error"}))
	env.expenseUC = stock.NewExpenseUseCase(runner, env.expenses, recorder)
	env.deliveryUC = stock.NewDeliveryUseCase(runner, recorder)
	env.transferUC = stock.NewTransferUseCase(runner, recorder)
	return env
}

var testActor = audit.Actor{ID: "u1", Name: "Juan Pérez"}

// staleDeliveryRepo sirve una instantánea fija en GetDeliveryByID, simulando
// la lectura que corre antes de adquirir el candado de la compra y que otra
// transacción dejó obsoleta al commitear primero.
type staleDeliveryRepo struct {
	*fakePurchaseRepo
	stale *entity.Delivery
}

func (r *staleDeliveryRepo) GetDeliveryByID(id string) (*entity.Delivery, error) {
	if r.stale != nil && r.stale.ID == id {
		cp := *r.stale
		return &cp, nil
	}
	return r.fakePurchaseRepo.GetDeliveryByID(id)
}

// deliveryUCWithStaleRead construye un DeliveryUseCase cuya lectura inicial
// de la entrega ve la instantánea dada en vez del estado ya commiteado.
func (env *testEnv) deliveryUCWithStaleRead(stale *entity.Delivery) *stock.DeliveryUseCase {
	runner := &fakeTxRunner{
		products:  env.products,
		purchases: &staleDeliveryRepo{fakePurchaseRepo: env.purchases, stale: stale},
		transfers: env.transfers,
		expenses:  env.expenses,
		folios:    newFakeFolioRepo(),
	}
	recorder := audit.NewRecorder(env.activities, logger.New(logger.Config{Env: "test", Level: "error"}))
	return stock.NewDeliveryUseCase(runner, recorder)
}
