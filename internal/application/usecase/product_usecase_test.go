package usecase_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastillo/AgroStock-api/internal/application/audit"
	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/application/usecase"
	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
	"github.com/jcastillo/AgroStock-api/pkg/logger"
)

// stubProductRepo repo en memoria con error inyectable en GetBySKU.
type stubProductRepo struct {
	bySKU   map[string]*entity.Product
	skuErr  error
	created []*entity.Product
}

func (r *stubProductRepo) Create(p *entity.Product) error {
	r.created = append(r.created, p)
	return nil
}
func (r *stubProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	if r.skuErr != nil {
		return nil, r.skuErr
	}
	return r.bySKU[sku], nil
}
func (r *stubProductRepo) GetForUpdate(string) (*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) Update(*entity.Product) error                 { return nil }
func (r *stubProductRepo) UpdateStock(string, decimal.Decimal) error    { return nil }
func (r *stubProductRepo) UpdateStockAndWarehouse(string, decimal.Decimal, string) error {
	return nil
}
func (r *stubProductRepo) List(string, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Delete(string) error { return nil }

type stubWarehouseRepo struct{}

func (stubWarehouseRepo) Create(*entity.Warehouse) error { return nil }
func (stubWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return &entity.Warehouse{ID: id, Name: "Bodega Central"}, nil
}
func (stubWarehouseRepo) Update(*entity.Warehouse) error             { return nil }
func (stubWarehouseRepo) List(int, int) ([]*entity.Warehouse, error) { return nil, nil }

type stubActivityRepo struct{}

func (stubActivityRepo) Create(*entity.Activity) error { return nil }
func (stubActivityRepo) List(repository.ActivityFilter, int, int) ([]*entity.Activity, error) {
	return nil, nil
}

func newProductUC(repo *stubProductRepo) *usecase.ProductUseCase {
	recorder := audit.NewRecorder(stubActivityRepo{}, logger.New(logger.Config{Env: "test", Level: "error"}))
	return usecase.NewProductUseCase(repo, stubWarehouseRepo{}, recorder)
}

var actor = audit.Actor{ID: "u1", Name: "Juan Pérez"}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	repo := &stubProductRepo{bySKU: map[string]*entity.Product{
		"SEM-001": {ID: "p1", SKU: "SEM-001"},
	}}
	uc := newProductUC(repo)

	_, err := uc.Create(actor, dto.CreateProductRequest{
		SKU: "SEM-001", Name: "Semilla maíz", WarehouseID: "W1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, repo.created)
}

func TestProductCreate_ErrorAlConsultarSKU_SePropaga(t *testing.T) {
	// Un fallo transitorio de la base no debe leerse como "SKU libre".
	boom := errors.New("conexión perdida")
	repo := &stubProductRepo{skuErr: boom}
	uc := newProductUC(repo)

	_, err := uc.Create(actor, dto.CreateProductRequest{
		SKU: "SEM-001", Name: "Semilla maíz", WarehouseID: "W1",
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, repo.created, "con la consulta fallida no debe crearse nada")
}

func TestProductCreate_StockInicialNegativo(t *testing.T) {
	uc := newProductUC(&stubProductRepo{})
	_, err := uc.Create(actor, dto.CreateProductRequest{
		SKU: "SEM-001", Name: "Semilla maíz", WarehouseID: "W1",
		InitialStock: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
