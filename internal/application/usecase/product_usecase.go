package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jcastillo/AgroStock-api/internal/application/audit"
	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock posterior al
// alta se maneja exclusivamente vía workflows (egresos, entregas,
// transferencias); Update nunca lo toca.
type ProductUseCase struct {
	repo          repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	recorder      *audit.Recorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, warehouseRepo repository.WarehouseRepository, recorder *audit.Recorder) *ProductUseCase {
	return &ProductUseCase{repo: repo, warehouseRepo: warehouseRepo, recorder: recorder}
}

// Create crea un producto, con stock inicial opcional.
func (uc *ProductUseCase) Create(actor audit.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.WarehouseID == "" || in.InitialStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.Unit == "" {
		in.Unit = "un"
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Category:    in.Category,
		Stock:       in.InitialStock,
		Unit:        in.Unit,
		WarehouseID: in.WarehouseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, "product", entity.ActivityActionCreate, product.ID, product.Name,
		fmt.Sprintf("producto %s creado", product.Name),
		map[string]any{"sku": product.SKU, "warehouse_id": product.WarehouseID})
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, categoría y unidad. No permite modificar Stock ni
// bodega (se manejan vía workflows).
func (uc *ProductUseCase) Update(actor audit.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, "product", entity.ActivityActionUpdate, product.ID, product.Name,
		fmt.Sprintf("producto %s actualizado", product.Name), nil)
	return toProductResponse(product), nil
}

// List lista productos con paginación; search filtra por nombre/SKU
// (insensible a tildes y mayúsculas) y warehouseID por bodega.
func (uc *ProductUseCase) List(search, warehouseID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(search, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(actor audit.Actor, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.recorder.Record(actor, "product", entity.ActivityActionDelete, id, product.Name,
		fmt.Sprintf("producto %s eliminado", product.Name), nil)
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Category:    p.Category,
		Stock:       p.Stock,
		Unit:        p.Unit,
		WarehouseID: p.WarehouseID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
