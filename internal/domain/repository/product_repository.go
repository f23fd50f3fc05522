package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y los UpdateStock* deben usarse solo dentro de una transacción
// (TxRunner) cuando forman parte de un workflow que muta stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija la cantidad disponible y actualiza updated_at.
	UpdateStock(productID string, stock decimal.Decimal) error
	// UpdateStockAndWarehouse fija cantidad y reasigna la bodega dueña
	// (recepción de transferencias y entregas de compra).
	UpdateStockAndWarehouse(productID string, stock decimal.Decimal, warehouseID string) error
	List(search, warehouseID string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
