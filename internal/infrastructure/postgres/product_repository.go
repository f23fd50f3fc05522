package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
	"github.com/jcastillo/AgroStock-api/pkg/textutil"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, category, stock, unit, warehouse_id, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable
// con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx
// (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, category, stock, unit, warehouse_id, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Category,
		product.Stock, product.Unit, product.WarehouseID, textutil.Normalize(product.Name),
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo tiene
// sentido con el Querier atado a una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.Stock, &p.Unit, &p.WarehouseID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza nombre, categoría y unidad. Stock y bodega no se tocan
// por acá (se manejan vía workflows).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category = $3, unit = $4, search_text = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.Unit, textutil.Normalize(product.Name), product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija la cantidad disponible.
func (r *ProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		productID, stock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// UpdateStockAndWarehouse fija cantidad y reasigna la bodega dueña.
func (r *ProductRepo) UpdateStockAndWarehouse(productID string, stock decimal.Decimal, warehouseID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, warehouse_id = $3, updated_at = now() WHERE id = $1`,
		productID, stock, warehouseID,
	)
	if err != nil {
		return fmt.Errorf("update stock/warehouse: %w", err)
	}
	return nil
}

// List lista productos con paginación. search filtra por nombre o SKU sin
// distinguir mayúsculas ni tildes (la columna search_text guarda el nombre
// normalizado); warehouseID filtra por bodega.
func (r *ProductRepo) List(search, warehouseID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR search_text LIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR warehouse_id = $2)
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, textutil.Normalize(search), warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.Stock, &p.Unit, &p.WarehouseID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
