package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, number, supplier, total_ordered, total_delivered, total_pending, status, created_by, approved_by, cancel_reason, created_at, updated_at`

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL.
// Las líneas viven en purchase_items; las entregas en deliveries y
// delivery_items. GetByID y GetForUpdate devuelven el agregado completo.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras. Pasar pool o tx
// (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la compra con sus líneas.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchases (id, number, supplier, total_ordered, total_delivered, total_pending, status, created_by, approved_by, cancel_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.Number, purchase.Supplier,
		purchase.TotalOrdered, purchase.TotalDelivered, purchase.TotalPending,
		purchase.Status, purchase.CreatedBy, purchase.ApprovedBy, purchase.CancelReason,
		purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	for _, item := range purchase.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO purchase_items (purchase_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`,
			purchase.ID, item.ProductID, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la compra con items y entregas cargadas.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	return r.getOne(`SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la compra (SELECT FOR UPDATE) y carga el
// agregado completo. Solo tiene sentido dentro de una transacción.
func (r *PurchaseRepo) GetForUpdate(id string) (*entity.Purchase, error) {
	return r.getOne(`SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseRepo) getOne(query, id string) (*entity.Purchase, error) {
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Number, &p.Supplier, &p.TotalOrdered, &p.TotalDelivered, &p.TotalPending,
		&p.Status, &p.CreatedBy, &p.ApprovedBy, &p.CancelReason, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if p.Items, err = r.loadItems(p.ID); err != nil {
		return nil, err
	}
	if p.Deliveries, err = r.loadDeliveries(p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) loadItems(purchaseID string) ([]entity.PurchaseItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, quantity, unit_price FROM purchase_items WHERE purchase_id = $1 ORDER BY product_id`,
		purchaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("load purchase items: %w", err)
	}
	defer rows.Close()
	var items []entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PurchaseRepo) loadDeliveries(purchaseID string) ([]entity.Delivery, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, purchase_id, warehouse_id, status, cancel_reason, completed_at, created_at, updated_at
		 FROM deliveries WHERE purchase_id = $1 ORDER BY created_at`,
		purchaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("load deliveries: %w", err)
	}
	defer rows.Close()
	var deliveries []entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.ID, &d.PurchaseID, &d.WarehouseID, &d.Status, &d.CancelReason,
			&d.CompletedAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range deliveries {
		items, err := r.loadDeliveryItems(deliveries[i].ID)
		if err != nil {
			return nil, err
		}
		deliveries[i].Items = items
	}
	return deliveries, nil
}

func (r *PurchaseRepo) loadDeliveryItems(deliveryID string) ([]entity.DeliveryItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, quantity, quantity_received FROM delivery_items WHERE delivery_id = $1 ORDER BY product_id`,
		deliveryID,
	)
	if err != nil {
		return nil, fmt.Errorf("load delivery items: %w", err)
	}
	defer rows.Close()
	var items []entity.DeliveryItem
	for rows.Next() {
		var it entity.DeliveryItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.QuantityReceived); err != nil {
			return nil, fmt.Errorf("scan delivery item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update persiste estado, agregados y campos de auditoría de la compra.
// Las líneas son inmutables después de Create.
func (r *PurchaseRepo) Update(purchase *entity.Purchase) error {
	query := `
		UPDATE purchases
		SET total_ordered = $2, total_delivered = $3, total_pending = $4, status = $5,
		    approved_by = $6, cancel_reason = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.TotalOrdered, purchase.TotalDelivered, purchase.TotalPending,
		purchase.Status, purchase.ApprovedBy, purchase.CancelReason, purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

// List lista compras, opcionalmente por estado, más reciente primero.
// Los listados no cargan entregas; GetByID entrega el agregado completo.
func (r *PurchaseRepo) List(status string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.Number, &p.Supplier, &p.TotalOrdered, &p.TotalDelivered,
			&p.TotalPending, &p.Status, &p.CreatedBy, &p.ApprovedBy, &p.CancelReason,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		items, err := r.loadItems(p.ID)
		if err != nil {
			return nil, err
		}
		p.Items = items
	}
	return list, nil
}

// CreateDelivery persiste una entrega con sus líneas.
func (r *PurchaseRepo) CreateDelivery(delivery *entity.Delivery) error {
	ctx := context.Background()
	query := `
		INSERT INTO deliveries (id, purchase_id, warehouse_id, status, cancel_reason, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		delivery.ID, delivery.PurchaseID, delivery.WarehouseID, delivery.Status,
		delivery.CancelReason, delivery.CompletedAt, delivery.CreatedAt, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	for _, item := range delivery.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO delivery_items (delivery_id, product_id, quantity, quantity_received) VALUES ($1, $2, $3, $4)`,
			delivery.ID, item.ProductID, item.Quantity, item.QuantityReceived,
		)
		if err != nil {
			return fmt.Errorf("insert delivery item: %w", err)
		}
	}
	return nil
}

// GetDeliveryByID obtiene una entrega con sus líneas.
func (r *PurchaseRepo) GetDeliveryByID(id string) (*entity.Delivery, error) {
	var d entity.Delivery
	err := r.q.QueryRow(context.Background(),
		`SELECT id, purchase_id, warehouse_id, status, cancel_reason, completed_at, created_at, updated_at
		 FROM deliveries WHERE id = $1`, id,
	).Scan(&d.ID, &d.PurchaseID, &d.WarehouseID, &d.Status, &d.CancelReason,
		&d.CompletedAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	items, err := r.loadDeliveryItems(d.ID)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return &d, nil
}

// UpdateDelivery persiste estado, razón de cancelación, completed_at y las
// cantidades recibidas de las líneas.
func (r *PurchaseRepo) UpdateDelivery(delivery *entity.Delivery) error {
	ctx := context.Background()
	query := `
		UPDATE deliveries
		SET status = $2, cancel_reason = $3, completed_at = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		delivery.ID, delivery.Status, delivery.CancelReason, delivery.CompletedAt, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	for _, item := range delivery.Items {
		_, err := r.q.Exec(ctx,
			`UPDATE delivery_items SET quantity_received = $3 WHERE delivery_id = $1 AND product_id = $2`,
			delivery.ID, item.ProductID, item.QuantityReceived,
		)
		if err != nil {
			return fmt.Errorf("update delivery item: %w", err)
		}
	}
	return nil
}
