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

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = `id, number, source_warehouse_id, target_warehouse_id, status, requested_by, approved_by, reject_reason, shipped_at, completed_at, created_at, updated_at`

// TransferRepo implementación de TransferRepository sobre PostgreSQL. Las
// líneas viven en transfer_items; quantity_received es NULL hasta recibir.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de transferencias. Pasar pool
// o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste la transferencia con sus líneas.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	ctx := context.Background()
	query := `
		INSERT INTO transfers (id, number, source_warehouse_id, target_warehouse_id, status, requested_by, approved_by, reject_reason, shipped_at, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.Number, transfer.SourceWarehouseID, transfer.TargetWarehouseID,
		transfer.Status, transfer.RequestedBy, transfer.ApprovedBy, transfer.RejectReason,
		transfer.ShippedAt, transfer.CompletedAt, transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	for _, item := range transfer.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO transfer_items (transfer_id, product_id, quantity, quantity_received) VALUES ($1, $2, $3, $4)`,
			transfer.ID, item.ProductID, item.Quantity, item.QuantityReceived,
		)
		if err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la transferencia con sus líneas.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return r.getOne(`SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la transferencia (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.getOne(`SELECT `+transferColumns+` FROM transfers WHERE id = $1 FOR UPDATE`, id)
}

func (r *TransferRepo) getOne(query, id string) (*entity.Transfer, error) {
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Number, &t.SourceWarehouseID, &t.TargetWarehouseID, &t.Status,
		&t.RequestedBy, &t.ApprovedBy, &t.RejectReason, &t.ShippedAt, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	items, err := r.loadItems(t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

func (r *TransferRepo) loadItems(transferID string) ([]entity.TransferItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, quantity, quantity_received FROM transfer_items WHERE transfer_id = $1 ORDER BY product_id`,
		transferID,
	)
	if err != nil {
		return nil, fmt.Errorf("load transfer items: %w", err)
	}
	defer rows.Close()
	var items []entity.TransferItem
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.QuantityReceived); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update persiste estado, sellos de auditoría y cantidades recibidas.
func (r *TransferRepo) Update(transfer *entity.Transfer) error {
	ctx := context.Background()
	query := `
		UPDATE transfers
		SET status = $2, approved_by = $3, reject_reason = $4, shipped_at = $5, completed_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.Status, transfer.ApprovedBy, transfer.RejectReason,
		transfer.ShippedAt, transfer.CompletedAt, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	for _, item := range transfer.Items {
		_, err := r.q.Exec(ctx,
			`UPDATE transfer_items SET quantity_received = $3 WHERE transfer_id = $1 AND product_id = $2`,
			transfer.ID, item.ProductID, item.QuantityReceived,
		)
		if err != nil {
			return fmt.Errorf("update transfer item: %w", err)
		}
	}
	return nil
}

// List lista transferencias, opcionalmente por estado, más reciente primero.
func (r *TransferRepo) List(status string, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.Number, &t.SourceWarehouseID, &t.TargetWarehouseID,
			&t.Status, &t.RequestedBy, &t.ApprovedBy, &t.RejectReason, &t.ShippedAt,
			&t.CompletedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		items, err := r.loadItems(t.ID)
		if err != nil {
			return nil, err
		}
		t.Items = items
	}
	return list, nil
}
