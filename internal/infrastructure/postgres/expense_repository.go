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

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, number, type, product_id, quantity, unit_price, amount, description, created_by, created_at`

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL.
// product_id es NULL para egresos misc; en Go se mapea a string vacío.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador de egresos. Pasar pool o tx
// (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un egreso.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, number, type, product_id, quantity, unit_price, amount, description, created_by, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Number, expense.Type, expense.ProductID,
		expense.Quantity, expense.UnitPrice, expense.Amount, expense.Description,
		expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un egreso por ID.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	e, err := scanExpense(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// List lista egresos, opcionalmente por tipo, más reciente primero.
func (r *ExpenseRepo) List(expenseType string, limit, offset int) ([]*entity.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE ($1 = '' OR type = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, expenseType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var e entity.Expense
	var productID *string
	err := row.Scan(
		&e.ID, &e.Number, &e.Type, &productID, &e.Quantity, &e.UnitPrice,
		&e.Amount, &e.Description, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if productID != nil {
		e.ProductID = *productID
	}
	return &e, nil
}
