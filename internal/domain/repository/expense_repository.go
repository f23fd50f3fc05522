package repository

import "github.com/jcastillo/AgroStock-api/internal/domain/entity"

// ExpenseRepository define el puerto de persistencia para egresos.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	List(expenseType string, limit, offset int) ([]*entity.Expense, error)
}
