package entity

import "time"

// Warehouse representa una bodega o depósito del establecimiento.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
