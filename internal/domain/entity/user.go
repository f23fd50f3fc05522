package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleOperario   = "operario"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	Name         string
	Role         string // admin, supervisor, operario
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
