package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en la bitácora.
const (
	ActivityActionCreate   = "create"
	ActivityActionUpdate   = "update"
	ActivityActionApprove  = "approve"
	ActivityActionReject   = "reject"
	ActivityActionCancel   = "cancel"
	ActivityActionShip     = "ship"
	ActivityActionReceive  = "receive"
	ActivityActionComplete = "complete"
	ActivityActionDelete   = "delete"
)

// Activity registro de auditoría append-only: nunca se modifica ni se borra.
// Cada workflow exitoso escribe exactamente uno.
type Activity struct {
	ID          string
	Type        string // purchase, transfer, expense, product, user, fumigation
	Action      string
	Entity      string
	EntityID    string
	EntityName  string
	Description string
	Metadata    json.RawMessage
	UserID      string
	UserName    string
	CreatedAt   time.Time
}
