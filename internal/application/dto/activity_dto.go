package dto

import (
	"encoding/json"
	"time"
)

// ActivityResponse registro de bitácora en respuestas.
type ActivityResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Action      string          `json:"action"`
	Entity      string          `json:"entity"`
	EntityID    string          `json:"entity_id"`
	EntityName  string          `json:"entity_name"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	UserID      string          `json:"user_id"`
	UserName    string          `json:"user_name"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ActivityListResponse listado paginado de bitácora.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
