// Package audit escribe la bitácora de actividades. Las escrituras ocurren
// después del commit del workflow y nunca hacen fallar al caller: un fallo
// al registrar se loggea en warn y se descarta.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
	"github.com/jcastillo/AgroStock-api/pkg/logger"
)

// Actor identidad autenticada que ejecuta un workflow (viene del JWT).
type Actor struct {
	ID   string
	Name string
}

// Recorder registra actividades en la bitácora.
type Recorder struct {
	repo repository.ActivityRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.ActivityRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record persiste una actividad. Completa ID y CreatedAt si faltan.
// No devuelve error: la bitácora jamás voltea el workflow padre.
func (r *Recorder) Record(actor Actor, entityType, action, entityID, entityName, description string, metadata any) {
	var raw json.RawMessage
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			r.log.Warn().Err(err).Str("entity", entityType).Msg("bitácora: metadata no serializable")
		} else {
			raw = b
		}
	}
	a := &entity.Activity{
		ID:          uuid.New().String(),
		Type:        entityType,
		Action:      action,
		Entity:      entityType,
		EntityID:    entityID,
		EntityName:  entityName,
		Description: description,
		Metadata:    raw,
		UserID:      actor.ID,
		UserName:    actor.Name,
		CreatedAt:   time.Now(),
	}
	if err := r.repo.Create(a); err != nil {
		r.log.Warn().Err(err).
			Str("entity", entityType).
			Str("action", action).
			Str("entity_id", entityID).
			Msg("bitácora: no se pudo registrar la actividad")
	}
}
