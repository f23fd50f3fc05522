package usecase

import (
	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
	"github.com/jcastillo/AgroStock-api/pkg/textutil"
)

// ActivityUseCase consulta de la bitácora. Solo lectura: las escrituras las
// hace audit.Recorder desde cada workflow.
type ActivityUseCase struct {
	repo repository.ActivityRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo}
}

// List lista la bitácora, más reciente primero, con filtros opcionales.
// El término de búsqueda se normaliza para que "fumigación" y "fumigacion"
// encuentren lo mismo.
func (uc *ActivityUseCase) List(filter repository.ActivityFilter, limit, offset int) (*dto.ActivityListResponse, error) {
	filter.Search = textutil.Normalize(filter.Search)
	list, err := uc.repo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toActivityResponse(a))
	}
	return &dto.ActivityListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toActivityResponse(a *entity.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:          a.ID,
		Type:        a.Type,
		Action:      a.Action,
		Entity:      a.Entity,
		EntityID:    a.EntityID,
		EntityName:  a.EntityName,
		Description: a.Description,
		Metadata:    a.Metadata,
		UserID:      a.UserID,
		UserName:    a.UserName,
		CreatedAt:   a.CreatedAt,
	}
}
