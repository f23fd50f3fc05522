package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo/AgroStock-api/internal/application/usecase"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

// ActivityHandler consulta de bitácora (protegido, solo lectura).
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Listar bitácora de actividades (más reciente primero)
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        entity     query  string  false  "purchase, transfer, expense, product, user, fumigation"
// @Param        entity_id  query  string  false  "Filtrar por entidad concreta"
// @Param        action     query  string  false  "create, approve, ship, ..."
// @Param        user_id    query  string  false  "Filtrar por usuario"
// @Param        search     query  string  false  "Texto libre (insensible a tildes)"
// @Success      200  {object}  dto.ActivityListResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.ActivityFilter{
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
		Action:   c.Query("action"),
		UserID:   c.Query("user_id"),
		Search:   c.Query("search"),
	}
	out, err := h.uc.List(filter, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
