package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/application/stock"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
)

// ExpenseHandler maneja egresos (protegido). Un egreso de producto descuenta
// stock en la misma transacción que lo crea.
type ExpenseHandler struct {
	uc *stock.ExpenseUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *stock.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear egreso (type=product descuenta stock)
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Datos del egreso"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expense, err := h.uc.Create(c.Context(), actorFrom(c), stock.ExpenseInput{
		Type:        in.Type,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Amount:      in.Amount,
		Description: in.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toExpenseResponse(expense))
}

// GetByID godoc
// @Summary      Obtener egreso por ID
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del egreso"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	expense, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toExpenseResponse(expense))
}

// List godoc
// @Summary      Listar egresos
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  false  "product o misc"
// @Success      200  {object}  dto.ExpenseListResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(c.Query("type"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return c.JSON(dto.ExpenseListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}})
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Number:      e.Number,
		Type:        e.Type,
		ProductID:   e.ProductID,
		Quantity:    e.Quantity,
		UnitPrice:   e.UnitPrice,
		Amount:      e.Amount,
		Description: e.Description,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}
