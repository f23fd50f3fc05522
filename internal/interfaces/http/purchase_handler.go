package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/application/stock"
	"github.com/jcastillo/AgroStock-api/internal/application/usecase"
)

// PurchaseHandler maneja compras y sus entregas (protegido). El ciclo de
// vida (crear, aprobar, cancelar, anunciar entregas) va al usecase de
// compras; completar y cancelar entregas mueven stock y van al workflow.
type PurchaseHandler struct {
	uc         *usecase.PurchaseUseCase
	deliveryUC *stock.DeliveryUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *usecase.PurchaseUseCase, deliveryUC *stock.DeliveryUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, deliveryUC: deliveryUC}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener compra con items y entregas
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200  {object}  dto.PurchaseListResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar compra pendiente
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/approve [post]
func (h *PurchaseHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar compra (requiere razón)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la compra"
// @Param        body  body  dto.CancelRequest  true  "Razón de cancelación"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Cancel(c.Context(), actorFrom(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddDelivery godoc
// @Summary      Anunciar una entrega de la compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la compra"
// @Param        body  body  dto.AddDeliveryRequest  true  "Bodega destino y líneas (vacío anuncia todas)"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/deliveries [post]
func (h *PurchaseHandler) AddDelivery(c *fiber.Ctx) error {
	var in dto.AddDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddDelivery(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkInTransit godoc
// @Summary      Marcar entrega en tránsito
// @Tags         deliveries
// @Security     Bearer
// @Param        id  path  string  true  "ID de la entrega"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/transit [post]
func (h *PurchaseHandler) MarkInTransit(c *fiber.Ctx) error {
	if err := h.uc.MarkDeliveryInTransit(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CompleteDelivery godoc
// @Summary      Completar entrega: suma stock y recalcula agregados
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la entrega"
// @Param        body  body  dto.CompleteDeliveryRequest  true  "Cantidades recibidas (vacío recibe lo anunciado)"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/complete [post]
func (h *PurchaseHandler) CompleteDelivery(c *fiber.Ctx) error {
	var in dto.CompleteDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	purchase, err := h.deliveryUC.Complete(c.Context(), actorFrom(c), c.Params("id"), receivedMap(in.Received))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(purchase.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CancelDelivery godoc
// @Summary      Cancelar entrega (no toca stock, requiere razón)
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la entrega"
// @Param        body  body  dto.CancelRequest  true  "Razón de cancelación"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/cancel [post]
func (h *PurchaseHandler) CancelDelivery(c *fiber.Ctx) error {
	var in dto.CancelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	purchase, err := h.deliveryUC.Cancel(c.Context(), actorFrom(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(purchase.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// receivedMap convierte las líneas recibidas del body al mapa que esperan
// los workflows. Devuelve nil si no hay overrides.
func receivedMap(lines []dto.ReceivedLine) map[string]decimal.Decimal {
	if len(lines) == 0 {
		return nil
	}
	m := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		m[l.ProductID] = l.QuantityReceived
	}
	return m
}
