package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/application/stock"
	"github.com/jcastillo/AgroStock-api/internal/application/usecase"
)

// TransferHandler maneja transferencias entre bodegas (protegido). El ciclo
// de vida (crear, aprobar, rechazar) va al usecase de transferencias; enviar
// y recibir mueven stock y van al workflow.
type TransferHandler struct {
	uc     *usecase.TransferUseCase
	shipUC *stock.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *usecase.TransferUseCase, shipUC *stock.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc, shipUC: shipUC}
}

// Create godoc
// @Summary      Crear transferencia entre bodegas
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Bodegas y líneas"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
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
// @Summary      Obtener transferencia
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar transferencias
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200  {object}  dto.TransferListResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar transferencia pendiente
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/approve [post]
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar transferencia (requiere razón)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transferencia"
// @Param        body  body  dto.CancelRequest  true  "Razón de rechazo"
// @Success      200   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/reject [post]
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	var in dto.CancelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Reject(c.Context(), actorFrom(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Ship godoc
// @Summary      Enviar transferencia: descuenta stock del origen
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/ship [post]
func (h *TransferHandler) Ship(c *fiber.Ctx) error {
	transfer, err := h.shipUC.Ship(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(transfer.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir transferencia: suma stock en destino
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transferencia"
// @Param        body  body  dto.ReceiveTransferRequest  true  "Cantidades recibidas (vacío recibe lo enviado)"
// @Success      200   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/receive [post]
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.shipUC.Receive(c.Context(), actorFrom(c), c.Params("id"), receivedMap(in.Received))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(transfer.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
