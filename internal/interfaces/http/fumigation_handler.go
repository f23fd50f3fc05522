package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/application/fumigation"
)

// FumigationHandler maneja órdenes de fumigación y su PDF (protegido).
type FumigationHandler struct {
	uc *fumigation.UseCase
}

// NewFumigationHandler construye el handler.
func NewFumigationHandler(uc *fumigation.UseCase) *FumigationHandler {
	return &FumigationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de fumigación
// @Tags         fumigations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFumigationRequest  true  "Lote, aplicador y agroquímicos"
// @Success      201   {object}  dto.FumigationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fumigations [post]
func (h *FumigationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFumigationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de fumigación
// @Tags         fumigations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.FumigationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fumigations/{id} [get]
func (h *FumigationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de fumigación
// @Tags         fumigations
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "scheduled, applied, cancelled"
// @Success      200  {object}  dto.FumigationListResponse
// @Router       /api/fumigations [get]
func (h *FumigationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkApplied godoc
// @Summary      Marcar orden como aplicada
// @Tags         fumigations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.FumigationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/fumigations/{id}/applied [post]
func (h *FumigationHandler) MarkApplied(c *fiber.Ctx) error {
	out, err := h.uc.MarkApplied(actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden agendada
// @Tags         fumigations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.FumigationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/fumigations/{id}/cancel [post]
func (h *FumigationHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GeneratePDF godoc
// @Summary      Generar (o regenerar) el PDF de la orden
// @Tags         fumigations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      201  {object}  dto.PDFMetadataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fumigations/{id}/pdf [post]
func (h *FumigationHandler) GeneratePDF(c *fiber.Ctx) error {
	out, err := h.uc.GeneratePDF(actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar el PDF almacenado de la orden
// @Tags         fumigations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {string}  binary  "PDF"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fumigations/{id}/pdf [get]
func (h *FumigationHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.GetPDF(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, pdf.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+pdf.Filename+`"`)
	return c.Send(pdf.Content)
}

// PDFMetadata godoc
// @Summary      Metadatos del PDF almacenado (sin el binario)
// @Tags         fumigations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PDFMetadataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fumigations/{id}/pdf/metadata [get]
func (h *FumigationHandler) PDFMetadata(c *fiber.Ctx) error {
	out, err := h.uc.PDFMetadata(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeletePDF godoc
// @Summary      Eliminar el PDF almacenado de la orden
// @Tags         fumigations
// @Security     Bearer
// @Param        id  path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fumigations/{id}/pdf [delete]
func (h *FumigationHandler) DeletePDF(c *fiber.Ctx) error {
	if err := h.uc.DeletePDF(actorFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
