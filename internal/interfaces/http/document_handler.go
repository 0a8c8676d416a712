package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/application/usecase"
	"github.com/tu-usuario/sklad-pro/internal/domain"
)

// DocumentHandler maneja las peticiones HTTP para documentos de bodega
// (protegido). Las mutaciones disparan el recálculo de estadísticas de las
// bodegas referenciadas.
type DocumentHandler struct {
	uc      *usecase.DocumentUseCase
	trigger StatsTrigger
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase, trigger StatsTrigger) *DocumentHandler {
	return &DocumentHandler{uc: uc, trigger: trigger}
}

// Create godoc
// @Summary      Crear documento de bodega
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "Documento con líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	h.triggerWarehouses(c, out.WarehouseIDs)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento con líneas
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar documentos de una bodega
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_WAREHOUSE", Message: "warehouse_id es requerido"})
	}
	out, err := h.uc.ListByWarehouse(c.Context(), warehouseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera de documento
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del documento"
// @Param        body  body  dto.UpdateDocumentRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	h.triggerWarehouses(c, out.WarehouseIDs)
	return c.JSON(out)
}

// ReplaceItems godoc
// @Summary      Reemplazar líneas del documento
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del documento"
// @Param        body  body  []dto.DocumentItemRequest  true  "Líneas completas"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/items [put]
func (h *DocumentHandler) ReplaceItems(c *fiber.Ctx) error {
	var in []dto.DocumentItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	for _, item := range in {
		if err := validateStruct(item); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
	}
	out, err := h.uc.ReplaceItems(c.Context(), c.Params("id"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	h.triggerWarehouses(c, out.WarehouseIDs)
	return c.JSON(out)
}

// ExportXML godoc
// @Summary      Exportar documento como remesa XML
// @Tags         documents
// @Security     Bearer
// @Produce      application/xml
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {string}  string  "XML de la remesa"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/xml [get]
func (h *DocumentHandler) ExportXML(c *fiber.Ctx) error {
	out, err := h.uc.ExportXML(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}

// Delete godoc
// @Summary      Eliminar documento
// @Tags         documents
// @Security     Bearer
// @Param        id  path  string  true  "ID del documento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	existing, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	if err := h.uc.Delete(c.Context(), existing.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	h.triggerWarehouses(c, existing.WarehouseIDs)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DocumentHandler) triggerWarehouses(c *fiber.Ctx, warehouseIDs []string) {
	for _, id := range warehouseIDs {
		h.trigger.TriggerWarehouse(id)
	}
	if organizationID := GetOrganizationID(c); organizationID != "" {
		h.trigger.TriggerOrganization(organizationID)
	}
}
