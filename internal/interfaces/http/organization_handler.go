package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/application/usecase"
	"github.com/tu-usuario/sklad-pro/internal/domain"
)

// OrganizationHandler maneja las peticiones HTTP para Organization (protegido).
type OrganizationHandler struct {
	uc *usecase.OrganizationUseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *usecase.OrganizationUseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear organización
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrganizationRequest  true  "Datos de la organización"
// @Success      201   {object}  dto.OrganizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la organización ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener organización por ID
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la organización"
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/{id} [get]
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "organización no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar organizaciones del usuario
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.OrganizationListResponse
// @Router       /api/organizations [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar organización
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID de la organización"
// @Param        body  body  dto.UpdateOrganizationRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OrganizationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/organizations/{id} [put]
func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "organización no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar organización
// @Tags         organizations
// @Security     Bearer
// @Param        id  path  string  true  "ID de la organización"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/{id} [delete]
func (h *OrganizationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "organización no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
