package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/application/usecase"
	"github.com/tu-usuario/sklad-pro/internal/domain"
)

// InviteHandler maneja invitaciones a la organización (protegido salvo accept).
type InviteHandler struct {
	uc     *usecase.InviteUseCase
	qrSize int
}

// NewInviteHandler construye el handler. qrSize es el lado en píxeles del PNG.
func NewInviteHandler(uc *usecase.InviteUseCase, qrSize int) *InviteHandler {
	return &InviteHandler{uc: uc, qrSize: qrSize}
}

// Create godoc
// @Summary      Crear invitación a la organización
// @Tags         invites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInviteRequest  true  "Email y rol opcionales"
// @Success      201   {object}  dto.InviteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invites [post]
func (h *InviteHandler) Create(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "organization_id requerido"})
	}
	var in dto.CreateInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(organizationID, GetUserID(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// QRCode godoc
// @Summary      Código QR de una invitación
// @Tags         invites
// @Security     Bearer
// @Produce      image/png
// @Param        token  path  string  true  "Token de la invitación"
// @Success      200  {string}  binary  "PNG del QR"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invites/{token}/qr [get]
func (h *InviteHandler) QRCode(c *fiber.Ctx) error {
	png, err := h.uc.QRCode(c.Params("token"), h.qrSize)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invitación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// Accept godoc
// @Summary      Aceptar invitación por token
// @Tags         invites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AcceptInviteRequest  true  "Token escaneado"
// @Success      200   {object}  dto.InviteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      410   {object}  dto.ErrorResponse
// @Router       /api/invites/accept [post]
func (h *InviteHandler) Accept(c *fiber.Ctx) error {
	var in dto.AcceptInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Accept(GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invitación no encontrada"})
		case errors.Is(err, domain.ErrInviteUsed):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVITE_USED", Message: "la invitación ya fue usada"})
		case errors.Is(err, domain.ErrInviteExpired):
			return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{Code: "INVITE_EXPIRED", Message: "la invitación expiró"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar invitaciones de la organización
// @Tags         invites
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.InviteListResponse
// @Router       /api/invites [get]
func (h *InviteHandler) List(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "organization_id requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(organizationID, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
