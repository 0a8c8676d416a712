package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/application/operations"
	"github.com/tu-usuario/sklad-pro/internal/domain"
	"github.com/tu-usuario/sklad-pro/internal/domain/stockops"
)

// OperationHandler maneja la validación y el envío de operaciones de stock
// (protegido). Un envío exitoso dispara el recálculo de estadísticas de las
// bodegas involucradas.
type OperationHandler struct {
	submit  *operations.SubmitUseCase
	history *operations.HistoryUseCase
	trigger StatsTrigger
}

// NewOperationHandler construye el handler.
func NewOperationHandler(submit *operations.SubmitUseCase, history *operations.HistoryUseCase, trigger StatsTrigger) *OperationHandler {
	return &OperationHandler{submit: submit, history: history, trigger: trigger}
}

// Validate godoc
// @Summary      Validar borrador de operación
// @Description  Chequeo puro de las reglas por tipo; no toca la base de datos.
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OperationDraftRequest  true  "Borrador de la operación"
// @Success      200   {object}  dto.ValidateOperationResponse
// @Router       /api/operations/validate [post]
func (h *OperationHandler) Validate(c *fiber.Ctx) error {
	var in dto.OperationDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res := stockops.Validate(operations.DraftFromRequest(in))
	return c.JSON(dto.ValidateOperationResponse{
		Submittable:    res.Submittable,
		VisibleFields:  endpointFields(res.Visible),
		RequiredFields: endpointFields(res.Required),
		ErrorMessage:   res.Message,
	})
}

// Submit godoc
// @Summary      Registrar operación de stock
// @Description  Valida el borrador y lo aplica en una transacción; el rechazo llega clasificado como mensaje de usuario.
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OperationDraftRequest  true  "Operación a registrar"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations [post]
func (h *OperationHandler) Submit(c *fiber.Ctx) error {
	var in dto.OperationDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft := operations.DraftFromRequest(in)
	op, err := h.submit.Submit(c.Context(), GetUserID(c), draft)
	if err != nil {
		// El mensaje de usuario sale del clasificador: patrones ordenados
		// sobre el texto crudo del rechazo, con fallback garantizado.
		message := stockops.ClassifySubmitError(err.Error())
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: message})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: message})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: message})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: message})
		}
	}
	if op.FromWarehouseID != "" {
		h.trigger.TriggerWarehouse(op.FromWarehouseID)
	}
	if op.ToWarehouseID != "" && op.ToWarehouseID != op.FromWarehouseID {
		h.trigger.TriggerWarehouse(op.ToWarehouseID)
	}
	if organizationID := GetOrganizationID(c); organizationID != "" {
		h.trigger.TriggerOrganization(organizationID)
	}
	return c.Status(fiber.StatusCreated).JSON(operations.ToResponse(op))
}

// List godoc
// @Summary      Historial de operaciones
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id     query  string  false  "Filtrar por bodega"
// @Param        nomenclature_id  query  string  false  "Filtrar por posición"
// @Param        limit            query  int     false  "Límite"   default(20)
// @Param        offset           query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.OperationListResponse
// @Router       /api/operations [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()

	if nomenclatureID := c.Query("nomenclature_id"); nomenclatureID != "" {
		out, err := h.history.ByNomenclature(c.Context(), nomenclatureID, page.Limit, page.Offset)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(out)
	}
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id o nomenclature_id es requerido"})
	}
	out, err := h.history.ByWarehouse(c.Context(), warehouseID, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// endpointFields convierte el conjunto {from, to} a los nombres de campo del contrato.
func endpointFields(set stockops.EndpointSet) []string {
	fields := make([]string, 0, 2)
	if set.From {
		fields = append(fields, "from_sklad_id")
	}
	if set.To {
		fields = append(fields, "to_sklad_id")
	}
	return fields
}
