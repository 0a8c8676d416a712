package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/application/usecase"
	"github.com/tu-usuario/sklad-pro/internal/domain"
)

// ItemHandler maneja las peticiones HTTP para la nomenclatura (protegido).
// Las mutaciones disparan un recálculo de estadísticas de la bodega.
type ItemHandler struct {
	uc      *usecase.ItemUseCase
	trigger StatsTrigger
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, trigger StatsTrigger) *ItemHandler {
	return &ItemHandler{uc: uc, trigger: trigger}
}

// Create godoc
// @Summary      Crear posición de nomenclatura
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos de la posición"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el artículo ya existe en la bodega"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	h.trigger.TriggerWarehouse(out.WarehouseID)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener posición por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la posición"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "posición no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar nomenclatura de una bodega
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        search        query  string  false  "Filtro por nombre o artículo (sin acentos)"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_WAREHOUSE", Message: "warehouse_id es requerido"})
	}
	out, err := h.uc.List(c.Context(), warehouseID, c.Query("search"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Scan godoc
// @Summary      Buscar posición por código de barras
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Param        barcode       query  string  true  "Código escaneado"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/scan [get]
func (h *ItemHandler) Scan(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	barcode := c.Query("barcode")
	if warehouseID == "" || barcode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id y barcode son requeridos"})
	}
	out, err := h.uc.FindByBarcode(c.Context(), warehouseID, barcode)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "código de barras sin posición asociada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar posición
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la posición"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
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
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "posición no encontrada"})
	}
	h.trigger.TriggerWarehouse(out.WarehouseID)
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar posición
// @Tags         items
// @Security     Bearer
// @Param        id  path  string  true  "ID de la posición"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	// Se resuelve la bodega antes de borrar para poder disparar el recálculo.
	existing, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "posición no encontrada"})
	}
	if err := h.uc.Delete(c.Context(), existing.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	h.trigger.TriggerWarehouse(existing.WarehouseID)
	return c.SendStatus(fiber.StatusNoContent)
}
