package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/application/report"
	"github.com/tu-usuario/sklad-pro/internal/domain"
)

// ReportHandler genera reportes descargables (protegido).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventoryPDF godoc
// @Summary      Reporte PDF de inventario de una bodega
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {string}  binary  "PDF del reporte"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/warehouses/{id}/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	out, err := h.uc.InventoryPDF(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.pdf"`)
	return c.Send(out)
}
