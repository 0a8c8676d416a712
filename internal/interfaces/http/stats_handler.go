package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/application/stats"
)

// StatsTrigger contrato mínimo que necesitan los handlers de mutación para
// disparar recálculos en segundo plano. Lo implementa *stats.Recomputer.
type StatsTrigger interface {
	TriggerWarehouse(warehouseID string)
	TriggerOrganization(organizationID string)
}

// StatsHandler expone las estadísticas agregadas (protegido).
type StatsHandler struct {
	rec *stats.Recomputer
}

// NewStatsHandler construye el handler.
func NewStatsHandler(rec *stats.Recomputer) *StatsHandler {
	return &StatsHandler{rec: rec}
}

// Warehouse godoc
// @Summary      Estadísticas de una bodega
// @Description  Devuelve el último snapshot publicado; con refresh=true fuerza un recálculo síncrono.
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID de la bodega"
// @Param        refresh  query  bool    false  "Recalcular antes de responder"
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/stats/warehouses/{id} [get]
func (h *StatsHandler) Warehouse(c *fiber.Ctx) error {
	id := c.Params("id")
	if c.QueryBool("refresh", false) {
		snap := h.rec.ComputeWarehouse(c.Context(), id)
		return c.JSON(toStatsResponse(snap, h.rec.Recomputing()))
	}
	snap, ok := h.rec.Latest(stats.WarehouseScope(id))
	if !ok {
		snap = h.rec.ComputeWarehouse(c.Context(), id)
	}
	return c.JSON(toStatsResponse(snap, h.rec.Recomputing()))
}

// Organization godoc
// @Summary      Estadísticas agregadas de la organización
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Param        refresh  query  bool  false  "Recalcular antes de responder"
// @Success      200  {object}  dto.StatsResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stats/organization [get]
func (h *StatsHandler) Organization(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "organization_id requerido"})
	}
	if snap, ok := h.rec.Latest(stats.OrganizationScope(organizationID)); ok && !c.QueryBool("refresh", false) {
		return c.JSON(toStatsResponse(snap, h.rec.Recomputing()))
	}
	snap, err := h.rec.ComputeOrganization(c.Context(), organizationID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "STATS_UNAVAILABLE", Message: "no fue posible calcular las estadísticas"})
	}
	return c.JSON(toStatsResponse(snap, h.rec.Recomputing()))
}

func toStatsResponse(snap stats.Snapshot, stale bool) dto.StatsResponse {
	return dto.StatsResponse{
		TotalSold:    snap.Totals.Sold,
		TotalInStock: snap.Totals.InStock,
		TotalItems:   snap.Totals.Items,
		ComputedAt:   snap.ComputedAt,
		Stale:        stale,
	}
}
