package report

import (
	"context"
	"fmt"

	"github.com/tu-usuario/sklad-pro/internal/application/stats"
	"github.com/tu-usuario/sklad-pro/internal/domain"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
	domstats "github.com/tu-usuario/sklad-pro/internal/domain/stats"
)

// InventoryPDFGenerator puerto de generación del reporte PDF de inventario.
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, warehouse *entity.Warehouse, totals domstats.Totals, items []*entity.Item) ([]byte, error)
}

// UseCase arma el reporte de inventario de una bodega: totales agregados
// más el listado de posiciones con existencias.
type UseCase struct {
	warehouseRepo repository.WarehouseRepository
	itemRepo      repository.ItemRepository
	aggregator    *stats.Aggregator
	generator     InventoryPDFGenerator
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.ItemRepository,
	aggregator *stats.Aggregator,
	generator InventoryPDFGenerator,
) *UseCase {
	return &UseCase{
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
		aggregator:    aggregator,
		generator:     generator,
	}
}

// InventoryPDF genera el reporte PDF de inventario de la bodega.
func (uc *UseCase) InventoryPDF(ctx context.Context, warehouseID string) ([]byte, error) {
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("obtener bodega: %w", err)
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	totals := uc.aggregator.ForWarehouse(ctx, warehouseID)
	items, err := uc.itemRepo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("listar posiciones: %w", err)
	}
	return uc.generator.GenerateInventoryPDF(ctx, wh, totals, items)
}
