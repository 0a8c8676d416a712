// Package stats contiene el agregador de estadísticas de bodega: recalcula
// totalSold, totalInStock y totalItems desde los documentos y la nomenclatura,
// en un pase completo cada vez (sin deltas) y tolerando fallos parciales.
package stats

import (
	"context"

	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
	domstats "github.com/tu-usuario/sklad-pro/internal/domain/stats"
	"github.com/tu-usuario/sklad-pro/pkg/logger"
)

// Aggregator calcula los totales de una bodega o de todas las bodegas de una
// organización. Las fuentes que fallan aportan cero (warn en el log); un pase
// nunca aborta por un fallo parcial.
type Aggregator struct {
	docRepo       repository.DocumentRepository
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewAggregator construye el agregador.
func NewAggregator(
	docRepo repository.DocumentRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *Aggregator {
	return &Aggregator{
		docRepo:       docRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// ForWarehouse calcula los totales de una bodega. Las líneas de cada documento
// outgoing se piden en paralelo, sin orden entre sí; el pase termina cuando
// todas respondieron o fallaron.
func (a *Aggregator) ForWarehouse(ctx context.Context, warehouseID string) domstats.Totals {
	docs, err := a.docRepo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		a.log.Warn().Err(err).Str("warehouse_id", warehouseID).
			Msg("estadísticas: fallo listando documentos, aportan cero")
		docs = nil
	}

	var outgoing []*entity.Document
	for _, d := range docs {
		if d.Type == entity.DocTypeOutgoing {
			outgoing = append(outgoing, d)
		}
	}

	type linesResult struct {
		doc   *entity.Document
		items []*entity.DocumentItem
		err   error
	}
	ch := make(chan linesResult, len(outgoing))
	for _, d := range outgoing {
		go func(d *entity.Document) {
			items, err := a.docRepo.ListItems(ctx, d.ID)
			ch <- linesResult{doc: d, items: items, err: err}
		}(d)
	}

	withItems := make([]domstats.DocumentWithItems, 0, len(outgoing))
	for range outgoing {
		r := <-ch
		if r.err != nil {
			// El documento se omite: resultado parcial aceptable.
			a.log.Warn().Err(r.err).Str("document_id", r.doc.ID).
				Msg("estadísticas: fallo leyendo líneas del documento, se omite")
			continue
		}
		withItems = append(withItems, domstats.DocumentWithItems{Document: r.doc, Items: r.items})
	}

	items, err := a.itemRepo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		a.log.Warn().Err(err).Str("warehouse_id", warehouseID).
			Msg("estadísticas: fallo listando nomenclatura, aporta cero")
		items = nil
	}

	return domstats.Compute(withItems, items)
}

// ForOrganization suma los totales de todas las bodegas de la organización,
// calculando cada bodega en paralelo. Una bodega que falla aporta cero y no
// impide que las demás contribuyan.
func (a *Aggregator) ForOrganization(ctx context.Context, organizationID string) (domstats.Totals, error) {
	warehouses, err := a.warehouseRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return domstats.Zero(), err
	}

	ch := make(chan domstats.Totals, len(warehouses))
	for _, w := range warehouses {
		go func(id string) {
			ch <- a.ForWarehouse(ctx, id)
		}(w.ID)
	}

	total := domstats.Zero()
	for range warehouses {
		total = total.Add(<-ch)
	}
	return total, nil
}
