// Package pdf implementa la generación del reporte de inventario por bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la bodega │ Fecha de corte               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Vendido / En stock / Posiciones                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Nombre | Código | Unidad | Existencia    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/sklad-pro/internal/application/report"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	domstats "github.com/tu-usuario/sklad-pro/internal/domain/stats"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.InventoryPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.InventoryPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateInventoryPDF genera el reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryPDF(
	_ context.Context,
	warehouse *entity.Warehouse,
	totals domstats.Totals,
	items []*entity.Item,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor(warehouse.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(warehouse))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(totals))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la bodega (izq) y fecha de corte (der).
func headerRow(warehouse *entity.Warehouse) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(warehouse.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Dirección: "+nonEmpty(warehouse.Address, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Corte: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// totalsRow: los tres totales agregados de la bodega.
func totalsRow(totals domstats.Totals) core.Row {
	metric := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center,
				Color: colorPrimary, Top: 7,
			}),
		)
	}
	return row.New(16).Add(
		metric("VENDIDO", totals.Sold.String()),
		metric("EN STOCK", totals.InStock.String()),
		metric("POSICIONES", fmt.Sprintf("%d", totals.Items)),
	)
}

// tableHeaderRow: cabecera de la tabla de posiciones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Artículo", 2, align.Left),
		h("Nombre", 5, align.Left),
		h("Código de barras", 2, align.Left),
		h("Unidad", 1, align.Center),
		h("Existencia", 2, align.Right),
	)
}

// tableItemRows: una fila por posición de nomenclatura.
func tableItemRows(items []*entity.Item) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Article,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(it.Barcode, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				it.Unit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
