// Package stats calcula los totales derivados de una bodega u organización a
// partir de documentos y nomenclatura ya obtenidos: cantidad vendida, cantidad
// en existencia y número de posiciones.
package stats

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/qty"
)

// Totals los tres números derivados de un alcance.
type Totals struct {
	Sold    decimal.Decimal // suma de quantity_documental de documentos outgoing
	InStock decimal.Decimal // suma de Item.Quantity (valor autoritativo del backend)
	Items   int             // número de posiciones, no de unidades
}

// Zero totales en cero (alcance vacío).
func Zero() Totals {
	return Totals{Sold: decimal.Zero, InStock: decimal.Zero}
}

// Add suma otro total (agregación multi-bodega).
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Sold:    t.Sold.Add(o.Sold),
		InStock: t.InStock.Add(o.InStock),
		Items:   t.Items + o.Items,
	}
}

// DocumentWithItems documento con sus líneas ya resueltas.
type DocumentWithItems struct {
	Document *entity.Document
	Items    []*entity.DocumentItem
}

// Compute calcula los totales de un alcance. Solo los documentos outgoing
// aportan a Sold; InStock e Items salen exclusivamente de la nomenclatura.
// Las cantidades negativas o corruptas de líneas se tratan como 0 (qty).
func Compute(docs []DocumentWithItems, items []*entity.Item) Totals {
	t := Zero()
	for _, d := range docs {
		if d.Document == nil || d.Document.Type != entity.DocTypeOutgoing {
			continue
		}
		for _, line := range d.Items {
			if line == nil {
				continue
			}
			t.Sold = t.Sold.Add(qty.NonNegative(line.QuantityDocumental))
		}
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		t.Items++
		t.InStock = t.InStock.Add(it.Quantity)
	}
	return t
}
