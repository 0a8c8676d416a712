package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
)

func outgoingDoc(id string, qtys ...int64) DocumentWithItems {
	d := DocumentWithItems{Document: &entity.Document{ID: id, Type: entity.DocTypeOutgoing}}
	for _, q := range qtys {
		d.Items = append(d.Items, &entity.DocumentItem{
			DocumentID:         id,
			QuantityDocumental: decimal.NewFromInt(q),
		})
	}
	return d
}

func TestCompute_AlcanceVacio_TodoEnCero(t *testing.T) {
	totals := Compute(nil, nil)
	assert.True(t, totals.Sold.IsZero())
	assert.True(t, totals.InStock.IsZero())
	assert.Zero(t, totals.Items)
}

func TestCompute_SoloOutgoingAportaAVendido(t *testing.T) {
	docs := []DocumentWithItems{
		outgoingDoc("d1", 3, 2),
		{Document: &entity.Document{ID: "d2", Type: entity.DocTypeIncoming},
			Items: []*entity.DocumentItem{{QuantityDocumental: decimal.NewFromInt(100)}}},
		{Document: &entity.Document{ID: "d3", Type: entity.DocTypeInventory},
			Items: []*entity.DocumentItem{{QuantityDocumental: decimal.NewFromInt(50)}}},
	}
	totals := Compute(docs, nil)
	assert.Equal(t, "5", totals.Sold.String(), "solo los documentos outgoing cuentan como venta")
	assert.True(t, totals.InStock.IsZero())
	assert.Zero(t, totals.Items)
}

func TestCompute_NegativosEnLineasSeRecortan(t *testing.T) {
	docs := []DocumentWithItems{{
		Document: &entity.Document{ID: "d1", Type: entity.DocTypeOutgoing},
		Items: []*entity.DocumentItem{
			{QuantityDocumental: decimal.NewFromInt(4)},
			{QuantityDocumental: decimal.NewFromInt(-9)}, // línea corrupta
		},
	}}
	totals := Compute(docs, nil)
	assert.Equal(t, "4", totals.Sold.String(), "una línea negativa aporta 0, no resta")
}

func TestCompute_ExistenciaYPosicionesDesdeNomenclatura(t *testing.T) {
	items := []*entity.Item{
		{ID: "i1", Quantity: decimal.NewFromInt(10)},
		{ID: "i2", Quantity: decimal.NewFromInt(-2)}, // stock negativo permitido
		{ID: "i3", Quantity: decimal.Zero},
	}
	totals := Compute(nil, items)
	assert.Equal(t, 3, totals.Items, "las posiciones en cero también cuentan")
	assert.Equal(t, "8", totals.InStock.String(), "la existencia se suma tal cual, sin recortar")
	assert.True(t, totals.Sold.IsZero())
}

func TestCompute_ToleraNilos(t *testing.T) {
	docs := []DocumentWithItems{
		{Document: nil},
		{Document: &entity.Document{Type: entity.DocTypeOutgoing}, Items: []*entity.DocumentItem{nil}},
	}
	totals := Compute(docs, []*entity.Item{nil})
	assert.True(t, totals.Sold.IsZero())
	assert.Zero(t, totals.Items)
}

func TestTotals_Add(t *testing.T) {
	a := Totals{Sold: decimal.NewFromInt(3), InStock: decimal.NewFromInt(7), Items: 2}
	b := Totals{Sold: decimal.NewFromInt(1), InStock: decimal.NewFromInt(-4), Items: 5}
	sum := a.Add(b)
	assert.Equal(t, "4", sum.Sold.String())
	assert.Equal(t, "3", sum.InStock.String())
	assert.Equal(t, 7, sum.Items)
}

func TestZero(t *testing.T) {
	z := Zero()
	assert.True(t, z.Sold.IsZero())
	assert.True(t, z.InStock.IsZero())
	assert.Zero(t, z.Items)
}
