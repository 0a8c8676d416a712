package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	domstats "github.com/tu-usuario/sklad-pro/internal/domain/stats"
	"github.com/tu-usuario/sklad-pro/pkg/logger"
)

// ---------------------------------------------------------------------------
// Fakes de repositorio
// ---------------------------------------------------------------------------

type fakeDocRepo struct {
	docs        map[string][]*entity.Document     // warehouseID -> documentos
	lines       map[string][]*entity.DocumentItem // documentID -> líneas
	failList    bool
	failItemsOf map[string]bool // documentID -> ListItems falla
}

func (f *fakeDocRepo) Create(context.Context, *entity.Document, []*entity.DocumentItem) error {
	return nil
}
func (f *fakeDocRepo) GetByID(context.Context, string) (*entity.Document, error) { return nil, nil }
func (f *fakeDocRepo) Update(context.Context, *entity.Document) error            { return nil }
func (f *fakeDocRepo) ReplaceItems(context.Context, string, []*entity.DocumentItem) error {
	return nil
}
func (f *fakeDocRepo) Delete(context.Context, string) error { return nil }

func (f *fakeDocRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.Document, error) {
	if f.failList {
		return nil, errors.New("conexión perdida")
	}
	return f.docs[warehouseID], nil
}

func (f *fakeDocRepo) ListItems(_ context.Context, documentID string) ([]*entity.DocumentItem, error) {
	if f.failItemsOf[documentID] {
		return nil, errors.New("timeout leyendo líneas")
	}
	return f.lines[documentID], nil
}

type fakeItemRepo struct {
	items    map[string][]*entity.Item // warehouseID -> nomenclatura
	failList bool
}

func (f *fakeItemRepo) Create(context.Context, *entity.Item) error            { return nil }
func (f *fakeItemRepo) GetByID(context.Context, string) (*entity.Item, error) { return nil, nil }
func (f *fakeItemRepo) GetForUpdate(context.Context, string) (*entity.Item, error) {
	return nil, nil
}
func (f *fakeItemRepo) FindByWarehouseAndArticle(context.Context, string, string) (*entity.Item, error) {
	return nil, nil
}
func (f *fakeItemRepo) FindByBarcode(context.Context, string, string) (*entity.Item, error) {
	return nil, nil
}
func (f *fakeItemRepo) Update(context.Context, *entity.Item) error { return nil }
func (f *fakeItemRepo) Delete(context.Context, string) error       { return nil }

func (f *fakeItemRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.Item, error) {
	if f.failList {
		return nil, errors.New("conexión perdida")
	}
	return f.items[warehouseID], nil
}

type fakeWarehouseRepo struct {
	warehouses map[string][]*entity.Warehouse // organizationID -> bodegas
	failList   bool
}

func (f *fakeWarehouseRepo) Create(context.Context, *entity.Warehouse) error { return nil }
func (f *fakeWarehouseRepo) GetByID(context.Context, string) (*entity.Warehouse, error) {
	return nil, nil
}
func (f *fakeWarehouseRepo) Update(context.Context, *entity.Warehouse) error { return nil }
func (f *fakeWarehouseRepo) Delete(context.Context, string) error            { return nil }

func (f *fakeWarehouseRepo) ListByOrganization(_ context.Context, organizationID string) ([]*entity.Warehouse, error) {
	if f.failList {
		return nil, errors.New("conexión perdida")
	}
	return f.warehouses[organizationID], nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func doc(id, typ string) *entity.Document {
	return &entity.Document{ID: id, Type: typ, WarehouseIDs: []string{"wh-1"}}
}

func line(q int64) *entity.DocumentItem {
	return &entity.DocumentItem{QuantityDocumental: decimal.NewFromInt(q)}
}

// ---------------------------------------------------------------------------
// ForWarehouse
// ---------------------------------------------------------------------------

func TestForWarehouse_TotalesCompletos(t *testing.T) {
	docRepo := &fakeDocRepo{
		docs: map[string][]*entity.Document{"wh-1": {
			doc("d1", entity.DocTypeOutgoing),
			doc("d2", entity.DocTypeIncoming), // no cuenta como venta
			doc("d3", entity.DocTypeOutgoing),
		}},
		lines: map[string][]*entity.DocumentItem{
			"d1": {line(3), line(2)},
			"d3": {line(5)},
		},
	}
	itemRepo := &fakeItemRepo{items: map[string][]*entity.Item{"wh-1": {
		{ID: "i1", Quantity: decimal.NewFromInt(10)},
		{ID: "i2", Quantity: decimal.NewFromInt(4)},
	}}}

	agg := NewAggregator(docRepo, itemRepo, &fakeWarehouseRepo{}, testLogger())
	totals := agg.ForWarehouse(context.Background(), "wh-1")

	assert.Equal(t, "10", totals.Sold.String())
	assert.Equal(t, "14", totals.InStock.String())
	assert.Equal(t, 2, totals.Items)
}

func TestForWarehouse_FalloParcialEnLineas_DocumentoSeOmite(t *testing.T) {
	docRepo := &fakeDocRepo{
		docs: map[string][]*entity.Document{"wh-1": {
			doc("d1", entity.DocTypeOutgoing),
			doc("d2", entity.DocTypeOutgoing),
		}},
		lines: map[string][]*entity.DocumentItem{
			"d1": {line(7)},
			"d2": {line(100)},
		},
		failItemsOf: map[string]bool{"d2": true},
	}
	agg := NewAggregator(docRepo, &fakeItemRepo{}, &fakeWarehouseRepo{}, testLogger())

	totals := agg.ForWarehouse(context.Background(), "wh-1")
	assert.Equal(t, "7", totals.Sold.String(), "el documento que falló aporta cero, los demás sí cuentan")
}

func TestForWarehouse_FalloListandoDocumentos_AportaCero(t *testing.T) {
	itemRepo := &fakeItemRepo{items: map[string][]*entity.Item{"wh-1": {
		{ID: "i1", Quantity: decimal.NewFromInt(6)},
	}}}
	agg := NewAggregator(&fakeDocRepo{failList: true}, itemRepo, &fakeWarehouseRepo{}, testLogger())

	totals := agg.ForWarehouse(context.Background(), "wh-1")
	assert.True(t, totals.Sold.IsZero(), "documentos inaccesibles aportan cero sin abortar el pase")
	assert.Equal(t, "6", totals.InStock.String(), "la nomenclatura sigue contando")
	assert.Equal(t, 1, totals.Items)
}

func TestForWarehouse_FalloListandoNomenclatura_AportaCero(t *testing.T) {
	docRepo := &fakeDocRepo{
		docs:  map[string][]*entity.Document{"wh-1": {doc("d1", entity.DocTypeOutgoing)}},
		lines: map[string][]*entity.DocumentItem{"d1": {line(9)}},
	}
	agg := NewAggregator(docRepo, &fakeItemRepo{failList: true}, &fakeWarehouseRepo{}, testLogger())

	totals := agg.ForWarehouse(context.Background(), "wh-1")
	assert.Equal(t, "9", totals.Sold.String())
	assert.True(t, totals.InStock.IsZero())
	assert.Zero(t, totals.Items)
}

func TestForWarehouse_BodegaVacia(t *testing.T) {
	agg := NewAggregator(&fakeDocRepo{}, &fakeItemRepo{}, &fakeWarehouseRepo{}, testLogger())
	totals := agg.ForWarehouse(context.Background(), "wh-vacia")
	assert.True(t, totals.Sold.IsZero())
	assert.True(t, totals.InStock.IsZero())
	assert.Zero(t, totals.Items)
}

// ---------------------------------------------------------------------------
// ForOrganization
// ---------------------------------------------------------------------------

func TestForOrganization_SumaBodegas(t *testing.T) {
	warehouseRepo := &fakeWarehouseRepo{warehouses: map[string][]*entity.Warehouse{
		"org-1": {{ID: "wh-1"}, {ID: "wh-2"}},
	}}
	itemRepo := &fakeItemRepo{items: map[string][]*entity.Item{
		"wh-1": {{ID: "i1", Quantity: decimal.NewFromInt(3)}},
		"wh-2": {{ID: "i2", Quantity: decimal.NewFromInt(8)}, {ID: "i3", Quantity: decimal.NewFromInt(1)}},
	}}
	agg := NewAggregator(&fakeDocRepo{}, itemRepo, warehouseRepo, testLogger())

	totals, err := agg.ForOrganization(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, "12", totals.InStock.String())
	assert.Equal(t, 3, totals.Items)
}

func TestForOrganization_FalloListandoBodegas_EsError(t *testing.T) {
	agg := NewAggregator(&fakeDocRepo{}, &fakeItemRepo{}, &fakeWarehouseRepo{failList: true}, testLogger())
	_, err := agg.ForOrganization(context.Background(), "org-1")
	assert.Error(t, err, "sin la lista de bodegas no hay alcance que calcular")
}

func TestForOrganization_SinBodegas_Cero(t *testing.T) {
	agg := NewAggregator(&fakeDocRepo{}, &fakeItemRepo{}, &fakeWarehouseRepo{}, testLogger())
	totals, err := agg.ForOrganization(context.Background(), "org-sin-bodegas")
	require.NoError(t, err)
	assert.True(t, totals.InStock.IsZero())
	assert.Zero(t, totals.Items)
}

// ---------------------------------------------------------------------------
// Recomputer
// ---------------------------------------------------------------------------

func TestRecomputer_PublicaYConsulta(t *testing.T) {
	itemRepo := &fakeItemRepo{items: map[string][]*entity.Item{"wh-1": {
		{ID: "i1", Quantity: decimal.NewFromInt(5)},
	}}}
	agg := NewAggregator(&fakeDocRepo{}, itemRepo, &fakeWarehouseRepo{}, testLogger())
	rec := NewRecomputer(agg, testLogger(), time.Second)

	_, ok := rec.Latest(WarehouseScope("wh-1"))
	assert.False(t, ok, "sin pases no hay resultado publicado")

	snap := rec.ComputeWarehouse(context.Background(), "wh-1")
	assert.Equal(t, "5", snap.Totals.InStock.String())
	assert.False(t, snap.ComputedAt.IsZero())

	got, ok := rec.Latest(WarehouseScope("wh-1"))
	require.True(t, ok)
	assert.Equal(t, snap.Totals, got.Totals)
}

func TestRecomputer_PaseViejoNoPisaUnoNuevo(t *testing.T) {
	agg := NewAggregator(&fakeDocRepo{}, &fakeItemRepo{}, &fakeWarehouseRepo{}, testLogger())
	rec := NewRecomputer(agg, testLogger(), time.Second)

	scope := WarehouseScope("wh-1")
	nuevo := domTotals(10)
	viejo := domTotals(3)

	rec.publish(scope, 2, nuevo)
	rec.publish(scope, 1, viejo) // pase rezagado

	got, ok := rec.Latest(scope)
	require.True(t, ok)
	assert.Equal(t, "10", got.Totals.InStock.String(), "el resultado rezagado se descarta")

	// Un pase más nuevo sí reemplaza.
	rec.publish(scope, 3, viejo)
	got, _ = rec.Latest(scope)
	assert.Equal(t, "3", got.Totals.InStock.String())
}

func TestRecomputer_TriggerPublicaEnBackground(t *testing.T) {
	itemRepo := &fakeItemRepo{items: map[string][]*entity.Item{"wh-1": {
		{ID: "i1", Quantity: decimal.NewFromInt(2)},
	}}}
	agg := NewAggregator(&fakeDocRepo{}, itemRepo, &fakeWarehouseRepo{}, testLogger())
	rec := NewRecomputer(agg, testLogger(), time.Second)

	rec.TriggerWarehouse("wh-1")

	require.Eventually(t, func() bool {
		_, ok := rec.Latest(WarehouseScope("wh-1"))
		return ok
	}, 2*time.Second, 10*time.Millisecond, "el pase en background debe publicar")

	got, _ := rec.Latest(WarehouseScope("wh-1"))
	assert.Equal(t, "2", got.Totals.InStock.String())
}

func TestRecomputer_OrganizacionFallida_ConservaUltimoValor(t *testing.T) {
	warehouseRepo := &fakeWarehouseRepo{warehouses: map[string][]*entity.Warehouse{
		"org-1": {{ID: "wh-1"}},
	}}
	itemRepo := &fakeItemRepo{items: map[string][]*entity.Item{"wh-1": {
		{ID: "i1", Quantity: decimal.NewFromInt(4)},
	}}}
	agg := NewAggregator(&fakeDocRepo{}, itemRepo, warehouseRepo, testLogger())
	rec := NewRecomputer(agg, testLogger(), time.Second)

	_, err := rec.ComputeOrganization(context.Background(), "org-1")
	require.NoError(t, err)

	// Ahora la lista de bodegas empieza a fallar: el valor publicado sobrevive.
	warehouseRepo.failList = true
	_, err = rec.ComputeOrganization(context.Background(), "org-1")
	assert.Error(t, err)

	got, ok := rec.Latest(OrganizationScope("org-1"))
	require.True(t, ok)
	assert.Equal(t, "4", got.Totals.InStock.String())
}

func domTotals(inStock int64) domstats.Totals {
	return domstats.Totals{Sold: decimal.Zero, InStock: decimal.NewFromInt(inStock)}
}
