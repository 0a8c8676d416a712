package operations

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/domain"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/qty"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
	"github.com/tu-usuario/sklad-pro/internal/domain/stockops"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeTxRunner ejecuta fn directamente contra los repos en memoria; si fn
// falla, los cambios se restauran (simula el rollback).
type fakeTxRunner struct {
	opRepo   *fakeOpRepo
	itemRepo *fakeItemStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	opRepo repository.OperationRepository,
	itemRepo repository.ItemRepository,
) error) error {
	backup := r.itemRepo.snapshot()
	if err := fn(r.opRepo, r.itemRepo); err != nil {
		r.itemRepo.restore(backup)
		return err
	}
	return nil
}

type fakeOpRepo struct {
	created []*entity.StockOperation
}

func (f *fakeOpRepo) Create(_ context.Context, op *entity.StockOperation) error {
	f.created = append(f.created, op)
	return nil
}
func (f *fakeOpRepo) GetByID(context.Context, string) (*entity.StockOperation, error) {
	return nil, nil
}
func (f *fakeOpRepo) ListByWarehouse(context.Context, string, int, int) ([]*entity.StockOperation, error) {
	return nil, nil
}
func (f *fakeOpRepo) ListByNomenclature(context.Context, string, int, int) ([]*entity.StockOperation, error) {
	return nil, nil
}

// fakeItemStore nomenclatura en memoria, indexada por id.
type fakeItemStore struct {
	items map[string]*entity.Item
}

func newItemStore(items ...*entity.Item) *fakeItemStore {
	s := &fakeItemStore{items: make(map[string]*entity.Item)}
	for _, it := range items {
		cp := *it
		s.items[it.ID] = &cp
	}
	return s
}

func (s *fakeItemStore) snapshot() map[string]entity.Item {
	out := make(map[string]entity.Item, len(s.items))
	for id, it := range s.items {
		out[id] = *it
	}
	return out
}

func (s *fakeItemStore) restore(backup map[string]entity.Item) {
	s.items = make(map[string]*entity.Item, len(backup))
	for id, it := range backup {
		cp := it
		s.items[id] = &cp
	}
}

func (s *fakeItemStore) Create(_ context.Context, item *entity.Item) error {
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *fakeItemStore) GetByID(_ context.Context, id string) (*entity.Item, error) {
	if it, ok := s.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeItemStore) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return s.GetByID(ctx, id)
}

func (s *fakeItemStore) FindByWarehouseAndArticle(_ context.Context, warehouseID, article string) (*entity.Item, error) {
	for _, it := range s.items {
		if it.WarehouseID == warehouseID && it.Article == article {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeItemStore) FindByBarcode(context.Context, string, string) (*entity.Item, error) {
	return nil, nil
}

func (s *fakeItemStore) Update(_ context.Context, item *entity.Item) error {
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *fakeItemStore) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range s.items {
		if it.WarehouseID == warehouseID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeItemStore) Delete(_ context.Context, id string) error {
	delete(s.items, id)
	return nil
}

func (s *fakeItemStore) quantity(t *testing.T, id string) string {
	t.Helper()
	it, ok := s.items[id]
	require.True(t, ok, "la posición %s debe existir", id)
	return it.Quantity.String()
}

type fakeWarehouses struct {
	byID map[string]*entity.Warehouse
}

func (f *fakeWarehouses) Create(context.Context, *entity.Warehouse) error { return nil }
func (f *fakeWarehouses) Update(context.Context, *entity.Warehouse) error { return nil }
func (f *fakeWarehouses) Delete(context.Context, string) error            { return nil }
func (f *fakeWarehouses) ListByOrganization(context.Context, string) ([]*entity.Warehouse, error) {
	return nil, nil
}

func (f *fakeWarehouses) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := f.byID[id]; ok {
		return w, nil
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// Arranque
// ---------------------------------------------------------------------------

type fixture struct {
	uc    *SubmitUseCase
	op    *fakeOpRepo
	items *fakeItemStore
}

func newFixture(allowNegative bool, items ...*entity.Item) fixture {
	store := newItemStore(items...)
	opRepo := &fakeOpRepo{}
	warehouses := &fakeWarehouses{byID: map[string]*entity.Warehouse{
		"wh-a": {ID: "wh-a", Settings: entity.WarehouseSettings{AllowNegativeStock: allowNegative}},
		"wh-b": {ID: "wh-b", Settings: entity.WarehouseSettings{AllowNegativeStock: allowNegative}},
	}}
	tx := &fakeTxRunner{opRepo: opRepo, itemRepo: store}
	return fixture{
		uc:    NewSubmitUseCase(tx, store, warehouses),
		op:    opRepo,
		items: store,
	}
}

func itemIn(id, warehouseID string, quantity int64) *entity.Item {
	return &entity.Item{
		ID:          id,
		WarehouseID: warehouseID,
		Name:        "Tornillo 5mm",
		Article:     "TOR-5",
		Unit:        "und",
		Quantity:    decimal.NewFromInt(quantity),
	}
}

func draft(t entity.OperationType, nomenclatureID string, quantity int64, from, to string) stockops.Draft {
	return stockops.Draft{
		Type:            t,
		NomenclatureID:  nomenclatureID,
		Quantity:        decimal.NewFromInt(quantity),
		QuantitySet:     true,
		FromWarehouseID: from,
		ToWarehouseID:   to,
	}
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestSubmit_VentaDescuentaExistencia(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-a", 10))

	op, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationSale, "i1", 4, "wh-a", ""))
	require.NoError(t, err)
	require.NotNil(t, op)

	assert.Equal(t, "6", f.items.quantity(t, "i1"))
	require.Len(t, f.op.created, 1, "la operación debe quedar registrada")
	assert.Equal(t, entity.OperationSale, f.op.created[0].Type)
	assert.Equal(t, "user-1", f.op.created[0].CreatedBy)
	assert.NotEmpty(t, op.ID)
}

func TestSubmit_VentaSinStock_Rechaza(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-a", 4))

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationSale, "i1", 10, "wh-a", ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Available: 4, Required: 10")

	// El mensaje resultante es clasificable para el usuario.
	msg := stockops.ClassifySubmitError(err.Error())
	assert.Equal(t, "Stock insuficiente. Disponible: 4, Requerido: 10", msg)

	assert.Equal(t, "4", f.items.quantity(t, "i1"), "el rechazo no debe tocar la existencia")
	assert.Empty(t, f.op.created)
}

func TestSubmit_StockNegativoPermitido(t *testing.T) {
	f := newFixture(true, itemIn("i1", "wh-a", 4))

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationSale, "i1", 10, "wh-a", ""))
	require.NoError(t, err, "con AllowNegativeStock la venta en descubierto es válida")
	assert.Equal(t, "-6", f.items.quantity(t, "i1"))
}

func TestSubmit_BorradorInvalido(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-a", 10))

	d := draft(entity.OperationSale, "i1", 4, "wh-a", "")
	d.FromWarehouseID = ""
	_, err := f.uc.Submit(context.Background(), "user-1", d)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmit_BodegaInexistente(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-a", 10))

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationSale, "i1", 4, "wh-fantasma", ""))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmit_NomenclaturaInexistente(t *testing.T) {
	f := newFixture(false)

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationSale, "i-nada", 4, "wh-a", ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestSubmit_NomenclaturaDeOtraBodega(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-b", 10))

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationSale, "i1", 4, "wh-a", ""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmit_RecepcionSumaExistencia(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-b", 3))

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationReceipt, "i1", 7, "", "wh-b"))
	require.NoError(t, err)
	assert.Equal(t, "10", f.items.quantity(t, "i1"))
}

func TestSubmit_TrasladoConPosicionExistente(t *testing.T) {
	f := newFixture(false,
		itemIn("i1", "wh-a", 10),
		itemIn("i2", "wh-b", 1), // mismo artículo en destino
	)

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationTransfer, "i1", 4, "wh-a", "wh-b"))
	require.NoError(t, err)
	assert.Equal(t, "6", f.items.quantity(t, "i1"))
	assert.Equal(t, "5", f.items.quantity(t, "i2"))
}

func TestSubmit_TrasladoCreaPosicionEnDestino(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-a", 10))

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationTransfer, "i1", 4, "wh-a", "wh-b"))
	require.NoError(t, err)
	assert.Equal(t, "6", f.items.quantity(t, "i1"))

	dest, err := f.items.FindByWarehouseAndArticle(context.Background(), "wh-b", "TOR-5")
	require.NoError(t, err)
	require.NotNil(t, dest, "el traslado debe crear la posición en destino")
	assert.Equal(t, "4", dest.Quantity.String())
	assert.Equal(t, "Tornillo 5mm", dest.Name, "la ficha se copia del origen")
	assert.Equal(t, "und", dest.Unit)
}

func TestSubmit_TrasladoSinStock_NoCreaNada(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-a", 2))

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationTransfer, "i1", 5, "wh-a", "wh-b"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	dest, _ := f.items.FindByWarehouseAndArticle(context.Background(), "wh-b", "TOR-5")
	assert.Nil(t, dest, "el rollback deshace la posición creada en destino")
	assert.Equal(t, "2", f.items.quantity(t, "i1"))
}

func TestSubmit_AjustePositivo(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-a", 3))

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationAdjustment, "i1", 5, "wh-a", ""))
	require.NoError(t, err)
	assert.Equal(t, "8", f.items.quantity(t, "i1"))
}

func TestSubmit_AjusteNegativo(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-a", 8))

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationAdjustment, "i1", -3, "wh-a", ""))
	require.NoError(t, err)
	assert.Equal(t, "5", f.items.quantity(t, "i1"))
}

func TestSubmit_AjusteNegativoSinStock_Rechaza(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-a", 2))

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationAdjustment, "i1", -5, "wh-a", ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Available: 2, Required: 5", "el requerido se reporta en valor absoluto")
}

func TestSubmit_AjusteSoloDestino(t *testing.T) {
	f := newFixture(false, itemIn("i1", "wh-b", 1))

	_, err := f.uc.Submit(context.Background(), "user-1", draft(entity.OperationAdjustment, "i1", 4, "", "wh-b"))
	require.NoError(t, err)
	assert.Equal(t, "5", f.items.quantity(t, "i1"))
}

// ---------------------------------------------------------------------------
// DraftFromRequest
// ---------------------------------------------------------------------------

func TestDraftFromRequest(t *testing.T) {
	q := &qty.Amount{Decimal: decimal.NewFromInt(7)}
	d := DraftFromRequest(dto.OperationDraftRequest{
		Type:            string(entity.OperationSale),
		NomenclatureID:  "i1",
		Quantity:        q,
		FromWarehouseID: "wh-a",
		Comment:         "venta mostrador",
	})
	assert.Equal(t, entity.OperationSale, d.Type)
	assert.True(t, d.QuantitySet)
	assert.Equal(t, "7", d.Quantity.String())
	assert.Equal(t, "venta mostrador", d.Comment)

	sinCantidad := DraftFromRequest(dto.OperationDraftRequest{Type: string(entity.OperationSale)})
	assert.False(t, sinCantidad.QuantitySet, "cantidad ausente no es cantidad cero")
}
