package stockops

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
)

func draftFor(t entity.OperationType) Draft {
	return Draft{
		Type:            t,
		NomenclatureID:  "nom-1",
		Quantity:        decimal.NewFromInt(5),
		QuantitySet:     true,
		FromWarehouseID: "wh-origen",
		ToWarehouseID:   "wh-destino",
	}
}

func TestRules_TablaPorTipo(t *testing.T) {
	cases := []struct {
		tipo     entity.OperationType
		visible  EndpointSet
		required EndpointSet
		any      bool
		zero     bool
	}{
		{entity.OperationTransfer, EndpointSet{From: true, To: true}, EndpointSet{From: true, To: true}, false, false},
		{entity.OperationSale, EndpointSet{From: true}, EndpointSet{From: true}, false, false},
		{entity.OperationDisposal, EndpointSet{From: true}, EndpointSet{From: true}, false, false},
		{entity.OperationReceipt, EndpointSet{To: true}, EndpointSet{To: true}, false, false},
		{entity.OperationReturn, EndpointSet{To: true}, EndpointSet{To: true}, false, false},
		{entity.OperationAdjustment, EndpointSet{From: true, To: true}, EndpointSet{}, true, true},
	}
	for _, tc := range cases {
		r := Rules(tc.tipo)
		assert.Equal(t, tc.visible, r.Visible, "visibles de %s", tc.tipo)
		assert.Equal(t, tc.required, r.Required, "requeridos de %s", tc.tipo)
		assert.Equal(t, tc.any, r.RequireAny, "RequireAny de %s", tc.tipo)
		assert.Equal(t, tc.zero, r.AllowZero, "AllowZero de %s", tc.tipo)
	}
}

func TestValidate_TodosLosTiposConCamposCompletos_SonEnviables(t *testing.T) {
	for _, tipo := range []entity.OperationType{
		entity.OperationTransfer,
		entity.OperationSale,
		entity.OperationDisposal,
		entity.OperationReceipt,
		entity.OperationReturn,
		entity.OperationAdjustment,
	} {
		res := Validate(draftFor(tipo))
		assert.True(t, res.Submittable, "tipo %s con campos completos debe ser enviable: %s", tipo, res.Message)
	}
}

func TestValidate_TransferCompleta_EsEnviable(t *testing.T) {
	res := Validate(draftFor(entity.OperationTransfer))
	assert.True(t, res.Submittable, "una transferencia completa debe ser enviable")
	assert.Empty(t, res.Message)
}

func TestValidate_TransferMismaBodega_NoEnviable(t *testing.T) {
	d := draftFor(entity.OperationTransfer)
	d.ToWarehouseID = d.FromWarehouseID
	res := Validate(d)
	assert.False(t, res.Submittable, "origen y destino iguales no deben ser enviables")
	assert.Contains(t, res.Message, "no pueden ser la misma")
}

func TestValidate_SinTipo_NoEnviable(t *testing.T) {
	res := Validate(Draft{})
	assert.False(t, res.Submittable)
	assert.Contains(t, res.Message, "tipo de operación")
	assert.False(t, res.Visible.From, "sin tipo no hay campos visibles")
	assert.False(t, res.Visible.To)
}

func TestValidate_TipoDesconocido_NoEnviable(t *testing.T) {
	d := draftFor("fusion")
	res := Validate(d)
	assert.False(t, res.Submittable)
}

func TestValidate_CantidadSinIndicar_NoEnviable(t *testing.T) {
	d := draftFor(entity.OperationSale)
	d.QuantitySet = false
	res := Validate(d)
	assert.False(t, res.Submittable)
	assert.Contains(t, res.Message, "cantidad")
}

func TestValidate_CantidadCero_NoEnviableSalvoNunca(t *testing.T) {
	d := draftFor(entity.OperationSale)
	d.Quantity = decimal.Zero
	res := Validate(d)
	assert.False(t, res.Submittable, "cantidad cero no es válida en una venta")
}

func TestValidate_CantidadNegativa_SoloAjuste(t *testing.T) {
	// En SALE una cantidad negativa es inválida.
	venta := draftFor(entity.OperationSale)
	venta.Quantity = decimal.NewFromInt(-3)
	assert.False(t, Validate(venta).Submittable)

	// En ADJUSTMENT la cantidad lleva signo; solo se prohíbe el cero.
	ajuste := draftFor(entity.OperationAdjustment)
	ajuste.Quantity = decimal.NewFromInt(-3)
	ajuste.ToWarehouseID = ""
	assert.True(t, Validate(ajuste).Submittable, "ajuste negativo con bodega debe ser enviable")

	ajuste.Quantity = decimal.Zero
	res := Validate(ajuste)
	assert.False(t, res.Submittable)
	assert.Contains(t, res.Message, "cero en un ajuste")
}

func TestValidate_AjusteSinBodegas_NoEnviable(t *testing.T) {
	d := draftFor(entity.OperationAdjustment)
	d.FromWarehouseID = ""
	d.ToWarehouseID = ""
	res := Validate(d)
	assert.False(t, res.Submittable)
	assert.Contains(t, res.Message, "al menos una bodega")
}

func TestValidate_VentaSinOrigen_NoEnviable(t *testing.T) {
	d := draftFor(entity.OperationSale)
	d.FromWarehouseID = ""
	res := Validate(d)
	assert.False(t, res.Submittable)
	assert.Contains(t, res.Message, "origen")
}

func TestValidate_RecepcionSinDestino_NoEnviable(t *testing.T) {
	d := draftFor(entity.OperationReceipt)
	d.FromWarehouseID = "" // receipt ni siquiera lo muestra
	d.ToWarehouseID = ""
	res := Validate(d)
	assert.False(t, res.Submittable)
	assert.Contains(t, res.Message, "destino")
}

func TestApplyTypeChange_LimpiaEndpointsOcultos(t *testing.T) {
	d := draftFor(entity.OperationTransfer)

	// TRANSFER -> SALE: el destino deja de ser visible y se limpia.
	venta := ApplyTypeChange(d, entity.OperationSale)
	assert.Equal(t, entity.OperationSale, venta.Type)
	assert.Equal(t, "wh-origen", venta.FromWarehouseID, "el origen sigue visible y se conserva")
	assert.Empty(t, venta.ToWarehouseID, "el destino oculto debe limpiarse")

	// SALE -> RECEIPT: ahora el origen es el oculto.
	recepcion := ApplyTypeChange(venta, entity.OperationReceipt)
	assert.Empty(t, recepcion.FromWarehouseID)
	assert.Empty(t, recepcion.ToWarehouseID, "el destino se limpió antes y no reaparece")
}

func TestApplyTypeChange_ConservaCamposNoAfectados(t *testing.T) {
	d := draftFor(entity.OperationSale)
	d.Comment = "lote vencido"
	out := ApplyTypeChange(d, entity.OperationDisposal)
	assert.Equal(t, "lote vencido", out.Comment)
	assert.Equal(t, d.NomenclatureID, out.NomenclatureID)
	assert.True(t, out.Quantity.Equal(d.Quantity))
}

func TestApplyTypeChange_HaciaAjuste_ConservaAmbos(t *testing.T) {
	d := draftFor(entity.OperationTransfer)
	out := ApplyTypeChange(d, entity.OperationAdjustment)
	assert.Equal(t, "wh-origen", out.FromWarehouseID)
	assert.Equal(t, "wh-destino", out.ToWarehouseID)
}
