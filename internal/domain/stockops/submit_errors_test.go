package stockops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySubmitError_StockInsuficiente(t *testing.T) {
	msg := ClassifySubmitError(`{"detail":"Insufficient stock. Available: 4, Required: 10"}`)
	assert.Equal(t, "Stock insuficiente. Disponible: 4, Requerido: 10", msg)
}

func TestClassifySubmitError_StockInsuficienteDecimal(t *testing.T) {
	msg := ClassifySubmitError("Insufficient stock. Available: 2.5, Required: 7.25")
	assert.Contains(t, msg, "Disponible: 2.5")
	assert.Contains(t, msg, "Requerido: 7.25")
}

func TestClassifySubmitError_StockInsuficienteSinCantidades_CaeAlCrudo(t *testing.T) {
	// Menciona stock insuficiente pero sin el patrón Available/Required:
	// la primera regla no aplica y se entrega el mensaje crudo.
	msg := ClassifySubmitError(`{"detail":"Insufficient stock for item X"}`)
	assert.Equal(t, "Insufficient stock for item X", msg)
}

func TestClassifySubmitError_NoEncontrado(t *testing.T) {
	msg := ClassifySubmitError(`{"detail":"Nomenclature abc-123 not found"}`)
	assert.Equal(t, "nomenclatura o bodega no encontrada", msg)

	// Insensible a mayúsculas.
	msg = ClassifySubmitError("Warehouse NOT FOUND")
	assert.Equal(t, "nomenclatura o bodega no encontrada", msg)
}

func TestClassifySubmitError_MensajeCrudo(t *testing.T) {
	assert.Equal(t, "algo salió mal", ClassifySubmitError(`{"message":"algo salió mal"}`))
	assert.Equal(t, "texto plano sin JSON", ClassifySubmitError("texto plano sin JSON"))
}

func TestClassifySubmitError_PayloadVacio_FallbackGenerico(t *testing.T) {
	assert.Equal(t, "error al crear la operación", ClassifySubmitError(""))
	assert.Equal(t, "error al crear la operación", ClassifySubmitError("   "))
}

func TestClassifySubmitError_JSONSinCampos_DevuelveElTexto(t *testing.T) {
	// JSON válido pero sin detail/message: se devuelve el payload tal cual.
	assert.Equal(t, `{"code":500}`, ClassifySubmitError(`{"code":500}`))
}
