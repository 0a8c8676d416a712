// Package stockops implementa las reglas de negocio de las operaciones de
// stock: qué campos de bodega aplican a cada tipo, cuándo un borrador es
// enviable y cómo clasificar los rechazos al aplicar la operación.
package stockops

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
)

// Endpoint campo de bodega de una operación.
type Endpoint string

// Endpoints de una operación.
const (
	EndpointFrom Endpoint = "from"
	EndpointTo   Endpoint = "to"
)

// EndpointSet subconjunto de {from, to}.
type EndpointSet struct {
	From bool
	To   bool
}

// Has reporta si el endpoint pertenece al conjunto.
func (s EndpointSet) Has(e Endpoint) bool {
	switch e {
	case EndpointFrom:
		return s.From
	case EndpointTo:
		return s.To
	}
	return false
}

// FieldRules reglas de campos de bodega para un tipo de operación.
type FieldRules struct {
	Visible    EndpointSet // campos que el formulario muestra
	Required   EndpointSet // campos obligatorios individualmente
	RequireAny bool        // basta con uno de from/to (ADJUSTMENT)
	AllowZero  bool        // cantidad con signo, solo se prohíbe el cero (ADJUSTMENT)
}

// Rules tabla cerrada tipo -> reglas de campos. Única fuente de verdad: los
// formularios y el caso de uso de envío consultan esta función en vez de
// repetir condicionales por tipo.
func Rules(t entity.OperationType) FieldRules {
	switch t {
	case entity.OperationTransfer:
		return FieldRules{
			Visible:  EndpointSet{From: true, To: true},
			Required: EndpointSet{From: true, To: true},
		}
	case entity.OperationSale, entity.OperationDisposal:
		return FieldRules{
			Visible:  EndpointSet{From: true},
			Required: EndpointSet{From: true},
		}
	case entity.OperationReceipt, entity.OperationReturn:
		return FieldRules{
			Visible:  EndpointSet{To: true},
			Required: EndpointSet{To: true},
		}
	case entity.OperationAdjustment:
		return FieldRules{
			Visible:    EndpointSet{From: true, To: true},
			RequireAny: true,
			AllowZero:  true,
		}
	}
	return FieldRules{}
}

// Draft borrador de operación, posiblemente incompleto mientras se edita.
// QuantitySet distingue "cantidad 0 escrita" de "cantidad aún no indicada".
type Draft struct {
	Type            entity.OperationType
	NomenclatureID  string
	Quantity        decimal.Decimal
	QuantitySet     bool
	FromWarehouseID string
	ToWarehouseID   string
	Comment         string
	Metadata        map[string]string
}

// Result veredicto de validación de un borrador. Nunca es un error de Go:
// la validación local es un chequeo puro que se reevalúa en cada cambio.
type Result struct {
	Submittable bool
	Visible     EndpointSet
	Required    EndpointSet
	Message     string // vacío cuando Submittable
}

// Validate decide si el borrador es enviable y qué campos de bodega aplican.
// Puro y síncrono; no toca red ni estado.
func Validate(d Draft) Result {
	if d.Type == "" {
		return Result{Message: "seleccione el tipo de operación"}
	}
	if !d.Type.Valid() {
		return Result{Message: "tipo de operación desconocido"}
	}
	rules := Rules(d.Type)
	res := Result{Visible: rules.Visible, Required: rules.Required}

	if d.NomenclatureID == "" {
		res.Message = "seleccione la nomenclatura"
		return res
	}
	if !d.QuantitySet {
		res.Message = "indique la cantidad"
		return res
	}
	if rules.AllowZero {
		if d.Quantity.IsZero() {
			res.Message = "la cantidad no puede ser cero en un ajuste"
			return res
		}
	} else if !d.Quantity.GreaterThan(decimal.Zero) {
		res.Message = "la cantidad debe ser mayor que cero"
		return res
	}

	if rules.RequireAny {
		if d.FromWarehouseID == "" && d.ToWarehouseID == "" {
			res.Message = "indique al menos una bodega (origen o destino)"
			return res
		}
	} else {
		if rules.Required.From && d.FromWarehouseID == "" {
			res.Message = "seleccione la bodega de origen"
			return res
		}
		if rules.Required.To && d.ToWarehouseID == "" {
			res.Message = "seleccione la bodega de destino"
			return res
		}
	}

	if d.Type == entity.OperationTransfer && d.FromWarehouseID == d.ToWarehouseID {
		res.Message = "la bodega de origen y la de destino no pueden ser la misma"
		return res
	}

	res.Submittable = true
	return res
}

// ApplyTypeChange cambia el tipo del borrador limpiando los endpoints que
// dejan de ser visibles para el nuevo tipo. Un valor ya elegido se conserva
// solo si su campo sigue visible; así nunca se envía un valor de un campo
// oculto del formulario.
func ApplyTypeChange(d Draft, newType entity.OperationType) Draft {
	out := d
	out.Type = newType
	rules := Rules(newType)
	if !rules.Visible.From {
		out.FromWarehouseID = ""
	}
	if !rules.Visible.To {
		out.ToWarehouseID = ""
	}
	return out
}
