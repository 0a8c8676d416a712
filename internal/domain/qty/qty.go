// Package qty centraliza la normalización numérica de cantidades que llegan
// en JSON laxo desde clientes o servicios externos. Toda frontera de ingestión
// debe pasar por aquí: la política de coerción vive en un solo lugar.
package qty

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount decimal tolerante a JSON laxo: número, número entre comillas, null o
// basura no numérica. Lo no parseable coerciona a 0 en vez de fallar, para que
// una línea corrupta no tumbe la deserialización completa.
type Amount struct {
	decimal.Decimal
}

// UnmarshalJSON implementa la coerción: null y no-numéricos -> 0.
func (a *Amount) UnmarshalJSON(data []byte) error {
	a.Decimal = Coerce(data)
	return nil
}

// MarshalJSON serializa como número JSON plano.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Coerce convierte bytes JSON crudos a decimal; retorna 0 ante null, strings
// no numéricos o cualquier otro valor no parseable.
func Coerce(data []byte) decimal.Decimal {
	s := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if s == "" || s == "null" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CoerceValue aplica la misma política sobre un valor ya deserializado
// (interface{} de un json.Unmarshal genérico).
func CoerceValue(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// NonNegative recorta negativos a 0 (invariante quantity_documental >= 0).
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}
