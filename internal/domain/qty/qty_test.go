package qty

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"número plano", `12.5`, "12.5"},
		{"número entre comillas", `"7"`, "7"},
		{"decimal con comillas", `"3.25"`, "3.25"},
		{"null", `null`, "0"},
		{"string vacío", `""`, "0"},
		{"basura no numérica", `"abc"`, "0"},
		{"negativo se conserva", `-4`, "-4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, a.UnmarshalJSON([]byte(tc.in)), "la coerción nunca debe fallar")
			assert.Equal(t, tc.want, a.Decimal.String())
		})
	}
}

func TestAmount_DentroDeStruct(t *testing.T) {
	var payload struct {
		Qty Amount `json:"qty"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"qty":"15"}`), &payload))
	assert.Equal(t, "15", payload.Qty.String())

	require.NoError(t, json.Unmarshal([]byte(`{"qty":null}`), &payload))
	assert.True(t, payload.Qty.IsZero())
}

func TestAmount_MarshalJSON_NumeroPlano(t *testing.T) {
	a := Amount{decimal.RequireFromString("9.75")}
	out, err := a.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "9.75", string(out), "debe serializar como número, no como string")
}

func TestCoerceValue(t *testing.T) {
	assert.True(t, CoerceValue(nil).IsZero())
	assert.Equal(t, "2.5", CoerceValue(2.5).String())
	assert.Equal(t, "8", CoerceValue(int64(8)).String())
	assert.Equal(t, "6", CoerceValue(" 6 ").String())
	assert.True(t, CoerceValue("no-numérico").IsZero())
	assert.Equal(t, "11", CoerceValue(json.Number("11")).String())
	assert.True(t, CoerceValue([]string{"x"}).IsZero(), "tipos no soportados coercionan a 0")
}

func TestNonNegative(t *testing.T) {
	assert.Equal(t, "5", NonNegative(decimal.NewFromInt(5)).String())
	assert.True(t, NonNegative(decimal.NewFromInt(-3)).IsZero(), "los negativos se recortan a 0")
	assert.True(t, NonNegative(decimal.Zero).IsZero())
}
