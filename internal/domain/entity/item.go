package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa una posición de nomenclatura (SKU) de una bodega.
// Quantity es la existencia actual autoritativa: las estadísticas la suman tal cual,
// nunca la recalculan desde el historial de operaciones.
type Item struct {
	ID          string
	WarehouseID string
	Name        string
	Article     string // código SKU
	Barcode     string // opcional
	Quantity    decimal.Decimal
	Unit        string // und, kg, lt, caja...
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
