package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de bodega.
const (
	DocTypeIncoming  = "incoming"
	DocTypeOutgoing  = "outgoing"
	DocTypeInventory = "inventory"
)

// Packaging descriptor de empaque de una línea de documento (opcional).
type Packaging struct {
	Name      string
	BaseUnits decimal.Decimal // unidades base por empaque
	Barcode   string
}

// DocumentItem línea de un documento de bodega.
// QuantityDocumental es la cantidad declarada (>= 0); QuantityActual solo se
// llena durante conteos físicos (documentos de inventario).
type DocumentItem struct {
	ID                 string
	DocumentID         string
	NomenclatureID     string
	QuantityDocumental decimal.Decimal
	QuantityActual     *decimal.Decimal
	Packaging          *Packaging
}

// Document documento de bodega: entrada, salida o inventario.
// Un documento puede referenciar varias bodegas (p.ej. traslado documentado).
// Solo los documentos outgoing aportan al total vendido en las estadísticas.
type Document struct {
	ID           string
	WarehouseIDs []string
	Type         string // incoming, outgoing, inventory
	Number       string
	Description  string
	AddressFrom  string
	AddressTo    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string
}
