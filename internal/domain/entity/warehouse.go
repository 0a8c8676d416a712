package entity

import "time"

// Tipos de código de barras soportados por bodega.
const (
	BarcodeTypeEAN13   = "ean13"
	BarcodeTypeCode128 = "code128"
	BarcodeTypeQR      = "qr"
)

// WarehouseSettings políticas operativas de la bodega.
type WarehouseSettings struct {
	AllowNegativeStock bool   // permitir existencias negativas al aplicar salidas
	RequireApproval    bool   // operaciones requieren aprobación antes de aplicarse
	BarcodeType        string // ean13, code128, qr
}

// Warehouse representa una bodega (sklad) de una organización.
type Warehouse struct {
	ID             string
	OrganizationID string
	Name           string
	Code           string // código corto único por organización
	Address        string
	ContactPerson  string
	Settings       WarehouseSettings
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
