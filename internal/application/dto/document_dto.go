package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sklad-pro/internal/domain/qty"
)

// PackagingDTO empaque opcional de una línea.
type PackagingDTO struct {
	Name      string     `json:"name" validate:"required,max=100"`
	BaseUnits qty.Amount `json:"base_units"`
	Barcode   string     `json:"barcode" validate:"omitempty,max=100"`
}

// DocumentItemRequest línea de documento en creación/edición.
// QuantityActual solo aplica a documentos inventory (conteo físico).
type DocumentItemRequest struct {
	NomenclatureID     string        `json:"nomenclature_id" validate:"required,uuid"`
	QuantityDocumental qty.Amount    `json:"quantity_documental"`
	QuantityActual     *qty.Amount   `json:"quantity_actual"`
	Packaging          *PackagingDTO `json:"packaging"`
}

// CreateDocumentRequest entrada para crear un documento de bodega.
type CreateDocumentRequest struct {
	WarehouseIDs []string              `json:"sklad_ids" validate:"required,min=1,dive,uuid"`
	Type         string                `json:"doc_type" validate:"required,oneof=incoming outgoing inventory"`
	Number       string                `json:"number" validate:"omitempty,max=50"`
	Description  string                `json:"description" validate:"omitempty,max=1000"`
	AddressFrom  string                `json:"address_from" validate:"omitempty,max=500"`
	AddressTo    string                `json:"address_to" validate:"omitempty,max=500"`
	Items        []DocumentItemRequest `json:"items" validate:"dive"`
}

// UpdateDocumentRequest entrada para actualizar cabecera (campos opcionales).
type UpdateDocumentRequest struct {
	Number      *string `json:"number" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	AddressFrom *string `json:"address_from" validate:"omitempty,max=500"`
	AddressTo   *string `json:"address_to" validate:"omitempty,max=500"`
}

// DocumentItemResponse línea de documento en respuestas.
type DocumentItemResponse struct {
	ID                 string           `json:"id"`
	NomenclatureID     string           `json:"nomenclature_id"`
	QuantityDocumental decimal.Decimal  `json:"quantity_documental"`
	QuantityActual     *decimal.Decimal `json:"quantity_actual,omitempty"`
	Packaging          *PackagingDTO    `json:"packaging,omitempty"`
}

// DocumentResponse salida de un documento.
type DocumentResponse struct {
	ID           string                 `json:"id"`
	WarehouseIDs []string               `json:"sklad_ids"`
	Type         string                 `json:"doc_type"`
	Number       string                 `json:"number,omitempty"`
	Description  string                 `json:"description,omitempty"`
	AddressFrom  string                 `json:"address_from,omitempty"`
	AddressTo    string                 `json:"address_to,omitempty"`
	Items        []DocumentItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// DocumentListResponse listado de documentos de una bodega.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Total int                `json:"total"`
}
