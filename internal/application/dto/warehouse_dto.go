package dto

import "time"

// WarehouseSettingsDTO políticas operativas de la bodega.
type WarehouseSettingsDTO struct {
	AllowNegativeStock bool   `json:"allow_negative_stock"`
	RequireApproval    bool   `json:"require_approval"`
	BarcodeType        string `json:"barcode_type" validate:"omitempty,oneof=ean13 code128 qr"`
}

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name          string                `json:"name" validate:"required,min=1,max=200"`
	Code          string                `json:"code" validate:"omitempty,max=30"`
	Address       string                `json:"address" validate:"omitempty,max=500"`
	ContactPerson string                `json:"contact_person" validate:"omitempty,max=200"`
	Settings      *WarehouseSettingsDTO `json:"settings"`
}

// UpdateWarehouseRequest entrada para actualizar (campos opcionales).
type UpdateWarehouseRequest struct {
	Name          *string               `json:"name" validate:"omitempty,min=1,max=200"`
	Code          *string               `json:"code" validate:"omitempty,max=30"`
	Address       *string               `json:"address" validate:"omitempty,max=500"`
	ContactPerson *string               `json:"contact_person" validate:"omitempty,max=200"`
	Settings      *WarehouseSettingsDTO `json:"settings"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID             string               `json:"id"`
	OrganizationID string               `json:"organization_id"`
	Name           string               `json:"name"`
	Code           string               `json:"code,omitempty"`
	Address        string               `json:"address,omitempty"`
	ContactPerson  string               `json:"contact_person,omitempty"`
	Settings       WarehouseSettingsDTO `json:"settings"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// WarehouseListResponse listado de bodegas de la organización.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Total int                 `json:"total"`
}
