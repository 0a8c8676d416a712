package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sklad-pro/internal/domain/qty"
)

// CreateItemRequest entrada para crear una posición de nomenclatura.
// Quantity usa qty.Amount: el cliente puede mandar número, string o null.
type CreateItemRequest struct {
	WarehouseID string     `json:"warehouse_id" validate:"required,uuid"`
	Name        string     `json:"name" validate:"required,min=1,max=300"`
	Article     string     `json:"article" validate:"required,min=1,max=100"`
	Barcode     string     `json:"barcode" validate:"omitempty,max=100"`
	Quantity    qty.Amount `json:"quantity"`
	Unit        string     `json:"unit" validate:"omitempty,max=20"`
}

// UpdateItemRequest entrada para actualizar (campos opcionales).
type UpdateItemRequest struct {
	Name     *string     `json:"name" validate:"omitempty,min=1,max=300"`
	Article  *string     `json:"article" validate:"omitempty,min=1,max=100"`
	Barcode  *string     `json:"barcode" validate:"omitempty,max=100"`
	Quantity *qty.Amount `json:"quantity"`
	Unit     *string     `json:"unit" validate:"omitempty,max=20"`
}

// ItemResponse salida de una posición de nomenclatura.
type ItemResponse struct {
	ID          string          `json:"id"`
	WarehouseID string          `json:"warehouse_id"`
	Name        string          `json:"name"`
	Article     string          `json:"article"`
	Barcode     string          `json:"barcode,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemListResponse listado de nomenclatura de una bodega.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}
