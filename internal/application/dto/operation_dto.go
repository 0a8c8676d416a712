package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sklad-pro/internal/domain/qty"
)

// OperationDraftRequest borrador de operación tal como lo edita el cliente.
// Quantity es puntero para distinguir "aún sin indicar" de "cero escrito";
// qty.Amount coerciona valores laxos a 0.
type OperationDraftRequest struct {
	Type            string            `json:"operation_type"`
	NomenclatureID  string            `json:"nomenclature_id"`
	Quantity        *qty.Amount       `json:"quantity"`
	FromWarehouseID string            `json:"from_sklad_id"`
	ToWarehouseID   string            `json:"to_sklad_id"`
	Comment         string            `json:"comment"`
	Metadata        map[string]string `json:"operation_metadata"`
}

// ValidateOperationResponse veredicto de validación local de un borrador.
type ValidateOperationResponse struct {
	Submittable    bool     `json:"submittable"`
	VisibleFields  []string `json:"visible_fields"`
	RequiredFields []string `json:"required_fields"`
	ErrorMessage   string   `json:"error_message,omitempty"`
}

// OperationResponse operación registrada (eco del servidor).
type OperationResponse struct {
	ID              string            `json:"id"`
	Type            string            `json:"operation_type"`
	NomenclatureID  string            `json:"nomenclature_id"`
	Quantity        decimal.Decimal   `json:"quantity"`
	FromWarehouseID string            `json:"from_sklad_id,omitempty"`
	ToWarehouseID   string            `json:"to_sklad_id,omitempty"`
	Comment         string            `json:"comment,omitempty"`
	Metadata        map[string]string `json:"operation_metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	CreatedBy       string            `json:"created_by"`
}

// OperationListResponse historial de operaciones.
type OperationListResponse struct {
	Items []OperationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
