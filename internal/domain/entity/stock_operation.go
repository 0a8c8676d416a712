package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType tipo de movimiento de stock (enumeración cerrada).
type OperationType string

// Tipos de operación de stock.
const (
	OperationTransfer   OperationType = "TRANSFER"   // entre bodegas
	OperationSale       OperationType = "SALE"       // venta
	OperationDisposal   OperationType = "DISPOSAL"   // baja / merma
	OperationReceipt    OperationType = "RECEIPT"    // recepción
	OperationReturn     OperationType = "RETURN"     // devolución
	OperationAdjustment OperationType = "ADJUSTMENT" // ajuste con signo
)

// OperationTypes lista cerrada de tipos válidos, en orden de presentación.
var OperationTypes = []OperationType{
	OperationTransfer, OperationSale, OperationDisposal,
	OperationReceipt, OperationReturn, OperationAdjustment,
}

// Valid reporta si el tipo pertenece a la enumeración cerrada.
func (t OperationType) Valid() bool {
	for _, v := range OperationTypes {
		if t == v {
			return true
		}
	}
	return false
}

// StockOperation representa un movimiento de stock registrado.
// Quantity es positiva para todos los tipos salvo ADJUSTMENT, donde el signo
// indica aumento (+) o disminución (-).
type StockOperation struct {
	ID              string
	Type            OperationType
	NomenclatureID  string
	Quantity        decimal.Decimal
	FromWarehouseID string // vacío = no aplica para el tipo
	ToWarehouseID   string // vacío = no aplica para el tipo
	Comment         string
	Metadata        map[string]string // claves libres: reason, document_number...
	CreatedAt       time.Time
	CreatedBy       string // UserID
}
