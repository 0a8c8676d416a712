package repository

import (
	"context"

	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
)

// OperationRepository define el puerto de persistencia para el registro de
// operaciones de stock (DIP).
type OperationRepository interface {
	Create(ctx context.Context, op *entity.StockOperation) error
	GetByID(ctx context.Context, id string) (*entity.StockOperation, error)
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockOperation, error)
	ListByNomenclature(ctx context.Context, nomenclatureID string, limit, offset int) ([]*entity.StockOperation, error)
}
