package repository

import (
	"context"

	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para la nomenclatura (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo válido dentro de
	// una transacción del TxRunner.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// FindByWarehouseAndArticle localiza la posición equivalente en otra bodega
	// (traslados). nil si no existe.
	FindByWarehouseAndArticle(ctx context.Context, warehouseID, article string) (*entity.Item, error)
	FindByBarcode(ctx context.Context, warehouseID, barcode string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Item, error)
	Delete(ctx context.Context, id string) error
}
