package repository

import (
	"context"

	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// Lleva context porque el agregador de estadísticas lo consulta en fan-out.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Warehouse, error)
	Delete(ctx context.Context, id string) error
}
