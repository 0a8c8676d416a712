package repository

import (
	"context"

	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para documentos de
// bodega y sus líneas (DIP).
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document, items []*entity.DocumentItem) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	Update(ctx context.Context, doc *entity.Document) error
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Document, error)
	// ListItems devuelve las líneas de un documento; puede fallar de forma
	// aislada y el agregador lo tolera (contribución cero).
	ListItems(ctx context.Context, documentID string) ([]*entity.DocumentItem, error)
	ReplaceItems(ctx context.Context, documentID string, items []*entity.DocumentItem) error
	Delete(ctx context.Context, id string) error
}
