package operations

import (
	"context"

	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad al aplicar operaciones
// de stock sobre la nomenclatura.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		opRepo repository.OperationRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
