package operations

import (
	"context"

	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
)

// HistoryUseCase consulta el historial de operaciones registradas.
type HistoryUseCase struct {
	opRepo repository.OperationRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(opRepo repository.OperationRepository) *HistoryUseCase {
	return &HistoryUseCase{opRepo: opRepo}
}

// ByWarehouse lista operaciones que tocan la bodega (origen o destino).
func (uc *HistoryUseCase) ByWarehouse(ctx context.Context, warehouseID string, limit, offset int) (*dto.OperationListResponse, error) {
	list, err := uc.opRepo.ListByWarehouse(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toOperationList(list, limit, offset), nil
}

// ByNomenclature lista el historial de una posición.
func (uc *HistoryUseCase) ByNomenclature(ctx context.Context, nomenclatureID string, limit, offset int) (*dto.OperationListResponse, error) {
	list, err := uc.opRepo.ListByNomenclature(ctx, nomenclatureID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toOperationList(list, limit, offset), nil
}

// ToResponse convierte una operación registrada en su eco al cliente.
func ToResponse(op *entity.StockOperation) *dto.OperationResponse {
	if op == nil {
		return nil
	}
	return &dto.OperationResponse{
		ID:              op.ID,
		Type:            string(op.Type),
		NomenclatureID:  op.NomenclatureID,
		Quantity:        op.Quantity,
		FromWarehouseID: op.FromWarehouseID,
		ToWarehouseID:   op.ToWarehouseID,
		Comment:         op.Comment,
		Metadata:        op.Metadata,
		CreatedAt:       op.CreatedAt,
		CreatedBy:       op.CreatedBy,
	}
}

func toOperationList(list []*entity.StockOperation, limit, offset int) *dto.OperationListResponse {
	items := make([]dto.OperationResponse, 0, len(list))
	for _, op := range list {
		items = append(items, *ToResponse(op))
	}
	return &dto.OperationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
