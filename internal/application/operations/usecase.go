package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/domain"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
	"github.com/tu-usuario/sklad-pro/internal/domain/stockops"
)

// SubmitUseCase aplica operaciones de stock de forma transaccional: valida el
// borrador con las reglas por tipo, bloquea las filas de nomenclatura
// (SELECT FOR UPDATE), ajusta existencias respetando la política de stock
// negativo de la bodega y registra la operación.
type SubmitUseCase struct {
	txRunner      TxRunner
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
}

// NewSubmitUseCase construye el caso de uso.
func NewSubmitUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
) *SubmitUseCase {
	return &SubmitUseCase{
		txRunner:      txRunner,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
	}
}

// DraftFromRequest convierte el DTO del cliente en un borrador del dominio.
func DraftFromRequest(in dto.OperationDraftRequest) stockops.Draft {
	d := stockops.Draft{
		Type:            entity.OperationType(in.Type),
		NomenclatureID:  in.NomenclatureID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Comment:         in.Comment,
		Metadata:        in.Metadata,
	}
	if in.Quantity != nil {
		d.Quantity = in.Quantity.Decimal
		d.QuantitySet = true
	}
	return d
}

// Submit valida el borrador y, si es enviable, lo aplica dentro de una
// transacción. Devuelve la operación registrada (eco al cliente).
func (uc *SubmitUseCase) Submit(ctx context.Context, userID string, draft stockops.Draft) (*entity.StockOperation, error) {
	res := stockops.Validate(draft)
	if !res.Submittable {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, res.Message)
	}

	// Validar que las bodegas referenciadas existan antes de abrir la tx.
	var fromWh, toWh *entity.Warehouse
	var err error
	if draft.FromWarehouseID != "" {
		fromWh, err = uc.warehouseRepo.GetByID(ctx, draft.FromWarehouseID)
		if err != nil || fromWh == nil {
			return nil, fmt.Errorf("%w: bodega de origen %s not found", domain.ErrNotFound, draft.FromWarehouseID)
		}
	}
	if draft.ToWarehouseID != "" {
		toWh, err = uc.warehouseRepo.GetByID(ctx, draft.ToWarehouseID)
		if err != nil || toWh == nil {
			return nil, fmt.Errorf("%w: bodega de destino %s not found", domain.ErrNotFound, draft.ToWarehouseID)
		}
	}

	now := time.Now()
	op := &entity.StockOperation{
		ID:              uuid.New().String(),
		Type:            draft.Type,
		NomenclatureID:  draft.NomenclatureID,
		Quantity:        draft.Quantity,
		FromWarehouseID: draft.FromWarehouseID,
		ToWarehouseID:   draft.ToWarehouseID,
		Comment:         draft.Comment,
		Metadata:        draft.Metadata,
		CreatedAt:       now,
		CreatedBy:       userID,
	}

	// Transacción: Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	err = uc.txRunner.Run(ctx, func(
		opRepo repository.OperationRepository,
		itemRepo repository.ItemRepository,
	) error {
		switch draft.Type {
		case entity.OperationTransfer:
			if err := uc.applyTransfer(ctx, itemRepo, draft, fromWh, now); err != nil {
				return err
			}
		case entity.OperationSale, entity.OperationDisposal:
			if err := uc.applyOutgoing(ctx, itemRepo, draft, fromWh, now); err != nil {
				return err
			}
		case entity.OperationReceipt, entity.OperationReturn:
			if err := uc.applyIncoming(ctx, itemRepo, draft, now); err != nil {
				return err
			}
		case entity.OperationAdjustment:
			if err := uc.applyAdjustment(ctx, itemRepo, draft, fromWh, toWh, now); err != nil {
				return err
			}
		}
		return opRepo.Create(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

// lockedItem bloquea la posición y verifica que pertenezca a la bodega esperada.
func lockedItem(ctx context.Context, itemRepo repository.ItemRepository, nomenclatureID, warehouseID string) (*entity.Item, error) {
	item, err := itemRepo.GetForUpdate(ctx, nomenclatureID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: nomenclatura %s not found", domain.ErrNotFound, nomenclatureID)
	}
	if warehouseID != "" && item.WarehouseID != warehouseID {
		return nil, fmt.Errorf("%w: la nomenclatura no pertenece a la bodega indicada", domain.ErrInvalidInput)
	}
	return item, nil
}

// insufficientStockError arma el rechazo con el formato Available/Required del
// contrato del cliente; ClassifySubmitError lo reconoce tal cual.
func insufficientStockError(available, required decimal.Decimal) error {
	return fmt.Errorf("%w: Insufficient stock. Available: %s, Required: %s",
		domain.ErrInsufficientStock, available, required)
}

// applyOutgoing resta existencias en la bodega de origen (SALE, DISPOSAL).
func (uc *SubmitUseCase) applyOutgoing(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	draft stockops.Draft,
	fromWh *entity.Warehouse,
	now time.Time,
) error {
	item, err := lockedItem(ctx, itemRepo, draft.NomenclatureID, draft.FromWarehouseID)
	if err != nil {
		return err
	}
	newQty := item.Quantity.Sub(draft.Quantity)
	if newQty.LessThan(decimal.Zero) && !fromWh.Settings.AllowNegativeStock {
		return insufficientStockError(item.Quantity, draft.Quantity)
	}
	item.Quantity = newQty
	item.UpdatedAt = now
	return itemRepo.Update(ctx, item)
}

// applyIncoming suma existencias en la bodega de destino (RECEIPT, RETURN).
func (uc *SubmitUseCase) applyIncoming(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	draft stockops.Draft,
	now time.Time,
) error {
	item, err := lockedItem(ctx, itemRepo, draft.NomenclatureID, draft.ToWarehouseID)
	if err != nil {
		return err
	}
	item.Quantity = item.Quantity.Add(draft.Quantity)
	item.UpdatedAt = now
	return itemRepo.Update(ctx, item)
}

// applyTransfer resta en origen y suma en la posición equivalente del destino
// (misma transacción). Si el destino no tiene la posición, se crea con la
// misma ficha y existencia cero.
func (uc *SubmitUseCase) applyTransfer(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	draft stockops.Draft,
	fromWh *entity.Warehouse,
	now time.Time,
) error {
	origin, err := lockedItem(ctx, itemRepo, draft.NomenclatureID, draft.FromWarehouseID)
	if err != nil {
		return err
	}
	newQty := origin.Quantity.Sub(draft.Quantity)
	if newQty.LessThan(decimal.Zero) && !fromWh.Settings.AllowNegativeStock {
		return insufficientStockError(origin.Quantity, draft.Quantity)
	}

	dest, err := itemRepo.FindByWarehouseAndArticle(ctx, draft.ToWarehouseID, origin.Article)
	if err != nil {
		return err
	}
	if dest == nil {
		dest = &entity.Item{
			ID:          uuid.New().String(),
			WarehouseID: draft.ToWarehouseID,
			Name:        origin.Name,
			Article:     origin.Article,
			Barcode:     origin.Barcode,
			Quantity:    decimal.Zero,
			Unit:        origin.Unit,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := itemRepo.Create(ctx, dest); err != nil {
			return err
		}
	}

	origin.Quantity = newQty
	origin.UpdatedAt = now
	if err := itemRepo.Update(ctx, origin); err != nil {
		return err
	}
	dest.Quantity = dest.Quantity.Add(draft.Quantity)
	dest.UpdatedAt = now
	return itemRepo.Update(ctx, dest)
}

// applyAdjustment aplica la cantidad con signo sobre la bodega indicada
// (origen si está, si no destino). Negativo disminuye y respeta la política
// de stock negativo.
func (uc *SubmitUseCase) applyAdjustment(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	draft stockops.Draft,
	fromWh, toWh *entity.Warehouse,
	now time.Time,
) error {
	warehouseID := draft.FromWarehouseID
	wh := fromWh
	if warehouseID == "" {
		warehouseID = draft.ToWarehouseID
		wh = toWh
	}
	item, err := lockedItem(ctx, itemRepo, draft.NomenclatureID, warehouseID)
	if err != nil {
		return err
	}
	newQty := item.Quantity.Add(draft.Quantity)
	if newQty.LessThan(decimal.Zero) && !wh.Settings.AllowNegativeStock {
		return insufficientStockError(item.Quantity, draft.Quantity.Neg())
	}
	item.Quantity = newQty
	item.UpdatedAt = now
	return itemRepo.Update(ctx, item)
}
