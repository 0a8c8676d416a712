package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo implementación de OperationRepository sobre PostgreSQL.
// Metadata va en jsonb (claves libres del cliente).
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador de operaciones. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

const operationColumns = `id, operation_type, nomenclature_id, quantity, from_sklad_id, to_sklad_id, comment, metadata, created_at, created_by`

// Create persiste una operación registrada.
func (r *OperationRepo) Create(ctx context.Context, op *entity.StockOperation) error {
	query := `
		INSERT INTO stock_operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		op.ID, string(op.Type), op.NomenclatureID, op.Quantity,
		op.FromWarehouseID, op.ToWarehouseID, op.Comment, op.Metadata,
		op.CreatedAt, op.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

func scanOperation(row pgx.Row) (*entity.StockOperation, error) {
	var op entity.StockOperation
	var opType string
	var from, to *string
	err := row.Scan(
		&op.ID, &opType, &op.NomenclatureID, &op.Quantity,
		&from, &to, &op.Comment, &op.Metadata, &op.CreatedAt, &op.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	op.Type = entity.OperationType(opType)
	if from != nil {
		op.FromWarehouseID = *from
	}
	if to != nil {
		op.ToWarehouseID = *to
	}
	return &op, nil
}

// GetByID obtiene una operación por ID.
func (r *OperationRepo) GetByID(ctx context.Context, id string) (*entity.StockOperation, error) {
	op, err := scanOperation(r.q.QueryRow(ctx,
		`SELECT `+operationColumns+` FROM stock_operations WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get operation: %w", err)
	}
	return op, nil
}

// ListByWarehouse lista operaciones que tocan la bodega (como origen o destino).
func (r *OperationRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockOperation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM stock_operations
		WHERE from_sklad_id = $1 OR to_sklad_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, warehouseID, limit, offset)
}

// ListByNomenclature lista el historial de una posición.
func (r *OperationRepo) ListByNomenclature(ctx context.Context, nomenclatureID string, limit, offset int) ([]*entity.StockOperation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM stock_operations WHERE nomenclature_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, nomenclatureID, limit, offset)
}

func (r *OperationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockOperation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockOperation
	for rows.Next() {
		var op entity.StockOperation
		var opType string
		var from, to *string
		if err := rows.Scan(
			&op.ID, &opType, &op.NomenclatureID, &op.Quantity,
			&from, &to, &op.Comment, &op.Metadata, &op.CreatedAt, &op.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		op.Type = entity.OperationType(opType)
		if from != nil {
			op.FromWarehouseID = *from
		}
		if to != nil {
			op.ToWarehouseID = *to
		}
		list = append(list, &op)
	}
	return list, rows.Err()
}
