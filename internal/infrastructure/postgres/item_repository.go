package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de nomenclatura. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, warehouse_id, name, article, barcode, quantity, unit, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.WarehouseID, &it.Name, &it.Article, &it.Barcode,
		&it.Quantity, &it.Unit, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

// Create persiste una posición de nomenclatura.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (id, warehouse_id, name, article, barcode, quantity, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.WarehouseID, it.Name, it.Article, it.Barcode,
		it.Quantity, it.Unit, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert item: artículo duplicado en la bodega: %w", err)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene una posición por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para evitar condiciones de
// carrera al aplicar operaciones. Solo tiene sentido dentro de una tx.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// FindByWarehouseAndArticle localiza la posición equivalente en otra bodega.
func (r *ItemRepo) FindByWarehouseAndArticle(ctx context.Context, warehouseID, article string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE warehouse_id = $1 AND article = $2`,
		warehouseID, article,
	))
	if err != nil {
		return nil, fmt.Errorf("find item by article: %w", err)
	}
	return it, nil
}

// FindByBarcode resuelve un código de barras a una posición de la bodega.
func (r *ItemRepo) FindByBarcode(ctx context.Context, warehouseID, barcode string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE warehouse_id = $1 AND barcode = $2`,
		warehouseID, barcode,
	))
	if err != nil {
		return nil, fmt.Errorf("find item by barcode: %w", err)
	}
	return it, nil
}

// Update actualiza una posición existente.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	query := `
		UPDATE items SET name = $2, article = $3, barcode = $4, quantity = $5, unit = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Article, it.Barcode, it.Quantity, it.Unit, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// ListByWarehouse lista la nomenclatura de una bodega.
func (r *ItemRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE warehouse_id = $1 ORDER BY name`,
		warehouseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.WarehouseID, &it.Name, &it.Article, &it.Barcode,
			&it.Quantity, &it.Unit, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete elimina una posición por ID.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
