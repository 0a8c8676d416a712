package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (
			id, organization_id, name, code, address, contact_person,
			allow_negative_stock, require_approval, barcode_type,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.OrganizationID, w.Name, w.Code, w.Address, w.ContactPerson,
		w.Settings.AllowNegativeStock, w.Settings.RequireApproval, w.Settings.BarcodeType,
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert warehouse: código duplicado: %w", err)
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	query := `
		SELECT id, organization_id, name, code, address, contact_person,
		       allow_negative_stock, require_approval, barcode_type,
		       created_at, updated_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.OrganizationID, &w.Name, &w.Code, &w.Address, &w.ContactPerson,
		&w.Settings.AllowNegativeStock, &w.Settings.RequireApproval, &w.Settings.BarcodeType,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET
			name = $2, code = $3, address = $4, contact_person = $5,
			allow_negative_stock = $6, require_approval = $7, barcode_type = $8,
			updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.Name, w.Code, w.Address, w.ContactPerson,
		w.Settings.AllowNegativeStock, w.Settings.RequireApproval, w.Settings.BarcodeType,
		w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// ListByOrganization lista las bodegas de una organización.
func (r *WarehouseRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, organization_id, name, code, address, contact_person,
		       allow_negative_stock, require_approval, barcode_type,
		       created_at, updated_at
		FROM warehouses WHERE organization_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(
			&w.ID, &w.OrganizationID, &w.Name, &w.Code, &w.Address, &w.ContactPerson,
			&w.Settings.AllowNegativeStock, &w.Settings.RequireApproval, &w.Settings.BarcodeType,
			&w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Delete elimina una bodega por ID.
func (r *WarehouseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}
