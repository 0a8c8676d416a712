package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/sklad-pro/internal/domain"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación de OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

const organizationColumns = `id, name, description, owner_id, created_at, updated_at`

// Create persiste una nueva organización.
func (r *OrganizationRepo) Create(org *entity.Organization) error {
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		org.ID, org.Name, org.Description, org.OwnerID, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID. Retorna nil, nil si no existe.
func (r *OrganizationRepo) GetByID(id string) (*entity.Organization, error) {
	var org entity.Organization
	err := r.q.QueryRow(context.Background(),
		`SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id).Scan(
		&org.ID, &org.Name, &org.Description, &org.OwnerID, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &org, nil
}

// Update actualiza los datos de la organización.
func (r *OrganizationRepo) Update(org *entity.Organization) error {
	query := `
		UPDATE organizations
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		org.ID, org.Name, org.Description, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOwner lista las organizaciones de un dueño.
func (r *OrganizationRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Organization, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+organizationColumns+` FROM organizations
		WHERE owner_id = $1
		ORDER BY created_at LIMIT $2 OFFSET $3`, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Organization
	for rows.Next() {
		var org entity.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.Description, &org.OwnerID, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, &org)
	}
	return list, rows.Err()
}

// Delete elimina una organización.
func (r *OrganizationRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
