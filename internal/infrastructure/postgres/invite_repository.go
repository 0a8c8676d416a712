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

var _ repository.InviteRepository = (*InviteRepo)(nil)

// InviteRepo implementación de InviteRepository sobre PostgreSQL.
type InviteRepo struct {
	q Querier
}

func NewInviteRepository(q Querier) *InviteRepo {
	return &InviteRepo{q: q}
}

const inviteColumns = `id, organization_id, token, email, role, expires_at, accepted_by, accepted_at, created_at, created_by`

// Create persiste una nueva invitación.
func (r *InviteRepo) Create(invite *entity.Invite) error {
	query := `
		INSERT INTO invites (` + inviteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		invite.ID, invite.OrganizationID, invite.Token, invite.Email, invite.Role,
		invite.ExpiresAt, invite.AcceptedBy, invite.AcceptedAt, invite.CreatedAt, invite.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invite: %w", err)
	}
	return nil
}

func scanInvite(row pgx.Row) (*entity.Invite, error) {
	var inv entity.Invite
	var acceptedBy *string
	err := row.Scan(
		&inv.ID, &inv.OrganizationID, &inv.Token, &inv.Email, &inv.Role,
		&inv.ExpiresAt, &acceptedBy, &inv.AcceptedAt, &inv.CreatedAt, &inv.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if acceptedBy != nil {
		inv.AcceptedBy = *acceptedBy
	}
	return &inv, nil
}

// GetByToken busca una invitación por su token. Retorna nil, nil si no existe.
func (r *InviteRepo) GetByToken(token string) (*entity.Invite, error) {
	inv, err := scanInvite(r.q.QueryRow(context.Background(),
		`SELECT `+inviteColumns+` FROM invites WHERE token = $1`, token))
	if err != nil {
		return nil, fmt.Errorf("get invite by token: %w", err)
	}
	return inv, nil
}

// Update marca aceptación u otros cambios de la invitación.
func (r *InviteRepo) Update(invite *entity.Invite) error {
	query := `
		UPDATE invites
		SET accepted_by = NULLIF($2, ''), accepted_at = $3, expires_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		invite.ID, invite.AcceptedBy, invite.AcceptedAt, invite.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("update invite: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOrganization lista las invitaciones de una organización.
func (r *InviteRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Invite, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+inviteColumns+` FROM invites
		WHERE organization_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invite
	for rows.Next() {
		var inv entity.Invite
		var acceptedBy *string
		if err := rows.Scan(
			&inv.ID, &inv.OrganizationID, &inv.Token, &inv.Email, &inv.Role,
			&inv.ExpiresAt, &acceptedBy, &inv.AcceptedAt, &inv.CreatedAt, &inv.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		if acceptedBy != nil {
			inv.AcceptedBy = *acceptedBy
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
