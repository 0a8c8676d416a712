package repository

import "github.com/tu-usuario/sklad-pro/internal/domain/entity"

// InviteRepository define el puerto de persistencia para invitaciones (DIP).
type InviteRepository interface {
	Create(invite *entity.Invite) error
	GetByToken(token string) (*entity.Invite, error)
	Update(invite *entity.Invite) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Invite, error)
}
