package usecase

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/domain"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
)

const defaultInviteTTL = 72 * time.Hour

// QRGenerator genera la imagen QR de un token de invitación (puerto; la
// implementación vive en infraestructura).
type QRGenerator interface {
	GeneratePNG(content string, size int) ([]byte, error)
}

// InviteUseCase invitaciones de organización: creación con token, QR para
// escanear desde el cliente y aceptación.
type InviteUseCase struct {
	repo     repository.InviteRepository
	userRepo repository.UserRepository
	qr       QRGenerator
	ttl      time.Duration
}

// NewInviteUseCase construye el caso de uso. ttl cero usa el valor por defecto.
func NewInviteUseCase(repo repository.InviteRepository, userRepo repository.UserRepository, qr QRGenerator, ttl time.Duration) *InviteUseCase {
	if ttl <= 0 {
		ttl = defaultInviteTTL
	}
	return &InviteUseCase{repo: repo, userRepo: userRepo, qr: qr, ttl: ttl}
}

// Create crea una invitación con token aleatorio.
func (uc *InviteUseCase) Create(organizationID, createdBy string, in dto.CreateInviteRequest) (*dto.InviteResponse, error) {
	ttl := uc.ttl
	if in.ExpiresIn > 0 {
		ttl = time.Duration(in.ExpiresIn) * time.Hour
	}
	role := in.Role
	if role == "" {
		role = entity.RoleOperador
	}
	now := time.Now()
	invite := &entity.Invite{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Token:          newInviteToken(),
		Email:          in.Email,
		Role:           role,
		ExpiresAt:      now.Add(ttl),
		CreatedAt:      now,
		CreatedBy:      createdBy,
	}
	if err := uc.repo.Create(invite); err != nil {
		return nil, err
	}
	return toInviteResponse(invite), nil
}

// QRCode devuelve el PNG del QR con el token de la invitación.
func (uc *InviteUseCase) QRCode(token string, size int) ([]byte, error) {
	invite, err := uc.repo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, domain.ErrNotFound
	}
	if size <= 0 {
		size = 256
	}
	return uc.qr.GeneratePNG(invite.Token, size)
}

// Accept acepta la invitación: marca el token como usado y une al usuario a
// la organización con el rol de la invitación.
func (uc *InviteUseCase) Accept(userID string, in dto.AcceptInviteRequest) (*dto.InviteResponse, error) {
	invite, err := uc.repo.GetByToken(in.Token)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if invite.AcceptedBy != "" {
		return nil, domain.ErrInviteUsed
	}
	if !now.Before(invite.ExpiresAt) {
		return nil, domain.ErrInviteExpired
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.OrganizationID = invite.OrganizationID
	user.Role = invite.Role
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	invite.AcceptedBy = userID
	invite.AcceptedAt = &now
	if err := uc.repo.Update(invite); err != nil {
		return nil, err
	}
	return toInviteResponse(invite), nil
}

// List lista invitaciones de la organización con paginación.
func (uc *InviteUseCase) List(organizationID string, limit, offset int) (*dto.InviteListResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InviteResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toInviteResponse(i))
	}
	return &dto.InviteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func newInviteToken() string {
	b := make([]byte, 20)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func toInviteResponse(i *entity.Invite) *dto.InviteResponse {
	if i == nil {
		return nil
	}
	return &dto.InviteResponse{
		ID:             i.ID,
		OrganizationID: i.OrganizationID,
		Token:          i.Token,
		Email:          i.Email,
		Role:           i.Role,
		ExpiresAt:      i.ExpiresAt,
		Accepted:       i.AcceptedBy != "",
		CreatedAt:      i.CreatedAt,
	}
}
