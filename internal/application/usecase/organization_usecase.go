package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
)

// OrganizationUseCase casos de uso CRUD para organizaciones.
type OrganizationUseCase struct {
	repo     repository.OrganizationRepository
	userRepo repository.UserRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(repo repository.OrganizationRepository, userRepo repository.UserRepository) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo, userRepo: userRepo}
}

// Create crea una organización y asocia al creador como owner/admin.
func (uc *OrganizationUseCase) Create(ownerID string, in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	now := time.Now()
	org := &entity.Organization{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(org); err != nil {
		return nil, err
	}
	// El creador pasa a pertenecer a la organización como admin.
	if user, err := uc.userRepo.GetByID(ownerID); err == nil && user != nil {
		user.OrganizationID = org.ID
		user.Role = entity.RoleAdmin
		user.UpdatedAt = now
		_ = uc.userRepo.Update(user)
	}
	return toOrganizationResponse(org), nil
}

// GetByID obtiene una organización por ID.
func (uc *OrganizationUseCase) GetByID(id string) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, nil
	}
	return toOrganizationResponse(org), nil
}

// Update actualiza una organización.
func (uc *OrganizationUseCase) Update(id string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, nil
	}
	if in.Name != nil {
		org.Name = *in.Name
	}
	if in.Description != nil {
		org.Description = *in.Description
	}
	org.UpdatedAt = time.Now()
	if err := uc.repo.Update(org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// List lista organizaciones del owner con paginación.
func (uc *OrganizationUseCase) List(ownerID string, limit, offset int) (*dto.OrganizationListResponse, error) {
	list, err := uc.repo.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrganizationResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrganizationResponse(o))
	}
	return &dto.OrganizationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una organización por ID.
func (uc *OrganizationUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	if o == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		OwnerID:     o.OwnerID,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
