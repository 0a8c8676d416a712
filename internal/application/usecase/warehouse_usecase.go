package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una nueva bodega en la organización.
func (uc *WarehouseUseCase) Create(ctx context.Context, organizationID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Code:           in.Code,
		Address:        in.Address,
		ContactPerson:  in.ContactPerson,
		Settings:       settingsFromDTO(in.Settings),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Code != nil {
		warehouse.Code = *in.Code
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.ContactPerson != nil {
		warehouse.ContactPerson = *in.ContactPerson
	}
	if in.Settings != nil {
		warehouse.Settings = settingsFromDTO(in.Settings)
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista las bodegas de la organización.
func (uc *WarehouseUseCase) List(ctx context.Context, organizationID string) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{Items: items, Total: len(items)}, nil
}

// Delete elimina una bodega por ID.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func settingsFromDTO(s *dto.WarehouseSettingsDTO) entity.WarehouseSettings {
	if s == nil {
		return entity.WarehouseSettings{BarcodeType: entity.BarcodeTypeEAN13}
	}
	barcodeType := s.BarcodeType
	if barcodeType == "" {
		barcodeType = entity.BarcodeTypeEAN13
	}
	return entity.WarehouseSettings{
		AllowNegativeStock: s.AllowNegativeStock,
		RequireApproval:    s.RequireApproval,
		BarcodeType:        barcodeType,
	}
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:             w.ID,
		OrganizationID: w.OrganizationID,
		Name:           w.Name,
		Code:           w.Code,
		Address:        w.Address,
		ContactPerson:  w.ContactPerson,
		Settings: dto.WarehouseSettingsDTO{
			AllowNegativeStock: w.Settings.AllowNegativeStock,
			RequireApproval:    w.Settings.RequireApproval,
			BarcodeType:        w.Settings.BarcodeType,
		},
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
