package usecase

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ItemUseCase casos de uso CRUD para la nomenclatura, más la búsqueda por
// texto y la consulta por código de barras del escáner.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea una posición de nomenclatura.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	now := time.Now()
	unit := in.Unit
	if unit == "" {
		unit = "und"
	}
	item := &entity.Item{
		ID:          uuid.New().String(),
		WarehouseID: in.WarehouseID,
		Name:        in.Name,
		Article:     in.Article,
		Barcode:     in.Barcode,
		Quantity:    in.Quantity.Decimal,
		Unit:        unit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene una posición por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update actualiza una posición (edición directa; los movimientos de stock
// pasan por el caso de uso de operaciones, no por aquí).
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Article != nil {
		item.Article = *in.Article
	}
	if in.Barcode != nil {
		item.Barcode = *in.Barcode
	}
	if in.Quantity != nil {
		item.Quantity = in.Quantity.Decimal
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista la nomenclatura de una bodega, con filtro opcional por texto
// sobre nombre y artículo (insensible a mayúsculas y acentos).
func (uc *ItemUseCase) List(ctx context.Context, warehouseID, search string) (*dto.ItemListResponse, error) {
	list, err := uc.repo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	term := foldSearchTerm(search)
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		if term != "" &&
			!strings.Contains(foldSearchTerm(it.Name), term) &&
			!strings.Contains(foldSearchTerm(it.Article), term) {
			continue
		}
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: items, Total: len(items)}, nil
}

// FindByBarcode resuelve el código leído por el escáner a una posición de la
// bodega. nil si ningún artículo tiene ese código.
func (uc *ItemUseCase) FindByBarcode(ctx context.Context, warehouseID, barcode string) (*dto.ItemResponse, error) {
	item, err := uc.repo.FindByBarcode(ctx, warehouseID, strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Delete elimina una posición por ID.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// foldSearchTerm normaliza texto para búsqueda: minúsculas y sin diacríticos
// (NFD, se eliminan las marcas no separadas, NFC).
func foldSearchTerm(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return folded
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:          it.ID,
		WarehouseID: it.WarehouseID,
		Name:        it.Name,
		Article:     it.Article,
		Barcode:     it.Barcode,
		Quantity:    it.Quantity,
		Unit:        it.Unit,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
