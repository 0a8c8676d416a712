package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sklad-pro/internal/application/dto"
	"github.com/tu-usuario/sklad-pro/internal/domain"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/qty"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
)

// WaybillLine línea de remesa lista para exportar, con el nombre de la
// posición ya resuelto.
type WaybillLine struct {
	Name               string
	Article            string
	Unit               string
	QuantityDocumental decimal.Decimal
	QuantityActual     *decimal.Decimal
	Packaging          *entity.Packaging
}

// WaybillExporter puerto de exportación de documentos (remesa XML).
type WaybillExporter interface {
	ExportWaybill(doc *entity.Document, lines []WaybillLine) ([]byte, error)
}

// DocumentUseCase casos de uso CRUD para documentos de bodega y sus líneas.
type DocumentUseCase struct {
	repo     repository.DocumentRepository
	itemRepo repository.ItemRepository
	exporter WaybillExporter
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(repo repository.DocumentRepository, itemRepo repository.ItemRepository, exporter WaybillExporter) *DocumentUseCase {
	return &DocumentUseCase{repo: repo, itemRepo: itemRepo, exporter: exporter}
}

// Create crea un documento con sus líneas. Las cantidades declaradas se
// recortan a >= 0 en la frontera (qty.NonNegative).
func (uc *DocumentUseCase) Create(ctx context.Context, userID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	now := time.Now()
	doc := &entity.Document{
		ID:           uuid.New().String(),
		WarehouseIDs: in.WarehouseIDs,
		Type:         in.Type,
		Number:       in.Number,
		Description:  in.Description,
		AddressFrom:  in.AddressFrom,
		AddressTo:    in.AddressTo,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    userID,
	}
	items := itemsFromRequests(doc.ID, in.Items)
	if err := uc.repo.Create(ctx, doc, items); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, items), nil
}

// GetByID obtiene un documento con sus líneas.
func (uc *DocumentUseCase) GetByID(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	items, err := uc.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, items), nil
}

// Update actualiza la cabecera de un documento.
func (uc *DocumentUseCase) Update(ctx context.Context, id string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	if in.Number != nil {
		doc.Number = *in.Number
	}
	if in.Description != nil {
		doc.Description = *in.Description
	}
	if in.AddressFrom != nil {
		doc.AddressFrom = *in.AddressFrom
	}
	if in.AddressTo != nil {
		doc.AddressTo = *in.AddressTo
	}
	doc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	items, _ := uc.repo.ListItems(ctx, id)
	return toDocumentResponse(doc, items), nil
}

// ReplaceItems reemplaza las líneas completas de un documento.
func (uc *DocumentUseCase) ReplaceItems(ctx context.Context, id string, in []dto.DocumentItemRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	items := itemsFromRequests(id, in)
	if err := uc.repo.ReplaceItems(ctx, id, items); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, items), nil
}

// ListByWarehouse lista los documentos de una bodega (sin líneas).
func (uc *DocumentUseCase) ListByWarehouse(ctx context.Context, warehouseID string) (*dto.DocumentListResponse, error) {
	list, err := uc.repo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDocumentResponse(d, nil))
	}
	return &dto.DocumentListResponse{Items: items, Total: len(items)}, nil
}

// ExportXML genera la remesa XML del documento. Los nombres de posición se
// resuelven contra el catálogo; una posición borrada queda con el ID como nombre.
func (uc *DocumentUseCase) ExportXML(ctx context.Context, id string) ([]byte, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	lines := make([]WaybillLine, 0, len(items))
	for _, it := range items {
		line := WaybillLine{
			Name:               it.NomenclatureID,
			QuantityDocumental: it.QuantityDocumental,
			QuantityActual:     it.QuantityActual,
			Packaging:          it.Packaging,
		}
		if nom, err := uc.itemRepo.GetByID(ctx, it.NomenclatureID); err == nil && nom != nil {
			line.Name = nom.Name
			line.Article = nom.Article
			line.Unit = nom.Unit
		}
		lines = append(lines, line)
	}
	return uc.exporter.ExportWaybill(doc, lines)
}

// Delete elimina un documento con sus líneas.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func itemsFromRequests(documentID string, in []dto.DocumentItemRequest) []*entity.DocumentItem {
	items := make([]*entity.DocumentItem, 0, len(in))
	for _, r := range in {
		line := &entity.DocumentItem{
			ID:                 uuid.New().String(),
			DocumentID:         documentID,
			NomenclatureID:     r.NomenclatureID,
			QuantityDocumental: qty.NonNegative(r.QuantityDocumental.Decimal),
		}
		if r.QuantityActual != nil {
			actual := qty.NonNegative(r.QuantityActual.Decimal)
			line.QuantityActual = &actual
		}
		if r.Packaging != nil {
			line.Packaging = &entity.Packaging{
				Name:      r.Packaging.Name,
				BaseUnits: qty.NonNegative(r.Packaging.BaseUnits.Decimal),
				Barcode:   r.Packaging.Barcode,
			}
		}
		items = append(items, line)
	}
	return items
}

func toDocumentResponse(d *entity.Document, items []*entity.DocumentItem) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	out := &dto.DocumentResponse{
		ID:           d.ID,
		WarehouseIDs: d.WarehouseIDs,
		Type:         d.Type,
		Number:       d.Number,
		Description:  d.Description,
		AddressFrom:  d.AddressFrom,
		AddressTo:    d.AddressTo,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	for _, it := range items {
		line := dto.DocumentItemResponse{
			ID:                 it.ID,
			NomenclatureID:     it.NomenclatureID,
			QuantityDocumental: it.QuantityDocumental,
			QuantityActual:     it.QuantityActual,
		}
		if it.Packaging != nil {
			line.Packaging = &dto.PackagingDTO{
				Name:    it.Packaging.Name,
				Barcode: it.Packaging.Barcode,
			}
			line.Packaging.BaseUnits.Decimal = it.Packaging.BaseUnits
		}
		out.Items = append(out.Items, line)
	}
	return out
}
