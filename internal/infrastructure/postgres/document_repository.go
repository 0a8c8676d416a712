package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
	"github.com/tu-usuario/sklad-pro/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository sobre PostgreSQL.
// Las bodegas referenciadas se guardan como uuid[] y las líneas en
// document_items; el empaque opcional va en columnas nullables.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de documentos. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste el documento y sus líneas.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document, items []*entity.DocumentItem) error {
	query := `
		INSERT INTO documents (id, sklad_ids, doc_type, number, description, address_from, address_to, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.WarehouseIDs, doc.Type, doc.Number, doc.Description,
		doc.AddressFrom, doc.AddressTo, doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return r.insertItems(ctx, items)
}

// GetByID obtiene un documento por ID (sin líneas).
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	query := `
		SELECT id, sklad_ids, doc_type, number, description, address_from, address_to, created_by, created_at, updated_at
		FROM documents WHERE id = $1`
	var d entity.Document
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.WarehouseIDs, &d.Type, &d.Number, &d.Description,
		&d.AddressFrom, &d.AddressTo, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// Update actualiza la cabecera de un documento.
func (r *DocumentRepo) Update(ctx context.Context, doc *entity.Document) error {
	query := `
		UPDATE documents SET number = $2, description = $3, address_from = $4, address_to = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Number, doc.Description, doc.AddressFrom, doc.AddressTo, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// ListByWarehouse lista los documentos que referencian la bodega.
func (r *DocumentRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Document, error) {
	query := `
		SELECT id, sklad_ids, doc_type, number, description, address_from, address_to, created_by, created_at, updated_at
		FROM documents WHERE $1 = ANY(sklad_ids) ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(
			&d.ID, &d.WarehouseIDs, &d.Type, &d.Number, &d.Description,
			&d.AddressFrom, &d.AddressTo, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListItems devuelve las líneas de un documento.
func (r *DocumentRepo) ListItems(ctx context.Context, documentID string) ([]*entity.DocumentItem, error) {
	query := `
		SELECT id, document_id, nomenclature_id, quantity_documental, quantity_actual,
		       packaging_name, packaging_base_units, packaging_barcode
		FROM document_items WHERE document_id = $1`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentItem
	for rows.Next() {
		var it entity.DocumentItem
		var pkgName, pkgBarcode *string
		var pkgBaseUnits *decimal.Decimal
		if err := rows.Scan(
			&it.ID, &it.DocumentID, &it.NomenclatureID,
			&it.QuantityDocumental, &it.QuantityActual,
			&pkgName, &pkgBaseUnits, &pkgBarcode,
		); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		if pkgName != nil {
			it.Packaging = &entity.Packaging{Name: *pkgName}
			if pkgBaseUnits != nil {
				it.Packaging.BaseUnits = *pkgBaseUnits
			}
			if pkgBarcode != nil {
				it.Packaging.Barcode = *pkgBarcode
			}
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ReplaceItems borra las líneas actuales e inserta las nuevas.
func (r *DocumentRepo) ReplaceItems(ctx context.Context, documentID string, items []*entity.DocumentItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM document_items WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("clear document items: %w", err)
	}
	return r.insertItems(ctx, items)
}

// Delete elimina el documento y sus líneas (ON DELETE CASCADE).
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) insertItems(ctx context.Context, items []*entity.DocumentItem) error {
	query := `
		INSERT INTO document_items (id, document_id, nomenclature_id, quantity_documental, quantity_actual,
		                            packaging_name, packaging_base_units, packaging_barcode)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range items {
		var pkgName, pkgBarcode *string
		var pkgBaseUnits *decimal.Decimal
		if it.Packaging != nil {
			pkgName = &it.Packaging.Name
			pkgBaseUnits = &it.Packaging.BaseUnits
			pkgBarcode = &it.Packaging.Barcode
		}
		if _, err := r.q.Exec(ctx, query,
			it.ID, it.DocumentID, it.NomenclatureID, it.QuantityDocumental, it.QuantityActual,
			pkgName, pkgBaseUnits, pkgBarcode,
		); err != nil {
			return fmt.Errorf("insert document item: %w", err)
		}
	}
	return nil
}
