// Exportación de documentos de bodega como remesa XML (Waybill) para
// intercambio con sistemas externos de transporte y contabilidad.
package xmlexport

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/tu-usuario/sklad-pro/internal/application/usecase"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
)

var _ usecase.WaybillExporter = (*WaybillBuilder)(nil)

// WaybillBuilder implementa usecase.WaybillExporter usando etree.
type WaybillBuilder struct{}

// NewWaybillBuilder construye el exportador.
func NewWaybillBuilder() *WaybillBuilder { return &WaybillBuilder{} }

// ExportWaybill serializa el documento y sus líneas como XML indentado.
func (b *WaybillBuilder) ExportWaybill(doc *entity.Document, lines []usecase.WaybillLine) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("xmlexport: documento nulo")
	}

	xdoc := etree.NewDocument()
	xdoc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := xdoc.CreateElement("Waybill")
	root.CreateAttr("id", doc.ID)
	root.CreateAttr("type", doc.Type)

	header := root.CreateElement("Header")
	header.CreateElement("Number").SetText(doc.Number)
	header.CreateElement("Description").SetText(doc.Description)
	header.CreateElement("CreatedAt").SetText(doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	if doc.AddressFrom != "" {
		header.CreateElement("AddressFrom").SetText(doc.AddressFrom)
	}
	if doc.AddressTo != "" {
		header.CreateElement("AddressTo").SetText(doc.AddressTo)
	}

	warehouses := root.CreateElement("Warehouses")
	for _, id := range doc.WarehouseIDs {
		warehouses.CreateElement("WarehouseRef").CreateAttr("id", id)
	}

	elLines := root.CreateElement("Lines")
	for i, line := range lines {
		el := elLines.CreateElement("Line")
		el.CreateAttr("number", fmt.Sprintf("%d", i+1))
		el.CreateElement("Name").SetText(line.Name)
		if line.Article != "" {
			el.CreateElement("Article").SetText(line.Article)
		}
		if line.Unit != "" {
			el.CreateElement("Unit").SetText(line.Unit)
		}
		el.CreateElement("QuantityDocumental").SetText(line.QuantityDocumental.String())
		if line.QuantityActual != nil {
			el.CreateElement("QuantityActual").SetText(line.QuantityActual.String())
		}
		if line.Packaging != nil {
			pkg := el.CreateElement("Packaging")
			pkg.CreateElement("Name").SetText(line.Packaging.Name)
			pkg.CreateElement("BaseUnits").SetText(line.Packaging.BaseUnits.String())
			if line.Packaging.Barcode != "" {
				pkg.CreateElement("Barcode").SetText(line.Packaging.Barcode)
			}
		}
	}

	xdoc.Indent(2)
	out, err := xdoc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar remesa: %w", err)
	}
	return out, nil
}
