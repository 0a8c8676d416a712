// Generación de códigos QR en PNG para tokens de invitación.
package qrcode

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/tu-usuario/sklad-pro/internal/application/usecase"
)

var _ usecase.QRGenerator = (*Generator)(nil)

// Generator implementa usecase.QRGenerator con boombuler/barcode.
type Generator struct{}

// NewGenerator construye el generador de QR.
func NewGenerator() *Generator { return &Generator{} }

// GeneratePNG codifica el contenido como QR (corrección media) y lo escala
// al tamaño pedido en píxeles.
func (g *Generator) GeneratePNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qrcode: contenido vacío")
	}
	if size <= 0 {
		size = 256
	}
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qrcode: codificar: %w", err)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: escalar: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qrcode: serializar png: %w", err)
	}
	return buf.Bytes(), nil
}
