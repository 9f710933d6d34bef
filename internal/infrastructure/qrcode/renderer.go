// Package qrcode genera los QR de cobro UPI.
package qrcode

import (
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"

	"github.com/jhoicas/BillSync-api/internal/application/billing"
)

var _ billing.QRRenderer = Renderer{}

// Renderer codifica con corrección de errores media, suficiente para pantallas y papel térmico.
type Renderer struct{}

func (Renderer) PNG(content string, size int) ([]byte, error) {
	png, err := goqrcode.Encode(content, goqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: %w", err)
	}
	return png, nil
}
