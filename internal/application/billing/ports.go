package billing

import (
	"context"

	"github.com/jhoicas/BillSync-api/internal/domain/entity"
)

// BillPDFGenerator genera la representación imprimible de una factura.
type BillPDFGenerator interface {
	GenerateBillPDF(ctx context.Context, bill *entity.Bill, admin *entity.Admin) ([]byte, error)
}

// QRRenderer codifica un texto como imagen PNG de un código QR.
type QRRenderer interface {
	PNG(content string, size int) ([]byte, error)
}
