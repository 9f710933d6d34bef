package billing

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

// QRSize lado en píxeles del PNG de cobro.
const QRSize = 320

// DocumentUseCase genera los documentos de una factura: PDF imprimible y QR de cobro UPI.
// El acceso por plan (PDF_EXPORT, QR_PAYMENTS) lo resuelve la capa HTTP antes de llegar aquí.
type DocumentUseCase struct {
	bills     repository.BillRepository
	admins    repository.AdminRepository
	generator BillPDFGenerator
	qr        QRRenderer
}

// NewDocumentUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDocumentUseCase(
	bills repository.BillRepository,
	admins repository.AdminRepository,
	generator BillPDFGenerator,
	qr QRRenderer,
) *DocumentUseCase {
	return &DocumentUseCase{
		bills:     bills,
		admins:    admins,
		generator: generator,
		qr:        qr,
	}
}

// DownloadBillPDF carga la factura y el negocio emisor y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe en el tenant del actor.
func (uc *DocumentUseCase) DownloadBillPDF(ctx context.Context, p access.Principal, billID string) (pdfBytes []byte, filename string, err error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.Staff...)
	if err != nil {
		return nil, "", err
	}
	bill, err := getBill(ctx, uc.bills, scope, billID)
	if err != nil {
		return nil, "", err
	}
	admin, err := uc.admins.Get(ctx, scope)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener negocio: %w", err)
	}
	if admin == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err = uc.generator.GenerateBillPDF(ctx, bill, admin)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, bill.Number + ".pdf", nil
}

// PaymentQR genera el QR UPI para cobrar el total de una factura pendiente. Requiere que
// el admin tenga configurado su UPI ID.
func (uc *DocumentUseCase) PaymentQR(ctx context.Context, p access.Principal, billID string) ([]byte, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.Staff...)
	if err != nil {
		return nil, err
	}
	bill, err := getBill(ctx, uc.bills, scope, billID)
	if err != nil {
		return nil, err
	}
	if bill.Status == entity.BillStatusPaid {
		return nil, fmt.Errorf("%w: la factura ya está pagada", domain.ErrConflict)
	}
	admin, err := uc.admins.Get(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("qr: obtener negocio: %w", err)
	}
	if admin == nil {
		return nil, domain.ErrNotFound
	}
	if admin.UPIID == "" {
		return nil, fmt.Errorf("%w: configure su UPI ID en el perfil", domain.ErrInvalidInput)
	}
	payee := admin.BusinessName
	if payee == "" {
		payee = admin.Name
	}
	png, err := uc.qr.PNG(UPIPayload(admin.UPIID, payee, bill.Total, bill.Number), QRSize)
	if err != nil {
		return nil, fmt.Errorf("qr: generación fallida: %w", err)
	}
	return png, nil
}

// UPIPayload arma el enlace upi://pay que leen las apps de pago.
func UPIPayload(vpa, payee string, amount decimal.Decimal, note string) string {
	q := url.Values{}
	q.Set("pa", vpa)
	q.Set("pn", payee)
	q.Set("am", amount.StringFixed(2))
	q.Set("cu", "INR")
	q.Set("tn", note)
	return "upi://pay?" + q.Encode()
}
