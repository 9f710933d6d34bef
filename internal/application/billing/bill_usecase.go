// Package billing emite facturas, registra su cobro en caja y genera sus documentos.
package billing

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// BillUseCase casos de uso de facturas.
type BillUseCase struct {
	bills    repository.BillRepository
	products repository.ProductRepository
	now      func() time.Time
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(bills repository.BillRepository, products repository.ProductRepository) *BillUseCase {
	return &BillUseCase{bills: bills, products: products, now: time.Now}
}

// Create emite una factura UNPAID. Los productos se buscan con el mismo scope que la
// factura, así que un producto de otro tenant es domain.ErrNotFound.
func (uc *BillUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	scope, err := access.Authorize(p, access.ActionCreate, "", access.Staff...)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la factura necesita al menos una línea", domain.ErrInvalidInput)
	}

	now := uc.now()
	bill := &entity.Bill{
		ID:            uuid.New().String(),
		AdminID:       scope.AdminID,
		IssuedBy:      scope.PrincipalID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		Subtotal:      decimal.Zero,
		TaxTotal:      decimal.Zero,
		Status:        entity.BillStatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, it := range in.Items {
		if !entity.ValidQuantity(it.Quantity) {
			return nil, fmt.Errorf("%w: cantidad %s inválida para %s (positiva, hasta %d decimales)",
				domain.ErrInvalidInput, it.Quantity, it.ProductID, entity.QuantityScale)
		}
		product, err := uc.products.GetByID(ctx, scope, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("billing: obtener producto: %w", err)
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if !product.Active {
			return nil, fmt.Errorf("%w: el producto %s está inactivo", domain.ErrInvalidInput, product.Name)
		}
		line := it.Quantity.Mul(product.Price).Round(2)
		tax := line.Mul(product.TaxRate).Div(hundred).Round(2)
		bill.Items = append(bill.Items, entity.BillItem{
			ID:          uuid.New().String(),
			BillID:      bill.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   product.Price,
			TaxRate:     product.TaxRate,
			LineTotal:   line,
			TaxAmount:   tax,
		})
		bill.Subtotal = bill.Subtotal.Add(line)
		bill.TaxTotal = bill.TaxTotal.Add(tax)
	}
	bill.Total = bill.Subtotal.Add(bill.TaxTotal)
	if !entity.ValidAmount(bill.Total) {
		return nil, fmt.Errorf("%w: el total %s excede el máximo admitido", domain.ErrInvalidInput, bill.Total)
	}

	number, err := billNumber(now)
	if err != nil {
		return nil, err
	}
	bill.Number = number
	if err := uc.bills.Create(ctx, bill); err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// billNumber BILL-<yyyymmdd>-<6 dígitos aleatorios>.
func billNumber(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("billing: número de factura: %w", err)
	}
	return fmt.Sprintf("BILL-%s-%06d", now.Format("20060102"), n.Int64()), nil
}

// GetByID obtiene una factura del tenant con sus líneas.
func (uc *BillUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.BillResponse, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.Staff...)
	if err != nil {
		return nil, err
	}
	bill, err := getBill(ctx, uc.bills, scope, id)
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// List lista las facturas del tenant, más recientes primero.
func (uc *BillUseCase) List(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.BillListResponse, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.Staff...)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.bills.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("billing: listar facturas: %w", err)
	}
	items := make([]dto.BillResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBillResponse(b))
	}
	return &dto.BillListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Pay registra el cobro en caja: UNPAID → PAID. Una factura ya pagada es domain.ErrConflict.
func (uc *BillUseCase) Pay(ctx context.Context, p access.Principal, id, mode string) (*dto.BillResponse, error) {
	scope, err := access.Authorize(p, access.ActionUpdate, "", access.Staff...)
	if err != nil {
		return nil, err
	}
	switch mode {
	case entity.PaymentModeCash, entity.PaymentModeUPI, entity.PaymentModeCard:
	default:
		return nil, fmt.Errorf("%w: medio de pago %q", domain.ErrInvalidInput, mode)
	}
	bill, err := getBill(ctx, uc.bills, scope, id)
	if err != nil {
		return nil, err
	}
	if bill.Status == entity.BillStatusPaid {
		return nil, fmt.Errorf("%w: la factura ya está pagada", domain.ErrConflict)
	}
	paidAt := uc.now()
	ok, err := uc.bills.MarkPaid(ctx, scope, id, mode, paidAt)
	if err != nil {
		return nil, fmt.Errorf("billing: registrar cobro: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: la factura ya está pagada", domain.ErrConflict)
	}
	bill.Status = entity.BillStatusPaid
	bill.PaymentMode = mode
	bill.PaidAt = &paidAt
	bill.UpdatedAt = paidAt
	return toBillResponse(bill), nil
}

// Delete elimina una factura. Solo ADMIN.
func (uc *BillUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	scope, err := access.Authorize(p, access.ActionDelete, "", access.AdminOnly...)
	if err != nil {
		return err
	}
	return uc.bills.Delete(ctx, scope, id)
}

// Dashboard resumen de las facturas emitidas desde el inicio del día.
func (uc *BillUseCase) Dashboard(ctx context.Context, p access.Principal) (*dto.DashboardResponse, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.Staff...)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sum, err := uc.bills.Summary(ctx, scope, since)
	if err != nil {
		return nil, fmt.Errorf("billing: resumen: %w", err)
	}
	return &dto.DashboardResponse{
		Since:       since,
		BillCount:   sum.BillCount,
		PaidCount:   sum.PaidCount,
		Collected:   sum.Collected,
		Outstanding: sum.Outstanding,
	}, nil
}

func getBill(ctx context.Context, bills repository.BillRepository, scope access.Scope, id string) (*entity.Bill, error) {
	bill, err := bills.GetByID(ctx, scope, id)
	if err != nil {
		return nil, fmt.Errorf("billing: obtener factura: %w", err)
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	return bill, nil
}

func toBillResponse(b *entity.Bill) *dto.BillResponse {
	res := &dto.BillResponse{
		ID:            b.ID,
		AdminID:       b.AdminID,
		IssuedBy:      b.IssuedBy,
		Number:        b.Number,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		Subtotal:      b.Subtotal,
		TaxTotal:      b.TaxTotal,
		Total:         b.Total,
		Status:        b.Status,
		PaymentMode:   b.PaymentMode,
		PaidAt:        b.PaidAt,
		CreatedAt:     b.CreatedAt,
	}
	for _, it := range b.Items {
		res.Items = append(res.Items, dto.BillItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			LineTotal:   it.LineTotal,
			TaxAmount:   it.TaxAmount,
		})
	}
	return res
}
