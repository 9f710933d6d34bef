// Package catalog CRUD de productos de cada tenant.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/plan"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

// Tasas de GST admitidas (porcentaje).
var validTaxRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

const defaultUnit = "unit"

// EntitlementReader derechos del plan vigente de un admin.
type EntitlementReader interface {
	Entitlements(ctx context.Context, adminID string) (plan.Entitlements, error)
}

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo repository.ProductRepository
	ents EntitlementReader
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, ents EntitlementReader) *ProductUseCase {
	return &ProductUseCase{repo: repo, ents: ents, now: time.Now}
}

func validTaxRate(r decimal.Decimal) bool {
	for _, v := range validTaxRates {
		if r.Equal(v) {
			return true
		}
	}
	return false
}

func validate(price, taxRate decimal.Decimal) error {
	if !entity.ValidPrice(price) {
		return fmt.Errorf("%w: precio %s inválido (no negativo, hasta %d decimales)", domain.ErrInvalidInput, price, entity.PriceScale)
	}
	if !validTaxRate(taxRate) {
		return fmt.Errorf("%w: tasa de impuesto %s no admitida (0, 5, 12, 18, 28)", domain.ErrInvalidInput, taxRate)
	}
	return nil
}

// Create crea un producto. Solo ADMIN y dentro del límite del plan.
func (uc *ProductUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	scope, err := access.Authorize(p, access.ActionCreate, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	if err := validate(in.Price, in.TaxRate); err != nil {
		return nil, err
	}
	count, err := uc.repo.Count(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("catalog: contar productos: %w", err)
	}
	ents, err := uc.ents.Entitlements(ctx, scope.AdminID)
	if err != nil {
		return nil, err
	}
	if !ents.AllowsProducts(count) {
		return nil, fmt.Errorf("%w: el plan %s admite %d productos", domain.ErrFeatureLocked, ents.Plan, ents.MaxProducts)
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = defaultUnit
	}
	now := uc.now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		AdminID:   scope.AdminID,
		Name:      strings.TrimSpace(in.Name),
		SKU:       strings.TrimSpace(in.SKU),
		Price:     in.Price,
		TaxRate:   in.TaxRate,
		Unit:      unit,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del tenant. ADMIN o CASHIER.
func (uc *ProductUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.ProductResponse, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.Staff...)
	if err != nil {
		return nil, err
	}
	product, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. Solo ADMIN.
func (uc *ProductUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	scope, err := access.Authorize(p, access.ActionUpdate, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	product, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.SKU != nil {
		product.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.TaxRate != nil {
		product.TaxRate = *in.TaxRate
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) != "" {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := validate(product.Price, product.TaxRate); err != nil {
		return nil, err
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, scope, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos del tenant con paginación. ADMIN o CASHIER.
func (uc *ProductUseCase) List(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.ProductListResponse, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.Staff...)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("catalog: listar productos: %w", err)
	}
	total, err := uc.repo.Count(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("catalog: contar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, product := range list {
		items = append(items, *toProductResponse(product))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un producto. Solo ADMIN. Las facturas conservan nombre y precio copiados.
func (uc *ProductUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	scope, err := access.Authorize(p, access.ActionDelete, "", access.AdminOnly...)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, scope, id)
}

func (uc *ProductUseCase) get(ctx context.Context, scope access.Scope, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: obtener producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		AdminID:   p.AdminID,
		Name:      p.Name,
		SKU:       p.SKU,
		Price:     p.Price,
		TaxRate:   p.TaxRate,
		Unit:      p.Unit,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
