// Package account administra el perfil del admin y sus cajeros.
package account

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
	"github.com/jhoicas/BillSync-api/pkg/credential"
)

// MaxLogoBytes tamaño máximo del logo.
const MaxLogoBytes = 2 << 20

var logoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// UseCase casos de uso de cuenta.
type UseCase struct {
	admins   repository.AdminRepository
	cashiers repository.BillingAccountRepository
	ents     EntitlementReader
	store    ObjectStore
	now      func() time.Time
}

// NewUseCase construye el caso de uso. store puede ser nil si no hay almacenamiento configurado.
func NewUseCase(admins repository.AdminRepository, cashiers repository.BillingAccountRepository, ents EntitlementReader, store ObjectStore) *UseCase {
	return &UseCase{admins: admins, cashiers: cashiers, ents: ents, store: store, now: time.Now}
}

// GetProfile devuelve el perfil del admin de la sesión.
func (uc *UseCase) GetProfile(ctx context.Context, p access.Principal) (*dto.AdminProfileResponse, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	admin, err := uc.admin(ctx, scope)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(admin), nil
}

// UpdateProfile aplica los cambios no nulos al perfil.
func (uc *UseCase) UpdateProfile(ctx context.Context, p access.Principal, in dto.UpdateProfileRequest) (*dto.AdminProfileResponse, error) {
	scope, err := access.Authorize(p, access.ActionUpdate, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	admin, err := uc.admin(ctx, scope)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		admin.Name = strings.TrimSpace(*in.Name)
	}
	if in.BusinessName != nil {
		admin.BusinessName = strings.TrimSpace(*in.BusinessName)
	}
	if in.Phone != nil {
		admin.Phone = *in.Phone
	}
	if in.Address != nil {
		admin.Address = *in.Address
	}
	if in.UPIID != nil {
		admin.UPIID = strings.TrimSpace(*in.UPIID)
	}
	admin.UpdatedAt = uc.now()
	if err := uc.admins.Update(ctx, scope, admin); err != nil {
		return nil, fmt.Errorf("account: actualizar perfil: %w", err)
	}
	return toProfileResponse(admin), nil
}

// UploadLogo sube el logo al almacenamiento de objetos y guarda su URL en el perfil.
func (uc *UseCase) UploadLogo(ctx context.Context, p access.Principal, contentType string, body io.Reader, size int64) (*dto.AdminProfileResponse, error) {
	scope, err := access.Authorize(p, access.ActionUpdate, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	if uc.store == nil {
		return nil, domain.ErrUnavailable
	}
	ext, ok := logoExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: formato de logo no soportado (%s)", domain.ErrInvalidInput, contentType)
	}
	if size <= 0 || size > MaxLogoBytes {
		return nil, fmt.Errorf("%w: el logo debe pesar como máximo 2 MB", domain.ErrInvalidInput)
	}
	admin, err := uc.admin(ctx, scope)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("logos/%s/%s%s", scope.AdminID, uuid.New().String(), ext)
	url, err := uc.store.Put(ctx, key, contentType, body, size)
	if err != nil {
		return nil, fmt.Errorf("account: subir logo: %w", err)
	}
	admin.LogoURL = url
	admin.UpdatedAt = uc.now()
	if err := uc.admins.Update(ctx, scope, admin); err != nil {
		return nil, fmt.Errorf("account: guardar logo: %w", err)
	}
	return toProfileResponse(admin), nil
}

// Me identidad del actor de la sesión y datos del negocio al que pertenece.
func (uc *UseCase) Me(ctx context.Context, p access.Principal) (*dto.MeResponse, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.Staff...)
	if err != nil {
		return nil, err
	}
	admin, err := uc.admin(ctx, scope)
	if err != nil {
		return nil, err
	}
	me := &dto.MeResponse{
		ID:           p.ID,
		Role:         string(p.Role),
		AdminID:      scope.AdminID,
		Name:         admin.Name,
		BusinessName: admin.BusinessName,
		LogoURL:      admin.LogoURL,
	}
	if p.Role == access.RoleCashier {
		acc, err := uc.cashiers.GetByID(ctx, scope, p.ID)
		if err != nil {
			return nil, fmt.Errorf("account: obtener cajero: %w", err)
		}
		if acc == nil || acc.Status != entity.AccountStatusActive {
			return nil, domain.ErrUnauthenticated
		}
		me.Name = acc.Name
	}
	return me, nil
}

// CreateCashier crea un cajero del admin respetando el límite de su plan.
func (uc *UseCase) CreateCashier(ctx context.Context, p access.Principal, in dto.CreateCashierRequest) (*dto.CashierResponse, error) {
	scope, err := access.Authorize(p, access.ActionCreate, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	count, err := uc.cashiers.Count(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("account: contar cajeros: %w", err)
	}
	ents, err := uc.ents.Entitlements(ctx, scope.AdminID)
	if err != nil {
		return nil, err
	}
	if !ents.AllowsCashiers(count) {
		return nil, fmt.Errorf("%w: el plan %s admite %d cajero(s)", domain.ErrFeatureLocked, ents.Plan, ents.MaxCashiers)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.cashiers.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("account: buscar cajero: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := credential.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	acc := &entity.BillingAccount{
		ID:           uuid.New().String(),
		AdminID:      scope.AdminID,
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Status:       entity.AccountStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.cashiers.Create(ctx, acc); err != nil {
		return nil, err
	}
	return toCashierResponse(acc), nil
}

// ListCashiers lista los cajeros del admin.
func (uc *UseCase) ListCashiers(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.CashierListResponse, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.cashiers.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("account: listar cajeros: %w", err)
	}
	total, err := uc.cashiers.Count(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("account: contar cajeros: %w", err)
	}
	items := make([]dto.CashierResponse, 0, len(list))
	for _, acc := range list {
		items = append(items, *toCashierResponse(acc))
	}
	return &dto.CashierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// GetCashier obtiene un cajero del admin.
func (uc *UseCase) GetCashier(ctx context.Context, p access.Principal, id string) (*dto.CashierResponse, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	acc, err := uc.cashier(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toCashierResponse(acc), nil
}

// UpdateCashier cambia nombre, estado o contraseña de un cajero.
func (uc *UseCase) UpdateCashier(ctx context.Context, p access.Principal, id string, in dto.UpdateCashierRequest) (*dto.CashierResponse, error) {
	scope, err := access.Authorize(p, access.ActionUpdate, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	acc, err := uc.cashier(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		acc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Status != nil {
		acc.Status = *in.Status
	}
	if in.Password != nil {
		hash, err := credential.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		acc.PasswordHash = hash
	}
	acc.UpdatedAt = uc.now()
	if err := uc.cashiers.Update(ctx, scope, acc); err != nil {
		return nil, err
	}
	return toCashierResponse(acc), nil
}

// DeleteCashier elimina un cajero del admin.
func (uc *UseCase) DeleteCashier(ctx context.Context, p access.Principal, id string) error {
	scope, err := access.Authorize(p, access.ActionDelete, "", access.AdminOnly...)
	if err != nil {
		return err
	}
	return uc.cashiers.Delete(ctx, scope, id)
}

func (uc *UseCase) admin(ctx context.Context, scope access.Scope) (*entity.Admin, error) {
	admin, err := uc.admins.Get(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("account: obtener admin: %w", err)
	}
	if admin == nil {
		return nil, domain.ErrNotFound
	}
	return admin, nil
}

func (uc *UseCase) cashier(ctx context.Context, scope access.Scope, id string) (*entity.BillingAccount, error) {
	acc, err := uc.cashiers.GetByID(ctx, scope, id)
	if err != nil {
		return nil, fmt.Errorf("account: obtener cajero: %w", err)
	}
	if acc == nil {
		return nil, domain.ErrNotFound
	}
	return acc, nil
}

func toProfileResponse(a *entity.Admin) *dto.AdminProfileResponse {
	return &dto.AdminProfileResponse{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		BusinessName:  a.BusinessName,
		Phone:         a.Phone,
		Address:       a.Address,
		UPIID:         a.UPIID,
		LogoURL:       a.LogoURL,
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toCashierResponse(acc *entity.BillingAccount) *dto.CashierResponse {
	return &dto.CashierResponse{
		ID:        acc.ID,
		AdminID:   acc.AdminID,
		Name:      acc.Name,
		Email:     acc.Email,
		Status:    acc.Status,
		CreatedAt: acc.CreatedAt,
		UpdatedAt: acc.UpdatedAt,
	}
}
