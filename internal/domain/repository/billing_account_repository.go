package repository

import (
	"context"

	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
)

// BillingAccountRepository puerto de persistencia para cajeros.
type BillingAccountRepository interface {
	Create(ctx context.Context, account *entity.BillingAccount) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.BillingAccount, error)
	// GetByEmail se usa solo en el login de cajero.
	GetByEmail(ctx context.Context, email string) (*entity.BillingAccount, error)
	List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.BillingAccount, error)
	Count(ctx context.Context, scope access.Scope) (int, error)
	// Update y Delete devuelven domain.ErrNotFound si ninguna fila del scope coincide.
	Update(ctx context.Context, scope access.Scope, account *entity.BillingAccount) error
	Delete(ctx context.Context, scope access.Scope, id string) error
}
