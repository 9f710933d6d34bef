package repository

import (
	"context"

	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Product, error)
	List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context, scope access.Scope) (int, error)
	Update(ctx context.Context, scope access.Scope, product *entity.Product) error
	Delete(ctx context.Context, scope access.Scope, id string) error
}
