package repository

import (
	"context"

	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
)

// AdminRepository define el puerto de persistencia para Admin (DIP).
// Las operaciones sobre un admin existente reciben el Scope y filtran por id = scope.AdminID.
type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	Get(ctx context.Context, scope access.Scope) (*entity.Admin, error)
	// GetByEmail se usa solo en el login (ruta pública, sin scope).
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
	Update(ctx context.Context, scope access.Scope, admin *entity.Admin) error
}
