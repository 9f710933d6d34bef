package repository

import (
	"context"

	"github.com/jhoicas/BillSync-api/internal/domain/entity"
)

// SubscriptionRepository puerto de persistencia de suscripciones. La clave única es admin_id.
type SubscriptionRepository interface {
	// Create falla con domain.ErrDuplicate si el admin ya tiene suscripción (nunca sobrescribe).
	Create(ctx context.Context, sub *entity.Subscription) error
	GetByAdmin(ctx context.Context, adminID string) (*entity.Subscription, error)
	// Update actualiza la fila por admin_id; domain.ErrNotFound si no existe.
	Update(ctx context.Context, sub *entity.Subscription) error
}

// PlanRepository catálogo de planes (solo lectura).
type PlanRepository interface {
	List(ctx context.Context) ([]*entity.SubscriptionPlan, error)
	GetByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error)
	GetByName(ctx context.Context, name string) (*entity.SubscriptionPlan, error)
}
