package repository

import (
	"context"

	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
)

// PaymentRepository puerto de persistencia de pagos de la pasarela.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	// GetByOrderID no aplica scope: la llamada de la pasarela llega sin sesión.
	// Quien la use debe autorizar con el AdminID del pago como dueño.
	GetByOrderID(ctx context.Context, orderID string) (*entity.Payment, error)
	// Settle liquida un pago PENDING. Devuelve false si ya estaba liquidado.
	Settle(ctx context.Context, payment *entity.Payment) (bool, error)
	List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Payment, error)
}
