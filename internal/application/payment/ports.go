package payment

import (
	"context"

	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

// GatewayOrder orden creada en la pasarela.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// Gateway puerto hacia la pasarela de pagos.
type Gateway interface {
	// CreateOrder pide una orden. notes viaja como metadato opaco para conciliar después.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error)
	// VerifySignature recalcula HMAC-SHA256(orderID|paymentID) y compara en tiempo constante.
	VerifySignature(orderID, paymentID, signature string) bool
	// KeyID clave pública que el checkout del cliente necesita.
	KeyID() string
}

// TxRunner ejecuta fn dentro de una transacción con los repos de suscripción y pagos.
type TxRunner interface {
	RunSubscription(ctx context.Context, fn func(
		subs repository.SubscriptionRepository,
		plans repository.PlanRepository,
		payments repository.PaymentRepository,
	) error) error
}
