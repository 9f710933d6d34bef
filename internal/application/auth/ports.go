package auth

import (
	"context"
	"time"

	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

// Notifier entrega el OTP de verificación de email.
type Notifier interface {
	SendOTP(ctx context.Context, to, name, code string, expiresAt time.Time) error
}

// SignupTxRunner ejecuta el alta de admin y su suscripción en una sola transacción.
type SignupTxRunner interface {
	RunSignup(ctx context.Context, fn func(
		admins repository.AdminRepository,
		subs repository.SubscriptionRepository,
		plans repository.PlanRepository,
	) error) error
}
