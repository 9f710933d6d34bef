package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/BillSync-api/internal/application/auth"
	"github.com/jhoicas/BillSync-api/internal/application/payment"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

var (
	_ auth.SignupTxRunner = (*TxRunner)(nil)
	_ payment.TxRunner    = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSignup alta de admin y su suscripción inicial con repos atados a la tx.
func (r *TxRunner) RunSignup(ctx context.Context, fn func(
	admins repository.AdminRepository,
	subs repository.SubscriptionRepository,
	plans repository.PlanRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewAdminRepository(tx), NewSubscriptionRepository(tx), NewPlanRepository(tx))
	})
}

// RunSubscription liquidación de pago y cambio de plan con repos atados a la tx.
func (r *TxRunner) RunSubscription(ctx context.Context, fn func(
	subs repository.SubscriptionRepository,
	plans repository.PlanRepository,
	payments repository.PaymentRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewSubscriptionRepository(tx), NewPlanRepository(tx), NewPaymentRepository(tx))
	})
}
