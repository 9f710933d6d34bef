package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, order_id, payment_id, admin_id, plan_id, COALESCE(subscription_id::text, ''),
	amount, currency, status, failure_reason, created_at, updated_at`

// PaymentRepo pagos de la pasarela sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func scanPayment(row interface{ Scan(...any) error }) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.PaymentID, &p.AdminID, &p.PlanID, &p.SubscriptionID,
		&p.Amount, &p.Currency, &p.Status, &p.FailureReason, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, order_id, payment_id, admin_id, plan_id, subscription_id, amount, currency, status, failure_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.OrderID, p.PaymentID, p.AdminID, p.PlanID, nullString(p.SubscriptionID),
		p.Amount, p.Currency, p.Status, p.FailureReason, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return writeErr("insert payment", err)
	}
	return nil
}

func (r *PaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, orderID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// Settle liquida el pago solo si sigue PENDING; la condición va en el WHERE para que dos
// confirmaciones concurrentes no liquiden dos veces.
func (r *PaymentRepo) Settle(ctx context.Context, p *entity.Payment) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE payments SET status = $2, payment_id = $3, subscription_id = $4, failure_reason = $5, updated_at = $6
		WHERE order_id = $1 AND status = $7`,
		p.OrderID, p.Status, p.PaymentID, nullString(p.SubscriptionID), p.FailureReason, p.UpdatedAt,
		entity.PaymentStatusPending)
	if err != nil {
		return false, fmt.Errorf("settle payment: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PaymentRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE admin_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		scope.AdminID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
