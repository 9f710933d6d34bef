package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

var (
	_ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)
	_ repository.PlanRepository         = (*PlanRepo)(nil)
)

const subscriptionColumns = `id, admin_id, plan_id, status, is_trial, payment_method, payment_id, start_date, updated_at`

// SubscriptionRepo suscripciones sobre PostgreSQL. UNIQUE(admin_id) garantiza una fila por admin.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// Create inserta la suscripción; nunca hace upsert.
func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	query := `INSERT INTO subscriptions (` + subscriptionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, s.ID, s.AdminID, s.PlanID, s.Status, s.IsTrial, s.PaymentMethod, s.PaymentID, s.StartDate, s.UpdatedAt)
	if err != nil {
		return writeErr("insert subscription", err)
	}
	return nil
}

func (r *SubscriptionRepo) GetByAdmin(ctx context.Context, adminID string) (*entity.Subscription, error) {
	var s entity.Subscription
	err := r.q.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE admin_id = $1`, adminID).Scan(
		&s.ID, &s.AdminID, &s.PlanID, &s.Status, &s.IsTrial, &s.PaymentMethod, &s.PaymentID, &s.StartDate, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

// Update reemplaza plan, estado y datos de pago en una sola sentencia por admin_id.
func (r *SubscriptionRepo) Update(ctx context.Context, s *entity.Subscription) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE subscriptions SET plan_id = $2, status = $3, is_trial = $4, payment_method = $5, payment_id = $6, updated_at = $7
		WHERE admin_id = $1`,
		s.AdminID, s.PlanID, s.Status, s.IsTrial, s.PaymentMethod, s.PaymentID, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// PlanRepo catálogo de planes (solo lectura).
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

func (r *PlanRepo) one(ctx context.Context, where string, arg any) (*entity.SubscriptionPlan, error) {
	var p entity.SubscriptionPlan
	err := r.q.QueryRow(ctx, `SELECT id, name, display_name, price FROM subscription_plans WHERE `+where, arg).Scan(
		&p.ID, &p.Name, &p.DisplayName, &p.Price)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

func (r *PlanRepo) GetByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error) {
	return r.one(ctx, "id::text = $1", id)
}

func (r *PlanRepo) GetByName(ctx context.Context, name string) (*entity.SubscriptionPlan, error) {
	return r.one(ctx, "name = $1", name)
}

func (r *PlanRepo) List(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, display_name, price FROM subscription_plans ORDER BY price`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubscriptionPlan
	for rows.Next() {
		var p entity.SubscriptionPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.DisplayName, &p.Price); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
