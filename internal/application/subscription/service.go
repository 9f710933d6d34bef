// Package subscription mantiene el plan vigente de cada admin. Una suscripción nace ACTIVE en
// STANDARD al registrar el admin y después solo avanza por Upgrade; nunca se recrea.
package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/plan"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

// PaymentEvidence datos del pago que acreditan un cambio de plan.
type PaymentEvidence struct {
	Method    string
	PaymentID string
}

// Service casos de uso de suscripción.
type Service struct {
	subs  repository.SubscriptionRepository
	plans repository.PlanRepository
	now   func() time.Time
}

// NewService construye el servicio.
func NewService(subs repository.SubscriptionRepository, plans repository.PlanRepository) *Service {
	return &Service{subs: subs, plans: plans, now: time.Now}
}

// CreateDefault crea la suscripción inicial del admin: STANDARD, ACTIVE, sin prueba.
// Pensada para ejecutarse dentro de la transacción del alta; si el admin ya tiene
// suscripción el repositorio devuelve domain.ErrDuplicate y no se sobrescribe nada.
func CreateDefault(ctx context.Context, subs repository.SubscriptionRepository, plans repository.PlanRepository, adminID string, now time.Time) (*entity.Subscription, error) {
	p, err := plans.GetByName(ctx, entity.PlanStandard)
	if err != nil {
		return nil, fmt.Errorf("subscription: buscar plan por defecto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrPlanNotFound
	}
	sub := &entity.Subscription{
		ID:        uuid.New().String(),
		AdminID:   adminID,
		PlanID:    p.ID,
		Status:    entity.SubscriptionActive,
		IsTrial:   false,
		StartDate: now,
		UpdatedAt: now,
	}
	if err := subs.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// UpgradeInTx reemplaza el plan del admin usando los repos recibidos (los de una transacción
// en curso). El plan se busca antes de cualquier escritura: con domain.ErrPlanNotFound la
// fila queda intacta. Sin evidencia, paymentMethod/paymentId conservan su valor anterior.
func UpgradeInTx(
	ctx context.Context,
	subs repository.SubscriptionRepository,
	plans repository.PlanRepository,
	adminID, planName string,
	evidence *PaymentEvidence,
	now time.Time,
) (*entity.Subscription, *entity.SubscriptionPlan, error) {
	p, err := plans.GetByName(ctx, strings.ToUpper(strings.TrimSpace(planName)))
	if err != nil {
		return nil, nil, fmt.Errorf("subscription: buscar plan: %w", err)
	}
	if p == nil {
		return nil, nil, domain.ErrPlanNotFound
	}
	sub, err := subs.GetByAdmin(ctx, adminID)
	if err != nil {
		return nil, nil, fmt.Errorf("subscription: obtener suscripción: %w", err)
	}
	if sub == nil {
		return nil, nil, domain.ErrNotFound
	}

	next := *sub
	next.PlanID = p.ID
	next.Status = entity.SubscriptionActive
	next.IsTrial = false
	if evidence != nil {
		next.PaymentMethod = evidence.Method
		next.PaymentID = evidence.PaymentID
	}
	next.UpdatedAt = now
	if err := subs.Update(ctx, &next); err != nil {
		return nil, nil, err
	}
	return &next, p, nil
}

// Upgrade cambia el plan del admin fuera de una transacción externa.
func (s *Service) Upgrade(ctx context.Context, adminID, planName string, evidence *PaymentEvidence) (*entity.Subscription, error) {
	sub, _, err := UpgradeInTx(ctx, s.subs, s.plans, adminID, planName, evidence, s.now())
	return sub, err
}

// Current devuelve la suscripción del admin con su plan y derechos. Solo ADMIN.
func (s *Service) Current(ctx context.Context, p access.Principal) (*dto.SubscriptionResponse, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	sub, err := s.subs.GetByAdmin(ctx, scope.AdminID)
	if err != nil {
		return nil, fmt.Errorf("subscription: obtener suscripción: %w", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	pl, err := s.plans.GetByID(ctx, sub.PlanID)
	if err != nil {
		return nil, fmt.Errorf("subscription: obtener plan: %w", err)
	}
	if pl == nil {
		return nil, domain.ErrPlanNotFound
	}
	return toSubscriptionResponse(sub, pl), nil
}

// ChangePlan cambia a un plan gratuito sin pasar por la pasarela. Un plan con precio
// devuelve domain.ErrPaymentRequired: esos solo se acreditan con un pago verificado.
//
// El cambio se acepta sea cual sea el plan vigente, también desde uno pagado: es la única
// forma de bajar de plan, no existe transición de baja ni de cancelación aparte. La fila
// se actualiza en el sitio como cualquier Upgrade, conserva la evidencia del último pago y
// lo pagado no se reembolsa ni se prorratea.
func (s *Service) ChangePlan(ctx context.Context, p access.Principal, planName string) (*dto.SubscriptionResponse, error) {
	scope, err := access.Authorize(p, access.ActionUpdate, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	target, err := s.plans.GetByName(ctx, strings.ToUpper(strings.TrimSpace(planName)))
	if err != nil {
		return nil, fmt.Errorf("subscription: buscar plan: %w", err)
	}
	if target == nil {
		return nil, domain.ErrPlanNotFound
	}
	if !target.Free() {
		return nil, domain.ErrPaymentRequired
	}
	sub, pl, err := UpgradeInTx(ctx, s.subs, s.plans, scope.AdminID, target.Name, nil, s.now())
	if err != nil {
		return nil, err
	}
	return toSubscriptionResponse(sub, pl), nil
}

// Entitlements devuelve los derechos del plan vigente. Sin suscripción se aplican los de
// STANDARD, nunca más.
func (s *Service) Entitlements(ctx context.Context, adminID string) (plan.Entitlements, error) {
	sub, err := s.subs.GetByAdmin(ctx, adminID)
	if err != nil {
		return plan.Entitlements{}, fmt.Errorf("subscription: obtener suscripción: %w", err)
	}
	if sub == nil || sub.Status != entity.SubscriptionActive {
		return plan.For(entity.PlanStandard), nil
	}
	pl, err := s.plans.GetByID(ctx, sub.PlanID)
	if err != nil {
		return plan.Entitlements{}, fmt.Errorf("subscription: obtener plan: %w", err)
	}
	if pl == nil {
		return plan.For(entity.PlanStandard), nil
	}
	return plan.For(pl.Name), nil
}

// HasFeature informa si el plan vigente del admin incluye la función.
func (s *Service) HasFeature(ctx context.Context, adminID string, f plan.Feature) (bool, error) {
	e, err := s.Entitlements(ctx, adminID)
	if err != nil {
		return false, err
	}
	return e.Has(f), nil
}

// ListPlans devuelve el catálogo público de planes.
func (s *Service) ListPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	list, err := s.plans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscription: listar planes: %w", err)
	}
	out := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPlanResponse(p))
	}
	return out, nil
}

func toPlanResponse(p *entity.SubscriptionPlan) dto.PlanResponse {
	return dto.PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		DisplayName:  p.DisplayName,
		Price:        p.Price,
		Entitlements: plan.For(p.Name),
	}
}

func toSubscriptionResponse(s *entity.Subscription, p *entity.SubscriptionPlan) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		AdminID:       s.AdminID,
		Status:        s.Status,
		IsTrial:       s.IsTrial,
		PaymentMethod: s.PaymentMethod,
		PaymentID:     s.PaymentID,
		StartDate:     s.StartDate,
		UpdatedAt:     s.UpdatedAt,
		Plan:          toPlanResponse(p),
	}
}
