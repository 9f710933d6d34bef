// Package payment crea órdenes de pago para planes y concilia las confirmaciones de la
// pasarela. La suscripción solo cambia cuando llega una confirmación con firma válida.
package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/application/subscription"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

// MethodGateway valor de paymentMethod en suscripciones pagadas por la pasarela.
const MethodGateway = "razorpay"

const reasonInvalidSignature = "firma inválida"

// Callback confirmación de la pasarela.
type Callback struct {
	OrderID   string
	PaymentID string
	Signature string
}

// UseCase casos de uso de pagos de suscripción.
type UseCase struct {
	plans    repository.PlanRepository
	payments repository.PaymentRepository
	tx       TxRunner
	gateway  Gateway
	currency string
	now      func() time.Time
}

// NewUseCase construye el caso de uso. gateway puede ser nil si la pasarela no está
// configurada; entonces las operaciones devuelven domain.ErrUnavailable.
func NewUseCase(plans repository.PlanRepository, payments repository.PaymentRepository, tx TxRunner, gateway Gateway, currency string) *UseCase {
	if currency == "" {
		currency = "INR"
	}
	return &UseCase{
		plans:    plans,
		payments: payments,
		tx:       tx,
		gateway:  gateway,
		currency: currency,
		now:      time.Now,
	}
}

// CreateOrder abre una orden en la pasarela para el plan y registra el pago PENDING.
// No toca la suscripción.
func (uc *UseCase) CreateOrder(ctx context.Context, p access.Principal, planID string) (*dto.OrderResponse, error) {
	scope, err := access.Authorize(p, access.ActionCreate, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	if uc.gateway == nil {
		return nil, domain.ErrUnavailable
	}
	pl, err := uc.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("payment: obtener plan: %w", err)
	}
	if pl == nil {
		return nil, domain.ErrPlanNotFound
	}
	if pl.Free() {
		return nil, fmt.Errorf("%w: el plan %s no requiere pago", domain.ErrInvalidInput, pl.Name)
	}

	amount := pl.Price.Shift(2).Round(0).IntPart()
	receipt := "rcpt_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	order, err := uc.gateway.CreateOrder(ctx, amount, uc.currency, receipt, map[string]string{
		"admin_id": scope.AdminID,
		"plan_id":  pl.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("payment: crear orden en pasarela: %w", err)
	}

	now := uc.now()
	pay := &entity.Payment{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		AdminID:   scope.AdminID,
		PlanID:    pl.ID,
		Amount:    amount,
		Currency:  uc.currency,
		Status:    entity.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.payments.Create(ctx, pay); err != nil {
		return nil, fmt.Errorf("payment: registrar pago: %w", err)
	}
	return &dto.OrderResponse{
		OrderID:  order.ID,
		Amount:   amount,
		Currency: uc.currency,
		KeyID:    uc.gateway.KeyID(),
		PlanID:   pl.ID,
		PlanName: pl.Name,
	}, nil
}

// Verify concilia la confirmación que el checkout del admin envía tras pagar.
// Una firma inválida deja el pago FAILED (terminal) y devuelve domain.ErrInvalidSignature.
func (uc *UseCase) Verify(ctx context.Context, p access.Principal, cb Callback) (*dto.PaymentResponse, error) {
	if _, err := access.Authorize(p, access.ActionUpdate, "", access.AdminOnly...); err != nil {
		return nil, err
	}
	if uc.gateway == nil {
		return nil, domain.ErrUnavailable
	}
	pay, err := uc.ownedPayment(ctx, p, cb.OrderID)
	if err != nil {
		return nil, err
	}
	if !uc.gateway.VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature) {
		if !pay.Settled() {
			if _, err := uc.fail(ctx, pay, cb.PaymentID, reasonInvalidSignature); err != nil {
				return nil, err
			}
		}
		return nil, domain.ErrInvalidSignature
	}
	return uc.settle(ctx, pay, cb.PaymentID)
}

// HandleWebhook concilia una entrega directa de la pasarela (sin sesión). Con firma
// inválida no escribe nada.
func (uc *UseCase) HandleWebhook(ctx context.Context, cb Callback) (*dto.PaymentResponse, error) {
	if uc.gateway == nil {
		return nil, domain.ErrUnavailable
	}
	if !uc.gateway.VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature) {
		return nil, domain.ErrInvalidSignature
	}
	pay, err := uc.payments.GetByOrderID(ctx, cb.OrderID)
	if err != nil {
		return nil, fmt.Errorf("payment: obtener pago: %w", err)
	}
	if pay == nil {
		return nil, domain.ErrNotFound
	}
	return uc.settle(ctx, pay, cb.PaymentID)
}

// MarkFailed registra un fallo informado por el checkout del admin.
func (uc *UseCase) MarkFailed(ctx context.Context, p access.Principal, orderID, reason string) (*dto.PaymentResponse, error) {
	if _, err := access.Authorize(p, access.ActionUpdate, "", access.AdminOnly...); err != nil {
		return nil, err
	}
	pay, err := uc.ownedPayment(ctx, p, orderID)
	if err != nil {
		return nil, err
	}
	if pay.Settled() {
		return nil, domain.ErrPaymentSettled
	}
	if reason == "" {
		reason = "cancelado por el usuario"
	}
	return uc.fail(ctx, pay, "", reason)
}

// ListPayments historial de pagos del admin.
func (uc *UseCase) ListPayments(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.PaymentListResponse, error) {
	scope, err := access.Authorize(p, access.ActionRead, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.payments.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("payment: listar pagos: %w", err)
	}
	items := make([]dto.PaymentResponse, 0, len(list))
	for _, pay := range list {
		items = append(items, *toPaymentResponse(pay))
	}
	return &dto.PaymentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ownedPayment busca el pago por orden y lo autoriza contra su dueño. Un pago de otro
// admin es indistinguible de uno inexistente.
func (uc *UseCase) ownedPayment(ctx context.Context, p access.Principal, orderID string) (*entity.Payment, error) {
	pay, err := uc.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("payment: obtener pago: %w", err)
	}
	if pay == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := access.Authorize(p, access.ActionUpdate, pay.AdminID, access.AdminOnly...); err != nil {
		return nil, err
	}
	return pay, nil
}

func (uc *UseCase) fail(ctx context.Context, pay *entity.Payment, paymentID, reason string) (*dto.PaymentResponse, error) {
	failed := *pay
	failed.Status = entity.PaymentStatusFailed
	failed.PaymentID = paymentID
	failed.FailureReason = reason
	failed.UpdatedAt = uc.now()
	ok, err := uc.payments.Settle(ctx, &failed)
	if err != nil {
		return nil, fmt.Errorf("payment: marcar fallido: %w", err)
	}
	if !ok {
		return nil, domain.ErrPaymentSettled
	}
	return toPaymentResponse(&failed), nil
}

// settle liquida el pago como SUCCESS y sube el plan en la misma transacción. Repetir la
// misma confirmación exitosa es idempotente; cualquier otro pago ya liquidado es terminal.
func (uc *UseCase) settle(ctx context.Context, pay *entity.Payment, paymentID string) (*dto.PaymentResponse, error) {
	if pay.Settled() {
		if pay.Status == entity.PaymentStatusSuccess && pay.PaymentID == paymentID {
			return toPaymentResponse(pay), nil
		}
		return nil, domain.ErrPaymentSettled
	}

	settled := *pay
	err := uc.tx.RunSubscription(ctx, func(
		subs repository.SubscriptionRepository,
		plans repository.PlanRepository,
		payments repository.PaymentRepository,
	) error {
		sub, err := subs.GetByAdmin(ctx, pay.AdminID)
		if err != nil {
			return fmt.Errorf("payment: obtener suscripción: %w", err)
		}
		if sub == nil {
			return domain.ErrNotFound
		}
		pl, err := plans.GetByID(ctx, pay.PlanID)
		if err != nil {
			return fmt.Errorf("payment: obtener plan: %w", err)
		}
		if pl == nil {
			return domain.ErrPlanNotFound
		}

		now := uc.now()
		settled.Status = entity.PaymentStatusSuccess
		settled.PaymentID = paymentID
		settled.SubscriptionID = sub.ID
		settled.UpdatedAt = now
		ok, err := payments.Settle(ctx, &settled)
		if err != nil {
			return fmt.Errorf("payment: liquidar pago: %w", err)
		}
		if !ok {
			return domain.ErrPaymentSettled
		}
		_, _, err = subscription.UpgradeInTx(ctx, subs, plans, pay.AdminID, pl.Name,
			&subscription.PaymentEvidence{Method: MethodGateway, PaymentID: paymentID}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(&settled), nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		OrderID:       p.OrderID,
		PaymentID:     p.PaymentID,
		PlanID:        p.PlanID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        p.Status,
		FailureReason: p.FailureReason,
		CreatedAt:     p.CreatedAt,
	}
}
