package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BillSync-api/internal/domain/plan"
)

// PlanResponse entrada del catálogo con sus derechos.
type PlanResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	DisplayName  string            `json:"display_name"`
	Price        decimal.Decimal   `json:"price"`
	Entitlements plan.Entitlements `json:"entitlements"`
}

// SubscriptionResponse suscripción vigente del admin.
type SubscriptionResponse struct {
	AdminID       string       `json:"admin_id"`
	Status        string       `json:"status"`
	IsTrial       bool         `json:"is_trial"`
	PaymentMethod string       `json:"payment_method,omitempty"`
	PaymentID     string       `json:"payment_id,omitempty"`
	StartDate     time.Time    `json:"start_date"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Plan          PlanResponse `json:"plan"`
}

// ChangePlanRequest cambio directo a un plan gratuito.
type ChangePlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

// CreateOrderRequest pedido de orden de pago para un plan.
type CreateOrderRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// OrderResponse datos que el checkout del cliente necesita.
type OrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"` // unidades menores
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
	PlanID   string `json:"plan_id"`
	PlanName string `json:"plan_name"`
}

// PaymentCallbackRequest confirmación de la pasarela (cliente o webhook).
type PaymentCallbackRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required,hexadecimal"`
}

// PaymentFailedRequest fallo informado por el checkout.
type PaymentFailedRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// PaymentResponse registro de pago.
type PaymentResponse struct {
	OrderID       string    `json:"order_id"`
	PaymentID     string    `json:"payment_id,omitempty"`
	PlanID        string    `json:"plan_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentListResponse historial de pagos.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
