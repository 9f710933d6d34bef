package entity

import "time"

// Estados de un pago de la pasarela.
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"
)

// Payment registro de una transacción de la pasarela. Nace PENDING al crear la orden y se
// liquida (SUCCESS o FAILED) una sola vez; después no cambia.
type Payment struct {
	ID             string
	OrderID        string
	PaymentID      string
	AdminID        string
	PlanID         string
	SubscriptionID string // vacío hasta que el pago acredita la suscripción
	Amount         int64  // unidades menores (paise)
	Currency       string
	Status         string
	FailureReason  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Settled informa si el pago ya no admite cambios.
func (p *Payment) Settled() bool {
	return p.Status != PaymentStatusPending
}
