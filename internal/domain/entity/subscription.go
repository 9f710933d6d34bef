package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nombres de planes del catálogo.
const (
	PlanStandard   = "STANDARD"
	PlanPremium    = "PREMIUM"
	PlanEnterprise = "ENTERPRISE"
)

// Estados de suscripción.
const (
	SubscriptionActive = "ACTIVE"
)

// SubscriptionPlan entrada del catálogo estático de planes (solo lectura).
type SubscriptionPlan struct {
	ID          string
	Name        string
	DisplayName string
	Price       decimal.Decimal // precio en unidades mayores (ej. rupias)
}

// Free informa si el plan no tiene costo.
func (p *SubscriptionPlan) Free() bool {
	return !p.Price.IsPositive()
}

// Subscription plan vigente de un Admin. Exactamente una fila por admin: se crea al
// registrar el admin y luego solo se actualiza.
type Subscription struct {
	ID            string
	AdminID       string
	PlanID        string
	Status        string
	IsTrial       bool
	PaymentMethod string
	PaymentID     string
	StartDate     time.Time
	UpdatedAt     time.Time
}
