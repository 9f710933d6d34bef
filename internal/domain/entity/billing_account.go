package entity

import "time"

// Estados de una cuenta de cajero.
const (
	AccountStatusActive   = "ACTIVE"
	AccountStatusDisabled = "DISABLED"
)

// BillingAccount cuenta de cajero. Pertenece a exactamente un Admin.
type BillingAccount struct {
	ID           string
	AdminID      string
	Name         string
	Email        string
	PasswordHash string
	Status       string // ACTIVE, DISABLED
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
