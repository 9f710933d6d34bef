package entity

import "time"

// Admin dueño de un tenant: administra cajeros, productos, facturas y su suscripción.
type Admin struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string // bcrypt
	BusinessName  string
	Phone         string
	Address       string
	UPIID         string // VPA para cobros por QR (ej. tienda@okicici)
	LogoURL       string
	EmailVerified bool
	OTPHash       string     // hash del último OTP emitido
	OTPExpiresAt  *time.Time // nil = no hay OTP pendiente
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
