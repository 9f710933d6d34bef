package dto

import "time"

// AdminProfileResponse perfil del admin (sin hashes).
type AdminProfileResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	BusinessName  string    `json:"business_name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	UPIID         string    `json:"upi_id"`
	LogoURL       string    `json:"logo_url"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdateProfileRequest campos editables del perfil. Nil = sin cambio.
type UpdateProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	BusinessName *string `json:"business_name" validate:"omitempty,min=1,max=200"`
	Phone        *string `json:"phone" validate:"omitempty,max=20"`
	Address      *string `json:"address" validate:"omitempty,max=500"`
	UPIID        *string `json:"upi_id" validate:"omitempty,max=100,contains=@"`
}

// CreateCashierRequest alta de cajero.
type CreateCashierRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateCashierRequest cambios sobre un cajero. Nil = sin cambio.
type UpdateCashierRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Status   *string `json:"status" validate:"omitempty,oneof=ACTIVE DISABLED"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// CashierResponse cajero (sin hash).
type CashierResponse struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CashierListResponse lista paginada de cajeros.
type CashierListResponse struct {
	Items []CashierResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
