package dto

// SignupRequest alta de un admin (dueño de negocio).
type SignupRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	BusinessName string `json:"business_name" validate:"required,min=1,max=200"`
	Phone        string `json:"phone" validate:"omitempty,max=20"`
}

// LoginRequest credenciales de admin o cajero.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyOTPRequest código recibido por correo.
type VerifyOTPRequest struct {
	OTP string `json:"otp" validate:"required,len=6,numeric"`
}

// LoginResponse token de sesión y datos del actor.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
	Role      string `json:"role"`
	ID        string `json:"id"`
	AdminID   string `json:"admin_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// OTPResponse resultado de enviar o verificar un OTP.
type OTPResponse struct {
	EmailVerified bool   `json:"email_verified"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

// MeResponse identidad del actor de la sesión y su negocio.
type MeResponse struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	AdminID      string `json:"admin_id"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	LogoURL      string `json:"logo_url,omitempty"`
}
