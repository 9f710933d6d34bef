package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrUnauthenticated    = errors.New("sesión ausente o inválida")
	ErrForbidden          = errors.New("rol no autorizado")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrPlanNotFound       = errors.New("plan no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountDisabled    = errors.New("cuenta deshabilitada")
	ErrOTPInvalid         = errors.New("otp inválido")
	ErrOTPExpired         = errors.New("otp vencido")
	ErrTooManyAttempts    = errors.New("demasiados intentos, espere antes de reintentar")
	ErrInvalidSignature   = errors.New("firma de pago inválida")
	ErrPaymentSettled     = errors.New("el pago ya fue liquidado")
	ErrPaymentRequired    = errors.New("el plan requiere pago")
	ErrFeatureLocked      = errors.New("función no incluida en el plan")
	ErrUnavailable        = errors.New("servicio no disponible")
)
