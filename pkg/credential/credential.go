// Package credential hashea y verifica contraseñas y códigos OTP.
// Todas las funciones son puras: no guardan estado ni leen configuración.
package credential

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// OTPValidity es la vigencia de un OTP desde su emisión.
const OTPValidity = 10 * time.Minute

// OTPLength cantidad de dígitos decimales del OTP.
const OTPLength = 6

// otpCost es mayor que bcrypt.DefaultCost: el espacio de un OTP es de solo 10^6 valores
// y el hash debe aguantar fuerza bruta offline durante los 10 minutos de vigencia.
const otpCost = 12

var otpUpperBound = big.NewInt(1_000_000)

// HashPassword devuelve el hash bcrypt de la contraseña.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword informa si password corresponde al hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateOTP devuelve un código de 6 dígitos (con ceros a la izquierda) tomado de crypto/rand.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpUpperBound)
	if err != nil {
		return "", fmt.Errorf("generar otp: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}

// HashOTP devuelve el hash salado del OTP.
func HashOTP(otp string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), otpCost)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}
	return string(hash), nil
}

// VerifyOTP devuelve true solo si otp es exactamente el valor hasheado.
// No controla la expiración: eso le corresponde al llamador (ver OTPExpired).
func VerifyOTP(otp, hash string) bool {
	if otp == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(otp)) == nil
}

// OTPExpiresAt calcula el vencimiento de un OTP emitido en issuedAt.
func OTPExpiresAt(issuedAt time.Time) time.Time {
	return issuedAt.Add(OTPValidity)
}

// OTPExpired compara el vencimiento contra el reloj del llamador.
func OTPExpired(expiresAt, now time.Time) bool {
	return !now.Before(expiresAt)
}
