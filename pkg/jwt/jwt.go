package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrSecretVacio se devuelve cuando no hay material de firma configurado.
var ErrSecretVacio = errors.New("jwt: secret vacío")

// Claims incluye los claims estándar JWT más el rol y el admin dueño.
// Subject es el ID del actor (admin o cajero). AdminID solo viene en tokens de cajero.
type Claims struct {
	jwt.RegisteredClaims
	Role    string `json:"role"` // "ADMIN" | "CASHIER"
	AdminID string `json:"admin_id,omitempty"`
}

// Generate genera un token firmado (HS256) con sub, role y admin_id.
func Generate(secret, subject, role, adminID, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrSecretVacio
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Role:    role,
		AdminID: adminID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
// Los claims solo se devuelven si la firma es válida.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrSecretVacio
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
