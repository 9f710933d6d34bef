package auth

import (
	"time"

	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionResolver traduce el token de sesión a un Principal. Falla cerrado: cualquier
// token que no valide produce el actor anónimo, nunca un rol por defecto.
type SessionResolver struct {
	cfg JWTConfig
}

// NewSessionResolver construye el resolver con el secreto cargado al arrancar.
func NewSessionResolver(cfg JWTConfig) *SessionResolver {
	return &SessionResolver{cfg: cfg}
}

// Resolve valida firma, expiración y emisor y devuelve el actor del token.
func (r *SessionResolver) Resolve(token string) access.Principal {
	if token == "" {
		return access.Anonymous()
	}
	claims, err := jwt.Parse(r.cfg.Secret, token)
	if err != nil {
		return access.Anonymous()
	}
	if r.cfg.Issuer != "" && claims.Issuer != r.cfg.Issuer {
		return access.Anonymous()
	}
	role, ok := access.ParseRole(claims.Role)
	if !ok || claims.Subject == "" {
		return access.Anonymous()
	}
	p := access.Principal{ID: claims.Subject, Role: role}
	if role == access.RoleCashier {
		if claims.AdminID == "" {
			return access.Anonymous()
		}
		p.AdminID = claims.AdminID
	}
	return p
}

// Issue firma un token para el actor.
func (r *SessionResolver) Issue(p access.Principal) (string, error) {
	if !p.Authenticated() {
		return "", domain.ErrUnauthenticated
	}
	adminID := ""
	if p.Role == access.RoleCashier {
		adminID = p.AdminID
	}
	return jwt.Generate(r.cfg.Secret, p.ID, string(p.Role), adminID, r.cfg.Issuer, r.cfg.ExpMinutes)
}

// TTL vigencia de los tokens emitidos.
func (r *SessionResolver) TTL() time.Duration {
	return time.Duration(r.cfg.ExpMinutes) * time.Minute
}
