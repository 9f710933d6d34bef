// Package access contiene el modelo de autorización: el actor autenticado (Principal),
// la decisión ALLOW/DENY (Authorize) y el filtro de tenant (Scope) que toda consulta
// a la base de datos debe aplicar.
package access

// Role etiqueta de rol de un actor.
type Role string

// Roles válidos.
const (
	RoleAdmin   Role = "ADMIN"
	RoleCashier Role = "CASHIER"
)

// ParseRole valida una etiqueta de rol. Devuelve false para cualquier valor desconocido.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleCashier:
		return RoleCashier, true
	default:
		return "", false
	}
}

// Principal actor autenticado de una petición. Se construye por petición a partir del
// token de sesión y nunca se persiste. El valor cero es el actor anónimo.
type Principal struct {
	ID      string
	Role    Role
	AdminID string // solo CASHIER: admin que lo creó
}

// Anonymous devuelve el actor no autenticado.
func Anonymous() Principal { return Principal{} }

// Authenticated informa si el actor tiene identidad y rol.
func (p Principal) Authenticated() bool {
	return p.ID != "" && p.Role != ""
}

// OwnerAdminID devuelve el admin dueño del tenant del actor:
// su propio ID si es ADMIN, el admin que lo creó si es CASHIER.
func (p Principal) OwnerAdminID() string {
	if p.Role == RoleCashier {
		return p.AdminID
	}
	return p.ID
}
