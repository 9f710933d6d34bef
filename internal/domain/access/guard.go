package access

import "github.com/jhoicas/BillSync-api/internal/domain"

// Action operación que el actor pretende realizar. Viaja en el Scope para auditoría y logs.
type Action string

// Acciones.
const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Scope filtro de tenant producido por Authorize. Los repositorios lo reciben y lo
// traducen a "admin_id = $n" en la propia consulta; nunca se aplica después de leer.
type Scope struct {
	AdminID     string
	PrincipalID string
	Role        Role
	Action      Action
}

// Authorize es el único punto de decisión de acceso. Reglas, en orden:
//  1. actor anónimo                         → domain.ErrUnauthenticated
//  2. rol fuera de allowed                  → domain.ErrForbidden
//  3. ADMIN                                 → scope admin_id = principal.ID
//  4. CASHIER                               → scope admin_id = principal.AdminID
//  5. targetOwnerAdminID fuera del scope    → domain.ErrNotFound
//
// La regla 5 devuelve NotFound y no Forbidden para que "existe pero no es tuyo" sea
// indistinguible de "no existe". Cuando el recurso aún no se ha leído, targetOwnerAdminID
// va vacío y la misma regla la aplica la consulta con el Scope (cero filas → NotFound).
func Authorize(p Principal, action Action, targetOwnerAdminID string, allowed ...Role) (Scope, error) {
	if !p.Authenticated() {
		return Scope{}, domain.ErrUnauthenticated
	}
	if !roleAllowed(p.Role, allowed) {
		return Scope{}, domain.ErrForbidden
	}

	var adminID string
	switch p.Role {
	case RoleAdmin:
		adminID = p.ID
	case RoleCashier:
		adminID = p.AdminID
	}
	// Un cajero sin admin no puede acotar nada.
	if adminID == "" {
		return Scope{}, domain.ErrUnauthenticated
	}

	if targetOwnerAdminID != "" && targetOwnerAdminID != adminID {
		return Scope{}, domain.ErrNotFound
	}
	return Scope{AdminID: adminID, PrincipalID: p.ID, Role: p.Role, Action: action}, nil
}

// AdminOnly y Staff son los conjuntos de roles habituales.
var (
	AdminOnly = []Role{RoleAdmin}
	Staff     = []Role{RoleAdmin, RoleCashier}
)

func roleAllowed(r Role, allowed []Role) bool {
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}
