package access

import "strings"

// RouteClass segmento de rutas con un conjunto fijo de roles.
type RouteClass int

const (
	ClassPublic RouteClass = iota
	ClassAdmin             // solo ADMIN
	ClassStaff             // CASHIER o ADMIN
)

// SignInPath página de inicio de sesión a la que se redirige a los anónimos.
const SignInPath = "/signin"

var classPrefixes = []struct {
	prefix string
	class  RouteClass
}{
	{"/api/admin", ClassAdmin},
	{"/admin", ClassAdmin},
	{"/api/pos", ClassStaff},
	{"/cashier", ClassStaff},
}

// ClassifyPath devuelve el segmento al que pertenece una ruta. El particionado es estático.
func ClassifyPath(path string) RouteClass {
	for _, p := range classPrefixes {
		if path == p.prefix || strings.HasPrefix(path, p.prefix+"/") {
			return p.class
		}
	}
	return ClassPublic
}

// AllowedRoles roles admitidos por un segmento. Nil para rutas públicas.
func AllowedRoles(c RouteClass) []Role {
	switch c {
	case ClassAdmin:
		return AdminOnly
	case ClassStaff:
		return Staff
	default:
		return nil
	}
}

// Landing página de inicio propia de cada rol.
func Landing(r Role) string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleCashier:
		return "/cashier/dashboard"
	default:
		return SignInPath
	}
}
