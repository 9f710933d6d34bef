package http

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
)

// LocalPrincipal clave de c.Locals con el actor de la petición.
const LocalPrincipal = "principal"

// SessionCookie cookie alternativa al header Authorization (navegación HTML).
const SessionCookie = "session"

// principalResolver lo implementa *auth.SessionResolver.
type principalResolver interface {
	Resolve(token string) access.Principal
}

// AuthMiddleware resuelve el actor a partir del Bearer token o de la cookie de sesión y lo
// deja en c.Locals. No rechaza nada: un token ausente o inválido produce el actor anónimo
// y la decisión queda para RouteGate, RequireRole o el caso de uso.
func AuthMiddleware(resolver principalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalPrincipal, resolver.Resolve(sessionToken(c)))
		return c.Next()
	}
}

func sessionToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Cookies(SessionCookie)
}

// GetPrincipal devuelve el actor de la petición (anónimo si AuthMiddleware no corrió).
func GetPrincipal(c *fiber.Ctx) access.Principal {
	p, _ := c.Locals(LocalPrincipal).(access.Principal)
	return p
}

// RouteGate aplica los roles del segmento de rutas. Para navegación HTML redirige: el
// anónimo va a /signin?next=<ruta> y el rol equivocado a su propia página de inicio. Para
// la API responde 401 en ambos casos. Debe ir después de AuthMiddleware.
func RouteGate(class access.RouteClass) fiber.Handler {
	allowed := access.AllowedRoles(class)
	return func(c *fiber.Ctx) error {
		if allowed == nil || access.ClassifyPath(c.Path()) != class {
			return c.Next()
		}
		p := GetPrincipal(c)
		_, err := access.Authorize(p, access.ActionRead, "", allowed...)
		if err == nil {
			return c.Next()
		}
		if wantsHTML(c) {
			if !p.Authenticated() {
				return c.Redirect(access.SignInPath+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
			}
			return c.Redirect(access.Landing(p.Role), fiber.StatusFound)
		}
		return denied(c, err)
	}
}

// RequireRole verifica el rol del actor para una ruta concreta.
func RequireRole(roles ...access.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := access.Authorize(GetPrincipal(c), access.ActionRead, "", roles...); err != nil {
			return denied(c, err)
		}
		return c.Next()
	}
}

// denied responde 401 tanto para sesión ausente como para rol no autorizado; el código
// del cuerpo los distingue.
func denied(c *fiber.Ctx, err error) error {
	code := "UNAUTHENTICATED"
	if errors.Is(err, domain.ErrForbidden) {
		code = "FORBIDDEN"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func wantsHTML(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), "/api/") {
		return false
	}
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}
