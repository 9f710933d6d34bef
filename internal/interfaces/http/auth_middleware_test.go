package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BillSync-api/internal/application/auth"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	apphttp "github.com/jhoicas/BillSync-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/BillSync-api/pkg/jwt"
)

const (
	testAdminID   = "00000000-0000-0000-0000-000000000001"
	testCashierID = "00000000-0000-0000-0000-000000000002"
)

// buildTestApp aplicación mínima con AuthMiddleware + RequireRole y un handler que
// devuelve el actor resuelto.
func buildTestApp(allowed ...access.Role) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(auth.NewSessionResolver(jwtCfg)),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			p := apphttp.GetPrincipal(c)
			return c.JSON(fiber.Map{"id": p.ID, "role": p.Role, "admin_id": p.AdminID})
		},
	)
	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.NewSessionResolver(jwtCfg).Issue(access.Principal{ID: testAdminID, Role: access.RoleAdmin})
	require.NoError(t, err)
	return tok
}

func cashierToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.NewSessionResolver(jwtCfg).Issue(access.Principal{ID: testCashierID, Role: access.RoleCashier, AdminID: testAdminID})
	require.NoError(t, err)
	return tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	resp := doRequest(t, buildTestApp(access.AdminOnly...), "Bearer "+adminToken(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testAdminID, body["id"])
	assert.Equal(t, "ADMIN", body["role"])
}

func TestRequireRole_CajeroAccedeRutaStaff(t *testing.T) {
	resp := doRequest(t, buildTestApp(access.Staff...), "Bearer "+cashierToken(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testAdminID, body["admin_id"])
}

// Un rol distinto al requerido responde 401 con código FORBIDDEN.
func TestRequireRole_CajeroBloqueadoEnRutaAdmin(t *testing.T) {
	resp := doRequest(t, buildTestApp(access.AdminOnly...), "Bearer "+cashierToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testAdminID, "", "", testIssuer, 60)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(access.AdminOnly...), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHENTICATED")
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(access.AdminOnly...), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	for _, h := range []string{"Bearer token.invalido.aqui", "Basic abc", "Bearer "} {
		resp := doRequest(t, buildTestApp(access.Staff...), h)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, h)
	}
}

func TestRequireRole_TokenDeOtroEmisor_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testAdminID, "ADMIN", "", "otro-emisor", 60)
	require.NoError(t, err)
	resp := doRequest(t, buildTestApp(access.AdminOnly...), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_LeeCookieDeSesion(t *testing.T) {
	app := buildTestApp(access.AdminOnly...)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: adminToken(t)})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// buildGateApp monta RouteGate sobre las páginas como lo hace el router.
func buildGateApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.AuthMiddleware(auth.NewSessionResolver(jwtCfg)))
	app.Use("/admin", apphttp.RouteGate(access.ClassAdmin))
	app.Use("/cashier", apphttp.RouteGate(access.ClassStaff))
	ok := func(c *fiber.Ctx) error { return c.SendString("página") }
	app.Get("/admin/dashboard", ok)
	app.Get("/cashier/dashboard", ok)
	return app
}

func navigate(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRouteGate_Navegacion(t *testing.T) {
	app := buildGateApp()

	resp := navigate(t, app, "/admin/dashboard?tab=hoy", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/signin?next=%2Fadmin%2Fdashboard%3Ftab%3Dhoy", resp.Header.Get("Location"))

	resp = navigate(t, app, "/admin/dashboard", cashierToken(t))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/cashier/dashboard", resp.Header.Get("Location"))

	resp = navigate(t, app, "/admin/dashboard", adminToken(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = navigate(t, app, "/cashier/dashboard", adminToken(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode, "ADMIN también es staff")

	resp = navigate(t, app, "/cashier/dashboard", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/signin?next=%2Fcashier%2Fdashboard", resp.Header.Get("Location"))
}

func TestRouteGate_SinHTMLResponde401(t *testing.T) {
	app := buildGateApp()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
