package http_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BillSync-api/internal/application/account"
	"github.com/jhoicas/BillSync-api/internal/application/auth"
	"github.com/jhoicas/BillSync-api/internal/application/billing"
	"github.com/jhoicas/BillSync-api/internal/application/catalog"
	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/application/payment"
	"github.com/jhoicas/BillSync-api/internal/application/subscription"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/memory"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/pdf"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/qrcode"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/razorpay"
	apphttp "github.com/jhoicas/BillSync-api/internal/interfaces/http"
	"github.com/jhoicas/BillSync-api/pkg/config"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "billsync-test"
	gatewaySecret = "rzp_secret"
)

var jwtCfg = auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}

type nopNotifier struct{}

func (nopNotifier) SendOTP(context.Context, string, string, string, time.Time) error { return nil }

// env aplicación completa sobre el almacén en memoria y una pasarela simulada con httptest.
type env struct {
	app      *fiber.App
	st       *memory.Store
	sessions *auth.SessionResolver
	orders   int
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{st: memory.New(), sessions: auth.NewSessionResolver(jwtCfg)}

	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		e.orders++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": fmt.Sprintf("order_%d", e.orders), "amount": body.Amount, "currency": body.Currency, "receipt": body.Receipt,
		})
	}))
	t.Cleanup(gw.Close)

	log := logger.Nop()
	subs := subscription.NewService(e.st.Subscriptions(), e.st.Plans())
	client := razorpay.NewClient(config.GatewayConfig{KeyID: "rzp_test_key", KeySecret: gatewaySecret, BaseURL: gw.URL})

	e.app = fiber.New()
	apphttp.Router(e.app, apphttp.RouterDeps{
		Sessions:      e.sessions,
		AuthUC:        auth.NewAuthUseCase(e.st.Admins(), e.st.Accounts(), e.st, e.sessions, nopNotifier{}, log),
		AccountUC:     account.NewUseCase(e.st.Admins(), e.st.Accounts(), subs, nil),
		ProductUC:     catalog.NewProductUseCase(e.st.Products(), subs),
		BillUC:        billing.NewBillUseCase(e.st.Bills(), e.st.Products()),
		DocumentUC:    billing.NewDocumentUseCase(e.st.Bills(), e.st.Admins(), pdf.NewMarotoPDFGenerator(), qrcode.Renderer{}),
		Subscriptions: subs,
		Payments:      payment.NewUseCase(e.st.Plans(), e.st.Payments(), e.st, client, "INR"),
		Log:           log,
		ServiceName:   "billsync-test",
	})
	return e
}

// do lanza la petición con el token dado ("" = anónimo) y decodifica el JSON en out si no es nil.
func (e *env) do(t *testing.T, method, path, token string, body any, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (e *env) signup(t *testing.T, email string) dto.LoginResponse {
	t.Helper()
	var out dto.LoginResponse
	resp := e.do(t, http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{
		Name: "Owner", Email: email, Password: "password-123", BusinessName: "Shop " + email,
	}, &out)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return out
}

func (e *env) cashier(t *testing.T, adminToken, email string) dto.LoginResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/admin/cashiers", adminToken, dto.CreateCashierRequest{
		Name: "Cajero", Email: email, Password: "password-123",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.LoginResponse
	resp = e.do(t, http.MethodPost, "/api/auth/cashier/login", "", dto.LoginRequest{Email: email, Password: "password-123"}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return out
}

func (e *env) product(t *testing.T, adminToken string) dto.ProductResponse {
	t.Helper()
	var out dto.ProductResponse
	resp := e.do(t, http.MethodPost, "/api/admin/products", adminToken, map[string]any{
		"name": "Chai", "price": "100", "tax_rate": "18",
	}, &out)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return out
}

func (e *env) bill(t *testing.T, token, productID string) dto.BillResponse {
	t.Helper()
	var out dto.BillResponse
	resp := e.do(t, http.MethodPost, "/api/pos/bills", token, map[string]any{
		"customer_name": "Ravi",
		"items":         []map[string]any{{"product_id": productID, "quantity": "2"}},
	}, &out)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return out
}

func signature(orderID, paymentID string) string {
	return hex.EncodeToString(razorpay.Sign(gatewaySecret, orderID, paymentID))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
