package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/memory"
)

func TestHealth(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "billsync-test")
}

func TestAdminAPI_SegmentadoPorRol(t *testing.T) {
	e := newEnv(t)
	admin := e.signup(t, "owner@shop.in")
	cashier := e.cashier(t, admin.Token, "cajero@shop.in")

	resp := e.do(t, http.MethodGet, "/api/admin/profile", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "UNAUTHENTICATED")

	resp = e.do(t, http.MethodGet, "/api/admin/profile", cashier.Token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "FORBIDDEN")
	assert.NotContains(t, body, "business_name", "un cajero no recibe datos del admin")

	var profile dto.AdminProfileResponse
	resp = e.do(t, http.MethodGet, "/api/admin/profile", admin.Token, nil, &profile)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Shop owner@shop.in", profile.BusinessName)

	// staff: ambos roles
	for _, tok := range []string{admin.Token, cashier.Token} {
		resp = e.do(t, http.MethodGet, "/api/pos/products", tok, nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp = e.do(t, http.MethodGet, "/api/pos/products", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPaginas_RedirigenSegunSesion(t *testing.T) {
	e := newEnv(t)
	admin := e.signup(t, "owner@shop.in")
	cashier := e.cashier(t, admin.Token, "cajero@shop.in")

	req := func(token string) *http.Response {
		r := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		r.Header.Set("Accept", "text/html")
		if token != "" {
			r.AddCookie(&http.Cookie{Name: "session", Value: token})
		}
		resp, err := e.app.Test(r, -1)
		require.NoError(t, err)
		return resp
	}

	resp := req("")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/signin?next=%2Fadmin%2Fdashboard", resp.Header.Get("Location"))

	resp = req(cashier.Token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/cashier/dashboard", resp.Header.Get("Location"))
}

func TestFacturas_AislamientoEntreTenants(t *testing.T) {
	e := newEnv(t)
	a := e.signup(t, "a@shop.in")
	b := e.signup(t, "b@shop.in")
	cashierB := e.cashier(t, b.Token, "cajero-b@shop.in")

	prod := e.product(t, a.Token)
	bill := e.bill(t, a.Token, prod.ID)
	assert.Equal(t, a.AdminID, bill.AdminID)
	assert.Equal(t, entity.BillStatusUnpaid, bill.Status)

	for _, tok := range []string{b.Token, cashierB.Token} {
		resp := e.do(t, http.MethodGet, "/api/pos/bills/"+bill.ID, tok, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = e.do(t, http.MethodPost, "/api/pos/bills/"+bill.ID+"/pay", tok, dto.PayBillRequest{Mode: "CASH"}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = e.do(t, http.MethodGet, "/api/pos/products/"+prod.ID, tok, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	// Un producto ajeno tampoco se puede facturar.
	resp := e.do(t, http.MethodPost, "/api/pos/bills", b.Token, map[string]any{
		"items": []map[string]any{{"product_id": prod.ID, "quantity": "1"}},
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var list dto.BillListResponse
	resp = e.do(t, http.MethodGet, "/api/pos/bills", b.Token, nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, list.Items)

	var got dto.BillResponse
	resp = e.do(t, http.MethodGet, "/api/pos/bills/"+bill.ID, a.Token, nil, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, bill.Number, got.Number)
}

func TestFacturas_CajeroCobraPeroNoBorra(t *testing.T) {
	e := newEnv(t)
	admin := e.signup(t, "owner@shop.in")
	cashier := e.cashier(t, admin.Token, "cajero@shop.in")
	prod := e.product(t, admin.Token)

	bill := e.bill(t, cashier.Token, prod.ID)
	assert.Equal(t, admin.AdminID, bill.AdminID, "la factura del cajero pertenece a su admin")
	assert.Equal(t, cashier.ID, bill.IssuedBy)
	assert.True(t, decimal.NewFromInt(236).Equal(bill.Total), "2 x 100 + 18%%: %s", bill.Total)

	var paid dto.BillResponse
	resp := e.do(t, http.MethodPost, "/api/pos/bills/"+bill.ID+"/pay", cashier.Token, dto.PayBillRequest{Mode: "UPI"}, &paid)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.BillStatusPaid, paid.Status)

	resp = e.do(t, http.MethodPost, "/api/pos/bills/"+bill.ID+"/pay", cashier.Token, dto.PayBillRequest{Mode: "CASH"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = e.do(t, http.MethodDelete, "/api/admin/bills/"+bill.ID, cashier.Token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = e.do(t, http.MethodDelete, "/api/admin/bills/"+bill.ID, admin.Token, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestIDMalformado_Retorna404(t *testing.T) {
	e := newEnv(t)
	admin := e.signup(t, "owner@shop.in")

	resp := e.do(t, http.MethodGet, "/api/pos/bills/no-es-uuid", admin.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/api/pos/bills", admin.Token, map[string]any{
		"items": []map[string]any{{"product_id": "no-es-uuid", "quantity": "1"}},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFunciones_BloqueadasPorPlan(t *testing.T) {
	e := newEnv(t)
	admin := e.signup(t, "owner@shop.in")
	prod := e.product(t, admin.Token)
	bill := e.bill(t, admin.Token, prod.ID)

	resp := e.do(t, http.MethodGet, "/api/pos/bills/"+bill.ID+"/pdf", admin.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "FEATURE_LOCKED")

	// QR incluido en STANDARD, pero exige UPI ID en el perfil.
	resp = e.do(t, http.MethodGet, "/api/pos/bills/"+bill.ID+"/qr", admin.Token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	upi := "shop@upi"
	resp = e.do(t, http.MethodPut, "/api/admin/profile", admin.Token, dto.UpdateProfileRequest{UPIID: &upi}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.do(t, http.MethodGet, "/api/pos/bills/"+bill.ID+"/qr", admin.Token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(readBody(t, resp), "\x89PNG"))

	// Un plan pagado no se obtiene sin pago.
	resp = e.do(t, http.MethodPost, "/api/admin/subscription/plan", admin.Token, dto.ChangePlanRequest{Plan: "PREMIUM"}, nil)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
}

func TestPago_FirmaInvalidaYLuegoValida(t *testing.T) {
	e := newEnv(t)
	admin := e.signup(t, "owner@shop.in")
	prod := e.product(t, admin.Token)
	bill := e.bill(t, admin.Token, prod.ID)

	var order dto.OrderResponse
	resp := e.do(t, http.MethodPost, "/api/admin/subscription/orders", admin.Token,
		dto.CreateOrderRequest{PlanID: memory.PlanPremiumID}, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "rzp_test_key", order.KeyID)
	assert.Equal(t, "INR", order.Currency)
	assert.Positive(t, order.Amount)

	var sub dto.SubscriptionResponse
	e.do(t, http.MethodGet, "/api/admin/subscription", admin.Token, nil, &sub)
	assert.Equal(t, entity.PlanStandard, sub.Plan.Name, "crear la orden no cambia el plan")

	resp = e.do(t, http.MethodPost, "/api/admin/subscription/verify", admin.Token, dto.PaymentCallbackRequest{
		OrderID: order.OrderID, PaymentID: "pay_1", Signature: signature(order.OrderID, "otro"),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "INVALID_SIGNATURE")

	var payments dto.PaymentListResponse
	e.do(t, http.MethodGet, "/api/admin/payments", admin.Token, nil, &payments)
	require.Len(t, payments.Items, 1)
	assert.Equal(t, entity.PaymentStatusFailed, payments.Items[0].Status)

	e.do(t, http.MethodGet, "/api/admin/subscription", admin.Token, nil, &sub)
	assert.Equal(t, entity.PlanStandard, sub.Plan.Name)

	// Un pago fallido es terminal; hace falta una orden nueva.
	resp = e.do(t, http.MethodPost, "/api/admin/subscription/verify", admin.Token, dto.PaymentCallbackRequest{
		OrderID: order.OrderID, PaymentID: "pay_1", Signature: signature(order.OrderID, "pay_1"),
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/api/admin/subscription/orders", admin.Token,
		dto.CreateOrderRequest{PlanID: memory.PlanPremiumID}, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var paid dto.PaymentResponse
	resp = e.do(t, http.MethodPost, "/api/admin/subscription/verify", admin.Token, dto.PaymentCallbackRequest{
		OrderID: order.OrderID, PaymentID: "pay_2", Signature: signature(order.OrderID, "pay_2"),
	}, &paid)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.PaymentStatusSuccess, paid.Status)

	e.do(t, http.MethodGet, "/api/admin/subscription", admin.Token, nil, &sub)
	assert.Equal(t, entity.PlanPremium, sub.Plan.Name)
	assert.Equal(t, "pay_2", sub.PaymentID)

	resp = e.do(t, http.MethodGet, "/api/pos/bills/"+bill.ID+"/pdf", admin.Token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(readBody(t, resp), "%PDF"))
}

func TestPago_OrdenAjenaEsInvisible(t *testing.T) {
	e := newEnv(t)
	a := e.signup(t, "a@shop.in")
	b := e.signup(t, "b@shop.in")

	var order dto.OrderResponse
	resp := e.do(t, http.MethodPost, "/api/admin/subscription/orders", a.Token,
		dto.CreateOrderRequest{PlanID: memory.PlanPremiumID}, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/api/admin/subscription/verify", b.Token, dto.PaymentCallbackRequest{
		OrderID: order.OrderID, PaymentID: "pay_1", Signature: signature(order.OrderID, "pay_1"),
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/api/admin/subscription/orders/"+order.OrderID+"/fail", b.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var sub dto.SubscriptionResponse
	e.do(t, http.MethodGet, "/api/admin/subscription", b.Token, nil, &sub)
	assert.Equal(t, entity.PlanStandard, sub.Plan.Name)
}

func TestWebhook(t *testing.T) {
	e := newEnv(t)
	admin := e.signup(t, "owner@shop.in")

	var order dto.OrderResponse
	resp := e.do(t, http.MethodPost, "/api/admin/subscription/orders", admin.Token,
		dto.CreateOrderRequest{PlanID: memory.PlanEnterpriseID}, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Firma inválida: no se escribe nada, el pago sigue pendiente.
	resp = e.do(t, http.MethodPost, "/api/payments/webhook", "", dto.PaymentCallbackRequest{
		OrderID: order.OrderID, PaymentID: "pay_9", Signature: signature("otra", "pay_9"),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payments dto.PaymentListResponse
	e.do(t, http.MethodGet, "/api/admin/payments", admin.Token, nil, &payments)
	require.Len(t, payments.Items, 1)
	assert.Equal(t, entity.PaymentStatusPending, payments.Items[0].Status)

	cb := dto.PaymentCallbackRequest{OrderID: order.OrderID, PaymentID: "pay_9", Signature: signature(order.OrderID, "pay_9")}
	resp = e.do(t, http.MethodPost, "/api/payments/webhook", "", cb, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// La misma entrega repetida es idempotente.
	resp = e.do(t, http.MethodPost, "/api/payments/webhook", "", cb, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var sub dto.SubscriptionResponse
	e.do(t, http.MethodGet, "/api/admin/subscription", admin.Token, nil, &sub)
	assert.Equal(t, entity.PlanEnterprise, sub.Plan.Name)
}

func TestMetrics_ExponeContadores(t *testing.T) {
	e := newEnv(t)
	e.do(t, http.MethodGet, "/health", "", nil, nil)
	e.do(t, http.MethodGet, "/api/admin/profile", "", nil, nil)

	resp := e.do(t, http.MethodGet, "/metrics", "", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "http_request_duration_seconds")
}

// Una factura cobrada sigue localizable por su ID en peticiones posteriores.
func TestFacturas_CobradaSigueLocalizable(t *testing.T) {
	e := newEnv(t)
	admin := e.signup(t, "owner@shop.in")
	prod := e.product(t, admin.Token)

	unpaid := e.bill(t, admin.Token, prod.ID)
	resp := e.do(t, http.MethodDelete, "/api/admin/bills/"+unpaid.ID, admin.Token, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	bills := []dto.BillResponse{e.bill(t, admin.Token, prod.ID), e.bill(t, admin.Token, prod.ID)}
	for _, b := range bills {
		resp = e.do(t, http.MethodPost, "/api/pos/bills/"+b.ID+"/pay", admin.Token, dto.PayBillRequest{Mode: "CASH"}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	e.do(t, http.MethodGet, "/api/pos/products/"+prod.ID, admin.Token, nil, nil)

	for _, b := range bills {
		var got dto.BillResponse
		resp = e.do(t, http.MethodGet, "/api/pos/bills/"+b.ID, admin.Token, nil, &got)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, b.ID, got.ID)
		assert.Equal(t, entity.BillStatusPaid, got.Status)

		resp = e.do(t, http.MethodDelete, "/api/admin/bills/"+b.ID, admin.Token, nil, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode, readBody(t, resp))
	}

	var list dto.BillListResponse
	e.do(t, http.MethodGet, "/api/pos/bills", admin.Token, nil, &list)
	assert.Empty(t, list.Items)
}

func TestOTP_DemasiadosIntentosRetorna429(t *testing.T) {
	e := newEnv(t)
	admin := e.signup(t, "owner@shop.in")

	codes := []int{}
	for i := 0; i < 6; i++ {
		var out dto.ErrorResponse
		resp := e.do(t, http.MethodPost, "/api/admin/otp/verify", admin.Token, dto.VerifyOTPRequest{OTP: "000000"}, &out)
		codes = append(codes, resp.StatusCode)
		if i == 5 {
			assert.Equal(t, "TOO_MANY_ATTEMPTS", out.Code)
		}
	}
	assert.Equal(t, []int{400, 400, 400, 400, 400, 429}, codes)

	// Otro tenant no comparte el cupo.
	other := e.signup(t, "other@shop.in")
	resp := e.do(t, http.MethodPost, "/api/admin/otp/verify", other.Token, dto.VerifyOTPRequest{OTP: "000000"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
