package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BillSync-api/internal/application/auth"
	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/memory"
	"github.com/jhoicas/BillSync-api/pkg/credential"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

type captureNotifier struct {
	to   string
	code string
	err  error
}

func (n *captureNotifier) SendOTP(ctx context.Context, to, name, code string, expiresAt time.Time) error {
	n.to, n.code = to, code
	return n.err
}

func newAuth(t *testing.T, n auth.Notifier) (*auth.AuthUseCase, *auth.SessionResolver, *memory.Store) {
	t.Helper()
	st := memory.New()
	sessions := auth.NewSessionResolver(jwtCfg)
	uc := auth.NewAuthUseCase(st.Admins(), st.Accounts(), st, sessions, n, logger.Nop())
	return uc, sessions, st
}

var demoSignup = dto.SignupRequest{
	Name:         "Demo",
	Email:        "Demo@Bill-Sync.com",
	Password:     "demo-password",
	BusinessName: "Demo Store",
}

func TestSignup_CreaAdminConSuscripcionStandard(t *testing.T) {
	n := &captureNotifier{}
	uc, sessions, st := newAuth(t, n)
	ctx := context.Background()

	res, err := uc.Signup(ctx, demoSignup)
	require.NoError(t, err)
	assert.Equal(t, "demo@bill-sync.com", res.Email)
	assert.Equal(t, string(access.RoleAdmin), res.Role)

	p := sessions.Resolve(res.Token)
	assert.Equal(t, access.Principal{ID: res.ID, Role: access.RoleAdmin}, p)

	sub, err := st.Subscriptions().GetByAdmin(ctx, res.ID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, memory.PlanStandardID, sub.PlanID)
	assert.Equal(t, entity.SubscriptionActive, sub.Status)
	assert.False(t, sub.IsTrial)
	assert.Empty(t, sub.PaymentID)

	assert.Equal(t, "demo@bill-sync.com", n.to)
	assert.Len(t, n.code, credential.OTPLength)

	_, err = uc.Signup(ctx, demoSignup)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignup_FalloDeCorreoNoDeshaceElAlta(t *testing.T) {
	uc, _, st := newAuth(t, &captureNotifier{err: errors.New("smtp caído")})

	res, err := uc.Signup(context.Background(), demoSignup)
	require.NoError(t, err)
	sub, _ := st.Subscriptions().GetByAdmin(context.Background(), res.ID)
	assert.NotNil(t, sub)
}

func TestVerifyOTP(t *testing.T) {
	n := &captureNotifier{}
	uc, _, st := newAuth(t, n)
	ctx := context.Background()
	res, err := uc.Signup(ctx, demoSignup)
	require.NoError(t, err)
	p := access.Principal{ID: res.ID, Role: access.RoleAdmin}

	wrong := []byte(n.code)
	wrong[0] = '0' + (wrong[0]-'0'+1)%10
	_, err = uc.VerifyOTP(ctx, p, string(wrong))
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)

	out, err := uc.VerifyOTP(ctx, p, n.code)
	require.NoError(t, err)
	assert.True(t, out.EmailVerified)

	scope, _ := access.Authorize(p, access.ActionRead, "", access.AdminOnly...)
	admin, _ := st.Admins().Get(ctx, scope)
	assert.True(t, admin.EmailVerified)
	assert.Empty(t, admin.OTPHash)
	assert.Nil(t, admin.OTPExpiresAt)
}

func TestVerifyOTP_Vencido(t *testing.T) {
	n := &captureNotifier{}
	uc, _, st := newAuth(t, n)
	ctx := context.Background()
	res, err := uc.Signup(ctx, demoSignup)
	require.NoError(t, err)
	p := access.Principal{ID: res.ID, Role: access.RoleAdmin}

	scope, _ := access.Authorize(p, access.ActionUpdate, "", access.AdminOnly...)
	admin, _ := st.Admins().Get(ctx, scope)
	past := time.Now().Add(-time.Second)
	admin.OTPExpiresAt = &past
	require.NoError(t, st.Admins().Update(ctx, scope, admin))

	_, err = uc.VerifyOTP(ctx, p, n.code)
	assert.ErrorIs(t, err, domain.ErrOTPExpired)

	// Un envío nuevo reemplaza el código vencido.
	sent, err := uc.SendOTP(ctx, p)
	require.NoError(t, err)
	assert.NotEmpty(t, sent.ExpiresAt)
	_, err = uc.VerifyOTP(ctx, p, n.code)
	assert.NoError(t, err)
}

// Los intentos fallidos se agotan: ni el código correcto pasa hasta que se reponen.
func TestVerifyOTP_IntentosLimitados(t *testing.T) {
	n := &captureNotifier{}
	uc, _, _ := newAuth(t, n)
	ctx := context.Background()
	res, err := uc.Signup(ctx, demoSignup)
	require.NoError(t, err)
	p := access.Principal{ID: res.ID, Role: access.RoleAdmin}

	wrong := []byte(n.code)
	wrong[0] = '0' + (wrong[0]-'0'+1)%10
	for i := 0; i < 5; i++ {
		_, err = uc.VerifyOTP(ctx, p, string(wrong))
		require.ErrorIs(t, err, domain.ErrOTPInvalid, "intento %d", i+1)
	}
	_, err = uc.VerifyOTP(ctx, p, n.code)
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)

	// Reenviar el código no repone intentos.
	_, err = uc.SendOTP(ctx, p)
	require.NoError(t, err)
	_, err = uc.VerifyOTP(ctx, p, n.code)
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)

	// El cupo es por admin.
	other := demoSignup
	other.Email = "otro@bill-sync.com"
	res2, err := uc.Signup(ctx, other)
	require.NoError(t, err)
	out, err := uc.VerifyOTP(ctx, access.Principal{ID: res2.ID, Role: access.RoleAdmin}, n.code)
	require.NoError(t, err)
	assert.True(t, out.EmailVerified)
}

func TestSendOTP_ReenviosLimitados(t *testing.T) {
	n := &captureNotifier{}
	uc, _, _ := newAuth(t, n)
	ctx := context.Background()
	res, err := uc.Signup(ctx, demoSignup)
	require.NoError(t, err)
	p := access.Principal{ID: res.ID, Role: access.RoleAdmin}

	for i := 0; i < 3; i++ {
		_, err = uc.SendOTP(ctx, p)
		require.NoError(t, err, "reenvío %d", i+1)
	}
	n.code = ""
	_, err = uc.SendOTP(ctx, p)
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)
	assert.Empty(t, n.code, "no se envía correo al superar el límite")
}

func TestOTP_SoloAdmin(t *testing.T) {
	uc, _, _ := newAuth(t, &captureNotifier{})
	cashier := access.Principal{ID: "c1", Role: access.RoleCashier, AdminID: "a1"}

	_, err := uc.SendOTP(context.Background(), cashier)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.VerifyOTP(context.Background(), access.Anonymous(), "123456")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogin(t *testing.T) {
	uc, _, _ := newAuth(t, &captureNotifier{})
	ctx := context.Background()
	_, err := uc.Signup(ctx, demoSignup)
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "demo@bill-sync.com", Password: "demo-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "demo@bill-sync.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@bill-sync.com", Password: "demo-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCashierLogin(t *testing.T) {
	uc, sessions, st := newAuth(t, &captureNotifier{})
	ctx := context.Background()
	hash, err := credential.HashPassword("cashier-password")
	require.NoError(t, err)
	acc := &entity.BillingAccount{ID: "cashier-1", AdminID: "admin-1", Name: "Caja 1", Email: "caja@bill-sync.com", PasswordHash: hash, Status: entity.AccountStatusActive}
	require.NoError(t, st.Accounts().Create(ctx, acc))

	res, err := uc.CashierLogin(ctx, dto.LoginRequest{Email: "caja@bill-sync.com", Password: "cashier-password"})
	require.NoError(t, err)
	assert.Equal(t, "admin-1", res.AdminID)
	assert.Equal(t, access.Principal{ID: "cashier-1", Role: access.RoleCashier, AdminID: "admin-1"}, sessions.Resolve(res.Token))

	// Un cajero no entra por el login de admin.
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "caja@bill-sync.com", Password: "cashier-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	scope := access.Scope{AdminID: "admin-1"}
	acc.Status = entity.AccountStatusDisabled
	require.NoError(t, st.Accounts().Update(ctx, scope, acc))
	_, err = uc.CashierLogin(ctx, dto.LoginRequest{Email: "caja@bill-sync.com", Password: "cashier-password"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}
