package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/application/subscription"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
	"github.com/jhoicas/BillSync-api/pkg/credential"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

// AuthUseCase casos de uso de autenticación: alta, login y verificación de email por OTP.
type AuthUseCase struct {
	admins   repository.AdminRepository
	cashiers repository.BillingAccountRepository
	tx       SignupTxRunner
	sessions *SessionResolver
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time

	verifyAttempts *attemptLimiter
	sendAttempts   *attemptLimiter
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	admins repository.AdminRepository,
	cashiers repository.BillingAccountRepository,
	tx SignupTxRunner,
	sessions *SessionResolver,
	notifier Notifier,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		admins:   admins,
		cashiers: cashiers,
		tx:       tx,
		sessions: sessions,
		notifier: notifier,
		log:      log,
		now:      time.Now,

		verifyAttempts: newAttemptLimiter(otpVerifyInterval, otpVerifyBurst),
		sendAttempts:   newAttemptLimiter(otpSendInterval, otpSendBurst),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup crea el admin y su suscripción STANDARD en una transacción, envía el OTP de
// verificación y devuelve un token. Un fallo del envío no deshace el alta.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar admin: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := credential.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	admin := &entity.Admin{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		BusinessName: strings.TrimSpace(in.BusinessName),
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.RunSignup(ctx, func(
		admins repository.AdminRepository,
		subs repository.SubscriptionRepository,
		plans repository.PlanRepository,
	) error {
		if err := admins.Create(ctx, admin); err != nil {
			return err
		}
		_, err := subscription.CreateDefault(ctx, subs, plans, admin.ID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	if _, err := uc.issueOTP(ctx, admin); err != nil {
		uc.log.Warn().Err(err).Str("admin_id", admin.ID).Msg("no se pudo enviar el OTP de verificación")
	}

	p := access.Principal{ID: admin.ID, Role: access.RoleAdmin}
	return uc.loginResponse(p, admin.ID, admin.Name, admin.Email)
}

// Login autentica a un admin por email y contraseña.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := uc.admins.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("auth: buscar admin: %w", err)
	}
	if admin == nil || !credential.VerifyPassword(in.Password, admin.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	p := access.Principal{ID: admin.ID, Role: access.RoleAdmin}
	return uc.loginResponse(p, admin.ID, admin.Name, admin.Email)
}

// CashierLogin autentica a un cajero. El token lleva el admin dueño para acotar sus consultas.
func (uc *AuthUseCase) CashierLogin(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	acc, err := uc.cashiers.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("auth: buscar cajero: %w", err)
	}
	if acc == nil || !credential.VerifyPassword(in.Password, acc.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if acc.Status != entity.AccountStatusActive {
		return nil, domain.ErrAccountDisabled
	}
	p := access.Principal{ID: acc.ID, Role: access.RoleCashier, AdminID: acc.AdminID}
	return uc.loginResponse(p, acc.AdminID, acc.Name, acc.Email)
}

// SendOTP emite un OTP nuevo para el email del admin. Reemplaza cualquier OTP anterior.
// Los reenvíos por admin están limitados (domain.ErrTooManyAttempts).
func (uc *AuthUseCase) SendOTP(ctx context.Context, p access.Principal) (*dto.OTPResponse, error) {
	scope, err := access.Authorize(p, access.ActionUpdate, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	if !uc.sendAttempts.Allow(scope.AdminID, uc.now()) {
		return nil, domain.ErrTooManyAttempts
	}
	admin, err := uc.admins.Get(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("auth: obtener admin: %w", err)
	}
	if admin == nil {
		return nil, domain.ErrNotFound
	}
	if admin.EmailVerified {
		return &dto.OTPResponse{EmailVerified: true}, nil
	}
	expiresAt, err := uc.issueOTP(ctx, admin)
	if err != nil {
		return nil, err
	}
	return &dto.OTPResponse{ExpiresAt: expiresAt.Format(time.RFC3339)}, nil
}

// VerifyOTP marca el email como verificado si el código coincide y no venció.
// El vencimiento lo decide este caso de uso contra el reloj; el verificador solo compara.
// Cada llamada consume un intento del admin, acierte o no: agotados, responde
// domain.ErrTooManyAttempts sin mirar el código. Reenviar el OTP no repone intentos.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, p access.Principal, otp string) (*dto.OTPResponse, error) {
	scope, err := access.Authorize(p, access.ActionUpdate, "", access.AdminOnly...)
	if err != nil {
		return nil, err
	}
	if !uc.verifyAttempts.Allow(scope.AdminID, uc.now()) {
		return nil, domain.ErrTooManyAttempts
	}
	admin, err := uc.admins.Get(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("auth: obtener admin: %w", err)
	}
	if admin == nil {
		return nil, domain.ErrNotFound
	}
	if admin.EmailVerified {
		return &dto.OTPResponse{EmailVerified: true}, nil
	}
	if admin.OTPHash == "" || admin.OTPExpiresAt == nil {
		return nil, domain.ErrOTPInvalid
	}
	if credential.OTPExpired(*admin.OTPExpiresAt, uc.now()) {
		return nil, domain.ErrOTPExpired
	}
	if !credential.VerifyOTP(otp, admin.OTPHash) {
		return nil, domain.ErrOTPInvalid
	}
	admin.EmailVerified = true
	admin.OTPHash = ""
	admin.OTPExpiresAt = nil
	admin.UpdatedAt = uc.now()
	if err := uc.admins.Update(ctx, scope, admin); err != nil {
		return nil, fmt.Errorf("auth: actualizar admin: %w", err)
	}
	uc.verifyAttempts.Reset(scope.AdminID)
	return &dto.OTPResponse{EmailVerified: true}, nil
}

// issueOTP genera, guarda (solo el hash) y envía un OTP.
func (uc *AuthUseCase) issueOTP(ctx context.Context, admin *entity.Admin) (time.Time, error) {
	scope, err := access.Authorize(access.Principal{ID: admin.ID, Role: access.RoleAdmin}, access.ActionUpdate, admin.ID, access.AdminOnly...)
	if err != nil {
		return time.Time{}, err
	}
	code, err := credential.GenerateOTP()
	if err != nil {
		return time.Time{}, err
	}
	hash, err := credential.HashOTP(code)
	if err != nil {
		return time.Time{}, err
	}
	now := uc.now()
	expiresAt := credential.OTPExpiresAt(now)
	admin.OTPHash = hash
	admin.OTPExpiresAt = &expiresAt
	admin.UpdatedAt = now
	if err := uc.admins.Update(ctx, scope, admin); err != nil {
		return time.Time{}, fmt.Errorf("auth: guardar otp: %w", err)
	}
	if uc.notifier == nil {
		return time.Time{}, domain.ErrUnavailable
	}
	if err := uc.notifier.SendOTP(ctx, admin.Email, admin.Name, code, expiresAt); err != nil {
		return time.Time{}, fmt.Errorf("auth: enviar otp: %w", err)
	}
	return expiresAt, nil
}

func (uc *AuthUseCase) loginResponse(p access.Principal, adminID, name, email string) (*dto.LoginResponse, error) {
	token, err := uc.sessions.Issue(p)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int(uc.sessions.TTL().Seconds()),
		Role:      string(p.Role),
		ID:        p.ID,
		AdminID:   adminID,
		Name:      name,
		Email:     email,
	}, nil
}
