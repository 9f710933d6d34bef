package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

// errorMapping traduce un error de dominio a status y código de respuesta.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, "UNAUTHENTICATED"},
	{domain.ErrForbidden, fiber.StatusUnauthorized, "FORBIDDEN"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrAccountDisabled, fiber.StatusUnauthorized, "ACCOUNT_DISABLED"},
	{domain.ErrPlanNotFound, fiber.StatusNotFound, "PLAN_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrPaymentSettled, fiber.StatusConflict, "PAYMENT_SETTLED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidSignature, fiber.StatusBadRequest, "INVALID_SIGNATURE"},
	{domain.ErrOTPInvalid, fiber.StatusBadRequest, "OTP_INVALID"},
	{domain.ErrOTPExpired, fiber.StatusBadRequest, "OTP_EXPIRED"},
	{domain.ErrTooManyAttempts, fiber.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"},
	{domain.ErrPaymentRequired, fiber.StatusPaymentRequired, "PAYMENT_REQUIRED"},
	{domain.ErrFeatureLocked, fiber.StatusForbidden, "FEATURE_LOCKED"},
	{domain.ErrUnavailable, fiber.StatusServiceUnavailable, "UNAVAILABLE"},
}

// writeError responde con el status del error de dominio. Cualquier otro error se registra
// y el cliente recibe un 500 genérico.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	p := GetPrincipal(c)
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("route", c.Route().Path).
		Str("principal_id", p.ID).
		Str("role", string(p.Role)).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
