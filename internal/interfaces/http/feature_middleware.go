package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/plan"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

// featureChecker lo implementa *subscription.Service.
type featureChecker interface {
	HasFeature(ctx context.Context, adminID string, f plan.Feature) (bool, error)
}

// RequireFeature verifica que el plan del tenant del actor incluya la función. El tenant sale
// de access.Authorize (el cajero hereda el plan de su admin). Debe usarse después de
// AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay actor o su rol no es de staff.
//   - 403 FEATURE_LOCKED si el plan no la incluye.
//   - 503 si no se pudo consultar la suscripción.
func RequireFeature(feature plan.Feature, checker featureChecker, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, err := access.Authorize(GetPrincipal(c), access.ActionRead, "", access.Staff...)
		if err != nil {
			return denied(c, err)
		}
		ok, err := checker.HasFeature(c.UserContext(), scope.AdminID, feature)
		if err != nil {
			log.Error().Err(err).Str("feature", string(feature)).Str("admin_id", scope.AdminID).Msg("no se pudo verificar el plan")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "FEATURE_CHECK_FAILED",
				Message: "no se pudo verificar el plan, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FEATURE_LOCKED",
				Message: "la función '" + string(feature) + "' no está incluida en su plan",
			})
		}
		return c.Next()
	}
}
