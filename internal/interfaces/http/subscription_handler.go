package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/application/payment"
	"github.com/jhoicas/BillSync-api/internal/application/subscription"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

// SubscriptionHandler planes, suscripción vigente y pagos de la pasarela.
type SubscriptionHandler struct {
	subs     *subscription.Service
	payments *payment.UseCase
	log      *logger.Logger
}

// NewSubscriptionHandler construye el handler.
func NewSubscriptionHandler(subs *subscription.Service, payments *payment.UseCase, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, payments: payments, log: log}
}

// ListPlans godoc
// @Summary      Catálogo de planes
// @Tags         subscription
// @Produce      json
// @Success      200  {array}  dto.PlanResponse
// @Router       /api/plans [get]
func (h *SubscriptionHandler) ListPlans(c *fiber.Ctx) error {
	out, err := h.subs.ListPlans(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Current godoc
// @Summary      Suscripción vigente
// @Tags         subscription
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/subscription [get]
func (h *SubscriptionHandler) Current(c *fiber.Ctx) error {
	out, err := h.subs.Current(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ChangePlan godoc
// @Summary      Cambiar a un plan gratuito
// @Tags         subscription
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePlanRequest  true  "Nombre del plan"
// @Success      200   {object}  dto.SubscriptionResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/subscription/plan [post]
func (h *SubscriptionHandler) ChangePlan(c *fiber.Ctx) error {
	var in dto.ChangePlanRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.subs.ChangePlan(c.UserContext(), GetPrincipal(c), in.Plan)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateOrder godoc
// @Summary      Crear orden de pago para un plan
// @Tags         subscription
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Plan"
// @Success      201   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/admin/subscription/orders [post]
func (h *SubscriptionHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.payments.CreateOrder(c.UserContext(), GetPrincipal(c), in.PlanID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Verify godoc
// @Summary      Confirmar pago del checkout
// @Tags         subscription
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentCallbackRequest  true  "Datos firmados por la pasarela"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/subscription/verify [post]
func (h *SubscriptionHandler) Verify(c *fiber.Ctx) error {
	var in dto.PaymentCallbackRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.payments.Verify(c.UserContext(), GetPrincipal(c), toCallback(in))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MarkFailed godoc
// @Summary      Informar pago fallido o cancelado
// @Tags         subscription
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden"
// @Param        body     body  dto.PaymentFailedRequest  false  "Motivo"
// @Success      200      {object}  dto.PaymentResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/admin/subscription/orders/{orderId}/fail [post]
func (h *SubscriptionHandler) MarkFailed(c *fiber.Ctx) error {
	var in dto.PaymentFailedRequest
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &in); err != nil {
			return writeError(c, h.log, err)
		}
	}
	out, err := h.payments.MarkFailed(c.UserContext(), GetPrincipal(c), c.Params("orderId"), in.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListPayments godoc
// @Summary      Historial de pagos
// @Tags         subscription
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.PaymentListResponse
// @Router       /api/admin/payments [get]
func (h *SubscriptionHandler) ListPayments(c *fiber.Ctx) error {
	out, err := h.payments.ListPayments(c.UserContext(), GetPrincipal(c), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Webhook godoc
// @Summary      Entrega directa de la pasarela
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentCallbackRequest  true  "Datos firmados por la pasarela"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payments/webhook [post]
func (h *SubscriptionHandler) Webhook(c *fiber.Ctx) error {
	var in dto.PaymentCallbackRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.payments.HandleWebhook(c.UserContext(), toCallback(in))
	if err != nil {
		h.log.Warn().Err(err).Str("order_id", in.OrderID).Msg("webhook de pago rechazado")
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

func toCallback(in dto.PaymentCallbackRequest) payment.Callback {
	return payment.Callback{OrderID: in.OrderID, PaymentID: in.PaymentID, Signature: in.Signature}
}
