package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	"github.com/jhoicas/BillSync-api/internal/application/account"
	"github.com/jhoicas/BillSync-api/internal/application/auth"
	"github.com/jhoicas/BillSync-api/internal/application/billing"
	"github.com/jhoicas/BillSync-api/internal/application/catalog"
	"github.com/jhoicas/BillSync-api/internal/application/payment"
	"github.com/jhoicas/BillSync-api/internal/application/subscription"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/plan"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions      *auth.SessionResolver
	AuthUC        *auth.AuthUseCase
	AccountUC     *account.UseCase
	ProductUC     *catalog.ProductUseCase
	BillUC        *billing.BillUseCase
	DocumentUC    *billing.DocumentUseCase
	Subscriptions *subscription.Service
	Payments      *payment.UseCase
	Metrics       *Metrics
	Log           *logger.Logger
	ServiceName   string
}

// Router registra middleware global y las rutas de la API.
//
// Segmentos:
//   - público: /health, /metrics, /openapi.json, /api/plans, /api/auth/*, /api/payments/webhook
//   - ADMIN:   /api/admin/* (y las páginas /admin/*)
//   - staff:   /api/pos/* para ADMIN o CASHIER (y las páginas /cashier/*)
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics(deps.ServiceName)
	}

	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(deps.Metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", deps.Metrics.Handler())
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return writeError(c, log, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	// Todas las rutas siguientes ven el actor resuelto (anónimo si no hay sesión).
	app.Use(AuthMiddleware(deps.Sessions))
	app.Use("/admin", RouteGate(access.ClassAdmin))
	app.Use("/cashier", RouteGate(access.ClassStaff))

	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, log)
	accountHandler := NewAccountHandler(deps.AccountUC, log)
	productHandler := NewProductHandler(deps.ProductUC, log)
	billHandler := NewBillHandler(deps.BillUC, deps.DocumentUC, log)
	subHandler := NewSubscriptionHandler(deps.Subscriptions, deps.Payments, log)

	// Público
	api.Get("/plans", subHandler.ListPlans)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/cashier/login", authHandler.CashierLogin)
	api.Post("/payments/webhook", subHandler.Webhook)

	// ADMIN
	admin := api.Group("/admin", RouteGate(access.ClassAdmin))
	admin.Get("/profile", accountHandler.GetProfile)
	admin.Put("/profile", accountHandler.UpdateProfile)
	admin.Post("/profile/logo", accountHandler.UploadLogo)
	admin.Post("/otp/send", authHandler.SendOTP)
	admin.Post("/otp/verify", authHandler.VerifyOTP)

	admin.Post("/cashiers", accountHandler.CreateCashier)
	admin.Get("/cashiers", accountHandler.ListCashiers)
	admin.Get("/cashiers/:id", accountHandler.GetCashier)
	admin.Put("/cashiers/:id", accountHandler.UpdateCashier)
	admin.Delete("/cashiers/:id", accountHandler.DeleteCashier)

	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)

	admin.Get("/subscription", subHandler.Current)
	admin.Post("/subscription/plan", subHandler.ChangePlan)
	admin.Post("/subscription/orders", subHandler.CreateOrder)
	admin.Post("/subscription/verify", subHandler.Verify)
	admin.Post("/subscription/orders/:orderId/fail", subHandler.MarkFailed)
	admin.Get("/payments", subHandler.ListPayments)

	admin.Delete("/bills/:id", billHandler.Delete)

	// ADMIN o CASHIER
	pos := api.Group("/pos", RouteGate(access.ClassStaff))
	pos.Get("/me", accountHandler.Me)
	pos.Get("/products", productHandler.List)
	pos.Get("/products/:id", productHandler.GetByID)

	pos.Post("/bills", billHandler.Create)
	pos.Get("/bills", billHandler.List)
	pos.Get("/bills/:id", billHandler.GetByID)
	pos.Post("/bills/:id/pay", billHandler.Pay)
	pos.Get("/bills/:id/pdf", RequireFeature(plan.FeaturePDFExport, deps.Subscriptions, log), billHandler.DownloadPDF)
	pos.Get("/bills/:id/qr", RequireFeature(plan.FeatureQRPayments, deps.Subscriptions, log), billHandler.PaymentQR)
	pos.Get("/dashboard", billHandler.Dashboard)
}
