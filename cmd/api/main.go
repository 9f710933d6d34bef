package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/BillSync-api/docs"
	"github.com/jhoicas/BillSync-api/internal/application/account"
	"github.com/jhoicas/BillSync-api/internal/application/auth"
	"github.com/jhoicas/BillSync-api/internal/application/billing"
	"github.com/jhoicas/BillSync-api/internal/application/catalog"
	"github.com/jhoicas/BillSync-api/internal/application/payment"
	"github.com/jhoicas/BillSync-api/internal/application/subscription"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/BillSync-api/internal/infrastructure/pdf"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/postgres"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/qrcode"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/razorpay"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/BillSync-api/internal/interfaces/http"
	"github.com/jhoicas/BillSync-api/pkg/config"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	adminRepo := postgres.NewAdminRepository(pool)
	accountRepo := postgres.NewBillingAccountRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	sessions := auth.NewSessionResolver(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Sin SMTP los OTP solo quedan en el log (desarrollo).
	var notifier auth.Notifier = mail.NewLogNotifier(log.Named("mail"))
	if cfg.SMTP.Enabled() {
		notifier = mail.NewSMTPNotifier(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP no configurado: los OTP se escriben en el log")
	}

	// Interfaces nil (no punteros nil) para que los casos de uso detecten la ausencia.
	var objectStore account.ObjectStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento S3")
		}
		objectStore = s3Store
	} else {
		log.Warn().Msg("S3 no configurado: subida de logos deshabilitada")
	}

	var gateway payment.Gateway
	if cfg.Gateway.Enabled() {
		gateway = razorpay.NewClient(cfg.Gateway)
	} else {
		log.Warn().Msg("pasarela de pagos no configurada: los planes pagados no se pueden comprar")
	}

	subs := subscription.NewService(subRepo, planRepo)
	authUC := auth.NewAuthUseCase(adminRepo, accountRepo, txRunner, sessions, notifier, log.Named("auth"))
	accountUC := account.NewUseCase(adminRepo, accountRepo, subs, objectStore)
	productUC := catalog.NewProductUseCase(productRepo, subs)
	billUC := billing.NewBillUseCase(billRepo, productRepo)
	documentUC := billing.NewDocumentUseCase(billRepo, adminRepo, infrapdf.NewMarotoPDFGenerator(), qrcode.Renderer{})
	paymentUC := payment.NewUseCase(planRepo, paymentRepo, txRunner, gateway, cfg.Gateway.Currency)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    4 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BillSync API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:      sessions,
		AuthUC:        authUC,
		AccountUC:     accountUC,
		ProductUC:     productUC,
		BillUC:        billUC,
		DocumentUC:    documentUC,
		Subscriptions: subs,
		Payments:      paymentUC,
		Log:           log.Named("http"),
		ServiceName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
