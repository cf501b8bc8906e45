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

	"github.com/bilkro/pos-api/internal/application/auth"
	appcart "github.com/bilkro/pos-api/internal/application/cart"
	appcheckout "github.com/bilkro/pos-api/internal/application/checkout"
	"github.com/bilkro/pos-api/internal/application/reporting"
	"github.com/bilkro/pos-api/internal/application/usecase"
	infraemail "github.com/bilkro/pos-api/internal/infrastructure/email"
	infrapdf "github.com/bilkro/pos-api/internal/infrastructure/pdf"
	"github.com/bilkro/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/bilkro/pos-api/internal/interfaces/http"
	"github.com/bilkro/pos-api/pkg/config"
	"github.com/bilkro/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificador SMTP: SMTP_HOST vacío lo desactiva (el checkout sigue igual,
	// solo reporta emailSent=false).
	var notifier appcheckout.Notifier
	if cfg.SMTP.Host != "" {
		smtpNotifier, err := infraemail.NewSMTPNotifier(cfg.SMTP, log)
		if err != nil {
			log.Fatal().Err(err).Msg("notificador SMTP")
		}
		notifier = smtpNotifier
	} else {
		log.Warn().Msg("SMTP_HOST vacío: correos de confirmación desactivados")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	cartUC := appcart.NewUseCase(cartRepo, productRepo, log)
	checkoutUC := appcheckout.NewUseCase(txRunner, notifier, log)
	productUC := usecase.NewProductUseCase(productRepo)
	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	saleUC := usecase.NewSaleUseCase(saleRepo, receiptGen)
	reportingUC := reporting.NewUseCase(reportRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bilkro POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CartUC:      cartUC,
		CheckoutUC:  checkoutUC,
		ProductUC:   productUC,
		SaleUC:      saleUC,
		ReportingUC: reportingUC,
		JWTSecret:   cfg.JWT.Secret,
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
