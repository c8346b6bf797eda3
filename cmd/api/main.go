package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/retail-pos/internal/application/auth"
	"github.com/tu-usuario/retail-pos/internal/application/catalog"
	"github.com/tu-usuario/retail-pos/internal/application/counterparty"
	appinvoicing "github.com/tu-usuario/retail-pos/internal/application/invoicing"
	"github.com/tu-usuario/retail-pos/internal/application/reporting"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/retail-pos/internal/interfaces/http"
	"github.com/tu-usuario/retail-pos/pkg/config"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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
	priceRepo := postgres.NewPriceRecordRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	editor := appinvoicing.NewDraftEditor(
		appinvoicing.DefaultEditorConfig(),
		productRepo, priceRepo, snapshotRepo,
		customerRepo, supplierRepo, invoiceRepo,
		log,
	)
	submitDraftUC := appinvoicing.NewSubmitDraftUseCase(editor, txRunner, log)
	catalogUC := catalog.NewCatalogUseCase(productRepo, priceRepo)
	counterpartyUC := counterparty.NewUseCase(customerRepo, supplierRepo)
	reportUC := reporting.NewProfitReportUseCase(invoiceRepo, snapshotRepo, productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if !httpRouter.RegisterSwagger(app, "./docs/swagger.json") {
		log.Warn().Msg("docs/swagger.json no encontrado, la documentación queda deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Editor:         editor,
		SubmitDraft:    submitDraftUC,
		CatalogUC:      catalogUC,
		CounterpartyUC: counterpartyUC,
		ReportUC:       reportUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
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
