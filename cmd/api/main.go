package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/soltec-andina/facturacion-api/internal/application/auth"
	appbilling "github.com/soltec-andina/facturacion-api/internal/application/billing"
	"github.com/soltec-andina/facturacion-api/internal/application/catalog"
	"github.com/soltec-andina/facturacion-api/internal/application/ingestion"
	"github.com/soltec-andina/facturacion-api/internal/infrastructure/extraction"
	infrapdf "github.com/soltec-andina/facturacion-api/internal/infrastructure/pdf"
	"github.com/soltec-andina/facturacion-api/internal/infrastructure/postgres"
	"github.com/soltec-andina/facturacion-api/internal/infrastructure/storage"
	httpRouter "github.com/soltec-andina/facturacion-api/internal/interfaces/http"
	"github.com/soltec-andina/facturacion-api/pkg/config"
	"github.com/soltec-andina/facturacion-api/pkg/logger"
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
		Int("urgency_horizon_days", cfg.Billing.UrgencyHorizonDays).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	costCenterRepo := postgres.NewCostCenterRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	draftRepo := postgres.NewDraftRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	extractor, err := extraction.NewDocumentAIExtractor(ctx, cfg.Extraction, log.Component("document-ai"))
	if err != nil {
		log.Fatal().Err(err).Msg("cliente Document AI")
	}
	defer extractor.Close()

	fileStore, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("object store")
	}

	horizon := cfg.Billing.UrgencyHorizonDays
	invoiceUC := appbilling.NewInvoiceUseCase(invoiceRepo, providerRepo, costCenterRepo, projectRepo, horizon)
	statsUC := appbilling.NewStatisticsUseCase(invoiceRepo, horizon)
	reportUC := appbilling.NewAgingReportUseCase(invoiceRepo, infrapdf.NewAgingReportRenderer(), horizon)

	ingestionUC := ingestion.NewUseCase(
		draftRepo, providerRepo, costCenterRepo, projectRepo, txRunner,
		extractor, fileStore,
		ingestion.Config{
			ExtractionTimeout: cfg.Extraction.Timeout,
			MinConfidence:     cfg.Extraction.MinConfidence,
		},
		log.Component("ingestion"),
	)

	providerUC := catalog.NewProviderUseCase(providerRepo)
	costCenterUC := catalog.NewCostCenterUseCase(costCenterRepo)
	projectUC := catalog.NewProjectUseCase(projectRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    12 * 1024 * 1024, // margen sobre el techo de 10 MB de la ingesta
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		InvoiceUC:    invoiceUC,
		StatsUC:      statsUC,
		ReportUC:     reportUC,
		IngestionUC:  ingestionUC,
		ProviderUC:   providerUC,
		CostCenterUC: costCenterUC,
		ProjectUC:    projectUC,
		JWTSecret:    cfg.JWT.Secret,
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
