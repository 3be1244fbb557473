package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/billing"
	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/monitoring"
	infrapdf "github.com/jhoicas/Bodega-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Bodega-api/internal/interfaces/http"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/logger"
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

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos sobre el pool (lecturas y catálogo; el motor usa el TxRunner)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	billingEventRepo := postgres.NewBillingEventRepository(pool)
	priceListRepo := postgres.NewPriceListRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := inventory.NewLedgerUseCase(txRunner)
	reservationUC := inventory.NewReservationUseCase(txRunner, ledgerUC)
	pickingUC := inventory.NewPickingUseCase(txRunner)
	reconciliationUC := inventory.NewReconciliationUseCase(txRunner)
	catalogUC := catalog.NewCatalogUseCase(clientRepo, warehouseRepo, locationRepo, productRepo, batchRepo)
	usageUC := billing.NewUsageRecorder(billingEventRepo, priceListRepo, balanceRepo)
	invoiceUC := billing.NewGenerateInvoiceUseCase(txRunner, clientRepo)
	priceListUC := billing.NewPriceListUseCase(priceListRepo, clientRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, clientRepo, pdfGenerator)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.TenantID)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		CatalogUC:        catalogUC,
		LedgerUC:         ledgerUC,
		ReservationUC:    reservationUC,
		PickingUC:        pickingUC,
		ReconciliationUC: reconciliationUC,
		UsageUC:          usageUC,
		InvoiceUC:        invoiceUC,
		PriceListUC:      priceListUC,
		InvoicePDF:       invoicePDFUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	// Servidor de monitoreo aparte: /metrics y /health para probes.
	monSrv := monitoring.New(cfg.Metrics.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := monSrv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error().Err(err).Msg("servidor de monitoreo finalizado")
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := monSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del monitoreo")
	}

	log.Info().Msg("aplicación detenida")
}
