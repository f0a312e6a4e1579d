package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/phonehub-pos/internal/application/service"
	"github.com/sangkips/phonehub-pos/internal/config"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/pricing"
	domainRepo "github.com/sangkips/phonehub-pos/internal/domain/repository"
	"github.com/sangkips/phonehub-pos/internal/infrastructure/backend"
	"github.com/sangkips/phonehub-pos/internal/infrastructure/database"
	"github.com/sangkips/phonehub-pos/internal/infrastructure/events"
	"github.com/sangkips/phonehub-pos/internal/infrastructure/repository"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/handler"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/middleware"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/routes"
	"github.com/sangkips/phonehub-pos/pkg/printer"
	"github.com/sangkips/phonehub-pos/pkg/utils"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	catalogRepo, saleRepo, err := newBackend(cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up backend", zap.String("mode", cfg.Backend.Mode), zap.Error(err))
	}

	sessionRepo, err := repository.NewSessionRepository(cfg.Session.MaxSessions)
	if err != nil {
		logger.Fatal("failed to create session store", zap.Error(err))
	}

	publisher := newPublisher(cfg, logger)
	defer publisher.Close()

	thermal, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		logger.Warn("printer unavailable, receipts will not be printed", zap.Error(err))
		thermal = printer.Null()
	}
	defer thermal.Close()

	engine := pricing.New(cfg.Pricing.TaxRate)
	header := entity.ReceiptHeader{
		StoreName: cfg.Printer.StoreName,
		Address:   cfg.Printer.StoreAddress,
		Phone:     cfg.Printer.StorePhone,
	}

	// Initialize services
	catalogService := service.NewCatalogService(sessionRepo, engine, catalogRepo, logger)
	sessionService := service.NewSessionService(sessionRepo, engine, catalogService, logger)
	cartService := service.NewCartService(sessionRepo, engine, logger)
	checkoutService := service.NewCheckoutService(sessionRepo, engine, saleRepo, publisher, header, logger)
	reportService := service.NewReportService(sessionRepo, engine, saleRepo, logger)
	printerService := service.NewPrinterService(thermal, sessionService, header, cfg.Printer.Type, cfg.Printer.Width, logger)

	handlers := &routes.Handlers{
		Session:  handler.NewSessionHandler(sessionService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Report:   handler.NewReportHandler(reportService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(max(cfg.RateLimit.Duration, 1)),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	defer rateLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:   utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours),
		RateLimiter:  rateLimiter,
		Cfg:          cfg,
		Logger:       logger,
		SessionCount: sessionRepo.Count,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("service", cfg.App.Name),
			zap.String("port", cfg.App.Port),
			zap.String("env", cfg.App.Env),
			zap.String("backend", cfg.Backend.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.App.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", cfg.App.Name)), nil
}

// newBackend selects the persistence collaborator
func newBackend(cfg *config.Config, logger *zap.Logger) (domainRepo.CatalogRepository, domainRepo.SaleRepository, error) {
	switch cfg.Backend.Mode {
	case config.BackendModePostgres:
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db, logger); err != nil {
			return nil, nil, err
		}
		if cfg.Database.Seed {
			if err := database.SeedDemoCatalog(db, logger); err != nil {
				logger.Warn("failed to seed demo catalog", zap.Error(err))
			}
		}
		return repository.NewCatalogRepository(db), repository.NewSaleRepository(db), nil
	case config.BackendModeHTTP, "":
		client, err := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	}
	return nil, nil, errors.New("unknown backend mode " + cfg.Backend.Mode)
}

// newPublisher connects to RabbitMQ when AMQP_URL is set. A broker that is
// down at startup disables events instead of blocking sales.
func newPublisher(cfg *config.Config, logger *zap.Logger) domainRepo.EventPublisher {
	if cfg.Events.AMQPURL == "" {
		logger.Info("AMQP_URL not set, sale events disabled")
		return events.NoopPublisher{}
	}
	pub, err := events.Dial(cfg.Events.AMQPURL, cfg.Events.Exchange)
	if err != nil {
		logger.Warn("event broker unavailable, sale events disabled", zap.Error(err))
		return events.NoopPublisher{}
	}
	logger.Info("publishing sale events", zap.String("exchange", cfg.Events.Exchange))
	return pub
}
