package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/message-admin/internal/api/http"
	"github.com/spec-kit/message-admin/internal/api/http/handlers"
	"github.com/spec-kit/message-admin/internal/auth"
	"github.com/spec-kit/message-admin/internal/backend"
	"github.com/spec-kit/message-admin/internal/config"
	"github.com/spec-kit/message-admin/internal/events"
	"github.com/spec-kit/message-admin/internal/flash"
	"github.com/spec-kit/message-admin/internal/observability"
	"github.com/spec-kit/message-admin/internal/persistence"
	"github.com/spec-kit/message-admin/internal/service"
	"github.com/spec-kit/message-admin/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	var flashStore flash.Store
	switch cfg.Flash.Store {
	case config.FlashStoreRedis:
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		flashStore = flash.NewRedisStore(redis.Client, cfg.Flash.TTL())
	default:
		flashStore = flash.NewMemoryStore(cfg.Flash.TTL())
	}

	api := backend.NewClient(cfg.API, logger, metrics)
	logger.Info("backend configured", zap.String("api_url", cfg.API.BaseURL))

	views, err := httptransport.NewViews()
	if err != nil {
		logger.Fatal("failed to open views", zap.Error(err))
	}
	if err := views.Load(); err != nil {
		logger.Fatal("failed to load views", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		Views:   views,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, flashStore),
		Auth:    handlers.NewAuthHandler(),
		Admin:   handlers.NewAdminHandler(api, logger),
		Staff:   handlers.NewStaffHandler(api),
		Session: auth.NewSessionMiddleware(api, dispatcher, logger, cfg.Auth),
		Flash:   flash.NewMiddleware(flashStore, logger, cfg.Auth.CookieSecure),
		Metrics: adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
