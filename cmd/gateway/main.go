package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/application/services"
	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/DanielPopoola/broker-gateway/internal/config"
	"github.com/DanielPopoola/broker-gateway/internal/infrastructure/cache"
	"github.com/DanielPopoola/broker-gateway/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/broker-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/broker-gateway/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/broker-gateway/internal/metrics"
	"github.com/DanielPopoola/broker-gateway/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting broker gateway",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"cache_backend", cfg.Cache.Backend,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	responseCache, sweeper, closeCache, err := newResponseCache(ctx, cfg.Cache, db, logger)
	if err != nil {
		logger.Error("failed to set up response cache", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	credentials := config.NewStaticProvider(cfg.Broker)
	brokerClient := broker.New(
		credentials,
		credentials,
		responseCache,
		broker.NewHTTPTransport(cfg.Broker.TransportConfig()),
		logger,
		broker.WithRetryPolicy(cfg.Retry.Policy()),
		broker.WithAttemptTimeout(cfg.Broker.AttemptTimeout()),
		broker.WithCacheKeySecret([]byte(cfg.Cache.KeySecret)),
		broker.WithObserver(metrics.NewBrokerMetrics(registry)),
	)

	outbox := postgres.NewOutboxRepository(db)
	lookupService := services.NewLookupService(brokerClient, cfg.Cache.TTL, logger)
	mailService := services.NewMailService(outbox, logger)

	h := handlers.NewHandlers(lookupService, mailService, db, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	outboxWorker := worker.NewOutboxWorker(
		outbox,
		brokerClient,
		cfg.Worker.Interval,
		cfg.Worker.BatchSize,
		cfg.Worker.MaxAttempts,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go outboxWorker.Start(workerCtx)
	if sweeper != nil {
		janitor := worker.NewCacheJanitor(sweeper, cfg.Cache.SweepInterval, logger)
		go janitor.Start(workerCtx)
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// newResponseCache picks the configured cache backend. The sweeper is nil for
// backends that expire entries on their own.
func newResponseCache(
	ctx context.Context,
	cfg config.CacheConfig,
	db *postgres.DB,
	logger *slog.Logger,
) (broker.Cache, worker.Sweeper, func(), error) {
	switch cfg.Backend {
	case "", "memory":
		c := cache.NewMemoryCache()
		return c, c, func() {}, nil
	case "postgres":
		c := postgres.NewCacheRepository(db)
		return c, c, func() {}, nil
	case "redis":
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return c, nil, func() {
			if err := c.Close(); err != nil {
				logger.Warn("failed to close redis client", "error", err)
			}
		}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
