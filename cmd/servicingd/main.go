package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harborbank/servicing/internal/application/usecase"
	"github.com/harborbank/servicing/internal/domain/port"
	"github.com/harborbank/servicing/internal/domain/service"
	"github.com/harborbank/servicing/internal/domain/valueobject"
	"github.com/harborbank/servicing/internal/infrastructure/cache"
	"github.com/harborbank/servicing/internal/infrastructure/config"
	"github.com/harborbank/servicing/internal/infrastructure/kafka"
	pgRepo "github.com/harborbank/servicing/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/harborbank/servicing/internal/presentation/grpc"
	"github.com/harborbank/servicing/internal/presentation/rest"
	"github.com/harborbank/servicing/pkg/auth"
	pkgkafka "github.com/harborbank/servicing/pkg/kafka"
	"github.com/harborbank/servicing/pkg/observability"
	pkgpostgres "github.com/harborbank/servicing/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   getEnv("LOG_LEVEL", "info"),
		Format:  "json",
	})

	logger.Info("starting servicing",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"cache_backend", cfg.Cache.Backend,
	)

	// Initialize tracing.
	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:            cfg.DB.Host,
		Port:            cfg.DB.Port,
		User:            cfg.DB.User,
		Password:        cfg.DB.Password,
		Database:        cfg.DB.Name,
		SSLMode:         cfg.DB.SSLMode,
		ApplicationName: "servicingd",
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Schedule cache: in-process LRU by default, Redis for multi-instance
	// deployments.
	var scheduleCache port.ScheduleCache
	switch cfg.Cache.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		defer client.Close()
		scheduleCache = cache.NewRedisScheduleCache(client, cfg.Cache.TTL, logger)
	default:
		memCache := cache.NewMemoryScheduleCache(cfg.Cache.Capacity, cache.NewLRUPolicy())
		if regErr := observability.RegisterCacheMetrics(meterProvider, func() (uint64, uint64, uint64) {
			stats := memCache.Stats()
			return stats.Hits, stats.Misses, stats.Evictions
		}); regErr != nil {
			logger.Warn("failed to register cache metrics", "error", regErr)
		}
		scheduleCache = memCache
	}

	// Wire infrastructure adapters.
	loanRepo := pgRepo.NewLoanRecordRepo(pool)
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewKafkaEventPublisher(kafkaProducer, kafka.DefaultTopics(), logger)

	// Domain services.
	amortEngine := service.NewAmortizationEngine()
	allocEngine := service.NewAllocationEngine()
	prepayCalc := service.NewPrepaymentCalculator()

	// Calendar policy for quotes, which carry no convention of their own.
	dayCount, err := valueobject.NewDayCountConvention(cfg.Calculation.DayCountConvention)
	if err != nil {
		logger.Error("invalid day count convention", "error", err)
		os.Exit(1)
	}

	// Wire use cases.
	getScheduleUC := usecase.NewGetScheduleUseCase(loanRepo, scheduleCache, amortEngine, publisher)
	calcPaymentUC := usecase.NewCalculatePaymentUseCase(amortEngine, dayCount)
	allocateUC := usecase.NewAllocatePaymentUseCase(loanRepo, allocEngine, publisher,
		service.ResidualTarget(cfg.Calculation.ResidualTarget))
	prepaymentUC := usecase.NewRecalculatePrepaymentUseCase(loanRepo, amortEngine, prepayCalc, publisher)

	// Cache invalidation consumer: drops cached schedules when loan terms
	// change upstream.
	invalidationConsumer := kafka.NewInvalidationConsumer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: "servicing-cache-invalidation",
	}, scheduleCache, logger)
	defer invalidationConsumer.Close()

	go func() {
		if consumeErr := invalidationConsumer.Start(ctx); consumeErr != nil {
			logger.Error("invalidation consumer stopped", "error", consumeErr)
		}
	}()

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: "harborbank-gateway",
	}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			jwtSecret = "test-e2e-secret" // Match gateway default for E2E tests
		}
		jwtCfg.Secret = jwtSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewServicingHandler(getScheduleUC, calcPaymentUC, allocateUC, prepaymentUC)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("servicing stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
