package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc/credentials"

	"github.com/bibbank/bib/services/channeling-service/internal/application/usecase"
	"github.com/bibbank/bib/services/channeling-service/internal/infrastructure/cache"
	"github.com/bibbank/bib/services/channeling-service/internal/infrastructure/config"
	"github.com/bibbank/bib/services/channeling-service/internal/infrastructure/kafka"
	pgRepo "github.com/bibbank/bib/services/channeling-service/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/bibbank/bib/services/channeling-service/internal/presentation/grpc"
	"github.com/bibbank/bib/services/channeling-service/internal/presentation/rest"
	"github.com/bibbank/bib/services/channeling-service/pkg/auth"
	pkgkafka "github.com/bibbank/bib/services/channeling-service/pkg/kafka"
	"github.com/bibbank/bib/services/channeling-service/pkg/observability"
	pkgpostgres "github.com/bibbank/bib/services/channeling-service/pkg/postgres"
	"github.com/bibbank/bib/services/channeling-service/pkg/tlsutil"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting channeling-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing and metrics.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	// Database connection and migrations.
	dbCfg := pkgpostgres.Config{
		Host:            cfg.DB.Host,
		Port:            cfg.DB.Port,
		User:            cfg.DB.User,
		Password:        cfg.DB.Password,
		Database:        cfg.DB.Name,
		SSLMode:         cfg.DB.SSLMode,
		ApplicationName: cfg.ServiceName,
		MaxConns:        int32(cfg.DB.MaxConns),
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), cfg.MigrationsPath, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Rate config cache.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Kafka.
	kafkaCfg := pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ClientID:      cfg.ServiceName,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLEnabled,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	}
	producer, err := pkgkafka.NewProducer(kafkaCfg)
	if err != nil {
		logger.Error("failed to create kafka producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close()
	publisher := kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)

	// Wire repositories and use cases.
	scheduleRepo := pgRepo.NewScheduleRepo(pool)
	rateRepo := cache.NewRateConfigCache(pgRepo.NewRateConfigRepo(pool), redisClient, cfg.Redis.RateCacheTTL, logger)

	businessLoc, err := cfg.BusinessLocation()
	if err != nil {
		logger.Error("invalid business timezone", "error", err)
		os.Exit(1)
	}
	generateUC := usecase.NewGenerateScheduleUseCase(scheduleRepo, rateRepo, publisher, logger).
		WithBusinessLocation(businessLoc)
	getUC := usecase.NewGetScheduleUseCase(scheduleRepo)
	upsertUC := usecase.NewUpsertRateConfigUseCase(rateRepo, publisher, logger)

	consumer, err := pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.RequestTopic,
		kafka.NewScheduleRequestHandler(generateUC, logger), logger)
	if err != nil {
		logger.Error("failed to create kafka consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	// Token validation only; tokens are issued by the gateway.
	jwtCfg := auth.JWTConfig{
		Issuer:       cfg.Auth.Issuer,
		Secret:       cfg.Auth.Secret,
		PublicKeyPEM: cfg.Auth.PublicKeyPEM,
	}
	if jwtCfg.PublicKeyPEM == "" && cfg.Auth.PublicKeyFile != "" {
		if jwtCfg.PublicKeyPEM, err = auth.LoadKeyFromFile(cfg.Auth.PublicKeyFile); err != nil {
			logger.Error("failed to load JWT public key file", "error", err)
			os.Exit(1)
		}
	}
	validator, err := auth.NewValidator(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT validator", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	var creds credentials.TransportCredentials
	if cfg.TLS.CertFile != "" {
		if creds, err = tlsutil.ServerCredentials(cfg.TLS.CertFile, cfg.TLS.KeyFile, cfg.TLS.ClientCAFile); err != nil {
			logger.Error("failed to load TLS credentials", "error", err)
			os.Exit(1)
		}
	}

	handler := grpcPresentation.NewChannelingHandler(generateUC, getUC, upsertUC, logger)
	grpcServer, err := grpcPresentation.NewServer(handler, validator, logger, grpcPresentation.ServerOptions{
		Credentials: creds,
		ServiceName: cfg.ServiceName,
		Reflection:  cfg.GRPCReflection,
	})
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	rest.NewHealthHandler(cfg.ServiceName, logger,
		rest.PostgresCheck(pool),
		rest.RedisCheck(redisClient),
	).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers and the request consumer.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	go func() {
		if err := consumer.Start(ctx); err != nil {
			errCh <- fmt.Errorf("schedule request consumer error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
		cancel()
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("channeling-service stopped")
}
