package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bank-ledger/config"
	httpHandler "bank-ledger/internal/adapter/http/handler"
	pgStorage "bank-ledger/internal/adapter/storage/postgres"
	redisStorage "bank-ledger/internal/adapter/storage/redis"
	"bank-ledger/internal/core/ports"
	"bank-ledger/internal/metrics"
	"bank-ledger/internal/service"
	"bank-ledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Bank Ledger Core")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize health checkers
	healthCheckers := []ports.HealthChecker{pgStorage.NewHealthCheck(pool)}

	// Initialize Redis client. The ledger runs without it: rate limiting is
	// disabled when Redis is unavailable, everything else is unaffected.
	var rateLimitStore *redisStorage.RateLimitStore
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
		log.Info().Msg("Redis connected")
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	// Initialize repositories
	accountRepo := pgStorage.NewAccountRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	loanPolicy := service.NewLoanPolicy(txRepo, cfg.Loan.ApprovedCap)
	ledgerSvc := service.NewLedgerService(accountRepo, txRepo, loanPolicy, transactor, log)
	reportingSvc := service.NewReportingService(accountRepo, txRepo)
	notifier := service.NewWebhookNotifier(cfg.Notifier.URL, &http.Client{Timeout: cfg.Notifier.Timeout}, log)

	// Register Prometheus collectors
	metrics.Init()

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		ReportingSvc:   reportingSvc,
		Notifier:       notifier,
		TokenSvc:       tokenSvc,
		AccountRepo:    accountRepo,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
