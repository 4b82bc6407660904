package handler

import (
	"bank-ledger/internal/adapter/http/middleware"
	redisStore "bank-ledger/internal/adapter/storage/redis"
	"bank-ledger/internal/core/ports"
	"bank-ledger/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.LedgerService
	ReportingSvc   ports.ReportingService
	Notifier       ports.Notifier
	TokenSvc       ports.TokenService
	AccountRepo    ports.AccountRepository
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes (JWT-authenticated account holders)
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	v1 := r.Group("/api/v1", jwtAuth)

	ledgerHandler := NewLedgerHandler(deps.LedgerSvc, deps.Notifier)
	loanHandler := NewLoanHandler(deps.LedgerSvc, deps.ReportingSvc, deps.Notifier)
	reportHandler := NewReportHandler(deps.ReportingSvc)

	accounts := v1.Group("/accounts/me")
	{
		accounts.POST("/deposits", rl("ledger"), ledgerHandler.Deposit)
		accounts.POST("/withdrawals", rl("ledger"), ledgerHandler.Withdraw)
	}

	v1.POST("/transfers", rl("transfers"), ledgerHandler.Transfer)

	loans := v1.Group("/loans")
	{
		loans.POST("", rl("loans"), loanHandler.RequestLoan)
		loans.POST("/:id/pay", rl("loans"), loanHandler.PayLoan)
		loans.GET("", rl("reports"), loanHandler.ListLoans)
	}

	v1.GET("/reports", rl("reports"), reportHandler.GetReport)

	// Internal routes (operations side; deployed behind a private listener)
	adminHandler := NewAdminHandler(deps.AccountRepo, deps.LedgerSvc, deps.Notifier)
	internal := r.Group("/internal")
	{
		internal.POST("/accounts", adminHandler.CreateAccount)
		internal.GET("/accounts/:id", adminHandler.GetAccount)
		internal.PUT("/accounts/:id/bankrupt", adminHandler.SetBankrupt)
		internal.POST("/loans/:id/approve", adminHandler.ApproveLoan)
	}

	return r
}
