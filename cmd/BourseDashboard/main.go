package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sebuszqo/BourseDashboard/internal/auth"
	"github.com/sebuszqo/BourseDashboard/internal/config"
	database "github.com/sebuszqo/BourseDashboard/internal/db"
	investments "github.com/sebuszqo/BourseDashboard/internal/investment"
	"github.com/sebuszqo/BourseDashboard/internal/investment/catalog"
	"github.com/sebuszqo/BourseDashboard/internal/investment/holding"
	"github.com/sebuszqo/BourseDashboard/internal/investment/marketdata"
	portfolios "github.com/sebuszqo/BourseDashboard/internal/investment/portfolio"
	"github.com/sebuszqo/BourseDashboard/internal/investment/report"
	transactions "github.com/sebuszqo/BourseDashboard/internal/investment/transaction"
	"github.com/sebuszqo/BourseDashboard/internal/logger"
	"github.com/sebuszqo/BourseDashboard/internal/user"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(log)
	if !cfg.EnvFileLoaded {
		log.Info().Msg("No .env file loaded, continuing with system environment variables")
	}

	dbService, err := database.NewDBService(cfg.Postgres, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not initialize database")
	}
	defer dbService.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var quoteCache catalog.QuoteCache = catalog.NoopQuoteCache{}
	if cfg.Redis.Addr != "" {
		redisClient, err := catalog.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, quote cache disabled")
		} else {
			defer redisClient.Close()
			quoteCache = catalog.NewRedisQuoteCache(redisClient, cfg.Redis.QuoteTTL)
		}
	}

	marketDataClient := marketdata.NewClient(cfg.MarketData, log)

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo, log)
	userHandler := user.NewHandler(userService, respondJSON, respondError)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	authService := auth.NewAuthService(userService, jwtManager, log)
	authHandler := auth.NewHandler(authService, respondJSON, respondError)

	assetRepo := catalog.NewAssetRepository(dbService.DB)
	catalogService := catalog.NewCatalogService(assetRepo, marketDataClient, quoteCache, cfg.Jobs.QuotesMaxAge, log)
	catalogHandler := catalog.NewCatalogHandler(catalogService, respondJSON, respondError)

	portfolioRepo := portfolios.NewPortfolioRepository(dbService.DB)
	portfolioService := portfolios.NewPortfolioService(portfolioRepo, log)

	transactionRepo := transactions.NewTransactionRepository(dbService.DB)
	transactionService := transactions.NewTransactionService(transactionRepo, catalogService, log)

	holdingService := holding.NewHoldingService(
		portfolioService,
		transactionService,
		catalogService,
		report.NewXLSXGenerator(log),
		log,
	)

	investmentsHandler := investments.NewInvestmentHandler(portfolioService, transactionService, holdingService, respondJSON, respondError, log)
	server := NewServer(authHandler, authService, userHandler, investmentsHandler, catalogHandler, dbService.Health)
	server.RegisterRoutes()

	// A failed initial import is not fatal: holdings fall back to placeholders until the next refresh.
	if err := refreshQuotesIfStale(ctx, catalogService, log); err != nil {
		log.Error().Err(err).Msg("Initial quote import failed")
	}

	scheduler, err := StartQuoteScheduler(catalogService, cfg.Jobs.QuotesRefreshInterval, cfg.MarketData.Timeout*3, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Scheduler didn't start, stopping the app")
	}

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      loggingMiddleware(log, server.router),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("Server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
