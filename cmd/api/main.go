package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/wishlist-ai/api/routes"
	"github.com/angelmondragon/wishlist-ai/internal/orderhistory"
	"github.com/angelmondragon/wishlist-ai/internal/scoring"
	"github.com/angelmondragon/wishlist-ai/internal/stores"
	"github.com/angelmondragon/wishlist-ai/internal/wishlist"
	"github.com/angelmondragon/wishlist-ai/pkg/config"
	"github.com/angelmondragon/wishlist-ai/pkg/db"
	"github.com/angelmondragon/wishlist-ai/pkg/logger"
	"github.com/angelmondragon/wishlist-ai/pkg/metrics"
	"github.com/angelmondragon/wishlist-ai/pkg/migrate"
	"github.com/angelmondragon/wishlist-ai/pkg/openai"
	"github.com/angelmondragon/wishlist-ai/pkg/redis"
	"github.com/angelmondragon/wishlist-ai/pkg/shopify"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var (
		redisClient *redis.Client
		redisPinger redis.Pinger
		guard       wishlist.ScoringGuard
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		redisGuard, err := wishlist.NewRedisGuard(redisClient, cfg.Scoring.LockTTL)
		if err != nil {
			logg.Error(ctx, "failed to create scoring guard", err)
			os.Exit(1)
		}
		redisPinger = redisClient
		guard = redisGuard
	} else {
		logg.Warn(ctx, "redis not configured, scoring guard disabled")
	}

	shopifyClient, err := shopify.NewClient(
		cfg.Shopify.APIVersion,
		shopify.WithBaseURL(cfg.Shopify.BaseURL),
		shopify.WithTimeout(cfg.Shopify.Timeout),
	)
	if err != nil {
		logg.Error(ctx, "failed to create shopify client", err)
		os.Exit(1)
	}

	openaiClient, err := openai.NewClient(
		cfg.OpenAI.APIKey,
		openai.WithBaseURL(cfg.OpenAI.BaseURL),
		openai.WithModel(cfg.OpenAI.Model),
		openai.WithMaxTokens(cfg.OpenAI.MaxTokens),
		openai.WithTemperature(cfg.OpenAI.Temperature),
		openai.WithTimeout(cfg.OpenAI.Timeout),
	)
	if err != nil {
		logg.Error(ctx, "failed to create scoring client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	storeService, err := stores.NewService(stores.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create store service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		Repo:    wishlist.NewRepository(dbClient.DB()),
		Stores:  storeService,
		Fetcher: orderhistory.NewFetcher(shopifyClient, logg),
		Scorer:  scoring.NewRequester(openaiClient, cfg.OpenAI.Timeout, logg),
		Guard:   guard,
		Metrics: metrics.NewWishlistMetrics(registry),
		Logger:  logg,

		ScoringTimeout: cfg.Shopify.Timeout + cfg.OpenAI.Timeout,
	})
	if err != nil {
		logg.Error(ctx, "failed to create wishlist service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbClient, redisPinger, wishlistService, registry),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Shopify.Timeout + cfg.OpenAI.Timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(serverCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(serverCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	closeErr := server.Shutdown(shutdownCtx)
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	if closeErr != nil {
		logg.Error(serverCtx, "error during shutdown", closeErr)
		exitCode = 1
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	logg.Info(serverCtx, "api server stopped")
}
