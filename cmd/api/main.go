package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/farmlinkhq/farmlink-backend/api/routes"
	"github.com/farmlinkhq/farmlink-backend/internal/auth"
	"github.com/farmlinkhq/farmlink-backend/internal/catalog"
	"github.com/farmlinkhq/farmlink-backend/internal/categories"
	"github.com/farmlinkhq/farmlink-backend/internal/markets"
	"github.com/farmlinkhq/farmlink-backend/internal/vendors"
	"github.com/farmlinkhq/farmlink-backend/pkg/config"
	"github.com/farmlinkhq/farmlink-backend/pkg/db"
	"github.com/farmlinkhq/farmlink-backend/pkg/logger"
	"github.com/farmlinkhq/farmlink-backend/pkg/metrics"
	"github.com/farmlinkhq/farmlink-backend/pkg/migrate"
	"github.com/farmlinkhq/farmlink-backend/pkg/redis"
)

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  auth.NewRepository(dbClient.DB()),
		JWTConfig: cfg.JWT,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.Dependencies{
		Repo:         catalog.NewRepository(dbClient.DB()),
		DB:           dbClient,
		Cache:        redisClient,
		CacheTTL:     cfg.Cache.BrowseTTL,
		CacheEnabled: cfg.Cache.Enabled,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	vendorService, err := vendors.NewService(vendors.NewRepository(dbClient.DB()), catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.NewRepository(dbClient.DB()), catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	marketService, err := markets.NewService(markets.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create market service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DBPinger:    dbClient,
		RedisPinger: redisClient,
		Registry:    registry,
		HTTPMetrics: httpMetrics,

		AuthService:     authService,
		CatalogService:  catalogService,
		VendorService:   vendorService,
		CategoryService: categoryService,
		MarketService:   marketService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
