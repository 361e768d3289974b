package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gracebuffer/storefront/api/routes"
	"github.com/gracebuffer/storefront/internal/auth"
	"github.com/gracebuffer/storefront/internal/cart"
	"github.com/gracebuffer/storefront/internal/catalog"
	checkoutsvc "github.com/gracebuffer/storefront/internal/checkout"
	"github.com/gracebuffer/storefront/internal/history"
	paymentsvc "github.com/gracebuffer/storefront/internal/payment"
	"github.com/gracebuffer/storefront/internal/prefs"
	"github.com/gracebuffer/storefront/internal/session"
	stocksvc "github.com/gracebuffer/storefront/internal/stock"
	"github.com/gracebuffer/storefront/pkg/config"
	"github.com/gracebuffer/storefront/pkg/db"
	"github.com/gracebuffer/storefront/pkg/logger"
	"github.com/gracebuffer/storefront/pkg/metrics"
	"github.com/gracebuffer/storefront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.Store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap local store", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing local store", err)
		}
	}()

	if err := db.Migrate(context.Background(), dbClient, logg); err != nil {
		logg.Error(context.Background(), "failed to migrate local store", err)
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

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	remote, err := catalog.NewClient(cfg.API, catalog.WithMetrics(httpMetrics))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	sessionStore, err := session.NewStore(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session store", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewLineRepository(dbClient.DB()), remote, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	historyRepo := history.NewRepository(dbClient.DB())

	stockService, err := stocksvc.NewService(stocksvc.NewShadowRepository(dbClient.DB()), remote, historyRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.NewUserRepository(dbClient.DB()), remote, cfg.Auth, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartService, remote, sessionStore, cfg.Checkout, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	paymentService, err := paymentsvc.NewService(remote, sessionStore, cartService, checkoutService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Catalog:   remote,
			Metrics:   httpMetrics,
			Auth:      authService,
			Carts:     cartService,
			Stocks:    stockService,
			Checkouts: checkoutService,
			Payments:  paymentService,
			Session:   sessionStore,
			History:   historyRepo,
			Prefs:     prefs.NewRepository(dbClient.DB()),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
		os.Exit(1)
	}
}
