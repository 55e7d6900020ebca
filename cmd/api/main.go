package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pizza-storefront/internal/apiclient"
	"pizza-storefront/internal/config"
	"pizza-storefront/internal/httpserver"
	"pizza-storefront/internal/logging"
	cartrepo "pizza-storefront/internal/repository/cart"
	cartsvc "pizza-storefront/internal/service/cart"
	"pizza-storefront/internal/service/catalog"
	"pizza-storefront/internal/service/checkout"
	"pizza-storefront/internal/service/dashboard"
	"pizza-storefront/internal/service/orderstatus"
	"pizza-storefront/internal/service/session"
)

const version = "dev"

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.With(zap.String("service", "storefront"))

	client := apiclient.New(cfg.Remote.BaseURL, cfg.Remote.Timeout, logger)
	menu := catalog.New(client, cfg.Catalog.TTL, logger)

	checks := []healthgo.Config{{
		Name:    "order-api",
		Timeout: cfg.Remote.Timeout,
		Check:   client.Ping,
	}}

	var carts cartrepo.Repository
	switch cfg.Cart.Store {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		defer rdb.Close()
		carts = cartrepo.NewRedis(rdb, cfg.Cart.TTL)
		checks = append(checks, healthgo.Config{
			Name:    "redis",
			Timeout: 2 * time.Second,
			Check: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		})
		logger.Info("cart store: redis", zap.String("addr", cfg.Redis.Addr))
	default:
		carts = cartrepo.NewMemory(cfg.Cart.TTL)
		logger.Info("cart store: memory")
	}

	health, err := healthgo.New(
		healthgo.WithComponent(healthgo.Component{Name: "pizza-storefront", Version: version}),
		healthgo.WithChecks(checks...),
	)
	if err != nil {
		logger.Fatal("init health checks", zap.Error(err))
	}

	cartService := cartsvc.New(carts, menu, logger)
	srv := httpserver.New(cfg.HTTP.Addr, logger, httpserver.Deps{
		Menu:        menu,
		Cart:        cartService,
		Checkout:    checkout.New(cartService, client, cfg.LocationID, logger),
		OrderStatus: orderstatus.New(client, cfg.Session.TTL, logger),
		Dashboard:   dashboard.New(client, cfg.LocationID, logger),
		Sessions:    session.New(cfg.Session.TTL),
		Health:      health,
		CORSOrigins: cfg.HTTP.CORS.Origins,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
