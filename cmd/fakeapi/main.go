package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pizza-storefront/internal/config"
	"pizza-storefront/internal/fakeapi"
	"pizza-storefront/internal/importer"
	"pizza-storefront/internal/logging"
	"pizza-storefront/internal/seed"
)

func main() {
	var menuPath string
	flag.StringVar(&menuPath, "menu", "", "Path to a menu CSV merged over the seeded specialty pizzas")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.With(zap.String("service", "fakeapi"))

	menu := fakeapi.Menu{
		SpecialtyPizzas: seed.SpecialtyPizzas(),
		Pricing:         seed.Pricing(),
	}
	if menuPath != "" {
		if err := importMenu(&menu, menuPath, logger); err != nil {
			logger.Fatal("import menu", zap.Error(err))
		}
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.FakeAPI.Addr,
		Handler:           fakeapi.NewRouter(menu, fakeapi.NewStore(), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("fake order api listening", zap.String("addr", srv.Addr))
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
	}
}

func importMenu(menu *fakeapi.Menu, path string, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	count, err := importer.NewCSVImporter(f, menu).Run(context.Background())
	if err != nil {
		return err
	}
	logger.Info("menu imported",
		zap.String("file", path),
		zap.Int("pizzas", count),
		zap.Duration("took", time.Since(start).Truncate(time.Millisecond)),
	)
	return nil
}
