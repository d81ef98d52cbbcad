// Package main implements the entry point for the field equations server,
// which evaluates general-relativity metric tensors and their derived
// quantities over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/einfield/engine/internal/cache"
	"github.com/einfield/engine/internal/config"
	"github.com/einfield/engine/internal/metric"
	"github.com/einfield/engine/internal/platform/logger"
	"github.com/einfield/engine/internal/service"
)

// application bundles the initialized dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger
	memo   *cache.Memoizer
	calc   *service.CalculationService
}

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		app.logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// evaluators, memoizer, and calculation service.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"cache_ttl", cfg.Cache.TTL,
		"cache_capacity", cfg.Cache.Capacity)

	registry := metric.NewRegistry(appLogger,
		metric.NewSchwarzschild(cfg.Physics.GravitationalConstant, cfg.Physics.SpeedOfLight),
		metric.NewKerr(),
		metric.NewFLRW(cfg.Physics.DefaultHubble),
	)

	memo := cache.New(cfg.Cache.Capacity, cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	calc := service.NewCalculationService(registry, memo, appLogger)

	return &application{
		config: cfg,
		logger: appLogger,
		memo:   memo,
		calc:   calc,
	}, nil
}

// startHTTPServer runs the server until SIGINT/SIGTERM, then shuts down
// gracefully and stops the memoizer janitor.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: router,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error("Server failed", "error", err)
			cancelServer()
		}
	}()

	select {
	case <-shutdownCh:
		app.logger.Info("Shutting down server...")
	case <-serverCtx.Done():
		app.logger.Info("Server context canceled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.memo.Close()
	app.logger.Info("Server shutdown completed")
	return nil
}
