// Package main is the entry point for the roster API server.
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

	"roster/internal/config"
	v1 "roster/internal/infrastructure/http/v1"
	"roster/internal/infrastructure/storage"
	"roster/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
		Backend:     cfg.Backend,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting roster server", "backend", cfg.Backend)

	// --- Storage backend ---
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to open storage backend", "backend", cfg.Backend, "error", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warnw("failed to close storage backend", "error", err)
		}
	}()

	if teams := cfg.Teams(); len(teams) > 0 {
		if err := storage.Seed(ctx, backend, teams); err != nil {
			log.Fatalw("failed to seed teams", "error", err)
		}
		log.Infow("teams seeded", "count", len(teams))
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Backend:     backend,
		BackendName: cfg.Backend,
		Logger:      log,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		log.Errorw("server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
