// Command api is the Athletes Unlimited stats API server.
//
// Usage:
//
//	austats-api
//	API_PORT=8080 DATABASE_URL=postgres://... austats-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/austats/internal/api"
	"github.com/albapepper/austats/internal/api/handler"
	"github.com/albapepper/austats/internal/cache"
	"github.com/albapepper/austats/internal/config"
	"github.com/albapepper/austats/internal/ingest"
	"github.com/albapepper/austats/internal/maintenance"
	"github.com/albapepper/austats/internal/provider/au"
	"github.com/albapepper/austats/internal/sport"
	"github.com/albapepper/austats/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	registry := sport.Default()

	// Database is optional: without it only registry routes are served.
	var st handler.Store
	var pool *store.Pool
	if cfg.DatabaseURL != "" {
		logger.Info("Connecting to database...")
		pool, err = store.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		st = pool
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	} else {
		logger.Warn("DATABASE_URL not set; stats routes will return 503")
	}

	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Optional Redis vendor cache, shared by the refresh client and /health/cache
	var vendor handler.Pinger
	clientOpts := []au.Option{au.WithHTTPClient(&http.Client{Timeout: cfg.AUHTTPTimeout})}
	if cfg.RedisURL != "" {
		rc, err := au.NewRedisCache(ctx, cfg.RedisURL, cfg.AUCacheTTL)
		if err != nil {
			logger.Warn("Vendor cache unavailable", "error", err)
		} else {
			defer rc.Close()
			vendor = rc
			clientOpts = append(clientOpts, au.WithCache(rc))
			logger.Info("Vendor cache connected")
		}
	}

	// Background refresh of the current season's aggregates
	if pool != nil && cfg.RefreshInterval > 0 {
		client := au.NewClient(cfg.AUBaseURL, cfg.AUUserAgent, cfg.AURequestsPerMinute, logger, clientOpts...)
		leagues := cfg.RefreshLeagues
		if len(leagues) == 0 {
			leagues = registry.Keys()
		}
		runner := ingest.NewRunner(client, registry, logger)
		go maintenance.Start(ctx, runner, pool, maintenance.Config{
			RefreshInterval: cfg.RefreshInterval,
			Season:          cfg.RefreshSeason,
			Leagues:         leagues,
		}, logger)
	}

	router := api.NewRouter(st, appCache, vendor, registry, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting Athletes Unlimited stats API",
			"addr", addr,
			"environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
