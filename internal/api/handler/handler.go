// Package handler provides HTTP handlers for all API endpoints.
// Handlers read through a Store; stored season rows come back from Postgres
// as complete JSON and are passed through as raw bytes.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/albapepper/austats/internal/api/respond"
	"github.com/albapepper/austats/internal/cache"
	"github.com/albapepper/austats/internal/config"
	"github.com/albapepper/austats/internal/sport"
	"github.com/albapepper/austats/internal/stat"
)

// Store is the read side of the database the handlers use. *store.Pool
// satisfies it.
type Store interface {
	HealthCheck(ctx context.Context) error
	SeasonAggregates(ctx context.Context, league string, year int, level stat.Level) ([]byte, error)
	Seasons(ctx context.Context, league string) ([]byte, error)
}

// Pinger reports whether a backing service is reachable. *au.RedisCache
// satisfies it.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store    Store
	cache    *cache.Cache
	vendor   Pinger
	cfg      *config.Config
	registry *sport.Registry
}

// New creates a Handler with shared dependencies. store and vendor may be nil.
func New(store Store, c *cache.Cache, vendor Pinger, registry *sport.Registry, cfg *config.Config) *Handler {
	return &Handler{
		store:    store,
		cache:    c,
		vendor:   vendor,
		cfg:      cfg,
		registry: registry,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and supported leagues.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.Object(w, http.StatusOK, map[string]interface{}{
		"name":    "Athletes Unlimited Stats API",
		"version": "1.0.0",
		"status":  "running",
		"leagues": h.registry.Keys(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.Object(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || h.store.HealthCheck(r.Context()) != nil {
		respond.Object(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.Object(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics and the vendor cache status.
// @Summary Cache health check
// @Description Returns in-memory cache statistics and pings the Redis vendor cache when one is configured.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	status, code, vendor := "healthy", http.StatusOK, "disabled"
	if h.vendor != nil {
		vendor = "connected"
		if err := h.vendor.HealthCheck(r.Context()); err != nil {
			status, code, vendor = "unhealthy", http.StatusServiceUnavailable, "disconnected"
		}
	}
	respond.Object(w, code, map[string]interface{}{
		"status":       status,
		"cache":        h.cache.Stats(),
		"vendor_cache": vendor,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}
