// Package api wires the HTTP router: middleware stack and routes.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/albapepper/austats/internal/api/handler"
	"github.com/albapepper/austats/internal/cache"
	"github.com/albapepper/austats/internal/config"
	"github.com/albapepper/austats/internal/sport"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
// store and vendor may be nil when no database or Redis is configured.
func NewRouter(store handler.Store, appCache *cache.Cache, vendor handler.Pinger, registry *sport.Registry, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := handler.New(store, appCache, vendor, registry, cfg)

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leagues", h.GetLeagues)
		r.Get("/leagues/{league}/seasons", h.GetSeasons)
		r.Get("/stats/{league}/{season}/{level}", h.GetSeasonStats)
	})

	return r
}
