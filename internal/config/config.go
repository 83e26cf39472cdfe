// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/austats.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the Athletes Unlimited stats proxy.
const DefaultBaseURL = "https://auprosports.com/proxy.php"

// DefaultUserAgent is sent on every vendor request; the proxy rejects
// requests without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/83.0.4103.97 Safari/537.36"

// --------------------------------------------------------------------------
// Table names, shared by store.Migrate and the queries.
// --------------------------------------------------------------------------

const (
	GameStatsTable   = "game_stats"
	SeasonStatsTable = "season_stats"
	PlayEventsTable  = "play_events"
)

// --------------------------------------------------------------------------
// Config is populated from environment variables.
// --------------------------------------------------------------------------

type Config struct {
	// Vendor
	AUBaseURL           string
	AURequestsPerMinute int
	AUUserAgent         string
	AUHTTPTimeout       time.Duration

	// Vendor response cache
	RedisURL   string
	AUCacheTTL time.Duration

	// Database (optional for the CLI)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool

	// Background refresh of stored season aggregates (API server)
	RefreshInterval time.Duration
	RefreshSeason   int
	RefreshLeagues  []string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		AUBaseURL:           envOr("AU_BASE_URL", DefaultBaseURL),
		AURequestsPerMinute: envInt("AU_REQUESTS_PER_MINUTE", 120),
		AUUserAgent:         envOr("AU_USER_AGENT", DefaultUserAgent),
		AUHTTPTimeout:       time.Duration(envInt("AU_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,

		RedisURL:   envOr("REDIS_URL", ""),
		AUCacheTTL: time.Duration(envInt("AU_CACHE_TTL_HOURS", 24)) * time.Hour,

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 5),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),

		RefreshInterval: time.Duration(envInt("REFRESH_INTERVAL_MINUTES", 0)) * time.Minute,
		RefreshSeason:   envInt("REFRESH_SEASON", 2023),
		RefreshLeagues:  envList("REFRESH_LEAGUES", nil),
	}
	if cfg.AURequestsPerMinute < 1 {
		return nil, fmt.Errorf("AU_REQUESTS_PER_MINUTE must be positive, got %d", cfg.AURequestsPerMinute)
	}
	return cfg, nil
}

// RequireDatabase returns an error when DATABASE_URL is not set.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
