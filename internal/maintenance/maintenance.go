// Package maintenance runs periodic background tasks as Go tickers inside
// the API server.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/austats/internal/ingest"
	"github.com/albapepper/austats/internal/stat"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	RefreshInterval time.Duration // Re-aggregate the current season
	Season          int
	Leagues         []string
}

// Aggregator builds season aggregates. *ingest.Runner satisfies it.
type Aggregator interface {
	SeasonStats(ctx context.Context, league string, year int, level stat.Level) ([]stat.SeasonAggregate, ingest.Result, error)
}

// Sink persists season aggregates. *store.Pool satisfies it.
type Sink interface {
	UpsertSeasonAggregates(ctx context.Context, league string, runID uuid.UUID, aggs []stat.SeasonAggregate) (int, error)
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, agg Aggregator, sink Sink, cfg Config, logger *slog.Logger) {
	if cfg.RefreshInterval <= 0 {
		logger.Info("Maintenance tickers disabled")
		return
	}
	logger.Info("Maintenance tickers started",
		"refresh", cfg.RefreshInterval,
		"season", cfg.Season,
		"leagues", cfg.Leagues)

	t := time.NewTicker(cfg.RefreshInterval)
	defer t.Stop()
	runLoop(ctx, t.C, func() { RefreshSeason(ctx, agg, sink, cfg.Leagues, cfg.Season, logger) })
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// RefreshSeason rebuilds player and team aggregates of one season for each
// league and upserts them under a fresh run id. A failing league is logged
// and the rest still run. Returns the number of rows written.
func RefreshSeason(ctx context.Context, agg Aggregator, sink Sink, leagues []string, year int, logger *slog.Logger) int {
	runID := uuid.New()
	log := logger.With("run_id", runID.String(), "season", year)
	total := 0
	for _, league := range leagues {
		for _, level := range []stat.Level{stat.ByPlayer, stat.ByTeam} {
			if ctx.Err() != nil {
				return total
			}
			start := time.Now()
			aggs, res, err := agg.SeasonStats(ctx, league, year, level)
			if err != nil {
				log.Warn("Refresh: aggregation failed", "league", league, "level", level, "error", err)
				continue
			}
			n, err := sink.UpsertSeasonAggregates(ctx, league, runID, aggs)
			if err != nil {
				log.Warn("Refresh: upsert failed", "league", league, "level", level, "error", err)
				continue
			}
			total += n
			log.Info("Refresh: season aggregates stored",
				"league", league, "level", level, "rows", n,
				"duration", time.Since(start).Round(time.Millisecond),
				"summary", res.Summary())
		}
	}
	return total
}
