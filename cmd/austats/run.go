package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/albapepper/austats/internal/config"
	"github.com/albapepper/austats/internal/export"
	"github.com/albapepper/austats/internal/ingest"
	"github.com/albapepper/austats/internal/provider/au"
	"github.com/albapepper/austats/internal/sport"
	"github.com/albapepper/austats/internal/stat"
	"github.com/albapepper/austats/internal/store"
)

// env is everything a command body needs, built once per invocation.
type env struct {
	cfg    *config.Config
	runner *ingest.Runner
	league *sport.League
	format export.Format
	out    string
	runID  uuid.UUID
	log    *slog.Logger
	pool   *store.Pool // nil unless --db
}

// run handles config loading, client and optional DB setup, and context
// cancellation.
func run(o *outputFlags, fn func(ctx context.Context, e *env) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	format, err := export.ParseFormat(o.format)
	if err != nil {
		return err
	}
	registry := sport.Default()
	league, err := registry.Get(o.league)
	if err != nil {
		return err
	}

	runID := uuid.New()
	log := logger.With("run_id", runID.String(), "league", o.league, "season", o.season)

	opts := []au.Option{au.WithHTTPClient(&http.Client{Timeout: cfg.AUHTTPTimeout})}
	if cfg.RedisURL != "" {
		rc, err := au.NewRedisCache(ctx, cfg.RedisURL, cfg.AUCacheTTL)
		if err != nil {
			log.Warn("Vendor cache unavailable; fetching directly", "error", err)
		} else {
			defer rc.Close()
			opts = append(opts, au.WithCache(rc))
		}
	}
	client := au.NewClient(cfg.AUBaseURL, cfg.AUUserAgent, cfg.AURequestsPerMinute, log, opts...)

	e := &env{
		cfg:    cfg,
		runner: ingest.NewRunner(client, registry, log),
		league: league,
		format: format,
		out:    o.out,
		runID:  runID,
		log:    log,
	}
	if o.db {
		pool, err := store.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		e.pool = pool
	}
	return fn(ctx, e)
}

// output opens the destination, stdout when no path is set, and runs write.
func (e *env) output(write func(w io.Writer) error) error {
	return writeTo(e.out, write)
}

func writeTo(path string, write func(w io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (e *env) writeRecords(ctx context.Context, rows []stat.StatRecord) error {
	if e.pool != nil {
		n, err := e.pool.UpsertGameRows(ctx, e.league.Key, e.runID, rows)
		if err != nil {
			return fmt.Errorf("store game rows: %w", err)
		}
		e.log.Info("Game rows stored", "rows", n)
	}
	return e.output(func(w io.Writer) error {
		return export.Records(w, e.format, e.league.Stats, rows)
	})
}

func (e *env) writePlays(ctx context.Context, plays ingest.Plays, roster bool, rosterOut string) error {
	if e.pool != nil {
		n, err := e.pool.UpsertPlays(ctx, e.league.Key, e.runID, plays.Events)
		if err != nil {
			return fmt.Errorf("store plays: %w", err)
		}
		e.log.Info("Plays stored", "rows", n)
	}
	if err := e.output(func(w io.Writer) error {
		return export.Plays(w, e.format, e.league.Plays, plays.Events)
	}); err != nil {
		return err
	}
	if !roster {
		return nil
	}
	if rosterOut == "" {
		rosterOut = "roster." + string(e.format)
	}
	return writeTo(rosterOut, func(w io.Writer) error {
		return export.Roster(w, e.format, plays.Roster)
	})
}

// logResult logs the summary and each collected per-record error.
func logResult(log *slog.Logger, msg string, res ingest.Result) {
	log.Info(msg, "summary", res.Summary())
	for _, e := range res.Errors {
		log.Warn("ingest error", "error", e)
	}
}
