package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/austats/internal/season"
	"github.com/albapepper/austats/internal/sport"
	"github.com/albapepper/austats/internal/stat"
)

// Source is the vendor surface the runner reads from. *au.Client satisfies it.
type Source interface {
	GameStats(ctx context.Context, sport string, seasonID, gameNum int, statTypes []string) (map[string]any, error)
	PlayByPlay(ctx context.Context, sport string, seasonID, gameID int) (map[string]any, error)
	GameIDs(ctx context.Context, sport string, seasonID int) ([]int, error)
}

const progressEvery = 10

// Runner fetches and normalizes games for every registered league.
type Runner struct {
	source   Source
	registry *sport.Registry
	resolver *season.Resolver
	logger   *slog.Logger
}

// NewRunner creates a Runner over src.
func NewRunner(src Source, registry *sport.Registry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		source:   src,
		registry: registry,
		resolver: registry.Resolver(),
		logger:   logger,
	}
}

// target resolves a league key and season year to the league descriptor and
// vendor season id.
func (r *Runner) target(league string, year int) (*sport.League, int, error) {
	l, err := r.registry.Get(league)
	if err != nil {
		return nil, 0, err
	}
	id, err := r.resolver.SeasonToID(league, year)
	if err != nil {
		return nil, 0, err
	}
	return l, id, nil
}

// --------------------------------------------------------------------------
// Box scores
// --------------------------------------------------------------------------

// GameBox fetches and normalizes game number gameNum of a season and returns
// the rows mode selects. Malformed records are skipped and listed in the
// Result.
func (r *Runner) GameBox(ctx context.Context, league string, year, gameNum int, mode stat.Mode) ([]stat.StatRecord, Result, error) {
	l, seasonID, err := r.target(league, year)
	if err != nil {
		return nil, Result{}, err
	}
	box, res, err := r.fetchGame(ctx, l, seasonID, gameNum)
	if err != nil {
		return nil, res, err
	}
	rows := box.Select(mode)
	res.Records = len(rows)
	return rows, res, nil
}

func (r *Runner) fetchGame(ctx context.Context, l *sport.League, seasonID, gameNum int) (stat.Box, Result, error) {
	var res Result
	payload, err := r.source.GameStats(ctx, l.VendorSport, seasonID, gameNum, l.Stats.StatTypes)
	if err != nil {
		return stat.Box{}, res, fmt.Errorf("fetch %s game %d: %w", l.Key, gameNum, err)
	}
	records, skipped, err := stat.NormalizePayload(l.Stats, r.resolver, payload)
	if err != nil {
		return stat.Box{}, res, fmt.Errorf("normalize %s game %d: %w", l.Key, gameNum, err)
	}
	res.Games = 1
	res.Skipped = len(skipped)
	for _, e := range skipped {
		res.AddErrorf("%s game %d: skipped %v", l.Key, gameNum, e)
	}
	return stat.Classify(records), res, nil
}

// SeasonBox fetches every game of a season in schedule order. A game that
// fails is recorded in the Result and the run continues.
func (r *Runner) SeasonBox(ctx context.Context, league string, year int, mode stat.Mode) ([]stat.StatRecord, Result, error) {
	l, seasonID, err := r.target(league, year)
	if err != nil {
		return nil, Result{}, err
	}
	gameIDs, err := r.source.GameIDs(ctx, l.VendorSport, seasonID)
	if err != nil {
		return nil, Result{}, fmt.Errorf("list %s %d games: %w", league, year, err)
	}

	var result Result
	var builder stat.BoxBuilder
	n := len(gameIDs)
	r.logger.Info("Fetching season box scores", "league", league, "season", year, "games", n)
	for gameNum := 1; gameNum <= n; gameNum++ {
		if err := ctx.Err(); err != nil {
			return nil, result, err
		}
		box, res, err := r.fetchGame(ctx, l, seasonID, gameNum)
		result.Add(res)
		if err != nil {
			result.AddErrorf("%v", err)
			continue
		}
		builder.Add(box.All()...)
		if gameNum%progressEvery == 0 {
			r.logger.Info("Season box progress", "league", league, "game", gameNum, "of", n)
		}
	}

	rows := builder.Build().Select(mode)
	result.Records = len(rows)
	r.logger.Info("Season box done", "league", league, "season", year, "summary", result.Summary())
	return rows, result, nil
}

// SeasonStats aggregates a season's box scores to one row per player or per
// team. Leagues flagged TeamsFromPlayers build team seasons from player rows;
// the rest fold the vendor's team rows.
func (r *Runner) SeasonStats(ctx context.Context, league string, year int, level stat.Level) ([]stat.SeasonAggregate, Result, error) {
	l, err := r.registry.Get(league)
	if err != nil {
		return nil, Result{}, err
	}
	mode := stat.ModePlayers
	if level == stat.ByTeam && !l.TeamsFromPlayers {
		mode = stat.ModeTeams
	}
	rows, res, err := r.SeasonBox(ctx, league, year, mode)
	if err != nil {
		return nil, res, err
	}
	aggs := stat.Aggregate(l.Stats, rows, level)
	res.Records = len(aggs)
	return aggs, res, nil
}
