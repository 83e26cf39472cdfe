package ingest

import (
	"context"
	"fmt"

	"github.com/albapepper/austats/internal/pbp"
	"github.com/albapepper/austats/internal/sport"
)

// Plays is one or more games' normalized play-by-play and, when requested,
// participation rows.
type Plays struct {
	Events []pbp.PlayEvent
	Roster []pbp.RosterEntry
}

// GamePlays fetches and normalizes the play-by-play of vendor game gameID.
// A game with a malformed play fails as a whole.
func (r *Runner) GamePlays(ctx context.Context, league string, year, gameID int, withRoster bool) (Plays, Result, error) {
	l, seasonID, err := r.target(league, year)
	if err != nil {
		return Plays{}, Result{}, err
	}
	return r.fetchPlays(ctx, l, year, seasonID, gameID, withRoster)
}

func (r *Runner) fetchPlays(ctx context.Context, l *sport.League, year, seasonID, gameID int, withRoster bool) (Plays, Result, error) {
	var res Result
	payload, err := r.source.PlayByPlay(ctx, l.VendorSport, seasonID, gameID)
	if err != nil {
		return Plays{}, res, fmt.Errorf("fetch %s plays for game %d: %w", l.Key, gameID, err)
	}
	raw, err := pbp.PlaysFromPayload(l.Plays.Sport, payload)
	if err != nil {
		return Plays{}, res, fmt.Errorf("game %d: %w", gameID, err)
	}
	events, err := pbp.Normalize(l.Plays, year, gameID, raw)
	if err != nil {
		return Plays{}, res, fmt.Errorf("game %d: %w", gameID, err)
	}
	out := Plays{Events: events}
	if withRoster {
		roster, err := pbp.NormalizeRoster(l.Plays.Sport, year, gameID, payload)
		if err != nil {
			return Plays{}, res, fmt.Errorf("game %d roster: %w", gameID, err)
		}
		out.Roster = roster
	}
	res.Games = 1
	res.Plays = len(out.Events)
	res.Roster = len(out.Roster)
	return out, res, nil
}

// SeasonPlays fetches every game's play-by-play in schedule order. Games that
// fail are recorded in the Result and left out.
func (r *Runner) SeasonPlays(ctx context.Context, league string, year int, withRoster bool) (Plays, Result, error) {
	l, seasonID, err := r.target(league, year)
	if err != nil {
		return Plays{}, Result{}, err
	}
	gameIDs, err := r.source.GameIDs(ctx, l.VendorSport, seasonID)
	if err != nil {
		return Plays{}, Result{}, fmt.Errorf("list %s %d games: %w", league, year, err)
	}

	var result Result
	var out Plays
	r.logger.Info("Fetching season play-by-play", "league", league, "season", year, "games", len(gameIDs))
	for i, gameID := range gameIDs {
		if err := ctx.Err(); err != nil {
			return Plays{}, result, err
		}
		plays, res, err := r.fetchPlays(ctx, l, year, seasonID, gameID, withRoster)
		result.Add(res)
		if err != nil {
			result.AddErrorf("%v", err)
			continue
		}
		out.Events = append(out.Events, plays.Events...)
		out.Roster = append(out.Roster, plays.Roster...)
		if (i+1)%progressEvery == 0 {
			r.logger.Info("Season plays progress", "league", league, "game", i+1, "of", len(gameIDs))
		}
	}
	r.logger.Info("Season plays done", "league", league, "season", year, "summary", result.Summary())
	return out, result, nil
}
