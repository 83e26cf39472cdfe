package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/albapepper/austats/internal/config"
	"github.com/albapepper/austats/internal/pbp"
	"github.com/albapepper/austats/internal/stat"
)

// UpsertGameRows writes game records keyed by league, season id, game
// number, record type, team and player. Team rows store player 0.
func (p *Pool) UpsertGameRows(ctx context.Context, league string, runID uuid.UUID, records []stat.StatRecord) (int, error) {
	batch := &pgx.Batch{}
	for i := range records {
		r := &records[i]
		payload, err := json.Marshal(r)
		if err != nil {
			return 0, fmt.Errorf("encode %s: %w", r.Label(), err)
		}
		batch.Queue(`
			INSERT INTO `+config.GameStatsTable+` (
				league, season, season_id, game_number, record_type,
				team_id, player_id, payload, run_id
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (league, season_id, game_number, record_type, team_id, player_id) DO UPDATE SET
				season = EXCLUDED.season,
				payload = EXCLUDED.payload,
				run_id = EXCLUDED.run_id,
				updated_at = NOW()`,
			league, r.SeasonYear, r.SeasonID, intOrZero(r.GameNumber), string(r.Type),
			r.TeamID, intOrZero(r.PlayerID), payload, runID,
		)
	}
	return p.send(ctx, batch)
}

// seasonStatsKey is the season_stats primary key. It carries the same
// identity stat.Aggregate groups by: player rows add the names to the id.
const seasonStatsKey = "league, season, level, entity_id, first_name, last_name, full_name"

// seasonRowKey returns the seasonStatsKey values for a.
func seasonRowKey(league string, a *stat.SeasonAggregate) []any {
	return []any{league, a.SeasonYear, a.Level, a.EntityID(), a.FirstName, a.LastName, a.FullName}
}

// UpsertSeasonAggregates writes season rows keyed by seasonStatsKey.
func (p *Pool) UpsertSeasonAggregates(ctx context.Context, league string, runID uuid.UUID, aggs []stat.SeasonAggregate) (int, error) {
	batch := &pgx.Batch{}
	for i := range aggs {
		a := &aggs[i]
		payload, err := json.Marshal(a)
		if err != nil {
			return 0, fmt.Errorf("encode %s aggregate %d: %w", a.Level, a.EntityID(), err)
		}
		args := append(seasonRowKey(league, a), payload, runID)
		batch.Queue(`
			INSERT INTO `+config.SeasonStatsTable+` (
				`+seasonStatsKey+`, payload, run_id
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (`+seasonStatsKey+`) DO UPDATE SET
				payload = EXCLUDED.payload,
				run_id = EXCLUDED.run_id,
				updated_at = NOW()`,
			args...,
		)
	}
	return p.send(ctx, batch)
}

// UpsertPlays writes play events keyed by league, season, game and sequence.
func (p *Pool) UpsertPlays(ctx context.Context, league string, runID uuid.UUID, events []pbp.PlayEvent) (int, error) {
	batch := &pgx.Batch{}
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return 0, fmt.Errorf("encode play %d/%d: %w", ev.GameID, ev.Sequence, err)
		}
		batch.Queue(`
			INSERT INTO `+config.PlayEventsTable+` (
				league, season, game_id, play_seq_num, payload, run_id
			) VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (league, season, game_id, play_seq_num) DO UPDATE SET
				payload = EXCLUDED.payload,
				run_id = EXCLUDED.run_id,
				updated_at = NOW()`,
			league, ev.Season, ev.GameID, ev.Sequence, payload, runID,
		)
	}
	return p.send(ctx, batch)
}

// SeasonAggregates returns the stored season rows for one league, season
// and level as a JSON array.
func (p *Pool) SeasonAggregates(ctx context.Context, league string, year int, level stat.Level) ([]byte, error) {
	var raw []byte
	if err := p.QueryRow(ctx, "season_aggregates", league, year, level.String()).Scan(&raw); err != nil {
		return nil, fmt.Errorf("query season aggregates: %w", err)
	}
	return raw, nil
}

// Seasons returns the stored season years for a league as a JSON array.
func (p *Pool) Seasons(ctx context.Context, league string) ([]byte, error) {
	var raw []byte
	if err := p.QueryRow(ctx, "available_seasons", league).Scan(&raw); err != nil {
		return nil, fmt.Errorf("query seasons: %w", err)
	}
	return raw, nil
}

func (p *Pool) send(ctx context.Context, batch *pgx.Batch) (int, error) {
	if batch.Len() == 0 {
		return 0, nil
	}
	br := p.SendBatch(ctx, batch)
	defer br.Close()
	n := 0
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return n, fmt.Errorf("upsert row %d: %w", i, err)
		}
		n++
	}
	return n, nil
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
