// Package store provides a pgxpool-based connection pool with prepared
// statement registration, health checking and the upserts that persist
// normalized rows.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/austats/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New applies the schema, then creates and validates a new connection pool.
// Every pooled connection prepares the read statements, so the tables must
// exist before the first connect.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	if err := Migrate(ctx, cfg); err != nil {
		return nil, err
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// preparedStatements are the read statements the API uses. Postgres builds
// the complete JSON body.
func preparedStatements() map[string]string {
	return map[string]string{
		"health_check": "SELECT 1",
		"season_aggregates": `
			SELECT COALESCE(json_agg(payload ORDER BY entity_id, full_name), '[]'::json)
			FROM ` + config.SeasonStatsTable + `
			WHERE league = $1 AND season = $2 AND level = $3`,
		"available_seasons": `
			SELECT COALESCE(json_agg(DISTINCT season ORDER BY season), '[]'::json)
			FROM ` + config.SeasonStatsTable + `
			WHERE league = $1`,
	}
}

func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range preparedStatements() {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}

// Migrate creates the tables if they do not exist. It is safe to run on
// every start.
func Migrate(ctx context.Context, cfg *config.Config) error {
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}
	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS ` + config.GameStatsTable + ` (
	league       TEXT        NOT NULL,
	season       INT         NOT NULL,
	season_id    INT         NOT NULL,
	game_number  INT         NOT NULL,
	record_type  TEXT        NOT NULL,
	team_id      INT         NOT NULL,
	player_id    INT         NOT NULL,
	payload      JSONB       NOT NULL,
	run_id       UUID        NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (league, season_id, game_number, record_type, team_id, player_id)
);

CREATE TABLE IF NOT EXISTS ` + config.SeasonStatsTable + ` (
	league       TEXT        NOT NULL,
	season       INT         NOT NULL,
	level        TEXT        NOT NULL,
	entity_id    INT         NOT NULL,
	first_name   TEXT        NOT NULL DEFAULT '',
	last_name    TEXT        NOT NULL DEFAULT '',
	full_name    TEXT        NOT NULL DEFAULT '',
	payload      JSONB       NOT NULL,
	run_id       UUID        NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (` + seasonStatsKey + `)
);

CREATE TABLE IF NOT EXISTS ` + config.PlayEventsTable + ` (
	league       TEXT        NOT NULL,
	season       INT         NOT NULL,
	game_id      INT         NOT NULL,
	play_seq_num INT         NOT NULL,
	payload      JSONB       NOT NULL,
	run_id       UUID        NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (league, season, game_id, play_seq_num)
);
`
