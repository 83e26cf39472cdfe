// Command austats fetches, normalizes and exports Athletes Unlimited stats.
//
// Usage:
//
//	austats seasons
//	austats game box --league softball --season 2023 --game 4 --mode both
//	austats game plays --league lacrosse --season 2023 --game 512 --roster
//	austats season box --league basketball --season 2023 --format json --out box.json
//	austats season stats --league volleyball --season 2023 --level team --db
//	austats season plays --league softball --season 2022
//	austats migrate
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/austats/internal/config"
	"github.com/albapepper/austats/internal/export"
	"github.com/albapepper/austats/internal/sport"
	"github.com/albapepper/austats/internal/stat"
	"github.com/albapepper/austats/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// outputFlags are shared by every command that writes rows.
type outputFlags struct {
	league string
	season int
	format string
	out    string
	db     bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.league, "league", sport.Softball, "League ("+strings.Join(sport.Default().Keys(), ", ")+")")
	cmd.Flags().IntVar(&o.season, "season", 2023, "Season year")
	cmd.Flags().StringVar(&o.format, "format", string(export.CSV), "Output format (csv, json)")
	cmd.Flags().StringVar(&o.out, "out", "", "Output file; stdout when empty")
	cmd.Flags().BoolVar(&o.db, "db", false, "Also upsert rows into DATABASE_URL")
}

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "austats",
		Short:        "Athletes Unlimited stats pipeline",
		SilenceUsage: true,
	}

	root.AddCommand(seasonsCmd())
	root.AddCommand(gameCmd())
	root.AddCommand(seasonCmd())
	root.AddCommand(migrateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// seasons command
// --------------------------------------------------------------------------

func seasonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List supported leagues, season years and vendor season ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := sport.Default()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LEAGUE\tSEASON\tSEASON_ID")
			for _, key := range registry.Keys() {
				l, _ := registry.Get(key)
				for _, year := range l.Seasons.Years() {
					fmt.Fprintf(tw, "%s\t%d\t%d\n", key, year, l.Seasons.ByYear[year])
				}
			}
			return tw.Flush()
		},
	}
}

// --------------------------------------------------------------------------
// game commands
// --------------------------------------------------------------------------

func gameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Fetch a single game",
	}
	cmd.AddCommand(gameBoxCmd())
	cmd.AddCommand(gamePlaysCmd())
	return cmd
}

func gameBoxCmd() *cobra.Command {
	var (
		o    outputFlags
		game int
		mode string
	)
	cmd := &cobra.Command{
		Use:   "box",
		Short: "Box score of one game, by game number within the season",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := stat.ParseMode(mode)
			if err != nil {
				return err
			}
			return run(&o, func(ctx context.Context, e *env) error {
				rows, res, err := e.runner.GameBox(ctx, o.league, o.season, game, m)
				logResult(e.log, "Game box finished", res)
				if err != nil {
					return err
				}
				return e.writeRecords(ctx, rows)
			})
		},
	}
	o.register(cmd)
	cmd.Flags().IntVar(&game, "game", 1, "Game number (1-based)")
	cmd.Flags().StringVar(&mode, "mode", stat.ModePlayers.String(), "Rows to return (players, teams, both)")
	return cmd
}

func gamePlaysCmd() *cobra.Command {
	var (
		o         outputFlags
		gameID    int
		roster    bool
		rosterOut string
	)
	cmd := &cobra.Command{
		Use:   "plays",
		Short: "Play-by-play of one game, by vendor game id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == 0 {
				return fmt.Errorf("--game is required")
			}
			return run(&o, func(ctx context.Context, e *env) error {
				plays, res, err := e.runner.GamePlays(ctx, o.league, o.season, gameID, roster)
				logResult(e.log, "Game plays finished", res)
				if err != nil {
					return err
				}
				return e.writePlays(ctx, plays, roster, rosterOut)
			})
		},
	}
	o.register(cmd)
	cmd.Flags().IntVar(&gameID, "game", 0, "Vendor game id")
	cmd.Flags().BoolVar(&roster, "roster", false, "Also export participation rows")
	cmd.Flags().StringVar(&rosterOut, "roster-out", "", "Roster output file (default roster.<format>)")
	return cmd
}

// --------------------------------------------------------------------------
// season commands
// --------------------------------------------------------------------------

func seasonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Fetch every game of a season",
	}
	cmd.AddCommand(seasonBoxCmd())
	cmd.AddCommand(seasonStatsCmd())
	cmd.AddCommand(seasonPlaysCmd())
	return cmd
}

func seasonBoxCmd() *cobra.Command {
	var (
		o    outputFlags
		mode string
	)
	cmd := &cobra.Command{
		Use:   "box",
		Short: "Box scores of every game in a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := stat.ParseMode(mode)
			if err != nil {
				return err
			}
			return run(&o, func(ctx context.Context, e *env) error {
				start := time.Now()
				rows, res, err := e.runner.SeasonBox(ctx, o.league, o.season, m)
				logResult(e.log.With("duration", time.Since(start).Round(time.Second)), "Season box finished", res)
				if err != nil {
					return err
				}
				return e.writeRecords(ctx, rows)
			})
		},
	}
	o.register(cmd)
	cmd.Flags().StringVar(&mode, "mode", stat.ModePlayers.String(), "Rows to return (players, teams, both)")
	return cmd
}

func seasonStatsCmd() *cobra.Command {
	var (
		o     outputFlags
		level string
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Season totals and re-derived rates per player or team",
		RunE: func(cmd *cobra.Command, args []string) error {
			lv, err := stat.ParseLevel(level)
			if err != nil {
				return err
			}
			return run(&o, func(ctx context.Context, e *env) error {
				start := time.Now()
				aggs, res, err := e.runner.SeasonStats(ctx, o.league, o.season, lv)
				logResult(e.log.With("duration", time.Since(start).Round(time.Second)), "Season stats finished", res)
				if err != nil {
					return err
				}
				if e.pool != nil {
					n, err := e.pool.UpsertSeasonAggregates(ctx, o.league, e.runID, aggs)
					if err != nil {
						return fmt.Errorf("store season stats: %w", err)
					}
					e.log.Info("Season stats stored", "rows", n)
				}
				return e.output(func(w io.Writer) error {
					return export.Aggregates(w, e.format, e.league.Stats, aggs)
				})
			})
		},
	}
	o.register(cmd)
	cmd.Flags().StringVar(&level, "level", stat.ByPlayer.String(), "Aggregation level (player, team)")
	return cmd
}

func seasonPlaysCmd() *cobra.Command {
	var (
		o         outputFlags
		roster    bool
		rosterOut string
	)
	cmd := &cobra.Command{
		Use:   "plays",
		Short: "Play-by-play of every game in a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(&o, func(ctx context.Context, e *env) error {
				start := time.Now()
				plays, res, err := e.runner.SeasonPlays(ctx, o.league, o.season, roster)
				logResult(e.log.With("duration", time.Since(start).Round(time.Second)), "Season plays finished", res)
				if err != nil {
					return err
				}
				return e.writePlays(ctx, plays, roster, rosterOut)
			})
		},
	}
	o.register(cmd)
	cmd.Flags().BoolVar(&roster, "roster", false, "Also export participation rows")
	cmd.Flags().StringVar(&rosterOut, "roster-out", "", "Roster output file (default roster.<format>)")
	return cmd
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the storage tables in DATABASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := store.Migrate(ctx, cfg); err != nil {
				return err
			}
			logger.Info("Schema applied")
			return nil
		},
	}
}
