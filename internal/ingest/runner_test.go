package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/albapepper/austats/internal/season"
	"github.com/albapepper/austats/internal/sport"
	"github.com/albapepper/austats/internal/stat"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeSource serves canned basketball payloads keyed by game number and id.
type fakeSource struct {
	games   map[int]map[string]any
	plays   map[int]map[string]any
	gameIDs []int
	calls   []string
}

func (f *fakeSource) GameStats(_ context.Context, sport string, seasonID, gameNum int, statTypes []string) (map[string]any, error) {
	f.calls = append(f.calls, fmt.Sprintf("stats %s %d %d %v", sport, seasonID, gameNum, statTypes))
	p, ok := f.games[gameNum]
	if !ok {
		return nil, errors.New("no such game")
	}
	return p, nil
}

func (f *fakeSource) PlayByPlay(_ context.Context, sport string, seasonID, gameID int) (map[string]any, error) {
	f.calls = append(f.calls, fmt.Sprintf("plays %s %d %d", sport, seasonID, gameID))
	p, ok := f.plays[gameID]
	if !ok {
		return nil, errors.New("no such game")
	}
	return p, nil
}

func (f *fakeSource) GameIDs(_ context.Context, sport string, seasonID int) ([]int, error) {
	return f.gameIDs, nil
}

func line(typ string, team, player int, pts, fgm, fga float64) map[string]any {
	item := map[string]any{
		"type":     typ,
		"teamId":   float64(team),
		"seasonId": float64(73),
		"stats": map[string]any{
			"gamesPlayed": float64(1), "points": pts,
			"fieldGoalsMade": fgm, "fieldGoalsAttempted": fga,
		},
	}
	if player > 0 {
		item["playerId"] = float64(player)
	}
	return item
}

func gamePayload(items ...any) map[string]any {
	return map[string]any{
		"metaSport": map[string]any{"sport": "basketball", "version": "v1"},
		"data":      items,
	}
}

func newFake() *fakeSource {
	return &fakeSource{
		gameIDs: []int{501, 502},
		games: map[int]map[string]any{
			1: gamePayload(
				line("Player", 1, 10, 20, 8, 16),
				line("Player", 2, 11, 12, 5, 10),
				line("Team", 1, 0, 70, 28, 60),
				map[string]any{"type": "Player", "seasonId": float64(73)},
			),
			2: gamePayload(
				line("Player", 1, 10, 10, 4, 14),
				line("Team", 1, 0, 65, 25, 62),
			),
		},
	}
}

func TestGameBox(t *testing.T) {
	src := newFake()
	r := NewRunner(src, sport.Default(), quiet)
	rows, res, err := r.GameBox(context.Background(), sport.Basketball, 2023, 1, stat.ModeBoth)
	if err != nil {
		t.Fatalf("GameBox() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("GameBox() = %d rows, want 3", len(rows))
	}
	if rows[2].Type != stat.Team {
		t.Errorf("rows[2].Type = %v, want Team last", rows[2].Type)
	}
	if res.Skipped != 1 || len(res.Errors) != 1 {
		t.Errorf("Result = %s, want one skipped record", res.Summary())
	}
	if want := "stats basketball 73 1 [basketball]"; src.calls[0] != want {
		t.Errorf("call = %q, want %q", src.calls[0], want)
	}
}

func TestGameBoxUnsupportedSeason(t *testing.T) {
	r := NewRunner(newFake(), sport.Default(), quiet)
	_, _, err := r.GameBox(context.Background(), sport.Basketball, 2019, 1, stat.ModePlayers)
	if !errors.Is(err, season.ErrUnsupportedSeason) {
		t.Errorf("GameBox() error = %v, want ErrUnsupportedSeason", err)
	}
}

func TestSeasonBoxContinuesPastFailedGame(t *testing.T) {
	src := newFake()
	src.gameIDs = []int{501, 502, 503}
	r := NewRunner(src, sport.Default(), quiet)
	rows, res, err := r.SeasonBox(context.Background(), sport.Basketball, 2023, stat.ModePlayers)
	if err != nil {
		t.Fatalf("SeasonBox() error = %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("SeasonBox() = %d player rows, want 3", len(rows))
	}
	if res.Games != 2 || len(res.Errors) != 2 {
		t.Errorf("Result = %s, want 2 games and 2 errors", res.Summary())
	}
}

func TestSeasonStats(t *testing.T) {
	r := NewRunner(newFake(), sport.Default(), quiet)

	players, _, err := r.SeasonStats(context.Background(), sport.Basketball, 2023, stat.ByPlayer)
	if err != nil {
		t.Fatalf("SeasonStats(player) error = %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("SeasonStats(player) = %d rows, want 2", len(players))
	}
	p := players[0]
	if p.EntityID() != 10 || p.Stats["pts"] != stat.OfInt(30) || p.Stats["g"] != stat.OfInt(2) {
		t.Errorf("player 10 = id %d pts %v g %v", p.EntityID(), p.Stats["pts"], p.Stats["g"])
	}
	if got, want := p.Stats["fg_pct"], stat.Of(0.4); got != want {
		t.Errorf("fg_pct = %v, want %v", got, want)
	}

	teams, _, err := r.SeasonStats(context.Background(), sport.Basketball, 2023, stat.ByTeam)
	if err != nil {
		t.Fatalf("SeasonStats(team) error = %v", err)
	}
	if len(teams) != 2 || teams[0].EntityID() != 1 || teams[0].Stats["pts"] != stat.OfInt(30) {
		t.Errorf("team rows = %+v, want team 1 with 30 points from player rows", teams)
	}
}

func TestResultSummary(t *testing.T) {
	var r Result
	r.Add(Result{Games: 2, Records: 10, Skipped: 1})
	r.AddErrorf("game %d failed", 3)
	if got, want := r.Summary(), "games=2 records=10 skipped=1 plays=0 roster=0 errors=1"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
