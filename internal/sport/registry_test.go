package sport

import (
	"errors"
	"strings"
	"testing"

	"github.com/albapepper/austats/internal/season"
	"github.com/albapepper/austats/internal/stat"
)

func record(t *testing.T, key string, item map[string]any) stat.StatRecord {
	t.Helper()
	reg := Default()
	l, err := reg.Get(key)
	if err != nil {
		t.Fatalf("Get(%q) error = %v", key, err)
	}
	rec, err := stat.Normalize(l.Stats, reg.Resolver(), stat.Meta{Sport: l.Stats.Sport, Version: "v1"}, 0, item)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	return rec
}

func identity(seasonID float64) map[string]any {
	return map[string]any{
		"type":     "Player",
		"teamId":   float64(3),
		"seasonId": seasonID,
		"playerId": float64(44),
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	want := []string{AUXSoftball, Basketball, Lacrosse, Softball, Volleyball}
	got := reg.Keys()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if _, err := reg.Get("cricket"); err == nil {
		t.Error("Get(cricket) error = nil, want error")
	}
	for _, key := range got {
		l, _ := reg.Get(key)
		cols := l.Stats.Columns()
		seen := make(map[string]bool, len(cols))
		for _, c := range cols {
			if seen[c.Name] {
				t.Errorf("%s: column %q listed twice", key, c.Name)
			}
			seen[c.Name] = true
		}
	}
}

func TestDuplicateLeagueRejected(t *testing.T) {
	l := &League{Key: Lacrosse, Stats: lacrosseStats}
	if _, err := NewRegistry(l, l); err == nil {
		t.Error("NewRegistry(duplicate) error = nil, want error")
	}
}

func TestSeasonRoundTrip(t *testing.T) {
	reg := Default()
	r := reg.Resolver()
	for _, key := range reg.Keys() {
		l, _ := reg.Get(key)
		for _, year := range l.Seasons.Years() {
			id, err := r.SeasonToID(key, year)
			if err != nil {
				t.Fatalf("SeasonToID(%s, %d) error = %v", key, year, err)
			}
			back, err := r.IDToSeason(key, id)
			if err != nil || back != year {
				t.Errorf("%s: IDToSeason(%d) = %d, %v; want %d", key, id, back, err, year)
			}
		}
	}
	if _, err := r.SeasonToID(Basketball, 2021); !errors.Is(err, season.ErrUnsupportedSeason) {
		t.Errorf("SeasonToID(basketball, 2021) error = %v, want ErrUnsupportedSeason", err)
	}
}

func TestSoftballAliasedSeasonID(t *testing.T) {
	item := identity(106)
	item["battingStats"] = []any{map[string]any{"atBat": float64(4), "hits": float64(2), "totalBases": float64(5)}}
	rec := record(t, Softball, item)
	if rec.SeasonYear != 2023 {
		t.Errorf("SeasonYear = %d, want 2023", rec.SeasonYear)
	}
	if got, want := rec.Stats["batting_slg"], stat.Of(1.25); got != want {
		t.Errorf("batting_slg = %v, want %v", got, want)
	}
}

func TestSoftballPitchingAbsent(t *testing.T) {
	item := identity(14)
	item["battingStats"] = []any{map[string]any{"atBat": float64(3), "hits": float64(1)}}
	rec := record(t, Softball, item)
	for col, v := range rec.Stats {
		if strings.HasPrefix(col, "pitching_") && v.Valid() {
			t.Errorf("%s = %v, want null", col, v)
		}
	}
	if got := rec.Stats["batting_ba"]; got != stat.Of(0.333) {
		t.Errorf("batting_ba = %v, want 0.333", got)
	}
}

func TestBasketballRecord(t *testing.T) {
	item := identity(73)
	item["stats"] = map[string]any{
		"gamesPlayed": float64(1), "minutesPlayed": float64(30.5),
		"points": float64(20), "fieldGoalsMade": float64(8), "fieldGoalsAttempted": float64(16),
		"made3Pointers": float64(2), "attempted3Pointers": float64(5),
		"made2Pointers": float64(6), "missed2Pointers": float64(5),
		"madeFreeThrows": float64(2), "freeThrowsAttempted": float64(2),
	}
	rec := record(t, Basketball, item)
	tests := map[string]stat.Value{
		"min":     stat.Of(30.5),
		"fg2a":    stat.OfInt(11),
		"fg_pct":  stat.Of(0.5),
		"fg2_pct": stat.Of(0.545),
		"efg_pct": stat.Of(0.563),
		"ft_pct":  stat.Of(1),
		"g":       stat.OfInt(1),
	}
	for col, want := range tests {
		if got := rec.Stats[col]; got != want {
			t.Errorf("%s = %v, want %v", col, got, want)
		}
	}
	if got := rec.Stats["orb"]; got.Valid() {
		t.Errorf("orb = %v, want null when absent from the block", got)
	}
}

func TestLacrosseGamesIsOne(t *testing.T) {
	item := identity(105)
	item["playerStats"] = []any{map[string]any{"goals": float64(2), "shots": float64(5), "shotsOnGoal": float64(4)}}
	rec := record(t, Lacrosse, item)
	if got := rec.Stats[stat.ColGames]; got != stat.OfInt(1) {
		t.Errorf("g = %v, want 1", got)
	}
	if got := rec.Stats["shot_pct"]; got != stat.Of(0.4) {
		t.Errorf("shot_pct = %v, want 0.4", got)
	}
	if got := rec.Stats["goalie_save_pct"]; got.Valid() {
		t.Errorf("goalie_save_pct = %v, want null without goalie stats", got)
	}
}

func TestVolleyballGames(t *testing.T) {
	tests := []struct {
		name string
		sets any
		want stat.Value
	}{
		{"played", float64(3), stat.OfInt(1)},
		{"bench", float64(0), stat.OfInt(0)},
		{"unknown", nil, stat.Null},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := identity(138)
			item["stats"] = map[string]any{"setsPlayed": tt.sets, "kills": float64(12)}
			rec := record(t, Volleyball, item)
			if got := rec.Stats[stat.ColGames]; got != tt.want {
				t.Errorf("g = %v, want %v", got, tt.want)
			}
		})
	}

	item := identity(138)
	item["stats"] = map[string]any{
		"setsPlayed": float64(3), "kills": float64(12),
		"attackErrors": float64(2), "attackAttempts": float64(30),
	}
	rec := record(t, Volleyball, item)
	if got := rec.Stats["kills_per_set"]; got != stat.OfInt(4) {
		t.Errorf("kills_per_set = %v, want 4", got)
	}
	if got := rec.Stats["attack_pct"]; got != stat.Of(0.333) {
		t.Errorf("attack_pct = %v, want 0.333", got)
	}
}

func TestSeasonAggregation(t *testing.T) {
	reg := Default()
	l, _ := reg.Get(Volleyball)
	var records []stat.StatRecord
	for _, kills := range []float64{12, 6} {
		item := identity(138)
		item["stats"] = map[string]any{"setsPlayed": float64(3), "kills": kills}
		records = append(records, record(t, Volleyball, item))
	}
	aggs := stat.Aggregate(l.Stats, records, stat.ByPlayer)
	if len(aggs) != 1 {
		t.Fatalf("Aggregate() = %d rows, want 1", len(aggs))
	}
	a := aggs[0]
	if a.Stats["kills"] != stat.OfInt(18) || a.Stats["kills_per_set"] != stat.OfInt(3) {
		t.Errorf("kills = %v per set = %v, want 18 and 3", a.Stats["kills"], a.Stats["kills_per_set"])
	}
	if a.Stats[stat.ColGames] != stat.OfInt(2) {
		t.Errorf("g = %v, want 2", a.Stats[stat.ColGames])
	}
}

func TestSoftballSeasonPitcherGameScoreIsNull(t *testing.T) {
	reg := Default()
	l, _ := reg.Get(Softball)

	batterOnly := func() map[string]any {
		item := identity(14)
		item["battingStats"] = []any{map[string]any{"atBat": float64(3), "hits": float64(1)}}
		item["pitchingStats"] = []any{}
		return item
	}
	pitcher := identity(14)
	pitcher["playerId"] = float64(7)
	pitcher["pitchingStats"] = []any{map[string]any{
		"inningsPitched": "7.0", "strikeOuts": float64(8), "hits": float64(4), "earnedRuns": float64(1),
	}}

	records := []stat.StatRecord{
		record(t, Softball, batterOnly()),
		record(t, Softball, batterOnly()),
		record(t, Softball, pitcher),
	}
	if got := records[2].Stats["pitching_game_score"]; !got.Valid() {
		t.Fatalf("game pitching_game_score = %v, want a value", got)
	}

	for _, level := range []stat.Level{stat.ByPlayer, stat.ByTeam} {
		for _, a := range stat.Aggregate(l.Stats, records, level) {
			if got := a.Stats["pitching_game_score"]; got.Valid() {
				t.Errorf("%s %d: season pitching_game_score = %v, want null", level, a.EntityID(), got)
			}
		}
	}
}
