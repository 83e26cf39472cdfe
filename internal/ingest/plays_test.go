package ingest

import (
	"context"
	"testing"

	"github.com/albapepper/austats/internal/sport"
)

func volleyballPlay(seq int) map[string]any {
	play := map[string]any{"playSeqno": float64(seq)}
	l, _ := sport.Default().Get(sport.Volleyball)
	for _, f := range l.Plays.Fields {
		play[f.Source] = nil
	}
	play["setNumber"] = float64(1)
	return play
}

func playsPayload(plays ...any) map[string]any {
	return map[string]any{"data": []any{map[string]any{
		"plays": plays,
		"competitors": []any{map[string]any{
			"competitorId": float64(4), "color": "Gold", "name": "Team Gold", "players": []any{},
		}},
	}}}
}

func TestSeasonPlays(t *testing.T) {
	src := &fakeSource{
		gameIDs: []int{900, 901, 902},
		plays: map[int]map[string]any{
			900: playsPayload(volleyballPlay(1), volleyballPlay(2)),
			901: playsPayload(volleyballPlay(1), map[string]any{"playSeqno": float64(2)}),
			902: playsPayload(volleyballPlay(5)),
		},
	}
	r := NewRunner(src, sport.Default(), quiet)
	plays, res, err := r.SeasonPlays(context.Background(), sport.Volleyball, 2023, true)
	if err != nil {
		t.Fatalf("SeasonPlays() error = %v", err)
	}
	if len(plays.Events) != 3 {
		t.Fatalf("SeasonPlays() = %d events, want 3 (game 901 dropped)", len(plays.Events))
	}
	if plays.Events[2].GameID != 902 || plays.Events[2].Sequence != 5 {
		t.Errorf("last event = game %d seq %d, want 902/5", plays.Events[2].GameID, plays.Events[2].Sequence)
	}
	if plays.Events[0].Season != 2023 {
		t.Errorf("Season = %d, want 2023", plays.Events[0].Season)
	}
	if res.Games != 2 || len(res.Errors) != 1 {
		t.Errorf("Result = %s, want 2 games and 1 error", res.Summary())
	}
	if src.calls[0] != "plays volleyball 138 900" {
		t.Errorf("call = %q", src.calls[0])
	}
}

func TestGamePlaysWithRoster(t *testing.T) {
	src := &fakeSource{plays: map[int]map[string]any{900: playsPayload(volleyballPlay(1))}}
	r := NewRunner(src, sport.Default(), quiet)
	plays, res, err := r.GamePlays(context.Background(), sport.Volleyball, 2023, 900, true)
	if err != nil {
		t.Fatalf("GamePlays() error = %v", err)
	}
	if len(plays.Events) != 1 || res.Plays != 1 || len(plays.Roster) != 0 {
		t.Errorf("GamePlays() = %d events, roster %v; result %s", len(plays.Events), plays.Roster, res.Summary())
	}
}
