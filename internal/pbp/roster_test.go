package pbp

import (
	"errors"
	"testing"

	"github.com/albapepper/austats/internal/stat"
)

func rosterPlayer(id float64) map[string]any {
	return map[string]any{
		"competitorId": float64(7),
		"playerId":     id,
		"captainFlg":   false,
		"displayName":  "S. Player",
		"firstName":    "Sam",
		"lastName":     "Player",
		"currentRosterStatus": map[string]any{
			"description": "Active", "comments": nil, "transactionType": nil, "rosterStatusLk": "ACT",
		},
		"isVotingFlg":      true,
		"canBeVotedForFlg": true,
		"hasVotedFlg":      false,
		"uniformNumber":    float64(12),
		"isNominatedFlg":   false,
		"nominatedFlg":     false,
		"resourceUrl":      "/players/1",
		"imageResource":    map[string]any{"imageUrl": "https://img/1.png"},
	}
}

func rosterPayload(players ...any) map[string]any {
	return map[string]any{"data": []any{map[string]any{
		"competitors": []any{
			map[string]any{"competitorId": float64(7), "color": "Blue", "name": "Team Blue", "players": players},
		},
	}}}
}

func TestNormalizeRoster(t *testing.T) {
	entries, err := NormalizeRoster("softball", 2023, 300, rosterPayload(rosterPlayer(1), rosterPlayer(2)))
	if err != nil {
		t.Fatalf("NormalizeRoster() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("NormalizeRoster() = %d entries, want 2", len(entries))
	}
	e := entries[1]
	if e.PlayerID != float64(2) || e.CompetitorName != "Team Blue" || e.CompetitorColor != "Blue" {
		t.Errorf("entry = %+v", e)
	}
	if e.UniformNumber != "12" || e.ImageURL != "https://img/1.png" || e.StatusLk != "ACT" {
		t.Errorf("entry fields = %q %v %v", e.UniformNumber, e.ImageURL, e.StatusLk)
	}
	if len(e.Row()) != len(RosterColumns) {
		t.Errorf("Row() has %d values, RosterColumns has %d", len(e.Row()), len(RosterColumns))
	}
}

func TestNormalizeRosterMissingField(t *testing.T) {
	p := rosterPlayer(1)
	delete(p, "imageResource")
	_, err := NormalizeRoster("softball", 2023, 300, rosterPayload(p))
	var mp *stat.MalformedPayloadError
	if !errors.As(err, &mp) || mp.Field != "imageResource" {
		t.Errorf("NormalizeRoster() error = %v, want missing imageResource", err)
	}
}
