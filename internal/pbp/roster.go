package pbp

import (
	"strconv"

	"github.com/albapepper/austats/internal/stat"
)

// RosterEntry is one player listed for a competitor in a game's
// participation data.
type RosterEntry struct {
	Season          int    `json:"season"`
	GameID          int    `json:"game_id"`
	CompetitorID    any    `json:"competitor_id"`
	CompetitorColor any    `json:"competitor_color"`
	CompetitorName  any    `json:"competitor_name"`
	PlayerID        any    `json:"player_id"`
	Captain         any    `json:"captain_flag"`
	DisplayName     any    `json:"display_name"`
	FirstName       any    `json:"first_name"`
	LastName        any    `json:"last_name"`
	StatusDesc      any    `json:"current_roster_status_description"`
	StatusComments  any    `json:"current_roster_status_comments"`
	StatusTxnType   any    `json:"current_roster_status_transaction_type"`
	StatusLk        any    `json:"current_roster_status_lk"`
	IsVoting        any    `json:"is_voting_flag"`
	CanBeVotedFor   any    `json:"can_be_voted_for_flag"`
	HasVoted        any    `json:"has_voted_flag"`
	UniformNumber   string `json:"uniform_number"`
	IsNominated     any    `json:"is_nominated_flag"`
	Nominated       any    `json:"nominated_flag"`
	PlayerURL       any    `json:"player_url"`
	ImageURL        any    `json:"image_url"`
}

// RosterColumns is the column order used when exporting roster entries.
var RosterColumns = []string{
	"season", "game_id", "competitor_id", "competitor_color", "competitor_name",
	"player_id", "captain_flag", "display_name", "first_name", "last_name",
	"current_roster_status_description", "current_roster_status_comments",
	"current_roster_status_transaction_type", "current_roster_status_lk",
	"is_voting_flag", "can_be_voted_for_flag", "has_voted_flag", "uniform_number",
	"is_nominated_flag", "nominated_flag", "player_url", "image_url",
}

// Row returns the entry's values in RosterColumns order.
func (e RosterEntry) Row() []any {
	return []any{
		e.Season, e.GameID, e.CompetitorID, e.CompetitorColor, e.CompetitorName,
		e.PlayerID, e.Captain, e.DisplayName, e.FirstName, e.LastName,
		e.StatusDesc, e.StatusComments, e.StatusTxnType, e.StatusLk,
		e.IsVoting, e.CanBeVotedFor, e.HasVoted, e.UniformNumber,
		e.IsNominated, e.Nominated, e.PlayerURL, e.ImageURL,
	}
}

// NormalizeRoster reads data[0].competitors[].players[] from a play-by-play
// response. Entries are returned competitor by competitor in payload order.
func NormalizeRoster(sport string, season, gameID int, payload map[string]any) ([]RosterEntry, error) {
	event, err := firstEvent(sport, payload)
	if err != nil {
		return nil, err
	}
	competitors, ok := event["competitors"].([]any)
	if !ok {
		return nil, stat.Malformed(sport, 0, "data[0].competitors", "missing or not a list")
	}

	var out []RosterEntry
	index := 0
	for ci, rawComp := range competitors {
		comp, ok := rawComp.(map[string]any)
		if !ok {
			return nil, stat.Malformed(sport, ci, "competitors", "entry is not an object")
		}
		header := make(map[string]any, 3)
		for _, key := range []string{"competitorId", "color", "name"} {
			v, ok := comp[key]
			if !ok {
				return nil, stat.Malformed(sport, ci, key, "")
			}
			header[key] = v
		}
		players, ok := comp["players"].([]any)
		if !ok {
			return nil, stat.Malformed(sport, ci, "players", "missing or not a list")
		}
		for _, rawPlayer := range players {
			p, ok := rawPlayer.(map[string]any)
			if !ok {
				return nil, stat.Malformed(sport, index, "players", "entry is not an object")
			}
			entry, err := rosterEntry(sport, index, p)
			if err != nil {
				return nil, err
			}
			entry.Season, entry.GameID = season, gameID
			entry.CompetitorColor = header["color"]
			entry.CompetitorName = header["name"]
			if entry.CompetitorID == nil {
				entry.CompetitorID = header["competitorId"]
			}
			out = append(out, entry)
			index++
		}
	}
	return out, nil
}

func rosterEntry(sport string, index int, p map[string]any) (RosterEntry, error) {
	var missing string
	get := func(m map[string]any, key string) any {
		v, ok := m[key]
		if !ok && missing == "" {
			missing = key
		}
		return v
	}
	nested := func(key string) map[string]any {
		m, ok := p[key].(map[string]any)
		if !ok {
			if missing == "" {
				missing = key
			}
			return map[string]any{}
		}
		return m
	}

	status := nested("currentRosterStatus")
	image := nested("imageResource")
	e := RosterEntry{
		CompetitorID:   get(p, "competitorId"),
		PlayerID:       get(p, "playerId"),
		Captain:        get(p, "captainFlg"),
		DisplayName:    get(p, "displayName"),
		FirstName:      get(p, "firstName"),
		LastName:       get(p, "lastName"),
		StatusDesc:     get(status, "description"),
		StatusComments: get(status, "comments"),
		StatusTxnType:  get(status, "transactionType"),
		StatusLk:       get(status, "rosterStatusLk"),
		IsVoting:       get(p, "isVotingFlg"),
		CanBeVotedFor:  get(p, "canBeVotedForFlg"),
		HasVoted:       get(p, "hasVotedFlg"),
		UniformNumber:  uniform(get(p, "uniformNumber")),
		IsNominated:    get(p, "isNominatedFlg"),
		Nominated:      get(p, "nominatedFlg"),
		PlayerURL:      get(p, "resourceUrl"),
		ImageURL:       get(image, "imageUrl"),
	}
	if missing != "" {
		return RosterEntry{}, stat.Malformed(sport, index, missing, "")
	}
	return e, nil
}

func uniform(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return ""
	}
}
