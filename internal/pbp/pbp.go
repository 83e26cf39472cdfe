// Package pbp normalizes play-by-play responses into flat PlayEvent rows.
//
// Every field a league schema lists is mandatory: a play missing any of them
// fails the whole game with a stat.MalformedPayloadError. Values are copied
// as decoded, a JSON null stays nil.
package pbp

import (
	"math"

	"github.com/albapepper/austats/internal/stat"
)

// Field maps one vendor play key to an output column.
type Field struct {
	Column string
	Source string
}

// Schema lists a league's play fields in output order.
type Schema struct {
	Sport  string
	Fields []Field
}

// Identity columns that lead every PlayEvent row.
const (
	ColSeason   = "season"
	ColGameID   = "game_id"
	ColSequence = "play_seq_num"

	sequenceKey = "playSeqno"
)

// Columns returns the output columns: identity first, then the schema fields.
func (s Schema) Columns() []string {
	cols := make([]string, 0, len(s.Fields)+3)
	cols = append(cols, ColSeason, ColGameID, ColSequence)
	for _, f := range s.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

// PlayEvent is one normalized play.
type PlayEvent struct {
	Season   int            `json:"season"`
	GameID   int            `json:"game_id"`
	Sequence int            `json:"play_seq_num"`
	Values   map[string]any `json:"values"`
}

// Value returns a column's value, identity columns included.
func (e PlayEvent) Value(col string) any {
	switch col {
	case ColSeason:
		return e.Season
	case ColGameID:
		return e.GameID
	case ColSequence:
		return e.Sequence
	default:
		return e.Values[col]
	}
}

// PlaysFromPayload returns data[0].plays from a play-by-play response.
func PlaysFromPayload(sport string, payload map[string]any) ([]any, error) {
	event, err := firstEvent(sport, payload)
	if err != nil {
		return nil, err
	}
	plays, ok := event["plays"].([]any)
	if !ok {
		return nil, stat.Malformed(sport, 0, "data[0].plays", "missing or not a list")
	}
	return plays, nil
}

func firstEvent(sport string, payload map[string]any) (map[string]any, error) {
	data, ok := payload["data"].([]any)
	if !ok || len(data) == 0 {
		return nil, stat.Malformed(sport, -1, "data", "missing or empty")
	}
	event, ok := data[0].(map[string]any)
	if !ok {
		return nil, stat.Malformed(sport, 0, "data[0]", "not an object")
	}
	return event, nil
}

// Normalize converts plays into PlayEvents in input order.
func Normalize(s Schema, season, gameID int, plays []any) ([]PlayEvent, error) {
	events := make([]PlayEvent, 0, len(plays))
	for i, raw := range plays {
		play, ok := raw.(map[string]any)
		if !ok {
			return nil, stat.Malformed(s.Sport, i, "plays", "entry is not an object")
		}
		seq, err := sequence(s.Sport, i, play)
		if err != nil {
			return nil, err
		}
		ev := PlayEvent{
			Season:   season,
			GameID:   gameID,
			Sequence: seq,
			Values:   make(map[string]any, len(s.Fields)),
		}
		for _, f := range s.Fields {
			v, ok := play[f.Source]
			if !ok {
				return nil, stat.Malformed(s.Sport, i, f.Source, "")
			}
			ev.Values[f.Column] = v
		}
		events = append(events, ev)
	}
	return events, nil
}

func sequence(sport string, index int, play map[string]any) (int, error) {
	raw, ok := play[sequenceKey]
	if !ok {
		return 0, stat.Malformed(sport, index, sequenceKey, "")
	}
	f, ok := stat.ExtractValue(raw)
	if !ok || f != math.Trunc(f) {
		return 0, stat.Malformed(sport, index, sequenceKey, "is not an integer")
	}
	return int(f), nil
}
