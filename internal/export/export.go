// Package export writes normalized rows as CSV or JSON with a stable column
// order. Null values become empty CSV cells and JSON nulls.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/albapepper/austats/internal/pbp"
	"github.com/albapepper/austats/internal/stat"
)

// Format selects the output encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// ParseFormat accepts "csv" or "json".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case CSV, JSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want csv or json)", s)
	}
}

var recordColumns = []string{
	"sport", "api_version", "season", "season_id", "team_id", "player_id",
	"record_type", "home_flag", "first_name", "last_name", "full_name",
	"uniform_number", "uniform_number_display", "primary_position",
	"secondary_position", "week_number", "game_number", "season_type",
}

var aggregateColumns = []string{
	"sport", "level", "season", "season_id", "team_id", "player_id",
	"first_name", "last_name", "full_name", "rows",
}

// --------------------------------------------------------------------------
// Writers
// --------------------------------------------------------------------------

// Records writes game rows. Columns are the identity block followed by every
// schema column.
func Records(w io.Writer, f Format, s *stat.Schema, records []stat.StatRecord) error {
	if f == JSON {
		return writeJSON(w, records)
	}
	cols := s.Columns()
	cw := csv.NewWriter(w)
	header := append([]string(nil), recordColumns...)
	for _, c := range cols {
		header = append(header, c.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range records {
		r := &records[i]
		row := []string{
			r.Sport, r.APIVersion, strconv.Itoa(r.SeasonYear), strconv.Itoa(r.SeasonID),
			strconv.Itoa(r.TeamID), optInt(r.PlayerID), string(r.Type), strconv.FormatBool(r.Home),
			r.FirstName, r.LastName, r.FullName, r.UniformNumber, r.UniformNumberDisplay,
			r.PrimaryPosition, r.SecondaryPosition,
			optInt(r.WeekNumber), optInt(r.GameNumber), optString(r.SeasonType),
		}
		for _, c := range cols {
			if c.Kind == stat.KindText {
				row = append(row, optString(r.Text[c.Name]))
				continue
			}
			row = append(row, r.Stats[c.Name].Format(c.Kind))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Aggregates writes season rows with the schema's aggregate columns.
func Aggregates(w io.Writer, f Format, s *stat.Schema, aggs []stat.SeasonAggregate) error {
	if f == JSON {
		return writeJSON(w, aggs)
	}
	cols := s.AggregateColumns()
	cw := csv.NewWriter(w)
	header := append([]string(nil), aggregateColumns...)
	for _, c := range cols {
		header = append(header, c.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range aggs {
		a := &aggs[i]
		row := []string{
			a.Sport, a.Level, strconv.Itoa(a.SeasonYear), strconv.Itoa(a.SeasonID),
			optInt(a.TeamID), optInt(a.PlayerID), a.FirstName, a.LastName, a.FullName,
			strconv.Itoa(a.Rows),
		}
		for _, c := range cols {
			row = append(row, a.Stats[c.Name].Format(c.Kind))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Plays writes play-by-play events in s.Columns order.
func Plays(w io.Writer, f Format, s pbp.Schema, events []pbp.PlayEvent) error {
	if f == JSON {
		return writeJSON(w, events)
	}
	cols := s.Columns()
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for _, ev := range events {
		for i, c := range cols {
			row[i] = cell(ev.Value(c))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Roster writes participation rows.
func Roster(w io.Writer, f Format, entries []pbp.RosterEntry) error {
	if f == JSON {
		return writeJSON(w, entries)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(pbp.RosterColumns); err != nil {
		return err
	}
	row := make([]string, len(pbp.RosterColumns))
	for _, e := range entries {
		for i, v := range e.Row() {
			row[i] = cell(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --------------------------------------------------------------------------
// Cell formatting
// --------------------------------------------------------------------------

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

func optInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func optString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
