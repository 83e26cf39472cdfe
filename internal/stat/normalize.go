package stat

import (
	"errors"
	"fmt"
	"strings"
)

// SeasonLookup resolves a vendor season id to its year.
type SeasonLookup interface {
	IDToSeason(sport string, id int) (int, error)
}

// Meta is the metaSport header of a by-game payload.
type Meta struct {
	Sport   string
	Version string
}

// PayloadMeta reads metaSport from a decoded payload.
func PayloadMeta(payload map[string]any) (Meta, error) {
	ms, ok := payload["metaSport"].(map[string]any)
	if !ok {
		return Meta{}, Malformed("", -1, "metaSport", "")
	}
	sport, ok := ms["sport"].(string)
	if !ok {
		return Meta{}, Malformed("", -1, "metaSport.sport", "")
	}
	version, _ := textOf(ms["version"])
	return Meta{Sport: sport, Version: version}, nil
}

// NormalizePayload turns every participant block of a by-game payload into a
// StatRecord.
//
// Records with malformed identity are skipped and returned in skipped; the
// rest are still normalized. err is set only when the payload itself is
// unusable or a season id cannot be resolved, in which case nothing is
// returned.
func NormalizePayload(s *Schema, lookup SeasonLookup, payload map[string]any) (records []StatRecord, skipped []error, err error) {
	meta, err := PayloadMeta(payload)
	if err != nil {
		return nil, nil, err
	}
	data, ok := payload["data"].([]any)
	if !ok {
		return nil, nil, Malformed(meta.Sport, -1, "data", "missing or not a list")
	}

	records = make([]StatRecord, 0, len(data))
	for i, raw := range data {
		item, ok := raw.(map[string]any)
		if !ok {
			skipped = append(skipped, Malformed(meta.Sport, i, "data", "entry is not an object"))
			continue
		}
		rec, err := Normalize(s, lookup, meta, i, item)
		if err != nil {
			var mp *MalformedPayloadError
			if errors.As(err, &mp) {
				skipped = append(skipped, err)
				continue
			}
			return nil, nil, err
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// Normalize turns one participant block into a StatRecord. index is the
// block's position in the payload and only used in errors.
//
// A missing identity field yields a MalformedPayloadError and the zero
// record. Absent stat groups leave every one of their columns null.
func Normalize(s *Schema, lookup SeasonLookup, meta Meta, index int, item map[string]any) (StatRecord, error) {
	typ, ok := item["type"].(string)
	if !ok {
		return StatRecord{}, Malformed(meta.Sport, index, "type", "")
	}
	teamID, err := requiredInt(meta.Sport, index, item, "teamId")
	if err != nil {
		return StatRecord{}, err
	}
	seasonID, err := requiredInt(meta.Sport, index, item, "seasonId")
	if err != nil {
		return StatRecord{}, err
	}

	rec := StatRecord{
		Sport:      meta.Sport,
		APIVersion: meta.Version,
		SeasonID:   seasonID,
		TeamID:     teamID,
		Type:       Player,
		Home:       extractBool(item, "homeTeamFlg"),
	}
	if typ == string(Team) {
		rec.Type = Team
		rec.PlayerID = extractOptInt(item, "playerId")
	} else {
		playerID, err := requiredInt(meta.Sport, index, item, "playerId")
		if err != nil {
			return StatRecord{}, err
		}
		rec.PlayerID = &playerID
	}

	year, err := lookup.IDToSeason(s.League, seasonID)
	if err != nil {
		return StatRecord{}, fmt.Errorf("record %d: %w", index, err)
	}
	rec.SeasonYear = year

	rec.FirstName = cleanName(extractString(item, "firstName"))
	rec.LastName = cleanName(extractString(item, "lastName"))
	rec.FullName = strings.TrimSpace(rec.FirstName + " " + rec.LastName)
	rec.UniformNumber = extractString(item, "uniformNumber")
	rec.UniformNumberDisplay = extractString(item, "uniformNumberDisplay")
	rec.PrimaryPosition = extractString(item, "primaryPositionLk")
	rec.SecondaryPosition = extractString(item, "secondaryPositionLk")

	rec.Stats = make(map[string]Value, len(s.Groups)*16+len(s.Metrics)+2)
	rec.Text = make(map[string]*string)
	rec.Stats[ColGames] = Null
	rec.Stats[ColStarts] = Null

	present := make(map[string]bool, len(s.Groups))
	gamesSet, startsSet := false, false
	for _, g := range s.Groups {
		block, ok := firstEntry(item, g.Source)
		present[g.Name] = ok
		for _, f := range g.Fields {
			if !ok {
				setNull(&rec, f)
				continue
			}
			readField(&rec, f, block[f.Source])
		}
		if !ok {
			continue
		}

		if rec.WeekNumber == nil {
			rec.WeekNumber = extractOptInt(block, "weekNumber")
		}
		if rec.GameNumber == nil {
			rec.GameNumber = extractOptInt(block, "gameNumber")
		}
		if rec.SeasonType == nil {
			rec.SeasonType = extractOptString(block, "seasonType")
		}
		if g.Games != "" && !gamesSet {
			rec.Stats[ColGames] = extractCount(block[g.Games])
			gamesSet = true
		}
		if g.Starts != "" && !startsSet {
			rec.Stats[ColStarts] = extractCount(block[g.Starts])
			startsSet = true
		}
	}

	line := Line(rec.Stats)
	for _, m := range s.Metrics {
		if !present[m.Group] {
			rec.Stats[m.Column] = Null
			continue
		}
		rec.Stats[m.Column] = m.Compute(line)
	}

	if s.Finish != nil {
		s.Finish(&rec)
	}
	return rec, nil
}

func requiredInt(sport string, index int, item map[string]any, key string) (int, error) {
	n, present, ok := extractInt(item, key)
	if !present {
		return 0, Malformed(sport, index, key, "")
	}
	if !ok {
		return 0, Malformed(sport, index, key, "is not an integer")
	}
	return n, nil
}

func readField(rec *StatRecord, f Field, raw any) {
	switch f.Kind {
	case KindCount:
		rec.Stats[f.Column] = extractCount(raw)
	case KindMeasure:
		rec.Stats[f.Column] = extractMeasure(raw)
	case KindInnings:
		rec.Stats[f.Column] = ParseInnings(raw)
		if f.RawColumn != "" {
			if s, ok := textOf(raw); ok {
				rec.Text[f.RawColumn] = &s
			} else {
				rec.Text[f.RawColumn] = nil
			}
		}
	case KindVendorRate:
		if v, ok := ExtractValue(raw); ok {
			rec.Stats[f.Column] = Of(Round3(v))
		} else {
			rec.Stats[f.Column] = Null
		}
	case KindText:
		if s, ok := textOf(raw); ok {
			rec.Text[f.Column] = &s
		} else {
			rec.Text[f.Column] = nil
		}
	}
}

func setNull(rec *StatRecord, f Field) {
	if f.Kind == KindText {
		rec.Text[f.Column] = nil
		return
	}
	rec.Stats[f.Column] = Null
	if f.RawColumn != "" {
		rec.Text[f.RawColumn] = nil
	}
}
