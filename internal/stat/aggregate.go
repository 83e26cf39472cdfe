package stat

// aggKey is the identity a season aggregate is grouped by. Player keys leave
// team unset; team keys leave the player fields unset.
type aggKey struct {
	sport    string
	season   int
	seasonID int
	team     int
	hasTeam  bool
	player   int
	first    string
	last     string
	full     string
}

func keyFor(r *StatRecord, level Level) aggKey {
	k := aggKey{sport: r.Sport, season: r.SeasonYear, seasonID: r.SeasonID}
	if level == ByTeam {
		k.team, k.hasTeam = r.TeamID, true
		return k
	}
	if r.PlayerID != nil {
		k.player = *r.PlayerID
	}
	k.first, k.last, k.full = r.FirstName, r.LastName, r.FullName
	return k
}

// Aggregate folds game rows into one SeasonAggregate per identity.
//
// Summed columns (counts, measures, innings and per-game derived counts) are
// added with null counted as zero. Every other metric is then recomputed from
// the sums, so season rates never average per-game rates. GameOnly metrics
// are null. Vendor rates and text columns are not carried. Output follows first appearance in records.
func Aggregate(s *Schema, records []StatRecord, level Level) []SeasonAggregate {
	summed := []Column{{Name: ColGames, Kind: KindCount}, {Name: ColStarts, Kind: KindCount}}
	for _, g := range s.Groups {
		for _, f := range g.Fields {
			if f.Kind.Summed() {
				summed = append(summed, Column{Name: f.Column, Kind: f.Kind, Group: g.Name})
			}
		}
	}
	for _, m := range s.Metrics {
		if m.PerGame && m.Kind == KindCount {
			summed = append(summed, Column{Name: m.Column, Kind: KindCount, Group: m.Group})
		}
	}

	index := make(map[aggKey]int)
	var out []SeasonAggregate
	var totals []map[string]float64
	for i := range records {
		r := &records[i]
		k := keyFor(r, level)
		pos, ok := index[k]
		if !ok {
			pos = len(out)
			index[k] = pos
			out = append(out, newAggregate(r, level))
			totals = append(totals, make(map[string]float64, len(summed)))
		}
		out[pos].Rows++
		t := totals[pos]
		for _, c := range summed {
			t[c.Name] += r.Stats[c.Name].Or(0)
		}
	}

	for i := range out {
		stats := make(map[string]Value, len(summed)+len(s.Metrics))
		for _, c := range summed {
			v := totals[i][c.Name]
			if c.Kind != KindCount {
				v = Round3(v)
			}
			stats[c.Name] = Of(v)
		}
		line := Line(stats)
		for _, m := range s.Metrics {
			switch {
			case m.PerGame && m.Kind == KindCount:
				continue
			case m.GameOnly:
				stats[m.Column] = Null
			default:
				stats[m.Column] = m.Compute(line)
			}
		}
		out[i].Stats = stats
	}
	return out
}

func newAggregate(r *StatRecord, level Level) SeasonAggregate {
	a := SeasonAggregate{
		Sport:      r.Sport,
		Level:      level.String(),
		SeasonYear: r.SeasonYear,
		SeasonID:   r.SeasonID,
	}
	if level == ByTeam {
		team := r.TeamID
		a.TeamID = &team
		return a
	}
	if r.PlayerID != nil {
		player := *r.PlayerID
		a.PlayerID = &player
	}
	a.FirstName, a.LastName, a.FullName = r.FirstName, r.LastName, r.FullName
	return a
}
