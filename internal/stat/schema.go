package stat

import "fmt"

// Kind says how a column is read from the vendor and folded into season totals.
type Kind int

const (
	KindCount      Kind = iota // whole number, summed
	KindMeasure                // non-integer amount such as minutes, summed
	KindInnings                // innings in outs notation, converted to thirds, summed
	KindRate                   // derived from counts, recomputed from sums
	KindVendorRate             // vendor percentage with no count basis, per game only
	KindText                   // categorical value, per game only
)

func (k Kind) String() string {
	switch k {
	case KindCount:
		return "count"
	case KindMeasure:
		return "measure"
	case KindInnings:
		return "innings"
	case KindRate:
		return "rate"
	case KindVendorRate:
		return "vendor_rate"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Summed reports whether the aggregator adds this kind across games.
func (k Kind) Summed() bool {
	return k == KindCount || k == KindMeasure || k == KindInnings
}

// Field maps one vendor key inside a stat group to a normalized column.
type Field struct {
	Column string
	Source string
	Kind   Kind
	// RawColumn, for KindInnings, keeps the vendor's text alongside the
	// converted number.
	RawColumn string
}

// Group is one optional stat block of a vendor record, such as battingStats.
type Group struct {
	Name   string
	Source string // vendor key holding a list whose first element is the block
	Fields []Field
	// Games and Starts name the vendor keys supplying the g and gs context
	// columns when this is the first present group that has them.
	Games  string
	Starts string
}

// Metric is a derived column computed from the counts of one record.
type Metric struct {
	Column string
	Group  string // the metric is null when this group is absent
	Kind   Kind   // KindRate, or KindCount for derived counts
	// PerGame metrics are computed on game rows only and summed into season
	// totals instead of being recomputed (quality starts).
	PerGame bool
	// GameOnly metrics describe a single game and are null in season
	// aggregates (pitcher game score).
	GameOnly bool
	Compute  func(Line) Value
}

// Column describes one stat column of a schema.
type Column struct {
	Name  string
	Kind  Kind
	Group string
}

// Context columns every schema carries.
const (
	ColGames  = "g"
	ColStarts = "gs"
)

// Schema describes how one league's vendor records become StatRecords.
type Schema struct {
	League    string   // season resolver key
	Sport     string   // vendor sport path segment
	StatTypes []string // statType query values for the by-game endpoint
	Groups    []Group
	Metrics   []Metric
	// Finish applies league rules that need the whole record, after metrics.
	Finish func(*StatRecord)
}

// Columns returns every column in output order: context counts, then each
// group's fields followed by its metrics.
func (s *Schema) Columns() []Column {
	cols := []Column{{Name: ColGames, Kind: KindCount}, {Name: ColStarts, Kind: KindCount}}
	for _, g := range s.Groups {
		for _, f := range g.Fields {
			cols = append(cols, Column{Name: f.Column, Kind: f.Kind, Group: g.Name})
			if f.RawColumn != "" {
				cols = append(cols, Column{Name: f.RawColumn, Kind: KindText, Group: g.Name})
			}
		}
		for _, m := range s.Metrics {
			if m.Group == g.Name {
				cols = append(cols, Column{Name: m.Column, Kind: m.Kind, Group: g.Name})
			}
		}
	}
	return cols
}

// AggregateColumns returns the columns present on season aggregates: all
// numeric columns except vendor rates.
func (s *Schema) AggregateColumns() []Column {
	all := s.Columns()
	out := make([]Column, 0, len(all))
	for _, c := range all {
		if c.Kind == KindText || c.Kind == KindVendorRate {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Validate checks that column names are unique and metrics point at groups.
func (s *Schema) Validate() error {
	groups := make(map[string]bool, len(s.Groups))
	for _, g := range s.Groups {
		if g.Name == "" || g.Source == "" {
			return fmt.Errorf("%s: group needs a name and a source", s.League)
		}
		groups[g.Name] = true
	}
	for _, m := range s.Metrics {
		if !groups[m.Group] {
			return fmt.Errorf("%s: metric %q references unknown group %q", s.League, m.Column, m.Group)
		}
		if m.Compute == nil {
			return fmt.Errorf("%s: metric %q has no compute function", s.League, m.Column)
		}
	}
	seen := make(map[string]bool)
	for _, c := range s.Columns() {
		if seen[c.Name] {
			return fmt.Errorf("%s: duplicate column %q", s.League, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// Line is the read view metric functions get over a record's stats.
type Line map[string]Value

// N returns the column's number, treating null as zero.
func (l Line) N(col string) float64 { return l[col].Or(0) }

// Get returns the column's raw value.
func (l Line) Get(col string) Value { return l[col] }
