// Package sport holds the per-league descriptors that configure the generic
// normalization pipeline: stat schema, play-by-play fields and season table.
package sport

import (
	"fmt"
	"sort"

	"github.com/albapepper/austats/internal/pbp"
	"github.com/albapepper/austats/internal/season"
	"github.com/albapepper/austats/internal/stat"
)

// League keys.
const (
	Softball    = "softball"
	AUXSoftball = "aux_softball"
	Basketball  = "basketball"
	Lacrosse    = "lacrosse"
	Volleyball  = "volleyball"
)

// League bundles everything the pipeline needs for one league.
type League struct {
	Key         string
	Name        string
	VendorSport string // sport segment of vendor URLs
	Stats       *stat.Schema
	Plays       pbp.Schema
	Seasons     season.Table
	// TeamsFromPlayers aggregates team seasons from player rows rather than
	// from the vendor's team rows.
	TeamsFromPlayers bool
}

// Registry maps league keys to their descriptors.
type Registry struct {
	leagues map[string]*League
}

// NewRegistry builds a registry from leagues, rejecting duplicates and
// invalid schemas.
func NewRegistry(leagues ...*League) (*Registry, error) {
	r := &Registry{leagues: make(map[string]*League, len(leagues))}
	for _, l := range leagues {
		if _, dup := r.leagues[l.Key]; dup {
			return nil, fmt.Errorf("league %q registered twice", l.Key)
		}
		if err := l.Stats.Validate(); err != nil {
			return nil, err
		}
		r.leagues[l.Key] = l
	}
	return r, nil
}

// Get returns a league by key.
func (r *Registry) Get(key string) (*League, error) {
	l, ok := r.leagues[key]
	if !ok {
		return nil, fmt.Errorf("unsupported league %q (supported: %v)", key, r.Keys())
	}
	return l, nil
}

// Keys returns the registered league keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.leagues))
	for k := range r.leagues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolver returns a season resolver over every league's table.
func (r *Registry) Resolver() *season.Resolver {
	tables := make(map[string]season.Table, len(r.leagues))
	for k, l := range r.leagues {
		tables[k] = l.Seasons
	}
	return season.New(tables)
}

// Default returns the registry of AU leagues.
func Default() *Registry {
	r, err := NewRegistry(
		&League{
			Key:         Softball,
			Name:        "Athletes Unlimited Softball",
			VendorSport: "softball",
			Stats:       softballStats(Softball),
			Plays:       softballPlays,
			Seasons: season.NewTable(map[int]int{2020: 2, 2021: 4, 2022: 13, 2023: 14}).
				WithAliases(map[int]int{39: 2022, 106: 2023}),
			TeamsFromPlayers: true,
		},
		&League{
			Key:              AUXSoftball,
			Name:             "Athletes Unlimited AUX Softball",
			VendorSport:      "softball",
			Stats:            softballStats(AUXSoftball),
			Plays:            softballPlays,
			Seasons:          season.NewTable(map[int]int{2022: 39, 2023: 106}),
			TeamsFromPlayers: true,
		},
		&League{
			Key:              Basketball,
			Name:             "Athletes Unlimited Basketball",
			VendorSport:      "basketball",
			Stats:            basketballStats,
			Plays:            basketballPlays,
			Seasons:          season.NewTable(map[int]int{2022: 6, 2023: 73}),
			TeamsFromPlayers: true,
		},
		&League{
			Key:         Lacrosse,
			Name:        "Athletes Unlimited Lacrosse",
			VendorSport: "lacrosse",
			Stats:       lacrosseStats,
			Plays:       lacrossePlays,
			Seasons:     season.NewTable(map[int]int{2021: 5, 2022: 17, 2023: 105}),
		},
		&League{
			Key:         Volleyball,
			Name:        "Athletes Unlimited Volleyball",
			VendorSport: "volleyball",
			Stats:       volleyballStats,
			Plays:       volleyballPlays,
			Seasons:     season.NewTable(map[int]int{2021: 3, 2022: 11, 2023: 138}),
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// --------------------------------------------------------------------------
// Schema helpers
// --------------------------------------------------------------------------

func count(col, src string) stat.Field {
	return stat.Field{Column: col, Source: src, Kind: stat.KindCount}
}

func measure(col, src string) stat.Field {
	return stat.Field{Column: col, Source: src, Kind: stat.KindMeasure}
}

func innings(col, src, raw string) stat.Field {
	return stat.Field{Column: col, Source: src, Kind: stat.KindInnings, RawColumn: raw}
}

func rate(col, group string, fn func(stat.Line) stat.Value) stat.Metric {
	return stat.Metric{Column: col, Group: group, Kind: stat.KindRate, Compute: fn}
}

func derivedCount(col, group string, fn func(stat.Line) stat.Value) stat.Metric {
	return stat.Metric{Column: col, Group: group, Kind: stat.KindCount, Compute: fn}
}

func pct(col, group, made, attempted string) stat.Metric {
	return rate(col, group, func(l stat.Line) stat.Value { return stat.Pct(l.N(made), l.N(attempted)) })
}

func perSet(col, group, src string) stat.Metric {
	return rate(col, group, func(l stat.Line) stat.Value { return stat.Ratio(l.N(src), l.N("sets_played")) })
}

// fields builds play fields from column/source pairs.
func fields(pairs ...string) []pbp.Field {
	if len(pairs)%2 != 0 {
		panic("sport: odd number of play field names")
	}
	out := make([]pbp.Field, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, pbp.Field{Column: pairs[i], Source: pairs[i+1]})
	}
	return out
}
