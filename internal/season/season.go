// Package season resolves between human-facing season years and the vendor's
// internal season identifiers, per league.
//
// Tables are static and handed in at construction; a Resolver never mutates
// after New returns, so one instance can be shared freely.
package season

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnsupportedSeason is matched by every UnsupportedSeasonError.
var ErrUnsupportedSeason = errors.New("unsupported season")

// UnsupportedSeasonError reports a year or season id missing from a league table.
type UnsupportedSeasonError struct {
	Sport string
	Key   string // "year", "id" or "league"
	Value int
}

func (e *UnsupportedSeasonError) Error() string {
	switch e.Key {
	case "year":
		return fmt.Sprintf("%s: no season id for year %d", e.Sport, e.Value)
	case "id":
		return fmt.Sprintf("%s: no season year for id %d", e.Sport, e.Value)
	default:
		return fmt.Sprintf("unknown league %q", e.Sport)
	}
}

func (e *UnsupportedSeasonError) Is(target error) bool {
	return target == ErrUnsupportedSeason
}

// Table is one league's season mapping.
//
// ByYear holds the canonical id for each year. ByID may list more ids than
// ByYear: softball has two ids for 2022 and for 2023, and both resolve to the
// same year.
type Table struct {
	ByYear map[int]int
	ByID   map[int]int
}

// NewTable builds a bijective table from a year -> id map. Extra aliases can be
// added with WithAliases.
func NewTable(byYear map[int]int) Table {
	t := Table{ByYear: make(map[int]int, len(byYear)), ByID: make(map[int]int, len(byYear))}
	for year, id := range byYear {
		t.ByYear[year] = id
		t.ByID[id] = year
	}
	return t
}

// WithAliases returns a copy of t where each alias id also resolves to its year.
func (t Table) WithAliases(aliases map[int]int) Table {
	out := t.clone()
	for id, year := range aliases {
		out.ByID[id] = year
	}
	return out
}

// Years returns the table's years in ascending order.
func (t Table) Years() []int {
	years := make([]int, 0, len(t.ByYear))
	for y := range t.ByYear {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

func (t Table) clone() Table {
	out := Table{ByYear: make(map[int]int, len(t.ByYear)), ByID: make(map[int]int, len(t.ByID))}
	for k, v := range t.ByYear {
		out.ByYear[k] = v
	}
	for k, v := range t.ByID {
		out.ByID[k] = v
	}
	return out
}

// Resolver looks up season ids and years across leagues.
type Resolver struct {
	tables map[string]Table
}

// New creates a Resolver over copies of the given tables.
func New(tables map[string]Table) *Resolver {
	r := &Resolver{tables: make(map[string]Table, len(tables))}
	for sport, t := range tables {
		r.tables[sport] = t.clone()
	}
	return r
}

// SeasonToID returns the vendor season id for a league and year.
func (r *Resolver) SeasonToID(sport string, year int) (int, error) {
	t, ok := r.tables[sport]
	if !ok {
		return 0, &UnsupportedSeasonError{Sport: sport, Key: "league"}
	}
	id, ok := t.ByYear[year]
	if !ok {
		return 0, &UnsupportedSeasonError{Sport: sport, Key: "year", Value: year}
	}
	return id, nil
}

// IDToSeason returns the season year for a league and vendor season id.
func (r *Resolver) IDToSeason(sport string, id int) (int, error) {
	t, ok := r.tables[sport]
	if !ok {
		return 0, &UnsupportedSeasonError{Sport: sport, Key: "league"}
	}
	year, ok := t.ByID[id]
	if !ok {
		return 0, &UnsupportedSeasonError{Sport: sport, Key: "id", Value: id}
	}
	return year, nil
}

// Table returns a copy of one league's table.
func (r *Resolver) Table(sport string) (Table, bool) {
	t, ok := r.tables[sport]
	if !ok {
		return Table{}, false
	}
	return t.clone(), true
}
