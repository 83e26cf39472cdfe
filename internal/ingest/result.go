// Package ingest orchestrates vendor fetches and normalization for whole
// games and seasons.
package ingest

import "fmt"

// Result tracks counts and errors from an ingest operation.
type Result struct {
	Games   int
	Records int
	Skipped int
	Plays   int
	Roster  int
	Errors  []string
}

// Add merges another Result into this one.
func (r *Result) Add(other Result) {
	r.Games += other.Games
	r.Records += other.Records
	r.Skipped += other.Skipped
	r.Plays += other.Plays
	r.Roster += other.Roster
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the ingest operation.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"games=%d records=%d skipped=%d plays=%d roster=%d errors=%d",
		r.Games, r.Records, r.Skipped, r.Plays, r.Roster, len(r.Errors),
	)
}
