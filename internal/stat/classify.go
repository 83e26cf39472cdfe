package stat

import "fmt"

// Mode selects which rows of a Box to return.
type Mode int

const (
	ModePlayers Mode = iota
	ModeTeams
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModeTeams:
		return "teams"
	case ModeBoth:
		return "both"
	default:
		return "players"
	}
}

// ParseMode accepts "players", "teams" or "both".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "players", "player":
		return ModePlayers, nil
	case "teams", "team":
		return ModeTeams, nil
	case "both", "all":
		return ModeBoth, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want players, teams or both)", s)
	}
}

// Box holds normalized rows split by record type, each side in input order.
type Box struct {
	players []StatRecord
	teams   []StatRecord
}

// Classify partitions records by record type.
func Classify(records []StatRecord) Box {
	var b BoxBuilder
	b.Add(records...)
	return b.Build()
}

// Players returns the player rows.
func (b Box) Players() []StatRecord { return b.players }

// Teams returns the team rows.
func (b Box) Teams() []StatRecord { return b.teams }

// All returns player rows followed by team rows.
func (b Box) All() []StatRecord {
	out := make([]StatRecord, 0, len(b.players)+len(b.teams))
	out = append(out, b.players...)
	return append(out, b.teams...)
}

// Select returns the rows for mode.
func (b Box) Select(mode Mode) []StatRecord {
	switch mode {
	case ModeTeams:
		return b.teams
	case ModeBoth:
		return b.All()
	default:
		return b.players
	}
}

// Len is the total number of rows.
func (b Box) Len() int { return len(b.players) + len(b.teams) }

// BoxBuilder collects rows across many games. Rows are only appended; Build
// hands the collected slices to an immutable Box.
type BoxBuilder struct {
	players []StatRecord
	teams   []StatRecord
}

// Add appends records to the matching side.
func (b *BoxBuilder) Add(records ...StatRecord) {
	for _, r := range records {
		if r.IsTeam() {
			b.teams = append(b.teams, r)
		} else {
			b.players = append(b.players, r)
		}
	}
}

// Build returns the Box. The builder must not be used afterwards.
func (b *BoxBuilder) Build() Box {
	box := Box{players: b.players, teams: b.teams}
	b.players, b.teams = nil, nil
	return box
}
