package stat

import "fmt"

// RecordType is the vendor's player/team discriminator.
type RecordType string

const (
	Player RecordType = "Player"
	Team   RecordType = "Team"
)

// StatRecord is one player's or team's normalized line for one game.
type StatRecord struct {
	Sport      string     `json:"sport"`
	APIVersion string     `json:"api_version"`
	SeasonYear int        `json:"season"`
	SeasonID   int        `json:"season_id"`
	TeamID     int        `json:"team_id"`
	PlayerID   *int       `json:"player_id"`
	Type       RecordType `json:"record_type"`
	Home       bool       `json:"home_flag"`

	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	FullName             string `json:"full_name"`
	UniformNumber        string `json:"uniform_number"`
	UniformNumberDisplay string `json:"uniform_number_display"`
	PrimaryPosition      string `json:"primary_position"`
	SecondaryPosition    string `json:"secondary_position"`

	WeekNumber *int    `json:"week_number"`
	GameNumber *int    `json:"game_number"`
	SeasonType *string `json:"season_type"`

	// Stats and Text hold one entry per schema column, null when the
	// column's group was absent.
	Stats map[string]Value   `json:"stats"`
	Text  map[string]*string `json:"text,omitempty"`
}

// IsTeam reports whether the record is a team line.
func (r *StatRecord) IsTeam() bool { return r.Type == Team }

// Label identifies the record in logs and error messages.
func (r *StatRecord) Label() string {
	if r.PlayerID != nil {
		return fmt.Sprintf("%s %d player=%d (%s)", r.Sport, r.SeasonYear, *r.PlayerID, r.FullName)
	}
	return fmt.Sprintf("%s %d team=%d", r.Sport, r.SeasonYear, r.TeamID)
}

// Level selects the identity season aggregates are grouped by.
type Level int

const (
	ByPlayer Level = iota
	ByTeam
)

func (l Level) String() string {
	if l == ByTeam {
		return "team"
	}
	return "player"
}

// ParseLevel accepts "player" or "team".
func ParseLevel(s string) (Level, error) {
	switch s {
	case "player", "players":
		return ByPlayer, nil
	case "team", "teams":
		return ByTeam, nil
	default:
		return 0, fmt.Errorf("unknown level %q (want player or team)", s)
	}
}

// SeasonAggregate is one entity's summed and re-derived line for a season.
type SeasonAggregate struct {
	Sport      string `json:"sport"`
	Level      string `json:"level"`
	SeasonYear int    `json:"season"`
	SeasonID   int    `json:"season_id"`
	TeamID     *int   `json:"team_id,omitempty"`
	PlayerID   *int   `json:"player_id,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	FullName   string `json:"full_name,omitempty"`
	// Rows is how many game records were folded in.
	Rows  int              `json:"rows"`
	Stats map[string]Value `json:"stats"`
}

// EntityID returns the player id for player aggregates and the team id for
// team aggregates.
func (a *SeasonAggregate) EntityID() int {
	if a.PlayerID != nil {
		return *a.PlayerID
	}
	if a.TeamID != nil {
		return *a.TeamID
	}
	return 0
}
