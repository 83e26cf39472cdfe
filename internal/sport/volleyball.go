package sport

import (
	"github.com/albapepper/austats/internal/pbp"
	"github.com/albapepper/austats/internal/stat"
)

var volleyballStats = &stat.Schema{
	League:    Volleyball,
	Sport:     "volleyball",
	StatTypes: []string{"volleyball"},
	Groups: []stat.Group{{
		Name:   "stats",
		Source: "stats",
		Fields: []stat.Field{
			count("sets_played", "setsPlayed"),
			count("kills", "kills"),
			count("attack_errors", "attackErrors"),
			count("attack_attempts", "attackAttempts"),
			count("assists", "assists"),
			count("setting_errors", "settingErrors"),
			count("service_errors", "serviceErrors"),
			count("service_aces", "serviceAces"),
			count("total_reception_attempts", "totalReceptionAttempts"),
			count("reception_errors", "receptionErrors"),
			{Column: "positive_reception_pct", Source: "positiveReceptionPct", Kind: stat.KindVendorRate},
			count("digs", "digs"),
			count("blocks", "blocks"),
			count("au_points", "auTotalPoints"),
		},
	}},
	Metrics: []stat.Metric{
		perSet("kills_per_set", "stats", "kills"),
		rate("attack_pct", "stats", func(l stat.Line) stat.Value {
			return stat.Ratio(l.N("kills")-l.N("attack_errors"), l.N("attack_attempts"))
		}),
		perSet("assists_per_set", "stats", "assists"),
		perSet("service_aces_per_set", "stats", "service_aces"),
		perSet("digs_per_set", "stats", "digs"),
		perSet("blocks_per_set", "stats", "blocks"),
	},
	// A volleyball game counts as played when the player appeared in a set.
	Finish: func(r *stat.StatRecord) {
		sets, ok := r.Stats["sets_played"].Float64()
		switch {
		case !ok:
			r.Stats[stat.ColGames] = stat.Null
		case sets > 0:
			r.Stats[stat.ColGames] = stat.OfInt(1)
		default:
			r.Stats[stat.ColGames] = stat.OfInt(0)
		}
	},
}

var volleyballPlays = pbp.Schema{
	Sport: "volleyball",
	Fields: fields(
		"game_number", "gameNumber",
		"vendor_game_id", "gameId",
		"narrative_formatted", "narrativeFormatted",
		"start_time", "startTime",
		"end_time", "endTime",
		"set_number", "setNumber",
		"set_status_lk", "setStatusLk",
		"rally_number", "rallyNumber",
		"play_code", "playCode",
		"play_text", "playText",
		"player_id", "playerId",
		"serve_ace", "serveAce",
		"serve_error", "serveError",
		"serve_continue", "serveContinue",
		"attack_kill", "attackKill",
		"attack_error", "attackError",
		"attack_continue", "attackContinue",
		"pass_good", "passGood",
		"pass_error", "passError",
		"pass_continue", "passContinue",
		"dig_dig", "digDig",
		"dig_continue", "digContinue",
		"block_continue", "blockContinue",
		"block_stuff", "blockStuff",
		"set_assist", "setAssist",
		"set_error", "setError",
		"set_continue", "setContinue",
		"home_team_id", "homeTeamId",
		"home_team_score", "homeTeamScore",
		"away_team_id", "awayTeamId",
		"away_team_score", "awayTeamScore",
		"scoring_team_id", "scoringTeamId",
	),
}
