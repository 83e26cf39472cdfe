package sport

import (
	"github.com/albapepper/austats/internal/pbp"
	"github.com/albapepper/austats/internal/stat"
)

var lacrosseStats = &stat.Schema{
	League:    Lacrosse,
	Sport:     "lacrosse",
	StatTypes: []string{"lacrosse_player", "lacrosse_goalie"},
	Groups: []stat.Group{
		{
			Name:   "offense",
			Source: "playerStats",
			Fields: []stat.Field{
				count("periods_played", "periodsPlayed"),
				count("goals", "goals"),
				count("assists", "assists"),
				count("points", "points"),
				count("shots", "shots"),
				count("shots_on_goal", "shotsOnGoal"),
				count("two_point_goals", "twoPointGoals"),
				count("turnovers", "turnovers"),
				count("caused_turnovers", "causedTurnovers"),
				count("ground_balls", "groundballs"),
				count("draw_controls", "drawControls"),
				count("shots_saved", "shotsSaved"),
				count("yellow_cards", "yellowCards"),
				count("red_cards", "redCards"),
				count("shot_clock_violations_committed", "shotClockViolationsCommitted"),
				count("shot_clock_violations_drawn", "shotClockViolationsDrawn"),
				count("au_points", "auTotalPoints"),
			},
		},
		{
			Name:   "goalie",
			Source: "goalieStats",
			Fields: []stat.Field{
				count("goalie_games_played", "gamesPlayed"),
				count("goalie_games_started", "gamesStarted"),
				count("goalie_goals_against", "goalsAgainst"),
				count("goalie_saves", "saves"),
				count("goalie_shots_faced", "shotsFaced"),
				count("goalie_yellow_cards", "yellowCards"),
				count("goalie_red_cards", "redCards"),
				count("goalie_shot_clock_violations_committed", "shotClockViolationsCommitted"),
				count("goalie_shot_clock_violations_drawn", "shotClockViolationsDrawn"),
			},
		},
	},
	Metrics: []stat.Metric{
		pct("shot_pct", "offense", "goals", "shots"),
		pct("sog_pct", "offense", "shots_on_goal", "shots"),
		pct("goalie_save_pct", "goalie", "goalie_saves", "goalie_shots_faced"),
	},
	// Every lacrosse stat line is one game played.
	Finish: func(r *stat.StatRecord) {
		r.Stats[stat.ColGames] = stat.OfInt(1)
	},
}

var lacrossePlays = pbp.Schema{
	Sport: "lacrosse",
	Fields: fields(
		"game_number", "gameNumber",
		"game_report_id", "gameReportId",
		"action", "action",
		"play_desc", "text",
		"player_id", "playerId",
		"team_id", "teamId",
		"period", "period",
		"clock", "clock",
		"home_team_id", "homeTeamId",
		"home_team_score", "homeTeamScore",
		"is_a_play", "isAPlay",
		"narrative_formatted", "narrativeFormatted",
		"has_error", "hasError",
		"goals", "goals",
		"assists", "assists",
		"shots", "shots",
		"shots_on_goal", "shotsOnGoal",
		"assist_player_id", "assistPlayerId",
		"good_clear", "goodClear",
		"failed_clear", "failedClear",
		"disruptor_player_id", "disruptorPlayerId",
		"gw_goals", "gwGoals",
		"pp_goals", "ppGoals",
		"sh_goals", "shGoals",
		"ua_goals", "uaGoals",
		"ot_goals", "otGoals",
		"en_goals", "enGoals",
		"gt_goals", "gtGoals",
		"fg_goals", "fgGoals",
		"shootout_goals", "shootoutGoals",
		"penalties", "penalties",
		"shot_clock_violations", "shotClockViolations",
		"rcs", "rcs",
		"ycs", "ycs",
		"mn_penalties", "mnPenalties",
		"mj_penalties", "mjPenalties",
		"match_penalties", "matchPenalties",
		"fouls", "fouls",
		"face_won", "faceWon",
		"face_lost", "faceLost",
		"gbs", "gbs",
		"dc", "dc",
		"ct", "ct",
		"turnovers", "turnovers",
		"caused_turnover_player_id", "causedTurnoverPlayerId",
		"caused_turnover_team", "causedTurnoverTeam",
		"d_save", "dsave",
		"minutes", "minutes",
		"seconds", "seconds",
		"goalie_time", "goalieTime",
		"ga", "ga",
		"saves", "saves",
		"goalie_player_id", "goaliePlayerId",
		"shots_faced", "shotsFaced",
		"scoring_play", "scoringPlay",
	),
}
