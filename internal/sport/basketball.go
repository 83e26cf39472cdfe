package sport

import (
	"github.com/albapepper/austats/internal/pbp"
	"github.com/albapepper/austats/internal/stat"
)

var basketballStats = &stat.Schema{
	League:    Basketball,
	Sport:     "basketball",
	StatTypes: []string{"basketball"},
	Groups: []stat.Group{{
		Name:   "stats",
		Source: "stats",
		Games:  "gamesPlayed",
		Fields: []stat.Field{
			measure("min", "minutesPlayed"),
			count("fgm", "fieldGoalsMade"),
			count("fga", "fieldGoalsAttempted"),
			count("fg3m", "made3Pointers"),
			count("fg3a", "attempted3Pointers"),
			count("fg2m", "made2Pointers"),
			count("fg2_missed", "missed2Pointers"),
			count("ftm", "madeFreeThrows"),
			count("fta", "freeThrowsAttempted"),
			count("orb", "offensiveRebounds"),
			count("drb", "defensiveRebounds"),
			count("trb", "rebounds"),
			count("ast", "assists"),
			count("stl", "steals"),
			count("blk", "blocks"),
			count("tov", "turnovers"),
			count("pts", "points"),
			count("au_points", "auTotalPoints"),
			count("shooting_fouls_committed", "shootingFoulsCommitted"),
			count("shooting_fouls_drawn", "shootingFoulsDrawn"),
			count("personal_fouls_committed", "personalFoulsCommitted"),
			count("personal_fouls_drawn", "personalFoulsDrawn"),
			count("offensive_fouls_committed", "offensiveFoulsCommitted"),
			count("offensive_fouls_drawn", "offensiveFoulsDrawn"),
			count("double_doubles", "doubleDoubles"),
			count("triple_doubles", "tripleDoubles"),
		},
	}},
	Metrics: []stat.Metric{
		derivedCount("fg2a", "stats", func(l stat.Line) stat.Value {
			return stat.Of(l.N("fg2m") + l.N("fg2_missed"))
		}),
		pct("fg_pct", "stats", "fgm", "fga"),
		pct("fg3_pct", "stats", "fg3m", "fg3a"),
		rate("fg2_pct", "stats", func(l stat.Line) stat.Value {
			return stat.Pct(l.N("fg2m"), l.N("fg2m")+l.N("fg2_missed"))
		}),
		pct("ft_pct", "stats", "ftm", "fta"),
		rate("efg_pct", "stats", func(l stat.Line) stat.Value {
			return stat.EffectiveFG(l.N("fgm"), l.N("fg3m"), l.N("fga"))
		}),
		rate("ts_pct", "stats", func(l stat.Line) stat.Value {
			return stat.TrueShooting(l.N("pts"), l.N("fga"), l.N("fta"))
		}),
		rate("game_score", "stats", func(l stat.Line) stat.Value {
			return stat.BasketballGameScore(stat.BoxScore{
				PTS: l.N("pts"), FGM: l.N("fgm"), FGA: l.N("fga"),
				FTM: l.N("ftm"), FTA: l.N("fta"),
				ORB: l.N("orb"), DRB: l.N("drb"),
				STL: l.N("stl"), AST: l.N("ast"), BLK: l.N("blk"),
				PF: l.N("personal_fouls_committed"), TOV: l.N("tov"),
			})
		}),
	},
}

var basketballPlays = pbp.Schema{
	Sport: "basketball",
	Fields: fields(
		"game_number", "gameNumber",
		"narrative", "narrative",
		"home_team_id", "homeTeamId",
		"home_team_score", "homeTeamScore",
		"away_team_id", "awayTeamId",
		"away_team_score", "awayTeamScore",
		"is_a_play", "isAPlay",
		"generates_point_audit_flag", "generatesPointAuditFlg",
		"has_error", "hasError",
		"player_id", "playerId",
		"team_id", "teamId",
		"action", "action",
		"type", "type",
		"quarter", "quarter",
		"clock", "clock",
		"assist", "assist",
		"steal", "steal",
		"block", "block",
		"turnover", "turnover",
		"jumper", "jumper",
		"dunk", "dunk",
		"tip_in", "tipIn",
		"timeout", "timeout",
		"in_the_paint", "inThePaint",
		"on_fast_break", "onFastBreak",
		"missed_three_pointer", "missedThreePointer",
		"made_three_pointer", "madeThreePointer",
		"missed_two_pointer", "missedTwoPointer",
		"made_two_pointer", "madeTwoPointer",
		"missed_free_throw", "missedFreeThrow",
		"made_free_throw", "madeFreeThrow",
		"offensive_rebound", "offensiveRebound",
		"defensive_rebound", "defensiveRebound",
		"shooting_foul_committed", "shootingFoulCommitted",
		"shooting_foul_drawn", "shootingFoulDrawn",
		"shooting_foul_drawn_by_player_id", "shootingFoulDrawnByPlayerId",
		"personal_foul_committed", "personalFoulCommitted",
		"personal_foul_drawn", "personalFoulDrawn",
		"personal_foul_drawn_by_player_id", "personalFoulDrawnByPlayerId",
		"offensive_foul_committed", "offensiveFoulCommitted",
		"offensive_foul_drawn", "offensiveFoulDrawn",
		"offensive_foul_drawn_by_player_id", "offensiveFoulDrawnByPlayerId",
		"other_foul_committed", "otherFoulCommitted",
		"other_foul_drawn", "otherFoulDrawn",
		"other_foul_drawn_by_player_id", "otherFoulDrawnByPlayerId",
		"scoring_play", "scoringPlay",
	),
}
