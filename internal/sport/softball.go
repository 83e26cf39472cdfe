package sport

import (
	"github.com/albapepper/austats/internal/pbp"
	"github.com/albapepper/austats/internal/stat"
)

func softballStats(league string) *stat.Schema {
	return &stat.Schema{
		League:    league,
		Sport:     "softball",
		StatTypes: []string{"batting", "pitching", "fielding"},
		Groups: []stat.Group{
			{
				Name:   "batting",
				Source: "battingStats",
				Games:  "gamesPlayed",
				Starts: "gamesStarted",
				Fields: []stat.Field{
					count("batting_ab", "atBat"),
					count("batting_r", "runs"),
					count("batting_h", "hits"),
					count("batting_2b", "doubles"),
					count("batting_3b", "triples"),
					count("batting_hr", "homeRuns"),
					count("batting_rbi", "runsBattedIn"),
					count("batting_bb", "baseonBalls"),
					count("batting_hbp", "hitByPitch"),
					count("batting_k", "strikeOuts"),
					count("batting_sb", "stolenBases"),
					count("batting_sba", "stolenBasesAttempts"),
					count("batting_cs", "caughtStealing"),
					count("batting_tb", "totalBases"),
					count("batting_sf", "sacrificeFly"),
					count("batting_sh", "sacrificeHit"),
					count("batting_au_points", "auTotalPoints"),
				},
			},
			{
				Name:   "pitching",
				Source: "pitchingStats",
				Games:  "appearances",
				Starts: "gamesStarted",
				Fields: []stat.Field{
					count("pitching_gs", "gamesStarted"),
					count("pitching_w", "wins"),
					count("pitching_l", "losses"),
					count("pitching_sho", "shutout"),
					count("pitching_cg", "completeGames"),
					count("pitching_sv", "saves"),
					innings("pitching_ip", "inningsPitched", "pitching_ip_str"),
					count("pitching_h", "hits"),
					count("pitching_r", "runs"),
					count("pitching_er", "earnedRuns"),
					count("pitching_hr", "homeRuns"),
					count("pitching_bb", "baseOnBalls"),
					count("pitching_so", "strikeOuts"),
					count("pitching_hbp", "hitByPitch"),
					count("pitching_wp", "wildPitch"),
					count("pitching_pi", "numberOfPitches"),
					count("pitching_pi_balls", "balls"),
					count("pitching_pi_strikes", "strikes"),
					count("pitching_au_points", "auTotalPoints"),
				},
			},
			{
				Name:   "fielding",
				Source: "fieldingStats",
				Games:  "gamesPlayed",
				Fields: []stat.Field{
					{Column: "fielding_pos", Source: "position", Kind: stat.KindText},
					innings("fielding_ip", "inningsPlayed", "fielding_ip_str"),
					count("fielding_po", "putOuts"),
					count("fielding_a", "assists"),
					count("fielding_e", "errors"),
					count("fielding_dp", "doublePlays"),
					count("fielding_cs", "caughtStealing"),
					{Column: "fielding_cs_pct", Source: "caughtStealingPercentage", Kind: stat.KindVendorRate},
					count("fielding_tc", "totalChances"),
				},
			},
		},
		Metrics: append(append(battingMetrics(), pitchingMetrics()...), fieldingMetrics()...),
	}
}

func battingMetrics() []stat.Metric {
	pa := func(l stat.Line) float64 {
		return l.N("batting_ab") + l.N("batting_bb") + l.N("batting_hbp") + l.N("batting_sf") + l.N("batting_sh")
	}
	obp := func(l stat.Line) stat.Value {
		return stat.OnBasePct(l.N("batting_h"), l.N("batting_bb"), l.N("batting_hbp"), l.N("batting_ab"), l.N("batting_sf"))
	}
	slg := func(l stat.Line) stat.Value {
		return stat.Slugging(l.N("batting_tb"), l.N("batting_ab"))
	}
	return []stat.Metric{
		derivedCount("batting_pa", "batting", func(l stat.Line) stat.Value { return stat.Of(pa(l)) }),
		rate("batting_ba", "batting", func(l stat.Line) stat.Value {
			return stat.BattingAverage(l.N("batting_h"), l.N("batting_ab"))
		}),
		rate("batting_obp", "batting", obp),
		rate("batting_slg", "batting", slg),
		rate("batting_ops", "batting", func(l stat.Line) stat.Value { return stat.OPS(obp(l), slg(l)) }),
		rate("batting_ops_plus", "batting", stat.Placeholder),
		rate("batting_seca", "batting", func(l stat.Line) stat.Value {
			return stat.SecondaryAverage(l.N("batting_bb"), l.N("batting_tb"), l.N("batting_h"),
				l.N("batting_sb"), l.N("batting_cs"), l.N("batting_ab"))
		}),
		rate("batting_bb_pct", "batting", func(l stat.Line) stat.Value { return stat.PerPA(l.N("batting_bb"), pa(l)) }),
		rate("batting_k_pct", "batting", func(l stat.Line) stat.Value { return stat.PerPA(l.N("batting_k"), pa(l)) }),
		rate("batting_iso", "batting", func(l stat.Line) stat.Value {
			return stat.IsolatedPower(l.N("batting_tb"), l.N("batting_h"), l.N("batting_ab"))
		}),
		rate("batting_babip", "batting", func(l stat.Line) stat.Value {
			return stat.BABIP(l.N("batting_h"), l.N("batting_hr"), l.N("batting_ab"), l.N("batting_k"), l.N("batting_sf"))
		}),
		rate("batting_psn", "batting", func(l stat.Line) stat.Value {
			return stat.PowerSpeed(l.N("batting_hr"), l.N("batting_sb"))
		}),
	}
}

func pitchingMetrics() []stat.Metric {
	ip := func(l stat.Line) stat.Value { return l.Get("pitching_ip") }
	perNine := func(col, src string) stat.Metric {
		return rate(col, "pitching", func(l stat.Line) stat.Value { return stat.PerNine(l.N(src), ip(l)) })
	}
	return []stat.Metric{
		{
			Column:  "pitching_qs",
			Group:   "pitching",
			Kind:    stat.KindCount,
			PerGame: true,
			Compute: func(l stat.Line) stat.Value {
				return stat.QualityStart(ip(l), l.N("pitching_gs"), l.N("pitching_er"))
			},
		},
		perNine("pitching_era", "pitching_er"),
		rate("pitching_era_plus", "pitching", stat.Placeholder),
		rate("pitching_fip", "pitching", stat.Placeholder),
		rate("pitching_fip_minus", "pitching", stat.Placeholder),
		rate("pitching_whip", "pitching", func(l stat.Line) stat.Value {
			return stat.WHIP(l.N("pitching_bb"), l.N("pitching_h"), ip(l))
		}),
		perNine("pitching_h9", "pitching_h"),
		perNine("pitching_hr9", "pitching_hr"),
		perNine("pitching_bb9", "pitching_bb"),
		perNine("pitching_so9", "pitching_so"),
		rate("pitching_so_bb", "pitching", func(l stat.Line) stat.Value {
			return stat.Ratio(l.N("pitching_so"), l.N("pitching_bb"))
		}),
		perNine("pitching_ra9", "pitching_r"),
		{
			Column:   "pitching_game_score",
			Group:    "pitching",
			Kind:     stat.KindRate,
			GameOnly: true,
			Compute: func(l stat.Line) stat.Value {
				return stat.PitcherGameScore(ip(l), l.N("pitching_so"), l.N("pitching_h"),
					l.N("pitching_er"), l.N("pitching_r"), l.N("pitching_bb"))
			},
		},
	}
}

func fieldingMetrics() []stat.Metric {
	return []stat.Metric{
		derivedCount("fielding_ch", "fielding", func(l stat.Line) stat.Value {
			return stat.Of(l.N("fielding_po") + l.N("fielding_a") + l.N("fielding_e"))
		}),
		rate("fielding_fld_pct", "fielding", func(l stat.Line) stat.Value {
			return stat.FieldingPct(l.N("fielding_po"), l.N("fielding_a"), l.N("fielding_e"))
		}),
		rate("fielding_rf9", "fielding", func(l stat.Line) stat.Value {
			return stat.RangeFactor9(l.N("fielding_po"), l.N("fielding_a"), l.Get("fielding_ip"))
		}),
	}
}

var softballPlays = pbp.Schema{
	Sport: "softball",
	Fields: fields(
		"game_number", "gameNumber",
		"narrative", "narrative",
		"home_team_id", "homeTeamId",
		"home_team_score", "homeTeamScore",
		"away_team_id", "awayTeamId",
		"away_team_score", "awayTeamScore",
		"offensive_team_id", "offensiveTeamId",
		"offensive_team_score", "offensiveTeamScore",
		"defensive_team_id", "defensiveTeamId",
		"defensive_team_score", "defensiveTeamScore",
		"inning", "inning",
		"top_bottom_flag", "topBottomFlg",
		"outs", "outs",
		"winning_team_id", "winningTeamId",
		"action", "action",
		"hit_location", "hitLocation",
		"hit_location_description", "hitLocationDescription",
		"batter_id", "batterId",
		"pitcher_id", "pitcherId",
	),
}
