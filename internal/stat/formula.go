package stat

// Derived metrics. Every function rounds to three places and returns null
// when its guard fails; none of them can yield NaN or an infinity.

// BattingAverage is H/AB.
func BattingAverage(h, ab float64) Value {
	if ab < 1 {
		return Null
	}
	return Ratio(h, ab)
}

// OnBasePct is (H+BB+HBP)/(AB+BB+HBP+SF).
func OnBasePct(h, bb, hbp, ab, sf float64) Value {
	if ab <= 0 {
		return Null
	}
	return Ratio(h+bb+hbp, ab+bb+hbp+sf)
}

// Slugging is TB/AB.
func Slugging(tb, ab float64) Value {
	if ab <= 0 {
		return Null
	}
	return Ratio(tb, ab)
}

// OPS adds the already rounded on-base and slugging percentages.
func OPS(obp, slg Value) Value {
	o, ok1 := obp.Float64()
	s, ok2 := slg.Float64()
	if !ok1 || !ok2 {
		return Null
	}
	return Of(Round3(o + s))
}

// IsolatedPower is (TB-H)/AB.
func IsolatedPower(tb, h, ab float64) Value {
	if ab <= 0 {
		return Null
	}
	return Ratio(tb-h, ab)
}

// BABIP is (H+HR)/(AB-K-HR+SF). Home runs are added in the numerator, not
// subtracted.
func BABIP(h, hr, ab, k, sf float64) Value {
	if ab <= 0 {
		return Null
	}
	return Ratio(h+hr, ab-k-hr+sf)
}

// SecondaryAverage is (BB+(TB-H)+(SB-CS))/AB.
func SecondaryAverage(bb, tb, h, sb, cs, ab float64) Value {
	if ab <= 0 {
		return Null
	}
	return Ratio(bb+(tb-h)+(sb-cs), ab)
}

// PlateAppearances is AB+BB+HBP+SF+SH.
func PlateAppearances(ab, bb, hbp, sf, sh float64) Value {
	return Of(ab + bb + hbp + sf + sh)
}

// PerPA is stat/PA, used for walk and strikeout rates.
func PerPA(stat, pa float64) Value {
	return Ratio(stat, pa)
}

// PowerSpeed computes 2*HR*SB/(HR*SB), which is 2 whenever both are non-zero
// and undefined otherwise. It is only evaluated when HR or SB is non-zero.
func PowerSpeed(hr, sb float64) Value {
	if hr == 0 && sb == 0 {
		return Null
	}
	return Ratio(2*hr*sb, hr*sb)
}

// PerNine scales a stat to nine innings: ERA, H9, HR9, BB9, SO9, RA9.
func PerNine(stat float64, ip Value) Value {
	innings, ok := ip.Float64()
	if !ok || innings <= 0 {
		return Null
	}
	return Ratio(9*stat, innings)
}

// WHIP is (BB+H)/IP.
func WHIP(bb, h float64, ip Value) Value {
	innings, ok := ip.Float64()
	if !ok || innings <= 0 {
		return Null
	}
	return Ratio(bb+h, innings)
}

// PitcherGameScore is 50 + 3*IP + SO - 2*H - 4*ER - 2*(R-ER) - BB.
func PitcherGameScore(ip Value, so, h, er, r, bb float64) Value {
	innings, ok := ip.Float64()
	if !ok {
		return Null
	}
	return Of(Round3(50 + innings*3 + so - h*2 - er*4 - (r-er)*2 - bb))
}

// QualityStart is 1 for a start of at least six innings with three or fewer
// earned runs, else 0.
func QualityStart(ip Value, gs, er float64) Value {
	innings, ok := ip.Float64()
	if ok && innings >= 6 && gs == 1 && er <= 3 {
		return OfInt(1)
	}
	return OfInt(0)
}

// FieldingPct is (PO+A)/(PO+A+E).
func FieldingPct(po, a, e float64) Value {
	return Ratio(po+a, po+a+e)
}

// RangeFactor9 is 9*(PO+A)/IP.
func RangeFactor9(po, a float64, ip Value) Value {
	return PerNine(po+a, ip)
}

// Pct is made/attempted for shooting splits.
func Pct(made, attempted float64) Value {
	return Ratio(made, attempted)
}

// EffectiveFG is (FGM+0.5*3PM)/FGA.
func EffectiveFG(fgm, fg3m, fga float64) Value {
	return Ratio(fgm+0.5*fg3m, fga)
}

// TrueShooting is PTS/(2*(FGA+0.44*FTA)).
func TrueShooting(pts, fga, fta float64) Value {
	return Ratio(pts, 2*(fga+0.44*fta))
}

// BoxScore holds the counts used by BasketballGameScore.
type BoxScore struct {
	PTS, FGM, FGA, FTM, FTA, ORB, DRB, STL, AST, BLK, PF, TOV float64
}

// BasketballGameScore is the AU variant of Hollinger's game score. The block
// term is the product (0.7*BLK)*(0.7*FGA), not a sum.
func BasketballGameScore(b BoxScore) Value {
	return Of(Round3(b.PTS + 0.4*b.FGM + 0.7*b.ORB + 0.3*b.DRB + b.STL + 0.7*b.AST +
		(0.7*b.BLK)*(0.7*b.FGA) - 0.4*(b.FTA-b.FTM) - 0.4*b.PF - b.TOV))
}

// Placeholder is the value of metrics that need cross-season baselines
// (OPS+, ERA+, FIP, FIP-). It is always null.
func Placeholder(Line) Value { return Null }
