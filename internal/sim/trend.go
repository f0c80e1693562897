package sim

type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"

	trendWindow    = 5
	trendThreshold = 1.0 // percent
)

// Trend compares the first and last value of an indicator over the most
// recent entries of history. A window starting at zero has no defined
// percentage change and reports ErrZeroReference.
func Trend(history []HistoryEntry, ind Indicator) (TrendDirection, error) {
	if len(history) < 2 {
		return TrendStable, nil
	}
	window := history[max(0, len(history)-trendWindow):]
	first := window[0].Indicators.Value(ind)
	last := window[len(window)-1].Indicators.Value(ind)
	if first == 0 {
		return TrendStable, &DomainError{Op: "trend " + ind.String(), Err: ErrZeroReference}
	}
	change := (last - first) / first * 100
	switch {
	case change > trendThreshold:
		return TrendUp, nil
	case change < -trendThreshold:
		return TrendDown, nil
	default:
		return TrendStable, nil
	}
}

// ChangeFromBaseline returns the percentage change of current relative to
// baseline, rounded to one decimal.
func ChangeFromBaseline(current, baseline float64) (float64, error) {
	if baseline == 0 {
		return 0, &DomainError{Op: "change from baseline", Err: ErrZeroBaseline}
	}
	return roundTo((current-baseline)/baseline*100, 1), nil
}

type Assessment string

const (
	Improving Assessment = "improving"
	Worsening Assessment = "worsening"
	Unchanged Assessment = "unchanged"
	// Neutral marks movement in an indicator with no good direction.
	Neutral Assessment = "neutral"
)

// Assess judges a trend against the indicator's good direction.
func Assess(ind Indicator, trend TrendDirection) Assessment {
	good := IndicatorInfo(ind).Good
	if trend == TrendStable {
		return Unchanged
	}
	if good == GoodNeutral {
		return Neutral
	}
	if string(trend) == string(good) {
		return Improving
	}
	return Worsening
}
