package scoring

// trendMinPoints is the minimum series length before a trend other than
// "stable" can be emitted: below it the two halves are not comparable.
const trendMinPoints = 6

// trendThresholdPct is the percentage change beyond which the trend stops
// being "stable".
const trendThresholdPct = 5.0

// ClassifyTrend compares the recent half of a series against the older
// half. The series must be ordered most-recent-first; values[:mid] is the
// recent half. Fewer than 6 points always yields TrendStable.
func ClassifyTrend(values []float64) Trend {
	if len(values) < trendMinPoints {
		return TrendStable
	}

	mid := len(values) / 2
	recentAvg := mean(values[:mid])
	olderAvg := mean(values[mid:])
	if olderAvg == 0 {
		return TrendStable
	}

	changePct := (recentAvg - olderAvg) / olderAvg * 100
	switch {
	case changePct > trendThresholdPct:
		return TrendImproving
	case changePct < -trendThresholdPct:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// ClassifyTrendOf classifies the trend of one activity metric, with
// activities ordered most-recent-first.
func ClassifyTrendOf(activities []Activity, metric func(Activity) float64) Trend {
	values := make([]float64, 0, len(activities))
	for _, a := range activities {
		values = append(values, metric(a))
	}
	return ClassifyTrend(values)
}
