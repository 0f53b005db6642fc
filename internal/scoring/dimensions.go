package scoring

// MinActivityCount gates every dimension scorer: with fewer activities the
// scorer returns a zero score with a neutral trend instead of guessing.
const MinActivityCount = 3

const needMoreDataSuggestion = "log a few more activities to unlock this score"

func insufficientDimension() DimensionScore {
	return DimensionScore{
		Score:      0,
		Trend:      TrendStable,
		Suggestion: needMoreDataSuggestion,
	}
}

// weeksSpanned estimates how many weeks the activity list covers, never
// below one so per-week rates stay defined. Activities must be ordered
// most-recent-first.
func weeksSpanned(activities []Activity) float64 {
	if len(activities) == 0 {
		return 1
	}

	newest := activities[0].StartDate
	oldest := activities[len(activities)-1].StartDate
	days := newest.Sub(oldest).Hours()/24 + 1
	weeks := days / 7
	if weeks < 1 {
		return 1
	}
	return weeks
}

func avgSpeedMph(a Activity) float64 {
	return a.AverageSpeedMps * metersPerSecondToMph
}

func peakSpeedMph(activities []Activity) float64 {
	var peak float64
	for _, a := range activities {
		if mph := avgSpeedMph(a); mph > peak {
			peak = mph
		}
	}
	return peak
}

func totalDistanceKm(activities []Activity) float64 {
	var meters float64
	for _, a := range activities {
		meters += a.DistanceMeters
	}
	return meters / 1000
}

func totalHours(activities []Activity) float64 {
	var seconds int
	for _, a := range activities {
		seconds += a.MovingTimeSeconds
	}
	return float64(seconds) / 3600
}

// invertTrend flips improving and declining, for metrics where smaller is
// better (e.g. days between activities).
func invertTrend(t Trend) Trend {
	switch t {
	case TrendImproving:
		return TrendDeclining
	case TrendDeclining:
		return TrendImproving
	default:
		return TrendStable
	}
}

func assembleDimension(components []Component, trend Trend, suggest func(int) string) DimensionScore {
	var total int
	for _, c := range components {
		total += c.Points
	}
	score := clampScore(float64(total))

	return DimensionScore{
		Score:      score,
		Components: components,
		Trend:      trend,
		Suggestion: suggest(score),
	}
}
