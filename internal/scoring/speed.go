package scoring

// SpeedScore rates pace from the mean average speed, a midpoint-split
// improvement over the window and the peak average speed. Activities must
// be ordered most-recent-first.
func SpeedScore(activities []Activity) DimensionScore {
	if len(activities) < MinActivityCount {
		return insufficientDimension()
	}

	var speeds []float64
	for _, a := range activities {
		speeds = append(speeds, avgSpeedMph(a))
	}

	meanMph := mean(speeds)
	improvementPct := speedImprovementPct(speeds)
	peak := peakSpeedMph(activities)

	components := []Component{
		{
			Name:   "meanSpeed",
			Value:  meanMph,
			Points: meanSpeedPoints(meanMph),
		},
		{
			Name:   "improvement",
			Value:  improvementPct,
			Points: improvementPoints(improvementPct),
		},
		{
			Name:   "peakSpeed",
			Value:  peak,
			Points: peakSpeedPoints(peak),
		},
	}

	trend := ClassifyTrend(speeds)
	return assembleDimension(components, trend, speedSuggestion)
}

// speedImprovementPct compares the recent half of the window against the
// older half, most-recent-first.
func speedImprovementPct(speeds []float64) float64 {
	if len(speeds) < 2 {
		return 0
	}

	mid := len(speeds) / 2
	recentAvg := mean(speeds[:mid])
	olderAvg := mean(speeds[mid:])
	if olderAvg == 0 {
		return 0
	}
	return (recentAvg - olderAvg) / olderAvg * 100
}

func meanSpeedPoints(mph float64) int {
	switch {
	case mph >= 18:
		return 40
	case mph >= 16:
		return 33
	case mph >= 14:
		return 26
	case mph >= 12:
		return 18
	case mph >= 10:
		return 10
	default:
		return 5
	}
}

func improvementPoints(pct float64) int {
	switch {
	case pct >= 10:
		return 30
	case pct >= 5:
		return 25
	case pct >= 0:
		return 20
	case pct >= -5:
		return 12
	default:
		return 5
	}
}

func peakSpeedPoints(mph float64) int {
	switch {
	case mph >= 22:
		return 30
	case mph >= 19:
		return 24
	case mph >= 17:
		return 18
	case mph >= 15:
		return 12
	default:
		return 6
	}
}

func speedSuggestion(score int) string {
	switch {
	case score < 60:
		return "sprinkle in short tempo blocks to lift your average speed"
	case score < 80:
		return "speed is trending well, add a weekly tempo session to sharpen it"
	default:
		return "fast and getting faster, keep rotating tempo and recovery days"
	}
}
