package scoring

const (
	// hardRideMphThreshold marks an activity as a hard effort by average
	// speed alone, since power meters are not assumed.
	hardRideMphThreshold = 17.0

	peakSpeedTargetMph    = 22.0
	elevationTargetMeters = 500.0
)

// PowerScore rates hard-effort capability from the share of hard rides,
// climbing volume and peak average speed. Activities must be ordered
// most-recent-first.
func PowerScore(activities []Activity) DimensionScore {
	if len(activities) < MinActivityCount {
		return insufficientDimension()
	}

	var hardCount int
	var elevations []float64
	for _, a := range activities {
		if avgSpeedMph(a) >= hardRideMphThreshold {
			hardCount++
		}
		elevations = append(elevations, a.ElevationGainMeters)
	}

	hardPct := float64(hardCount) / float64(len(activities)) * 100
	meanElevation := mean(elevations)
	peak := peakSpeedMph(activities)

	components := []Component{
		{
			Name:   "hardRides",
			Value:  hardPct,
			Points: capPoints(hardPct/100*40, 40),
		},
		{
			Name:   "elevationGain",
			Value:  meanElevation,
			Points: capPoints(meanElevation/elevationTargetMeters*30, 30),
		},
		{
			Name:   "peakSpeed",
			Value:  peak,
			Points: capPoints(peak/peakSpeedTargetMph*30, 30),
		},
	}

	trend := ClassifyTrendOf(activities, avgSpeedMph)
	return assembleDimension(components, trend, powerSuggestion)
}

func powerSuggestion(score int) string {
	switch {
	case score < 60:
		return "add interval sessions or hill repeats to build top-end power"
	case score < 80:
		return "solid power base, mix in a weekly hard effort to push it further"
	default:
		return "excellent power output, keep the hard sessions coming"
	}
}
