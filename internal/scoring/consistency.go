package scoring

const maxGapDays = 3.0

// ConsistencyScore rates training regularity from weekly frequency, how
// evenly distance is distributed, and how short the gaps between sessions
// stay. Activities must be ordered most-recent-first.
func ConsistencyScore(activities []Activity) DimensionScore {
	if len(activities) < MinActivityCount {
		return insufficientDimension()
	}

	frequency := float64(len(activities)) / weeksSpanned(activities)

	var distances []float64
	for _, a := range activities {
		distances = append(distances, a.DistanceMeters)
	}
	cov := coefficientOfVariation(distances)
	evenness := 1 - min(cov, 1)

	gaps := interActivityGapDays(activities)
	var withinGap int
	for _, g := range gaps {
		if g <= maxGapDays {
			withinGap++
		}
	}
	gapPct := 0.0
	if len(gaps) > 0 {
		gapPct = float64(withinGap) / float64(len(gaps)) * 100
	}

	components := []Component{
		{
			Name:   "weeklyFrequency",
			Value:  frequency,
			Points: frequencyPoints(frequency),
		},
		{
			Name:   "distanceEvenness",
			Value:  evenness,
			Points: capPoints(evenness*35, 35),
		},
		{
			Name:   "shortGaps",
			Value:  gapPct,
			Points: capPoints(gapPct/100*25, 25),
		},
	}

	// shrinking gaps mean improving consistency, so the raw gap trend
	// is inverted
	trend := invertTrend(ClassifyTrend(gaps))
	return assembleDimension(components, trend, consistencySuggestion)
}

// interActivityGapDays returns the day gaps between consecutive activities,
// most-recent-first.
func interActivityGapDays(activities []Activity) []float64 {
	var gaps []float64
	for i := 0; i < len(activities)-1; i++ {
		gap := activities[i].StartDate.Sub(activities[i+1].StartDate).Hours() / 24
		gaps = append(gaps, gap)
	}
	return gaps
}

func frequencyPoints(perWeek float64) int {
	switch {
	case perWeek >= 3 && perWeek <= 5:
		return 40
	case perWeek >= 2:
		// slightly under or over the ideal 3-5 band
		return 30
	case perWeek >= 1:
		return 20
	default:
		return 10
	}
}

func consistencySuggestion(score int) string {
	switch {
	case score < 60:
		return "aim for a fixed weekly rhythm, even short sessions count"
	case score < 80:
		return "decent routine, tighten the gaps between sessions"
	default:
		return "very consistent training, your routine is paying off"
	}
}
