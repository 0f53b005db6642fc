package scoring

const meanDurationTargetHours = 1.5

// EnduranceScore rates aerobic volume from weekly distance, the longest
// single activity and mean duration. Bucket boundaries are fixed constants,
// not baseline-relative.
func EnduranceScore(activities []Activity) DimensionScore {
	if len(activities) < MinActivityCount {
		return insufficientDimension()
	}

	weeklyKm := totalDistanceKm(activities) / weeksSpanned(activities)

	var longestKm float64
	var durationsHours []float64
	for _, a := range activities {
		if km := a.DistanceMeters / 1000; km > longestKm {
			longestKm = km
		}
		durationsHours = append(durationsHours, float64(a.MovingTimeSeconds)/3600)
	}
	meanHours := mean(durationsHours)

	components := []Component{
		{
			Name:   "weeklyDistance",
			Value:  weeklyKm,
			Points: weeklyDistancePoints(weeklyKm),
		},
		{
			Name:   "longestActivity",
			Value:  longestKm,
			Points: longestActivityPoints(longestKm),
		},
		{
			Name:   "meanDuration",
			Value:  meanHours,
			Points: capPoints(meanHours/meanDurationTargetHours*25, 25),
		},
	}

	trend := ClassifyTrendOf(activities, func(a Activity) float64 {
		return a.DistanceMeters
	})
	return assembleDimension(components, trend, enduranceSuggestion)
}

func weeklyDistancePoints(km float64) int {
	switch {
	case km >= 120:
		return 40
	case km >= 80:
		return 34
	case km >= 50:
		return 27
	case km >= 30:
		return 20
	case km >= 15:
		return 12
	default:
		return 6
	}
}

func longestActivityPoints(km float64) int {
	switch {
	case km >= 100:
		return 35
	case km >= 70:
		return 29
	case km >= 50:
		return 23
	case km >= 30:
		return 16
	case km >= 15:
		return 10
	default:
		return 5
	}
}

func enduranceSuggestion(score int) string {
	switch {
	case score < 60:
		return "gradually extend your longest weekly session to build endurance"
	case score < 80:
		return "good aerobic base, add one longer session per week to level up"
	default:
		return "strong endurance, maintain the volume and enjoy the long ones"
	}
}
