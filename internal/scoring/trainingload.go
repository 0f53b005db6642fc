package scoring

const (
	easyBandLowPct  = 70.0
	easyBandHighPct = 85.0

	// progression compares the most recent progressionSampleSize activities
	// against the prior progressionSampleSize by distance.
	progressionSampleSize     = 3
	progressionAggressivePct  = 15.0
	progressionDecreasingPct  = -15.0
	progressionSteadyLabel    = "steady"
	progressionAggLabel       = "too aggressive"
	progressionDecreasedLabel = "decreasing"
)

// TrainingLoadScore rates workload management from weekly hours, the
// easy/hard effort balance against a 70-85% easy target band and a
// workload progression label. Activities must be ordered most-recent-first.
func TrainingLoadScore(activities []Activity) DimensionScore {
	if len(activities) < MinActivityCount {
		return insufficientDimension()
	}

	weeklyHours := totalHours(activities) / weeksSpanned(activities)

	var easyCount int
	for _, a := range activities {
		if avgSpeedMph(a) < hardRideMphThreshold {
			easyCount++
		}
	}
	easyPct := float64(easyCount) / float64(len(activities)) * 100

	label, progressionPoints := workloadProgression(activities)

	components := []Component{
		{
			Name:   "weeklyHours",
			Value:  weeklyHours,
			Points: weeklyHoursPoints(weeklyHours),
		},
		{
			Name:   "easyHardBalance",
			Value:  easyPct,
			Points: easyBalancePoints(easyPct),
		},
		{
			Name:   "progression",
			Value:  0,
			Points: progressionPoints,
		},
	}

	trend := ClassifyTrendOf(activities, func(a Activity) float64 {
		return float64(a.MovingTimeSeconds)
	})

	dim := assembleDimension(components, trend, func(score int) string {
		return trainingLoadSuggestion(score, label)
	})
	return dim
}

// workloadProgression labels the distance change of the most recent three
// activities against the prior three. Flat points per label, no scaling.
func workloadProgression(activities []Activity) (string, int) {
	if len(activities) < 2*progressionSampleSize {
		return progressionSteadyLabel, 30
	}

	var recent, prior float64
	for i := 0; i < progressionSampleSize; i++ {
		recent += activities[i].DistanceMeters
		prior += activities[progressionSampleSize+i].DistanceMeters
	}
	if prior == 0 {
		return progressionSteadyLabel, 30
	}

	changePct := (recent - prior) / prior * 100
	switch {
	case changePct > progressionAggressivePct:
		return progressionAggLabel, 15
	case changePct < progressionDecreasingPct:
		return progressionDecreasedLabel, 20
	default:
		return progressionSteadyLabel, 30
	}
}

func weeklyHoursPoints(hours float64) int {
	switch {
	case hours >= 10:
		return 35
	case hours >= 7:
		return 30
	case hours >= 5:
		return 24
	case hours >= 3:
		return 16
	case hours >= 1.5:
		return 10
	default:
		return 5
	}
}

func easyBalancePoints(easyPct float64) int {
	if easyPct >= easyBandLowPct && easyPct <= easyBandHighPct {
		return 35
	}

	var distance float64
	if easyPct < easyBandLowPct {
		distance = easyBandLowPct - easyPct
	} else {
		distance = easyPct - easyBandHighPct
	}

	switch {
	case distance <= 10:
		return 24
	case distance <= 20:
		return 14
	default:
		return 7
	}
}

func trainingLoadSuggestion(score int, progressionLabel string) string {
	if progressionLabel == progressionAggLabel {
		return "workload is ramping up fast, back off before fatigue catches up"
	}
	switch {
	case score < 60:
		return "build volume gradually and keep most sessions easy"
	case score < 80:
		return "load is manageable, watch the easy/hard balance"
	default:
		return "well balanced training load, keep the steady progression"
	}
}
