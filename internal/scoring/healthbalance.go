package scoring

import "time"

// Each health-balance axis carries the same weight.
const healthAxisWeight = 0.2

const (
	intensityBandLowPct  = 15.0
	intensityBandHighPct = 35.0

	activeDaysTargetPerWeek = 5.0

	// efficiencyTargetMphPerBpm is a speed-per-heartbeat yardstick: riding
	// 16 mph at 140 bpm sits around 0.114.
	efficiencyTargetMphPerBpm = 0.114
)

// HealthBalanceScore assembles the full biometric composite over five
// equally weighted axes. Activities and biometrics are windowed to the
// trailing scoring window ending at now.
func HealthBalanceScore(activities []Activity, history []BiometricSample, now time.Time) CompositeScore {
	windowed := WindowForScoring(activities, now)

	axes := map[string]DimensionScore{
		AxisLoad:        loadAxis(windowed),
		AxisConsistency: ConsistencyScore(windowed),
		AxisEndurance:   EnduranceScore(windowed),
		AxisIntensity:   intensityAxis(windowed),
		AxisEfficiency:  efficiencyAxis(windowed, history),
	}

	var weighted float64
	for _, axis := range axes {
		weighted += healthAxisWeight * float64(axis.Score)
	}

	return CompositeScore{
		Overall:     clampScore(weighted),
		Dimensions:  axes,
		DataQuality: dataQualityFor(len(windowed)),
		GeneratedAt: now,
	}
}

// loadAxis rates overall workload from weekly hours, workload progression
// and how many days per week carry at least one activity.
func loadAxis(activities []Activity) DimensionScore {
	if len(activities) < MinActivityCount {
		return insufficientDimension()
	}

	weeklyHours := totalHours(activities) / weeksSpanned(activities)
	_, progressionPoints := workloadProgression(activities)
	activeDays := activeDaysPerWeek(activities)

	components := []Component{
		{
			Name:   "weeklyHours",
			Value:  weeklyHours,
			Points: weeklyHoursPoints(weeklyHours),
		},
		{
			Name:   "progression",
			Value:  0,
			Points: progressionPoints,
		},
		{
			Name:   "activeDays",
			Value:  activeDays,
			Points: capPoints(activeDays/activeDaysTargetPerWeek*35, 35),
		},
	}

	trend := ClassifyTrendOf(activities, func(a Activity) float64 {
		return float64(a.MovingTimeSeconds)
	})
	return assembleDimension(components, trend, loadSuggestion)
}

func activeDaysPerWeek(activities []Activity) float64 {
	days := make(map[string]bool)
	for _, a := range activities {
		days[a.StartDate.Format("2006-01-02")] = true
	}
	return float64(len(days)) / weeksSpanned(activities)
}

func loadSuggestion(score int) string {
	switch {
	case score < 60:
		return "spread shorter sessions over more days to lift your load safely"
	case score < 80:
		return "workload looks healthy, hold this rhythm"
	default:
		return "high sustainable load, just keep an eye on recovery"
	}
}

// intensityAxis rates effort distribution: the share of hard sessions
// should sit in a 15-35% band, complemented by mean and peak speed.
func intensityAxis(activities []Activity) DimensionScore {
	if len(activities) < MinActivityCount {
		return insufficientDimension()
	}

	var hardCount int
	var speeds []float64
	for _, a := range activities {
		if avgSpeedMph(a) >= hardRideMphThreshold {
			hardCount++
		}
		speeds = append(speeds, avgSpeedMph(a))
	}
	hardPct := float64(hardCount) / float64(len(activities)) * 100
	meanMph := mean(speeds)
	peak := peakSpeedMph(activities)

	components := []Component{
		{
			Name:   "hardShare",
			Value:  hardPct,
			Points: intensityBandPoints(hardPct),
		},
		{
			Name:   "meanSpeed",
			Value:  meanMph,
			Points: capPoints(meanMph/18*30, 30),
		},
		{
			Name:   "peakSpeed",
			Value:  peak,
			Points: capPoints(peak/peakSpeedTargetMph*30, 30),
		},
	}

	trend := ClassifyTrend(speeds)
	return assembleDimension(components, trend, intensitySuggestion)
}

func intensityBandPoints(hardPct float64) int {
	if hardPct >= intensityBandLowPct && hardPct <= intensityBandHighPct {
		return 40
	}

	var distance float64
	if hardPct < intensityBandLowPct {
		distance = intensityBandLowPct - hardPct
	} else {
		distance = hardPct - intensityBandHighPct
	}

	switch {
	case distance <= 10:
		return 28
	case distance <= 20:
		return 16
	default:
		return 8
	}
}

func intensitySuggestion(score int) string {
	switch {
	case score < 60:
		return "rebalance your week, most rides easy with one or two hard efforts"
	case score < 80:
		return "intensity mix is close, nudge the hard share toward the sweet spot"
	default:
		return "great intensity distribution, polarized and sustainable"
	}
}

// efficiencyAxis rates how much output the body produces per unit of
// strain: speed per heartbeat, HRV against its baseline and how regular
// sleep duration is.
func efficiencyAxis(activities []Activity, history []BiometricSample) DimensionScore {
	if len(activities) < MinActivityCount {
		return insufficientDimension()
	}

	mphPerBpm, hasHR := speedPerHeartbeat(activities)
	hrvPoints, hrvValue := hrvEfficiencyPoints(history)
	sleepEvenness := sleepConsistency(history)

	speedPerHRPoints := 20 // neutral when no heart rate data exists
	if hasHR {
		speedPerHRPoints = capPoints(mphPerBpm/efficiencyTargetMphPerBpm*40, 40)
	}

	components := []Component{
		{
			Name:   "speedPerHeartbeat",
			Value:  mphPerBpm,
			Points: speedPerHRPoints,
		},
		{
			Name:   "hrvVsBaseline",
			Value:  hrvValue,
			Points: hrvPoints,
		},
		{
			Name:   "sleepConsistency",
			Value:  sleepEvenness,
			Points: capPoints(sleepEvenness*30, 30),
		},
	}

	trend := ClassifyTrendOf(activities, avgSpeedMph)
	return assembleDimension(components, trend, efficiencySuggestion)
}

// speedPerHeartbeat averages mph/bpm over activities that carry heart rate.
func speedPerHeartbeat(activities []Activity) (float64, bool) {
	var ratios []float64
	for _, a := range activities {
		if a.AverageHeartRate == nil || *a.AverageHeartRate <= 0 {
			continue
		}
		ratios = append(ratios, avgSpeedMph(a) / *a.AverageHeartRate)
	}
	if len(ratios) == 0 {
		return 0, false
	}
	return mean(ratios), true
}

// hrvEfficiencyPoints compares the latest HRV reading to its rolling
// baseline. Missing baseline or reading yields neutral points.
func hrvEfficiencyPoints(history []BiometricSample) (points int, latestHRV float64) {
	baselines := CalculateBaselines(history)
	valid := ValidSamples(history)
	if baselines.HRV == nil || len(valid) == 0 {
		return 15, 0
	}

	latest := valid[0].HRV
	ratio := latest / *baselines.HRV
	return capPoints(ratio*30, 30), latest
}

// sleepConsistency is the inverse coefficient of variation of sleep
// duration, in [0,1].
func sleepConsistency(history []BiometricSample) float64 {
	var minutes []float64
	for _, s := range history {
		if s.SleepMinutes > 0 {
			minutes = append(minutes, float64(s.SleepMinutes))
		}
	}
	if len(minutes) < 2 {
		return 0
	}
	return 1 - min(coefficientOfVariation(minutes), 1)
}

func efficiencySuggestion(score int) string {
	switch {
	case score < 60:
		return "focus on sleep regularity and easy volume to improve efficiency"
	case score < 80:
		return "efficiency is building, more aerobic base will compound it"
	default:
		return "your body is converting effort into output very efficiently"
	}
}
