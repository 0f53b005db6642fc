package scoring

import "fmt"

const (
	hrvWeight   = 0.5
	rhrWeight   = 0.3
	sleepWeight = 0.2

	// sleepTargetMinutes is an absolute 7.5h target, not baseline-relative.
	sleepTargetMinutes = 450.0

	// deviationDecayFactor makes a 10% drop below baseline cost 20 points.
	// Heuristic constant, kept as-is for score stability across releases.
	deviationDecayFactor = 200.0

	// illnessPenaltyPoints is subtracted flat when the respiratory rate
	// runs more than respRateIllnessDelta above its baseline.
	illnessPenaltyPoints = 20.0
	respRateIllnessDelta = 2.0

	// NeutralRecoveryScore is returned when history is too short for
	// baselines (cold start).
	NeutralRecoveryScore = 50
)

// RecoveryResult carries the recovery score with its sub-component
// breakdown, so callers can explain how the number came to be.
type RecoveryResult struct {
	Score       int     `json:"score"`
	ColdStart   bool    `json:"coldStart"`
	HRVScore    float64 `json:"hrvScore"`
	RHRScore    float64 `json:"rhrScore"`
	SleepScore  float64 `json:"sleepScore"`
	IllnessFlag bool    `json:"illnessFlag"`
	Explanation string  `json:"explanation"`
}

// RecoveryScore computes the daily 0-100 recovery score from the current
// day's biometrics and the trailing history window. Pure and total: any
// input yields a score, insufficient history yields the neutral 50.
func RecoveryScore(current CurrentBiometrics, history []BiometricSample) int {
	return RecoveryDetails(current, history).Score
}

// RecoveryDetails is RecoveryScore with the full component breakdown.
func RecoveryDetails(current CurrentBiometrics, history []BiometricSample) RecoveryResult {
	valid := ValidSamples(history)
	if len(valid) < MinBaselineSamples {
		return RecoveryResult{
			Score:       NeutralRecoveryScore,
			ColdStart:   true,
			Explanation: "not enough history to compute personal baselines yet, showing a neutral score",
		}
	}

	baselines := CalculateBaselines(history)

	// higher HRV than baseline is good, drops decay fast
	hrvScore := 100.0
	if baselines.HRV != nil && current.HRV < *baselines.HRV {
		drop := (*baselines.HRV - current.HRV) / *baselines.HRV
		hrvScore = max(0, 100-drop*deviationDecayFactor)
	}

	// lower resting HR than baseline is good
	rhrScore := 100.0
	if baselines.RestingHR != nil && float64(current.RestingHR) > *baselines.RestingHR {
		rise := (float64(current.RestingHR) - *baselines.RestingHR) / *baselines.RestingHR
		rhrScore = max(0, 100-rise*deviationDecayFactor)
	}

	sleepScore := min(100, float64(current.SleepMinutes)/sleepTargetMinutes*100)

	weightedSum := hrvWeight*hrvScore + rhrWeight*rhrScore + sleepWeight*sleepScore

	// elevated respiratory rate is a possible illness signal; the boundary
	// at baseline+2 is exclusive
	illness := false
	if current.RespiratoryRate != nil && baselines.RespiratoryRate != nil &&
		*current.RespiratoryRate > *baselines.RespiratoryRate+respRateIllnessDelta {
		weightedSum -= illnessPenaltyPoints
		illness = true
	}

	score := clampScore(weightedSum)
	return RecoveryResult{
		Score:       score,
		HRVScore:    hrvScore,
		RHRScore:    rhrScore,
		SleepScore:  sleepScore,
		IllnessFlag: illness,
		Explanation: recoveryExplanation(score, illness),
	}
}

func recoveryExplanation(score int, illness bool) string {
	if illness {
		return fmt.Sprintf(
			"recovery at %d - respiratory rate is running above your baseline, consider taking it easy today", score,
		)
	}
	switch {
	case score < 40:
		return fmt.Sprintf("recovery at %d - your body is signalling fatigue, prioritize rest and sleep", score)
	case score < 70:
		return fmt.Sprintf("recovery at %d - moderate readiness, keep intensity in check", score)
	default:
		return fmt.Sprintf("recovery at %d - you are well recovered and ready for a harder session", score)
	}
}
