package scoring

// BaselineWindowDays is the default trailing window used to compute
// per-metric baselines, strictly before the day being scored.
const BaselineWindowDays = 30

// MinBaselineSamples is the minimum number of qualifying samples a metric
// needs before its baseline is considered valid. Below this the engine is
// in "cold start" for that metric.
const MinBaselineSamples = 3

// Baselines holds per-metric rolling-window means. A nil field means not
// enough qualifying samples existed to derive that baseline.
type Baselines struct {
	HRV             *float64
	RestingHR       *float64
	RespiratoryRate *float64
}

// IsValidSample reports whether a sample carries all three core metrics.
// Zero values mean the provider did not report the metric that day.
func IsValidSample(s BiometricSample) bool {
	return s.HRV > 0 && s.RestingHR > 0 && s.SleepMinutes > 0
}

// ValidSamples filters history down to samples usable for baselines.
func ValidSamples(history []BiometricSample) []BiometricSample {
	var valid []BiometricSample
	for _, s := range history {
		if IsValidSample(s) {
			valid = append(valid, s)
		}
	}
	return valid
}

// CalculateBaselines derives per-metric baselines from the valid samples of
// a trailing history window. Absence of a baseline is a representable state
// consumed by the recovery scorer as cold start, never an error.
func CalculateBaselines(history []BiometricSample) Baselines {
	valid := ValidSamples(history)

	return Baselines{
		HRV: baselineOf(valid, func(s BiometricSample) (float64, bool) {
			return s.HRV, s.HRV > 0
		}),
		RestingHR: baselineOf(valid, func(s BiometricSample) (float64, bool) {
			return float64(s.RestingHR), s.RestingHR > 0
		}),
		RespiratoryRate: baselineOf(valid, func(s BiometricSample) (float64, bool) {
			if s.RespiratoryRate == nil {
				return 0, false
			}
			return *s.RespiratoryRate, true
		}),
	}
}

func baselineOf(samples []BiometricSample, metric func(BiometricSample) (float64, bool)) *float64 {
	var values []float64
	for _, s := range samples {
		if v, ok := metric(s); ok {
			values = append(values, v)
		}
	}

	if len(values) < MinBaselineSamples {
		return nil
	}

	baseline := mean(values)
	return &baseline
}
