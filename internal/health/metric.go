package health

import (
	"time"

	"github.com/jdormont/trainingsmart/internal/scoring"
)

// DailyMetric is one stored day of biometrics for a user, keyed on
// (user id, date). RecoveryScore is computed at ingestion time from the
// trailing history.
type DailyMetric struct {
	ID              int       `json:"id"`
	UserID          int       `json:"userId"`
	Date            time.Time `json:"date"`
	SleepMinutes    int       `json:"sleepMinutes"`
	RestingHR       int       `json:"restingHr"`
	HRV             float64   `json:"hrv"`
	RespiratoryRate *float64  `json:"respiratoryRate,omitempty"`
	RecoveryScore   int       `json:"recoveryScore"`
	Source          string    `json:"source,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (m *DailyMetric) ToSample() scoring.BiometricSample {
	return scoring.BiometricSample{
		Date:            m.Date,
		SleepMinutes:    m.SleepMinutes,
		RestingHR:       m.RestingHR,
		HRV:             m.HRV,
		RespiratoryRate: m.RespiratoryRate,
	}
}

func (m *DailyMetric) ToCurrent() scoring.CurrentBiometrics {
	return scoring.CurrentBiometrics{
		SleepMinutes:    m.SleepMinutes,
		RestingHR:       m.RestingHR,
		HRV:             m.HRV,
		RespiratoryRate: m.RespiratoryRate,
	}
}

// ToSamples converts stored metrics to scoring inputs, keeping order.
func ToSamples(metrics []DailyMetric) []scoring.BiometricSample {
	samples := make([]scoring.BiometricSample, 0, len(metrics))
	for i := range metrics {
		samples = append(samples, metrics[i].ToSample())
	}
	return samples
}
