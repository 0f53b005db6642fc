package scoring

import "time"

// Trend is a three-way classification derived from comparing the recent
// half of a time window against the older half.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// DataQuality labels how much signal backed a composite score.
type DataQuality string

const (
	DataQualityGood         DataQuality = "good"
	DataQualityFair         DataQuality = "fair"
	DataQualityLimited      DataQuality = "limited"
	DataQualityInsufficient DataQuality = "insufficient"
)

// BiometricSample is one day of biometric readings, as stored per user
// per calendar date. RestingHR == 0 and HRV == 0 mean "absent", while
// RespiratoryRate keeps absence explicit via nil.
type BiometricSample struct {
	Date            time.Time `json:"date"`
	SleepMinutes    int       `json:"sleepMinutes"`
	RestingHR       int       `json:"restingHr"`
	HRV             float64   `json:"hrv"`
	RespiratoryRate *float64  `json:"respiratoryRate,omitempty"`
}

// CurrentBiometrics holds the readings of the day being scored.
type CurrentBiometrics struct {
	SleepMinutes    int      `json:"sleepMinutes"`
	RestingHR       int      `json:"restingHr"`
	HRV             float64  `json:"hrv"`
	RespiratoryRate *float64 `json:"respiratoryRate,omitempty"`
}

// Activity is one logged exercise session, read-only input to the scorers.
type Activity struct {
	StartDate           time.Time `json:"startDate"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	DistanceMeters      float64   `json:"distanceMeters"`
	MovingTimeSeconds   int       `json:"movingTimeSeconds"`
	AverageSpeedMps     float64   `json:"averageSpeedMps"`
	ElevationGainMeters float64   `json:"elevationGainMeters"`
	AverageHeartRate    *float64  `json:"averageHeartRate,omitempty"`
}

// Component is one weighted building block of a dimension score.
// Value is the underlying raw measure, Points its bounded contribution.
type Component struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Points int     `json:"points"`
}

// DimensionScore is one 0-100 axis of a composite score.
type DimensionScore struct {
	Score      int         `json:"score"`
	Components []Component `json:"components"`
	Trend      Trend       `json:"trend"`
	Suggestion string      `json:"suggestion"`
}

// CompositeScore combines dimension scores under fixed weights.
// It is recomputed on every request and never persisted by the engine.
type CompositeScore struct {
	Overall     int                       `json:"overall"`
	Dimensions  map[string]DimensionScore `json:"dimensions"`
	DataQuality DataQuality               `json:"dataQuality"`
	GeneratedAt time.Time                 `json:"generatedAt"`
}

// Dimension names of the activity-only performance composite.
const (
	DimensionPower        = "power"
	DimensionEndurance    = "endurance"
	DimensionConsistency  = "consistency"
	DimensionSpeed        = "speed"
	DimensionTrainingLoad = "trainingLoad"
)

// Axis names of the full biometric "health balance" composite.
const (
	AxisLoad        = "load"
	AxisConsistency = "consistency"
	AxisEndurance   = "endurance"
	AxisIntensity   = "intensity"
	AxisEfficiency  = "efficiency"
)
