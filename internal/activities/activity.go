package activities

import (
	"time"

	"github.com/jdormont/trainingsmart/internal/scoring"
)

// Activity is one synced exercise session. ProviderID is the external
// provider's identifier, used to dedupe repeated syncs per user.
type Activity struct {
	ID                  int       `json:"id"`
	UserID              int       `json:"userId"`
	ProviderID          string    `json:"providerId"`
	StartDate           time.Time `json:"startDate"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	DistanceMeters      float64   `json:"distanceMeters"`
	MovingTimeSeconds   int       `json:"movingTimeSeconds"`
	AverageSpeedMps     float64   `json:"averageSpeedMps"`
	ElevationGainMeters float64   `json:"elevationGainMeters"`
	AverageHeartRate    *float64  `json:"averageHeartRate,omitempty"`
	Source              string    `json:"source,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

func (a *Activity) ToScoring() scoring.Activity {
	return scoring.Activity{
		StartDate:           a.StartDate,
		Name:                a.Name,
		Type:                a.Type,
		DistanceMeters:      a.DistanceMeters,
		MovingTimeSeconds:   a.MovingTimeSeconds,
		AverageSpeedMps:     a.AverageSpeedMps,
		ElevationGainMeters: a.ElevationGainMeters,
		AverageHeartRate:    a.AverageHeartRate,
	}
}

// ToScoringActivities converts stored activities to scoring inputs,
// keeping order.
func ToScoringActivities(stored []Activity) []scoring.Activity {
	converted := make([]scoring.Activity, 0, len(stored))
	for i := range stored {
		converted = append(converted, stored[i].ToScoring())
	}
	return converted
}
