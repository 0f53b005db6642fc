package scoring

import "time"

// Activity-only composite weights. They sum to 1.0.
const (
	powerWeight        = 0.20
	enduranceWeight    = 0.25
	consistencyWeight  = 0.20
	speedWeight        = 0.15
	trainingLoadWeight = 0.20
)

// Thresholds for the data-quality label of a composite, in windowed
// activity counts.
const (
	dataQualityGoodCount    = 20
	dataQualityFairCount    = 10
	dataQualityLimitedCount = MinActivityCount
)

// PerformanceScore assembles the activity-only composite: it windows the
// activities, runs the five dimension scorers and combines them under fixed
// weights. Pure given its inputs, so recomputation is idempotent.
func PerformanceScore(activities []Activity, now time.Time) CompositeScore {
	windowed := WindowForScoring(activities, now)

	dimensions := map[string]DimensionScore{
		DimensionPower:        PowerScore(windowed),
		DimensionEndurance:    EnduranceScore(windowed),
		DimensionConsistency:  ConsistencyScore(windowed),
		DimensionSpeed:        SpeedScore(windowed),
		DimensionTrainingLoad: TrainingLoadScore(windowed),
	}

	overall := clampScore(
		powerWeight*float64(dimensions[DimensionPower].Score) +
			enduranceWeight*float64(dimensions[DimensionEndurance].Score) +
			consistencyWeight*float64(dimensions[DimensionConsistency].Score) +
			speedWeight*float64(dimensions[DimensionSpeed].Score) +
			trainingLoadWeight*float64(dimensions[DimensionTrainingLoad].Score),
	)

	return CompositeScore{
		Overall:     overall,
		Dimensions:  dimensions,
		DataQuality: dataQualityFor(len(windowed)),
		GeneratedAt: now,
	}
}

func dataQualityFor(activityCount int) DataQuality {
	switch {
	case activityCount >= dataQualityGoodCount:
		return DataQualityGood
	case activityCount >= dataQualityFairCount:
		return DataQualityFair
	case activityCount >= dataQualityLimitedCount:
		return DataQualityLimited
	default:
		return DataQualityInsufficient
	}
}
