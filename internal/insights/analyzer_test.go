package insights

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdormont/trainingsmart/internal/activities"
	"github.com/jdormont/trainingsmart/internal/health"
	"github.com/jdormont/trainingsmart/internal/scoring"
)

var testNow = time.Date(2026, 8, 21, 10, 30, 0, 0, time.UTC)

type metricsRepoFake struct {
	metrics []health.DailyMetric
	err     error
}

func (f *metricsRepoFake) ListRange(_ context.Context, _ int, from, to time.Time) ([]health.DailyMetric, error) {
	if f.err != nil {
		return nil, f.err
	}
	var found []health.DailyMetric
	for _, m := range f.metrics {
		if !m.Date.Before(from) && m.Date.Before(to) {
			found = append(found, m)
		}
	}
	return found, nil
}

type activitiesRepoFake struct {
	activities []activities.Activity
	err        error
}

func (f *activitiesRepoFake) ListRange(_ context.Context, _ int, from, to time.Time) ([]activities.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.activities, nil
}

// steadyMetrics builds n stored days, most recent first, ending yesterday.
func steadyMetrics(n int) []health.DailyMetric {
	day := testNow.Truncate(24 * time.Hour)
	stored := make([]health.DailyMetric, 0, n)
	for i := 1; i <= n; i++ {
		stored = append(stored, health.DailyMetric{
			UserID:        42,
			Date:          day.AddDate(0, 0, -i),
			SleepMinutes:  420,
			RestingHR:     50,
			HRV:           100,
			RecoveryScore: 85,
		})
	}
	return stored
}

func testRides(n int) []activities.Activity {
	rides := make([]activities.Activity, 0, n)
	for i := 0; i < n; i++ {
		rides = append(rides, activities.Activity{
			UserID:            42,
			ProviderID:        "p",
			StartDate:         testNow.AddDate(0, 0, -1-i),
			Name:              "Morning Ride",
			Type:              "Ride",
			DistanceMeters:    30_000,
			MovingTimeSeconds: 3600,
			AverageSpeedMps:   8.33,
		})
	}
	return rides
}

func newTestAnalyzer(m *metricsRepoFake, a *activitiesRepoFake) *Analyzer {
	analyzer := NewAnalyzer(m, a)
	analyzer.now = func() time.Time { return testNow }
	return analyzer
}

func TestAnalyzer_Recovery_NoData(t *testing.T) {
	analyzer := newTestAnalyzer(&metricsRepoFake{}, &activitiesRepoFake{})

	insight, err := analyzer.Recovery(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, scoring.NeutralRecoveryScore, insight.Recovery.Score)
	assert.True(t, insight.Recovery.ColdStart)
	assert.Equal(t, scoring.TrendStable, insight.ScoreTrend)
}

func TestAnalyzer_Recovery(t *testing.T) {
	stored := steadyMetrics(10)
	// the day under scrutiny: worse than baseline
	stored[0].SleepMinutes = 225
	stored[0].RestingHR = 55
	stored[0].HRV = 90

	analyzer := newTestAnalyzer(&metricsRepoFake{metrics: stored}, &activitiesRepoFake{})

	insight, err := analyzer.Recovery(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 74, insight.Recovery.Score)
	assert.False(t, insight.Recovery.ColdStart)
	assert.Equal(t, 10, insight.Days)
	assert.Equal(t, stored[0].Date.Format("2006-01-02"), insight.Date)
	// stored scores are all equal, the trend is flat
	assert.Equal(t, scoring.TrendStable, insight.ScoreTrend)
}

func TestAnalyzer_Performance(t *testing.T) {
	analyzer := newTestAnalyzer(&metricsRepoFake{}, &activitiesRepoFake{activities: testRides(20)})

	composite, err := analyzer.Performance(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, composite.Dimensions, 5)
	assert.Equal(t, scoring.DataQualityGood, composite.DataQuality)

	// pure recomputation over the same rows is idempotent
	again, err := analyzer.Performance(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, composite, again)
}

func TestAnalyzer_HealthBalance(t *testing.T) {
	analyzer := newTestAnalyzer(
		&metricsRepoFake{metrics: steadyMetrics(10)},
		&activitiesRepoFake{activities: testRides(15)},
	)

	composite, err := analyzer.HealthBalance(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, composite.Dimensions, 5)
	for _, name := range []string{
		scoring.AxisLoad, scoring.AxisConsistency, scoring.AxisEndurance,
		scoring.AxisIntensity, scoring.AxisEfficiency,
	} {
		_, ok := composite.Dimensions[name]
		assert.Truef(t, ok, "missing axis %s", name)
	}
}
