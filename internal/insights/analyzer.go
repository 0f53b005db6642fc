package insights

import (
	"context"
	"time"

	"github.com/jdormont/trainingsmart/internal/activities"
	"github.com/jdormont/trainingsmart/internal/health"
	"github.com/jdormont/trainingsmart/internal/scoring"
	"github.com/jdormont/trainingsmart/internal/telemetry/tracing"
)

// performanceLookbackDays is wider than the scoring window so the trend
// classifier has an older half to compare against.
const performanceLookbackDays = 90

type metricsRepo interface {
	ListRange(ctx context.Context, userID int, from, to time.Time) ([]health.DailyMetric, error)
}

type activitiesRepo interface {
	ListRange(ctx context.Context, userID int, from, to time.Time) ([]activities.Activity, error)
}

// RecoveryInsight is the recovery view of a user's current state: the
// freshly recomputed score for the latest stored day plus how the score
// has been moving lately.
type RecoveryInsight struct {
	Date       string                 `json:"date"`
	Recovery   scoring.RecoveryResult `json:"recovery"`
	ScoreTrend scoring.Trend          `json:"scoreTrend"`
	Days       int                    `json:"days"`
}

type Analyzer struct {
	metrics    metricsRepo
	activities activitiesRepo
	now        func() time.Time
}

func NewAnalyzer(metrics metricsRepo, activities activitiesRepo) *Analyzer {
	return &Analyzer{
		metrics:    metrics,
		activities: activities,
		now:        time.Now,
	}
}

// Recovery recomputes the recovery score for the user's most recent
// stored day. Recomputation over the same stored rows yields the same
// score the ingestion endpoint produced.
func (a *Analyzer) Recovery(ctx context.Context, userID int) (*RecoveryInsight, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.insights.recovery")
	defer span.End()

	to := a.now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -scoring.BaselineWindowDays-1)
	storedMetrics, err := a.metrics.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	if len(storedMetrics) == 0 {
		return &RecoveryInsight{
			Date: a.now().UTC().Format("2006-01-02"),
			Recovery: scoring.RecoveryDetails(
				scoring.CurrentBiometrics{}, nil,
			),
			ScoreTrend: scoring.TrendStable,
		}, nil
	}

	// rows come most recent first; the newest row is the day under
	// scrutiny, everything older is its baseline history
	latest := storedMetrics[0]
	history := health.ToSamples(storedMetrics[1:])
	recovery := scoring.RecoveryDetails(latest.ToCurrent(), history)

	scores := make([]float64, 0, len(storedMetrics))
	for i := range storedMetrics {
		scores = append(scores, float64(storedMetrics[i].RecoveryScore))
	}

	return &RecoveryInsight{
		Date:       latest.Date.Format("2006-01-02"),
		Recovery:   recovery,
		ScoreTrend: scoring.ClassifyTrend(scores),
		Days:       len(storedMetrics),
	}, nil
}

// Performance computes the activity-only composite over the user's
// recent activities.
func (a *Analyzer) Performance(ctx context.Context, userID int) (*scoring.CompositeScore, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.insights.performance")
	defer span.End()

	now := a.now()
	stored, err := a.activities.ListRange(ctx, userID, now.AddDate(0, 0, -performanceLookbackDays), now)
	if err != nil {
		return nil, err
	}

	composite := scoring.PerformanceScore(activities.ToScoringActivities(stored), now)
	return &composite, nil
}

// HealthBalance computes the full biometric composite from activities
// and the stored biometric history together.
func (a *Analyzer) HealthBalance(ctx context.Context, userID int) (*scoring.CompositeScore, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.insights.healthBalance")
	defer span.End()

	now := a.now()
	stored, err := a.activities.ListRange(ctx, userID, now.AddDate(0, 0, -performanceLookbackDays), now)
	if err != nil {
		return nil, err
	}

	to := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	storedMetrics, err := a.metrics.ListRange(ctx, userID, to.AddDate(0, 0, -scoring.BaselineWindowDays-1), to)
	if err != nil {
		return nil, err
	}

	composite := scoring.HealthBalanceScore(
		activities.ToScoringActivities(stored),
		health.ToSamples(storedMetrics),
		now,
	)
	return &composite, nil
}
