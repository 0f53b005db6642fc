package health

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jdormont/trainingsmart/internal/telemetry/tracing"
)

var ErrMetricNotFound = errors.New("daily metric not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert stores a daily metric, replacing the readings and the recovery
// score when a row for (user id, date) already exists.
func (r *Repo) Upsert(ctx context.Context, metric *DailyMetric) (*DailyMetric, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.healthmetrics.upsert")
	span.SetAttributes(attribute.Int("user.id", metric.UserID))
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO daily_metric
				(user_id, date, sleep_minutes, resting_hr, hrv, respiratory_rate, recovery_score, source, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (user_id, date) DO UPDATE SET
				sleep_minutes = EXCLUDED.sleep_minutes,
				resting_hr = EXCLUDED.resting_hr,
				hrv = EXCLUDED.hrv,
				respiratory_rate = EXCLUDED.respiratory_rate,
				recovery_score = EXCLUDED.recovery_score,
				source = EXCLUDED.source
			RETURNING id;`,
		metric.UserID, metric.Date, metric.SleepMinutes, metric.RestingHR,
		metric.HRV, metric.RespiratoryRate, metric.RecoveryScore, metric.Source, metric.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, err
	}

	metric.ID = id
	return metric, nil
}

// Get returns the metric stored for one user and calendar date.
func (r *Repo) Get(ctx context.Context, userID int, date time.Time) (*DailyMetric, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.healthmetrics.get")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, date, sleep_minutes, resting_hr, hrv, respiratory_rate, recovery_score, source, created_at
			FROM daily_metric
			WHERE user_id = $1 AND date = $2;`,
		userID, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	metrics, err := r.rows2metrics(rows)
	if err != nil {
		return nil, err
	}

	if len(metrics) != 1 {
		return nil, ErrMetricNotFound
	}

	return &metrics[0], nil
}

// ListRange returns metrics for a user with from <= date < to, most
// recent first. The trailing recovery history for a given day is
// ListRange(day-30d, day).
func (r *Repo) ListRange(ctx context.Context, userID int, from, to time.Time) (_ []DailyMetric, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.healthmetrics.listRange")
	span.SetAttributes(attribute.Int("user.id", userID))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, date, sleep_minutes, resting_hr, hrv, respiratory_rate, recovery_score, source, created_at
			FROM daily_metric
			WHERE user_id = $1 AND date >= $2 AND date < $3
			ORDER BY date DESC;`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.rows2metrics(rows)
}

func (r *Repo) Count(ctx context.Context, userID int) (int, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.healthmetrics.count")
	defer span.End()

	rows, err := r.db.Query(ctx, `SELECT COUNT(*) FROM daily_metric WHERE user_id = $1`, userID)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get daily metrics count")
}

func (r *Repo) rows2metrics(rows pgx.Rows) ([]DailyMetric, error) {
	var metrics []DailyMetric
	for rows.Next() {
		var m DailyMetric
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Date, &m.SleepMinutes, &m.RestingHR,
			&m.HRV, &m.RespiratoryRate, &m.RecoveryScore, &m.Source, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
