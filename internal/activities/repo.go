package activities

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jdormont/trainingsmart/internal/telemetry/tracing"
)

var ErrActivityNotFound = errors.New("activity not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// UpsertBatch stores a batch of synced activities in one transaction,
// deduping on (user_id, provider_id). Returns the number of rows written.
func (r *Repo) UpsertBatch(ctx context.Context, userID int, batch []Activity) (stored int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.upsertBatch")
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("batch.size", len(batch)))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for i := range batch {
		a := &batch[i]
		tag, err := tx.Exec(
			ctx,
			`INSERT INTO activity
					(user_id, provider_id, start_date, name, type, distance_meters,
					 moving_time_seconds, average_speed_mps, elevation_gain_meters,
					 average_heart_rate, source, created_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				ON CONFLICT (user_id, provider_id) DO UPDATE SET
					start_date = EXCLUDED.start_date,
					name = EXCLUDED.name,
					type = EXCLUDED.type,
					distance_meters = EXCLUDED.distance_meters,
					moving_time_seconds = EXCLUDED.moving_time_seconds,
					average_speed_mps = EXCLUDED.average_speed_mps,
					elevation_gain_meters = EXCLUDED.elevation_gain_meters,
					average_heart_rate = EXCLUDED.average_heart_rate,
					source = EXCLUDED.source;`,
			userID, a.ProviderID, a.StartDate, a.Name, a.Type, a.DistanceMeters,
			a.MovingTimeSeconds, a.AverageSpeedMps, a.ElevationGainMeters,
			a.AverageHeartRate, a.Source, a.CreatedAt,
		)
		if err != nil {
			return 0, err
		}
		stored += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return stored, nil
}

// ListRange returns activities for a user with from <= start date < to,
// most recent first.
func (r *Repo) ListRange(ctx context.Context, userID int, from, to time.Time) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.listRange")
	span.SetAttributes(attribute.Int("user.id", userID))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, provider_id, start_date, name, type, distance_meters,
				moving_time_seconds, average_speed_mps, elevation_gain_meters,
				average_heart_rate, source, created_at
			FROM activity
			WHERE user_id = $1 AND start_date >= $2 AND start_date < $3
			ORDER BY start_date DESC;`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.rows2activities(rows)
}

func (r *Repo) Count(ctx context.Context, userID int) (int, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.count")
	defer span.End()

	rows, err := r.db.Query(ctx, `SELECT COUNT(*) FROM activity WHERE user_id = $1`, userID)
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

	return -1, errors.New("unexpected error, failed to get activities count")
}

func (r *Repo) rows2activities(rows pgx.Rows) ([]Activity, error) {
	var found []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.ProviderID, &a.StartDate, &a.Name, &a.Type,
			&a.DistanceMeters, &a.MovingTimeSeconds, &a.AverageSpeedMps,
			&a.ElevationGainMeters, &a.AverageHeartRate, &a.Source, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		found = append(found, a)
	}
	return found, nil
}
