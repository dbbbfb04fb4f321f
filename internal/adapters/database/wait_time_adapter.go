package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/repositories"
	"github.com/timetocare/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/timetocare/backend/pkg/errors"
)

// WaitTimeAdapter implements the WaitTimeRepository interface over the
// historical_wait_times table, keyed by (hospital, triage, week start).
type WaitTimeAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewWaitTimeAdapter creates a new wait time adapter
func NewWaitTimeAdapter(client *postgres.Client) repositories.WaitTimeRepository {
	return &WaitTimeAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// UpsertWeekly inserts or replaces weekly aggregates in one transaction.
// Conflicts on the composite key replace the stored average so re-running
// the aggregation job never accumulates.
func (a *WaitTimeAdapter) UpsertWeekly(ctx context.Context, aggregates []*entities.WeeklyWaitTime) error {
	if len(aggregates) == 0 {
		return nil
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewUnavailableError("failed to begin upsert transaction", err)
	}

	const stmt = `
		INSERT INTO historical_wait_times (hospital_id, triage_code, week_start, average_wait_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (hospital_id, triage_code, week_start)
		DO UPDATE SET average_wait_time = EXCLUDED.average_wait_time
	`

	for _, agg := range aggregates {
		_, err := tx.ExecContext(ctx, stmt,
			agg.HospitalID,
			string(agg.TriageCode),
			agg.WeekStart,
			agg.AverageWaitMinutes,
		)
		if err != nil {
			tx.Rollback()
			return apperrors.NewUnavailableError("failed to upsert weekly wait time", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewUnavailableError("failed to commit weekly wait times", err)
	}

	return nil
}

// LatestWeekStart returns the maximum week_start across the whole table
func (a *WaitTimeAdapter) LatestWeekStart(ctx context.Context) (time.Time, bool, error) {
	query, args, err := a.db.Select(goqu.MAX("week_start")).
		From("historical_wait_times").
		ToSQL()
	if err != nil {
		return time.Time{}, false, apperrors.NewInternalError("failed to build latest week query", err)
	}

	var weekStart sql.NullTime
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&weekStart); err != nil {
		return time.Time{}, false, apperrors.NewUnavailableError("failed to get latest week start", err)
	}
	if !weekStart.Valid {
		return time.Time{}, false, nil
	}

	return weekStart.Time, true, nil
}

// WeeklyAverage returns the stored average for one composite key
func (a *WaitTimeAdapter) WeeklyAverage(ctx context.Context, hospitalID string, triage entities.TriageCode, weekStart time.Time) (float64, bool, error) {
	query, args, err := a.db.Select("average_wait_time").
		From("historical_wait_times").
		Where(goqu.Ex{
			"hospital_id": hospitalID,
			"triage_code": string(triage),
			"week_start":  weekStart,
		}).
		ToSQL()
	if err != nil {
		return 0, false, apperrors.NewInternalError("failed to build weekly average query", err)
	}

	var avg float64
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&avg)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperrors.NewUnavailableError("failed to get weekly average", err)
	}

	return avg, true, nil
}

// ListAverages returns the all-time average per hospital and triage code
func (a *WaitTimeAdapter) ListAverages(ctx context.Context) ([]*entities.HospitalWaitTime, error) {
	query, args, err := a.db.Select("hospital_id", "triage_code", goqu.AVG("average_wait_time").As("avg_wait_time")).
		From("historical_wait_times").
		GroupBy("hospital_id", "triage_code").
		Order(goqu.I("hospital_id").Asc(), goqu.I("triage_code").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build averages query", err)
	}

	return a.queryAverages(ctx, query, args)
}

// ListAveragesForWeek returns per-hospital averages restricted to one week
func (a *WaitTimeAdapter) ListAveragesForWeek(ctx context.Context, weekStart time.Time) ([]*entities.HospitalWaitTime, error) {
	query, args, err := a.db.Select("hospital_id", "triage_code", goqu.AVG("average_wait_time").As("avg_wait_time")).
		From("historical_wait_times").
		Where(goqu.Ex{"week_start": weekStart}).
		GroupBy("hospital_id", "triage_code").
		Order(goqu.I("hospital_id").Asc(), goqu.I("triage_code").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build weekly averages query", err)
	}

	return a.queryAverages(ctx, query, args)
}

func (a *WaitTimeAdapter) queryAverages(ctx context.Context, query string, args []interface{}) ([]*entities.HospitalWaitTime, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to query wait time averages", err)
	}
	defer rows.Close()

	var averages []*entities.HospitalWaitTime
	for rows.Next() {
		wt := &entities.HospitalWaitTime{}
		var triage string
		if err := rows.Scan(&wt.HospitalID, &triage, &wt.AverageWaitMinutes); err != nil {
			return nil, apperrors.NewInternalError("failed to scan wait time average", err)
		}
		wt.TriageCode = entities.TriageCode(triage)
		averages = append(averages, wt)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("error iterating wait time averages", err)
	}

	return averages, nil
}
