package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/repositories"
	"github.com/timetocare/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/timetocare/backend/pkg/errors"
)

// QueueAdapter implements the QueueRepository interface. Activity is a
// derived predicate over timestamp and wait time; entries are never updated
// or deleted once written.
type QueueAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewQueueAdapter creates a new queue adapter
func NewQueueAdapter(client *postgres.Client) repositories.QueueRepository {
	return &QueueAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// activeExpr selects entries whose treatment window has not elapsed at the
// reference time: timestamp + wait_time_minutes >= at.
func activeExpr(at interface{}) goqu.Expression {
	return goqu.L("timestamp + (wait_time_minutes * interval '1 minute') >= ?", at)
}

// Append writes a new queue entry
func (a *QueueAdapter) Append(ctx context.Context, entry *entities.QueueEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	record := goqu.Record{
		"id":                entry.ID,
		"hospital_id":       entry.HospitalID,
		"triage_code":       string(entry.TriageCode),
		"wait_time_minutes": entry.WaitTimeMinutes,
		"timestamp":         entry.Timestamp,
	}

	query, args, err := a.db.Insert("hospital_queue").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build queue insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewUnavailableError("failed to append queue entry", err)
	}

	return nil
}

// CountActive counts active entries for one hospital at the reference time
func (a *QueueAdapter) CountActive(ctx context.Context, hospitalID string, at time.Time) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("hospital_queue").
		Where(goqu.Ex{"hospital_id": hospitalID}, activeExpr(at)).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build active count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewUnavailableError("failed to count active queue entries", err)
	}

	return count, nil
}

// ActiveStats returns per-hospital active counts broken down by triage code
func (a *QueueAdapter) ActiveStats(ctx context.Context, at time.Time) ([]*entities.QueueStats, error) {
	query, args, err := a.db.Select("hospital_id", "triage_code", goqu.COUNT("*").As("num_patients")).
		From("hospital_queue").
		Where(activeExpr(at)).
		GroupBy("hospital_id", "triage_code").
		Order(goqu.I("hospital_id").Asc(), goqu.I("triage_code").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build queue stats query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to query queue stats", err)
	}
	defer rows.Close()

	byHospital := make(map[string]*entities.QueueStats)
	var order []string

	for rows.Next() {
		var hospitalID, triage string
		var count int
		if err := rows.Scan(&hospitalID, &triage, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan queue stats", err)
		}

		stats, ok := byHospital[hospitalID]
		if !ok {
			stats = &entities.QueueStats{
				HospitalID: hospitalID,
				ByTriage:   make(map[entities.TriageCode]int),
			}
			byHospital[hospitalID] = stats
			order = append(order, hospitalID)
		}
		stats.ByTriage[entities.TriageCode(triage)] = count
		stats.Total += count
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("error iterating queue stats", err)
	}

	result := make([]*entities.QueueStats, 0, len(order))
	for _, id := range order {
		result = append(result, byHospital[id])
	}
	return result, nil
}
