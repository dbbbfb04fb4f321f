package repositories

import (
	"context"
	"time"

	"github.com/timetocare/backend/internal/domain/entities"
)

// WaitTimeRepository defines the contract for the historical wait-time store.
type WaitTimeRepository interface {
	// UpsertWeekly inserts or replaces the given weekly aggregates in a
	// single transaction. Conflict on (hospital, triage, week start)
	// replaces the stored average; the batch either fully applies or
	// leaves the table untouched.
	UpsertWeekly(ctx context.Context, aggregates []*entities.WeeklyWaitTime) error

	// LatestWeekStart returns the maximum week start present across the
	// whole table. All hospitals are compared against this same reference
	// week. The bool is false when the table is empty.
	LatestWeekStart(ctx context.Context) (time.Time, bool, error)

	// WeeklyAverage returns the stored average for the hospital, triage code
	// and week start. The bool is false when no row exists for that key.
	WeeklyAverage(ctx context.Context, hospitalID string, triage entities.TriageCode, weekStart time.Time) (float64, bool, error)

	// ListAverages returns the all-time average per hospital and triage code.
	ListAverages(ctx context.Context) ([]*entities.HospitalWaitTime, error)

	// ListAveragesForWeek returns the averages per hospital and triage code
	// restricted to one week.
	ListAveragesForWeek(ctx context.Context, weekStart time.Time) ([]*entities.HospitalWaitTime, error)
}
