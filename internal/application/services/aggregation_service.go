package services

import (
	"context"
	"time"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/repositories"
	"github.com/timetocare/backend/internal/infrastructure/observability"
)

// AggregationService converts raw per-visit wait-time records into weekly
// averages per hospital and triage code. Safe to re-run on the same input:
// the upsert replaces stored averages instead of accumulating.
type AggregationService struct {
	waitTimeRepo repositories.WaitTimeRepository
	cutoff       time.Time
	metrics      *observability.Metrics
}

// NewAggregationService creates a new aggregation service. Weeks starting on
// or before cutoff are dropped from the output.
func NewAggregationService(waitTimeRepo repositories.WaitTimeRepository, cutoff time.Time, metrics *observability.Metrics) *AggregationService {
	return &AggregationService{
		waitTimeRepo: waitTimeRepo,
		cutoff:       cutoff,
		metrics:      metrics,
	}
}

type weeklyKey struct {
	hospitalID string
	triageCode entities.TriageCode
	weekStart  time.Time
}

// Aggregate groups records by (hospital, triage, Monday week start), averages
// each group and persists the batch in one transaction. Returns the number of
// weekly rows written.
func (s *AggregationService) Aggregate(ctx context.Context, records []*entities.VisitRecord) (int, error) {
	ctx, span := observability.StartSpan(ctx, "AggregationService.Aggregate")
	defer span.End()

	sums := make(map[weeklyKey]float64)
	counts := make(map[weeklyKey]int)
	var order []weeklyKey

	for _, r := range records {
		weekStart := entities.WeekStartOf(r.Date)
		if !weekStart.After(s.cutoff) {
			continue
		}

		key := weeklyKey{hospitalID: r.HospitalID, triageCode: r.TriageCode, weekStart: weekStart}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		sums[key] += r.WaitTimeMinutes
		counts[key]++
	}

	if len(order) == 0 {
		return 0, nil
	}

	aggregates := make([]*entities.WeeklyWaitTime, 0, len(order))
	for _, key := range order {
		aggregates = append(aggregates, &entities.WeeklyWaitTime{
			HospitalID:         key.hospitalID,
			TriageCode:         key.triageCode,
			WeekStart:          key.weekStart,
			AverageWaitMinutes: sums[key] / float64(counts[key]),
		})
	}

	if err := s.waitTimeRepo.UpsertWeekly(ctx, aggregates); err != nil {
		return 0, err
	}

	observability.RecordAggregatedWeeks(ctx, s.metrics, len(aggregates))
	observability.LoggerFromContext(ctx).Info().
		Int("records", len(records)).
		Int("weekly_rows", len(aggregates)).
		Msg("aggregated wait time records")

	return len(aggregates), nil
}
