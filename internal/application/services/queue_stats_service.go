package services

import (
	"context"
	"time"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/repositories"
)

// QueueStatsService serves live congestion numbers for the dashboard.
type QueueStatsService struct {
	queueRepo repositories.QueueRepository
}

// NewQueueStatsService creates a new queue stats service
func NewQueueStatsService(queueRepo repositories.QueueRepository) *QueueStatsService {
	return &QueueStatsService{queueRepo: queueRepo}
}

// Stats returns active entry counts per hospital, broken down by triage
// code, at the given reference time.
func (s *QueueStatsService) Stats(ctx context.Context, at time.Time) ([]*entities.QueueStats, error) {
	return s.queueRepo.ActiveStats(ctx, at)
}

// CountActive returns the number of active entries for one hospital.
func (s *QueueStatsService) CountActive(ctx context.Context, hospitalID string, at time.Time) (int, error) {
	return s.queueRepo.CountActive(ctx, hospitalID, at)
}
