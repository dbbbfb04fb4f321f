package services

import (
	"context"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/repositories"
)

// WaitTimeService serves the wait-time dashboard tables.
type WaitTimeService struct {
	waitTimeRepo repositories.WaitTimeRepository
}

// NewWaitTimeService creates a new wait time service
func NewWaitTimeService(waitTimeRepo repositories.WaitTimeRepository) *WaitTimeService {
	return &WaitTimeService{waitTimeRepo: waitTimeRepo}
}

// ListAverages returns the all-time average per hospital and triage code.
func (s *WaitTimeService) ListAverages(ctx context.Context) ([]*entities.HospitalWaitTime, error) {
	return s.waitTimeRepo.ListAverages(ctx)
}

// ListLastWeekAverages returns the averages for the most recent week present
// in storage. An empty table yields an empty result, not an error.
func (s *WaitTimeService) ListLastWeekAverages(ctx context.Context) ([]*entities.HospitalWaitTime, error) {
	weekStart, ok, err := s.waitTimeRepo.LatestWeekStart(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*entities.HospitalWaitTime{}, nil
	}
	return s.waitTimeRepo.ListAveragesForWeek(ctx, weekStart)
}
