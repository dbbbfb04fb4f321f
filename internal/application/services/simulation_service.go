package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/providers"
	"github.com/timetocare/backend/internal/domain/repositories"
	"github.com/timetocare/backend/internal/infrastructure/observability"
	apperrors "github.com/timetocare/backend/pkg/errors"
)

// Simulated wait times stay inside this window, in minutes.
const (
	simMinWaitMinutes = 5
	simMaxWaitMinutes = 60
)

// SimulationService feeds synthetic queue activity into the system so
// dashboards have something to show outside of real intake hours. Each tick
// admits one random patient to one random hospital.
type SimulationService struct {
	hospitalRepo repositories.HospitalRepository
	queueRepo    repositories.QueueRepository
	eventBus     providers.EventBus
	interval     time.Duration
	rng          *rand.Rand
}

// NewSimulationService creates a new simulation service
func NewSimulationService(hospitalRepo repositories.HospitalRepository, queueRepo repositories.QueueRepository, eventBus providers.EventBus, interval time.Duration) *SimulationService {
	return &SimulationService{
		hospitalRepo: hospitalRepo,
		queueRepo:    queueRepo,
		eventBus:     eventBus,
		interval:     interval,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run ticks until the context is cancelled. Tick failures are logged and the
// loop keeps going; a flaky store should not kill the simulator.
func (s *SimulationService) Run(ctx context.Context) error {
	logger := observability.GetLogger()
	logger.Info().Dur("interval", s.interval).Msg("starting queue simulator")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("queue simulator stopped")
			return ctx.Err()
		case now := <-ticker.C:
			if err := s.Tick(ctx, now); err != nil {
				logger.Warn().Err(err).Msg("simulation tick failed")
			}
		}
	}
}

// Tick admits one synthetic queue entry at a random hospital.
func (s *SimulationService) Tick(ctx context.Context, at time.Time) error {
	hospitals, err := s.hospitalRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(hospitals) == 0 {
		return apperrors.NewNotFoundError("no hospitals to simulate against")
	}

	hospital := hospitals[s.rng.Intn(len(hospitals))]
	triageCodes := entities.ValidTriageCodes()
	triage := triageCodes[s.rng.Intn(len(triageCodes))]
	waitMinutes := float64(simMinWaitMinutes + s.rng.Intn(simMaxWaitMinutes-simMinWaitMinutes+1))

	entry := &entities.QueueEntry{
		HospitalID:      hospital.Name,
		TriageCode:      triage,
		WaitTimeMinutes: waitMinutes,
		Timestamp:       at,
	}
	if err := s.queueRepo.Append(ctx, entry); err != nil {
		return err
	}

	if s.eventBus != nil {
		event := entities.NewQueueEvent(hospital.Name, entities.QueueEventTypeSimulated, triage, waitMinutes)
		if err := s.eventBus.Publish(ctx, providers.EventChannelQueueUpdates, event); err != nil {
			observability.GetLogger().Warn().Err(err).Msg("failed to publish simulated queue event")
		}
	}

	return nil
}
