package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/timetocare/backend/internal/application/services"
	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/providers"
)

func TestSimulationService_Tick(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	t.Run("admits one synthetic entry with a bounded wait", func(t *testing.T) {
		hospitalRepo := new(MockHospitalRepository)
		queueRepo := new(MockQueueRepository)
		eventBus := new(MockEventBus)

		hospitalRepo.On("ListAll", mock.Anything).Return([]*entities.Hospital{
			{Name: "General", Specialization: "Orthopedics"},
		}, nil)
		queueRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *entities.QueueEntry) bool {
			return e.HospitalID == "General" &&
				e.TriageCode.IsValid() &&
				e.WaitTimeMinutes >= 5 && e.WaitTimeMinutes <= 60 &&
				e.Timestamp.Equal(at)
		})).Return(nil)
		eventBus.On("Publish", mock.Anything, providers.EventChannelQueueUpdates, mock.Anything).Return(nil)

		service := services.NewSimulationService(hospitalRepo, queueRepo, eventBus, time.Minute)

		err := service.Tick(ctx, at)

		assert.NoError(t, err)
		queueRepo.AssertExpectations(t)
		eventBus.AssertExpectations(t)
	})

	t.Run("fails when no hospitals exist", func(t *testing.T) {
		hospitalRepo := new(MockHospitalRepository)
		queueRepo := new(MockQueueRepository)

		hospitalRepo.On("ListAll", mock.Anything).Return([]*entities.Hospital{}, nil)

		service := services.NewSimulationService(hospitalRepo, queueRepo, nil, time.Minute)

		err := service.Tick(ctx, at)

		assert.Error(t, err)
		queueRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestSimulationService_RunStopsOnCancel(t *testing.T) {
	hospitalRepo := new(MockHospitalRepository)
	queueRepo := new(MockQueueRepository)

	service := services.NewSimulationService(hospitalRepo, queueRepo, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- service.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("simulator did not stop after cancellation")
	}
}
