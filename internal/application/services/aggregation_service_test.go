package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/timetocare/backend/internal/application/services"
	"github.com/timetocare/backend/internal/domain/entities"
)

func aggregationCutoff() time.Time {
	return time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
}

func TestAggregationService_Aggregate(t *testing.T) {
	ctx := context.Background()

	t.Run("averages records within one week", func(t *testing.T) {
		waitTimeRepo := new(MockWaitTimeRepository)

		var captured []*entities.WeeklyWaitTime
		waitTimeRepo.On("UpsertWeekly", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).([]*entities.WeeklyWaitTime)
			}).
			Return(nil)

		service := services.NewAggregationService(waitTimeRepo, aggregationCutoff(), nil)

		records := []*entities.VisitRecord{
			{HospitalID: "H", TriageCode: entities.TriageGreen, Date: time.Date(2024, 12, 2, 10, 0, 0, 0, time.UTC), WaitTimeMinutes: 10},
			{HospitalID: "H", TriageCode: entities.TriageGreen, Date: time.Date(2024, 12, 3, 14, 0, 0, 0, time.UTC), WaitTimeMinutes: 20},
		}

		written, err := service.Aggregate(ctx, records)

		assert.NoError(t, err)
		assert.Equal(t, 1, written)
		assert.Len(t, captured, 1)
		assert.Equal(t, "H", captured[0].HospitalID)
		assert.Equal(t, entities.TriageGreen, captured[0].TriageCode)
		assert.Equal(t, time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC), captured[0].WeekStart)
		assert.Equal(t, 15.0, captured[0].AverageWaitMinutes)
	})

	t.Run("keeps hospitals and triage codes separate", func(t *testing.T) {
		waitTimeRepo := new(MockWaitTimeRepository)

		var captured []*entities.WeeklyWaitTime
		waitTimeRepo.On("UpsertWeekly", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).([]*entities.WeeklyWaitTime)
			}).
			Return(nil)

		service := services.NewAggregationService(waitTimeRepo, aggregationCutoff(), nil)

		records := []*entities.VisitRecord{
			{HospitalID: "H1", TriageCode: entities.TriageGreen, Date: time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC), WaitTimeMinutes: 10},
			{HospitalID: "H1", TriageCode: entities.TriageRed, Date: time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC), WaitTimeMinutes: 30},
			{HospitalID: "H2", TriageCode: entities.TriageGreen, Date: time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC), WaitTimeMinutes: 40},
		}

		written, err := service.Aggregate(ctx, records)

		assert.NoError(t, err)
		assert.Equal(t, 3, written)
		assert.Len(t, captured, 3)
	})

	t.Run("excludes weeks on or before the cutoff", func(t *testing.T) {
		waitTimeRepo := new(MockWaitTimeRepository)

		var captured []*entities.WeeklyWaitTime
		waitTimeRepo.On("UpsertWeekly", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).([]*entities.WeeklyWaitTime)
			}).
			Return(nil)

		service := services.NewAggregationService(waitTimeRepo, aggregationCutoff(), nil)

		records := []*entities.VisitRecord{
			// Week of 2024-11-25, before the cutoff.
			{HospitalID: "H", TriageCode: entities.TriageGreen, Date: time.Date(2024, 11, 28, 0, 0, 0, 0, time.UTC), WaitTimeMinutes: 99},
			// Cutoff day itself falls in the same pre-cutoff week.
			{HospitalID: "H", TriageCode: entities.TriageGreen, Date: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), WaitTimeMinutes: 99},
			{HospitalID: "H", TriageCode: entities.TriageGreen, Date: time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC), WaitTimeMinutes: 12},
		}

		written, err := service.Aggregate(ctx, records)

		assert.NoError(t, err)
		assert.Equal(t, 1, written)
		assert.Len(t, captured, 1)
		assert.Equal(t, time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC), captured[0].WeekStart)
		assert.Equal(t, 12.0, captured[0].AverageWaitMinutes)
	})

	t.Run("produces identical aggregates on re-run", func(t *testing.T) {
		waitTimeRepo := new(MockWaitTimeRepository)

		var runs [][]*entities.WeeklyWaitTime
		waitTimeRepo.On("UpsertWeekly", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				runs = append(runs, args.Get(1).([]*entities.WeeklyWaitTime))
			}).
			Return(nil)

		service := services.NewAggregationService(waitTimeRepo, aggregationCutoff(), nil)

		records := []*entities.VisitRecord{
			{HospitalID: "H", TriageCode: entities.TriageGreen, Date: time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC), WaitTimeMinutes: 10},
			{HospitalID: "H", TriageCode: entities.TriageGreen, Date: time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC), WaitTimeMinutes: 20},
		}

		_, err := service.Aggregate(ctx, records)
		assert.NoError(t, err)
		_, err = service.Aggregate(ctx, records)
		assert.NoError(t, err)

		assert.Len(t, runs, 2)
		assert.Equal(t, runs[0], runs[1])
	})

	t.Run("skips the store entirely when nothing survives the cutoff", func(t *testing.T) {
		waitTimeRepo := new(MockWaitTimeRepository)

		service := services.NewAggregationService(waitTimeRepo, aggregationCutoff(), nil)

		records := []*entities.VisitRecord{
			{HospitalID: "H", TriageCode: entities.TriageGreen, Date: time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC), WaitTimeMinutes: 10},
		}

		written, err := service.Aggregate(ctx, records)

		assert.NoError(t, err)
		assert.Equal(t, 0, written)
		waitTimeRepo.AssertNotCalled(t, "UpsertWeekly", mock.Anything, mock.Anything)
	})
}
