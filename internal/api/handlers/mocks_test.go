package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/timetocare/backend/internal/domain/entities"
)

type MockHospitalRepository struct {
	mock.Mock
}

func (m *MockHospitalRepository) ListAll(ctx context.Context) ([]*entities.Hospital, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Hospital), args.Error(1)
}

func (m *MockHospitalRepository) GetByName(ctx context.Context, name string) (*entities.Hospital, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Hospital), args.Error(1)
}

type MockSymptomRepository struct {
	mock.Mock
}

func (m *MockSymptomRepository) LoadIndex(ctx context.Context) (*entities.SymptomIndex, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SymptomIndex), args.Error(1)
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *entities.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) List(ctx context.Context) ([]*entities.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockQueueRepository struct {
	mock.Mock
}

func (m *MockQueueRepository) Append(ctx context.Context, entry *entities.QueueEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockQueueRepository) CountActive(ctx context.Context, hospitalID string, at time.Time) (int, error) {
	args := m.Called(ctx, hospitalID, at)
	return args.Int(0), args.Error(1)
}

func (m *MockQueueRepository) ActiveStats(ctx context.Context, at time.Time) ([]*entities.QueueStats, error) {
	args := m.Called(ctx, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.QueueStats), args.Error(1)
}

type MockWaitTimeRepository struct {
	mock.Mock
}

func (m *MockWaitTimeRepository) UpsertWeekly(ctx context.Context, aggregates []*entities.WeeklyWaitTime) error {
	args := m.Called(ctx, aggregates)
	return args.Error(0)
}

func (m *MockWaitTimeRepository) LatestWeekStart(ctx context.Context) (time.Time, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Bool(1), args.Error(2)
}

func (m *MockWaitTimeRepository) WeeklyAverage(ctx context.Context, hospitalID string, triage entities.TriageCode, weekStart time.Time) (float64, bool, error) {
	args := m.Called(ctx, hospitalID, triage, weekStart)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

func (m *MockWaitTimeRepository) ListAverages(ctx context.Context) ([]*entities.HospitalWaitTime, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.HospitalWaitTime), args.Error(1)
}

func (m *MockWaitTimeRepository) ListAveragesForWeek(ctx context.Context, weekStart time.Time) ([]*entities.HospitalWaitTime, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.HospitalWaitTime), args.Error(1)
}
