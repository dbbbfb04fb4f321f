package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetocare/backend/internal/adapters/database"
	"github.com/timetocare/backend/internal/domain/entities"
	apperrors "github.com/timetocare/backend/pkg/errors"
)

func TestPatientAdapter_Create(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewPatientAdapter(client)

	mock.ExpectExec(`INSERT INTO "patients"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	patient := &entities.Patient{
		Name:     "Anna",
		Symptoms: []string{"fracture"},
		Location: entities.Location{Latitude: 45.5, Longitude: 9.1},
	}

	err := adapter.Create(context.Background(), patient)

	assert.NoError(t, err)
	assert.NotEmpty(t, patient.ID, "create should assign an ID when none is set")
	assert.False(t, patient.CreatedAt.IsZero(), "create should stamp intake time")
}

func TestPatientAdapter_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := database.NewPatientAdapter(client)

		createdAt := time.Date(2024, 12, 5, 9, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT (.+) FROM "patients" WHERE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "symptoms", "latitude", "longitude", "created_at"}).
				AddRow("p-1", "Anna", pq.Array([]string{"fracture", "chest pain"}), 45.5, 9.1, createdAt))

		patient, err := adapter.GetByID(context.Background(), "p-1")

		assert.NoError(t, err)
		require.NotNil(t, patient)
		assert.Equal(t, "Anna", patient.Name)
		assert.Equal(t, []string{"fracture", "chest pain"}, patient.Symptoms)
		assert.Equal(t, 45.5, patient.Location.Latitude)
	})

	t.Run("not found", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := database.NewPatientAdapter(client)

		mock.ExpectQuery(`SELECT (.+) FROM "patients" WHERE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "symptoms", "latitude", "longitude", "created_at"}))

		patient, err := adapter.GetByID(context.Background(), "ghost")

		assert.Nil(t, patient)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestPatientAdapter_List_IntakeOrder(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewPatientAdapter(client)

	early := time.Date(2024, 12, 5, 8, 0, 0, 0, time.UTC)
	late := time.Date(2024, 12, 5, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM "patients" ORDER BY`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "symptoms", "latitude", "longitude", "created_at"}).
			AddRow("p-1", "Anna", pq.Array([]string{"fracture"}), 45.5, 9.1, early).
			AddRow("p-2", "Bruno", pq.Array([]string{"chest pain"}), 45.4, 9.2, late))

	patients, err := adapter.List(context.Background())

	assert.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "p-1", patients[0].ID)
	assert.Equal(t, "p-2", patients[1].ID)
}

func TestPatientAdapter_Remove(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := database.NewPatientAdapter(client)

		mock.ExpectExec(`DELETE FROM "patients"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, adapter.Remove(context.Background(), "p-1"))
	})

	t.Run("already gone", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := database.NewPatientAdapter(client)

		mock.ExpectExec(`DELETE FROM "patients"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := adapter.Remove(context.Background(), "p-1")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}
