package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetocare/backend/internal/adapters/database"
	"github.com/timetocare/backend/internal/domain/entities"
	apperrors "github.com/timetocare/backend/pkg/errors"
)

func TestQueueAdapter_Append(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewQueueAdapter(client)

	mock.ExpectExec(`INSERT INTO "hospital_queue"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry := &entities.QueueEntry{
		HospitalID:      "Ortho-A",
		TriageCode:      entities.TriageGreen,
		WaitTimeMinutes: 30,
		Timestamp:       time.Date(2024, 12, 5, 10, 0, 0, 0, time.UTC),
	}

	err := adapter.Append(context.Background(), entry)

	assert.NoError(t, err)
	assert.NotEmpty(t, entry.ID, "append should assign an ID when none is set")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueAdapter_Append_KeepsExplicitID(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewQueueAdapter(client)

	mock.ExpectExec(`INSERT INTO "hospital_queue"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry := &entities.QueueEntry{
		ID:              "entry-1",
		HospitalID:      "Ortho-A",
		TriageCode:      entities.TriageRed,
		WaitTimeMinutes: 5,
		Timestamp:       time.Now().UTC(),
	}

	err := adapter.Append(context.Background(), entry)

	assert.NoError(t, err)
	assert.Equal(t, "entry-1", entry.ID)
}

func TestQueueAdapter_CountActive(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewQueueAdapter(client)

	mock.ExpectQuery(`SELECT COUNT(.+) FROM "hospital_queue"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := adapter.CountActive(context.Background(), "Ortho-A", time.Now().UTC())

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestQueueAdapter_CountActive_StoreDown(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewQueueAdapter(client)

	mock.ExpectQuery(`SELECT COUNT(.+) FROM "hospital_queue"`).
		WillReturnError(assert.AnError)

	_, err := adapter.CountActive(context.Background(), "Ortho-A", time.Now().UTC())

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}

func TestQueueAdapter_ActiveStats(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewQueueAdapter(client)

	mock.ExpectQuery(`SELECT (.+) FROM "hospital_queue"`).
		WillReturnRows(sqlmock.NewRows([]string{"hospital_id", "triage_code", "num_patients"}).
			AddRow("Ortho-A", "Green", 2).
			AddRow("Ortho-A", "Red", 1).
			AddRow("Ortho-B", "Yellow", 4))

	stats, err := adapter.ActiveStats(context.Background(), time.Now().UTC())

	assert.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "Ortho-A", stats[0].HospitalID)
	assert.Equal(t, 3, stats[0].Total)
	assert.Equal(t, 2, stats[0].ByTriage[entities.TriageGreen])
	assert.Equal(t, 1, stats[0].ByTriage[entities.TriageRed])

	assert.Equal(t, "Ortho-B", stats[1].HospitalID)
	assert.Equal(t, 4, stats[1].Total)
	assert.Equal(t, 4, stats[1].ByTriage[entities.TriageYellow])
}

func TestQueueAdapter_ActiveStats_Empty(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewQueueAdapter(client)

	mock.ExpectQuery(`SELECT (.+) FROM "hospital_queue"`).
		WillReturnRows(sqlmock.NewRows([]string{"hospital_id", "triage_code", "num_patients"}))

	stats, err := adapter.ActiveStats(context.Background(), time.Now().UTC())

	assert.NoError(t, err)
	assert.Empty(t, stats)
}
