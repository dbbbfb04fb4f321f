package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetocare/backend/internal/adapters/database"
)

func TestSymptomAdapter_LoadIndex(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewSymptomAdapter(client)

	mock.ExpectQuery(`SELECT (.+) FROM "symptoms"`).
		WillReturnRows(sqlmock.NewRows([]string{"symptom_name", "specialization"}).
			AddRow("chest pain", "Cardiology").
			AddRow("fracture", "Orthopedics"))

	index, err := adapter.LoadIndex(context.Background())

	assert.NoError(t, err)
	require.NotNil(t, index)
	assert.Equal(t, []string{"Cardiology"}, index.SpecializationsFor([]string{"chest pain"}))
	assert.ElementsMatch(t, []string{"chest pain", "fracture"}, index.Symptoms())
}

func TestSymptomAdapter_LoadIndex_Empty(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewSymptomAdapter(client)

	mock.ExpectQuery(`SELECT (.+) FROM "symptoms"`).
		WillReturnRows(sqlmock.NewRows([]string{"symptom_name", "specialization"}))

	index, err := adapter.LoadIndex(context.Background())

	assert.NoError(t, err)
	require.NotNil(t, index)
	assert.Empty(t, index.SpecializationsFor([]string{"anything"}))
}
