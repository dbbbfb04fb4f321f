package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/timetocare/backend/internal/api/handlers"
	"github.com/timetocare/backend/internal/application/services"
	"github.com/timetocare/backend/internal/domain/entities"
	apperrors "github.com/timetocare/backend/pkg/errors"
)

func newQueueHandler(queueRepo *MockQueueRepository) *handlers.QueueHandler {
	return handlers.NewQueueHandler(services.NewQueueStatsService(queueRepo))
}

func TestQueueHandler_GetStats(t *testing.T) {
	queueRepo := new(MockQueueRepository)
	handler := newQueueHandler(queueRepo)

	queueRepo.On("ActiveStats", mock.Anything, mock.Anything).Return([]*entities.QueueStats{
		{
			HospitalID: "Ortho-A",
			Total:      3,
			ByTriage:   map[entities.TriageCode]int{entities.TriageGreen: 2, entities.TriageRed: 1},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/queue/stats", nil)
	rec := httptest.NewRecorder()
	handler.GetStats(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Stats []*entities.QueueStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Stats, 1)
	assert.Equal(t, 3, body.Stats[0].Total)
	assert.Equal(t, 2, body.Stats[0].ByTriage[entities.TriageGreen])
}

func TestQueueHandler_GetHospitalCount(t *testing.T) {
	queueRepo := new(MockQueueRepository)
	handler := newQueueHandler(queueRepo)

	queueRepo.On("CountActive", mock.Anything, "Ortho-A", mock.Anything).Return(4, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/queue/Ortho-A/count", nil)
	req.SetPathValue("hospitalId", "Ortho-A")
	rec := httptest.NewRecorder()
	handler.GetHospitalCount(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		HospitalID string `json:"hospital_id"`
		Count      int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Ortho-A", body.HospitalID)
	assert.Equal(t, 4, body.Count)
}

func TestQueueHandler_GetStats_StoreDown(t *testing.T) {
	queueRepo := new(MockQueueRepository)
	handler := newQueueHandler(queueRepo)

	queueRepo.On("ActiveStats", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewUnavailableError("queue store down", assert.AnError))

	req := httptest.NewRequest(http.MethodGet, "/api/queue/stats", nil)
	rec := httptest.NewRecorder()
	handler.GetStats(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
