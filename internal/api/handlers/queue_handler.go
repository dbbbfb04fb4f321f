package handlers

import (
	"net/http"
	"time"

	"github.com/timetocare/backend/internal/application/services"
)

// QueueHandler serves live queue congestion numbers.
type QueueHandler struct {
	queueStatsService *services.QueueStatsService
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(queueStatsService *services.QueueStatsService) *QueueHandler {
	return &QueueHandler{queueStatsService: queueStatsService}
}

// GetStats handles GET /api/queue/stats
func (h *QueueHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	at := time.Now()
	stats, err := h.queueStatsService.Stats(r.Context(), at)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"as_of": at,
		"stats": stats,
	})
}

// GetHospitalCount handles GET /api/queue/{hospitalId}/count
func (h *QueueHandler) GetHospitalCount(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("hospitalId")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	at := time.Now()
	count, err := h.queueStatsService.CountActive(r.Context(), hospitalID, at)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospital_id": hospitalID,
		"as_of":       at,
		"count":       count,
	})
}
