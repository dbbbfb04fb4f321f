package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/timetocare/backend/internal/application/services"
	"github.com/timetocare/backend/internal/domain/entities"
)

// WaitTimeHandler serves historical wait-time tables and the on-demand
// aggregation trigger.
type WaitTimeHandler struct {
	waitTimeService    *services.WaitTimeService
	aggregationService *services.AggregationService
}

// NewWaitTimeHandler creates a new wait time handler
func NewWaitTimeHandler(waitTimeService *services.WaitTimeService, aggregationService *services.AggregationService) *WaitTimeHandler {
	return &WaitTimeHandler{
		waitTimeService:    waitTimeService,
		aggregationService: aggregationService,
	}
}

// ListAverages handles GET /api/wait-times
func (h *WaitTimeHandler) ListAverages(w http.ResponseWriter, r *http.Request) {
	averages, err := h.waitTimeService.ListAverages(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"wait_times": averages,
		"count":      len(averages),
	})
}

// ListLastWeekAverages handles GET /api/wait-times/last-week
func (h *WaitTimeHandler) ListLastWeekAverages(w http.ResponseWriter, r *http.Request) {
	averages, err := h.waitTimeService.ListLastWeekAverages(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"wait_times": averages,
		"count":      len(averages),
	})
}

type visitRecordRequest struct {
	HospitalID      string  `json:"hospital_id"`
	TriageCode      string  `json:"triage_code"`
	Date            string  `json:"date"`
	WaitTimeMinutes float64 `json:"wait_time_minutes"`
}

type aggregateRequest struct {
	Records []visitRecordRequest `json:"records"`
}

// Aggregate handles POST /api/wait-times/aggregate
func (h *WaitTimeHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	var req aggregateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Records) == 0 {
		respondWithError(w, http.StatusBadRequest, "at least one visit record is required")
		return
	}

	records := make([]*entities.VisitRecord, 0, len(req.Records))
	for _, rec := range req.Records {
		triage := entities.TriageCode(rec.TriageCode)
		if !triage.IsValid() {
			respondWithError(w, http.StatusBadRequest, "invalid triage code: "+rec.TriageCode)
			return
		}
		date, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid date: "+rec.Date)
			return
		}
		records = append(records, &entities.VisitRecord{
			HospitalID:      rec.HospitalID,
			TriageCode:      triage,
			Date:            date,
			WaitTimeMinutes: rec.WaitTimeMinutes,
		})
	}

	written, err := h.aggregationService.Aggregate(r.Context(), records)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records":     len(records),
		"weekly_rows": written,
	})
}
