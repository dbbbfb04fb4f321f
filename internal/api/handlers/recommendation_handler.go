package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/timetocare/backend/internal/application/services"
	"github.com/timetocare/backend/internal/domain/entities"
)

// RecommendationHandler serves the recommendation and acceptance endpoints.
type RecommendationHandler struct {
	recommendationService *services.RecommendationService
	commitService         *services.CommitService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendationService *services.RecommendationService, commitService *services.CommitService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		commitService:         commitService,
	}
}

type singleRecommendationRequest struct {
	PatientID  string              `json:"patient_id"`
	TriageCode entities.TriageCode `json:"triage_code"`
}

// RecommendSingle handles POST /api/recommendations/single
func (h *RecommendationHandler) RecommendSingle(w http.ResponseWriter, r *http.Request) {
	var req singleRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PatientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient_id is required")
		return
	}

	rec, err := h.recommendationService.Recommend(r.Context(), req.PatientID, req.TriageCode, time.Now())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	// No match is a valid outcome, not an error.
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recommendation": rec,
		"matched":        rec != nil,
	})
}

// RecommendGroup handles POST /api/recommendations/group
func (h *RecommendationHandler) RecommendGroup(w http.ResponseWriter, r *http.Request) {
	result, err := h.recommendationService.RecommendGroup(r.Context(), time.Now())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type acceptRecommendationRequest struct {
	PatientID      string                   `json:"patient_id"`
	Recommendation *entities.Recommendation `json:"recommendation"`
}

// AcceptRecommendation handles POST /api/recommendations/accept
func (h *RecommendationHandler) AcceptRecommendation(w http.ResponseWriter, r *http.Request) {
	var req acceptRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.commitService.Accept(r.Context(), req.PatientID, req.Recommendation, time.Now())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"queue_entry": entry,
	})
}
