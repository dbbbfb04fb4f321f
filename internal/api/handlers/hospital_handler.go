package handlers

import (
	"net/http"

	"github.com/timetocare/backend/internal/application/services"
)

// HospitalHandler serves the hospital directory and the symptom list.
type HospitalHandler struct {
	hospitalService *services.HospitalService
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(hospitalService *services.HospitalService) *HospitalHandler {
	return &HospitalHandler{hospitalService: hospitalService}
}

// ListHospitals handles GET /api/hospitals
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.hospitalService.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// GetHospital handles GET /api/hospitals/{name}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "hospital name is required")
		return
	}

	hospital, err := h.hospitalService.GetByName(r.Context(), name)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, hospital)
}

// ListSymptoms handles GET /api/symptoms
func (h *HospitalHandler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	symptoms, err := h.hospitalService.ListSymptoms(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"symptoms": symptoms,
		"count":    len(symptoms),
	})
}
