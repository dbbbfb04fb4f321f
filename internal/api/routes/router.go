package routes

import (
	"net/http"

	"github.com/timetocare/backend/internal/api/handlers"
	"github.com/timetocare/backend/internal/api/middleware"
	"github.com/timetocare/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	hospitalHandler       *handlers.HospitalHandler
	patientHandler        *handlers.PatientHandler
	recommendationHandler *handlers.RecommendationHandler
	queueHandler          *handlers.QueueHandler
	waitTimeHandler       *handlers.WaitTimeHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	hospitalHandler *handlers.HospitalHandler,
	patientHandler *handlers.PatientHandler,
	recommendationHandler *handlers.RecommendationHandler,
	queueHandler *handlers.QueueHandler,
	waitTimeHandler *handlers.WaitTimeHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		hospitalHandler:       hospitalHandler,
		patientHandler:        patientHandler,
		recommendationHandler: recommendationHandler,
		queueHandler:          queueHandler,
		waitTimeHandler:       waitTimeHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Hospital directory and symptom index
	r.mux.HandleFunc("GET /api/hospitals", r.hospitalHandler.ListHospitals)
	r.mux.HandleFunc("GET /api/hospitals/{name}", r.hospitalHandler.GetHospital)
	r.mux.HandleFunc("GET /api/symptoms", r.hospitalHandler.ListSymptoms)

	// Unassigned patient pool
	r.mux.HandleFunc("GET /api/patients", r.patientHandler.ListPatients)
	r.mux.HandleFunc("POST /api/patients", r.patientHandler.CreatePatient)
	r.mux.HandleFunc("GET /api/patients/{id}", r.patientHandler.GetPatient)
	r.mux.HandleFunc("DELETE /api/patients/{id}", r.patientHandler.RemovePatient)

	// Recommendation endpoints
	r.mux.HandleFunc("POST /api/recommendations/single", r.recommendationHandler.RecommendSingle)
	r.mux.HandleFunc("POST /api/recommendations/group", r.recommendationHandler.RecommendGroup)
	r.mux.HandleFunc("POST /api/recommendations/accept", r.recommendationHandler.AcceptRecommendation)

	// Live queue stats
	r.mux.HandleFunc("GET /api/queue/stats", r.queueHandler.GetStats)
	r.mux.HandleFunc("GET /api/queue/{hospitalId}/count", r.queueHandler.GetHospitalCount)

	// Historical wait times
	r.mux.HandleFunc("GET /api/wait-times", r.waitTimeHandler.ListAverages)
	r.mux.HandleFunc("GET /api/wait-times/last-week", r.waitTimeHandler.ListLastWeekAverages)
	r.mux.HandleFunc("POST /api/wait-times/aggregate", r.waitTimeHandler.Aggregate)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
