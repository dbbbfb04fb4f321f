package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timetocare/backend/internal/adapters/cache"
	"github.com/timetocare/backend/internal/adapters/database"
	"github.com/timetocare/backend/internal/adapters/events"
	"github.com/timetocare/backend/internal/api/handlers"
	"github.com/timetocare/backend/internal/api/middleware"
	"github.com/timetocare/backend/internal/api/routes"
	"github.com/timetocare/backend/internal/application/services"
	"github.com/timetocare/backend/internal/domain/providers"
	"github.com/timetocare/backend/internal/domain/repositories"
	"github.com/timetocare/backend/internal/infrastructure/clients/postgres"
	"github.com/timetocare/backend/internal/infrastructure/clients/redis"
	"github.com/timetocare/backend/internal/infrastructure/observability"
	"github.com/timetocare/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for real-time queue updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters

	// The hospital directory is immutable reference data, so reads go
	// through the cache when Redis is up.
	baseHospitalAdapter := database.NewHospitalAdapter(pgClient)
	var hospitalAdapter repositories.HospitalRepository
	if cacheProvider != nil {
		hospitalAdapter = database.NewCachedHospitalAdapter(baseHospitalAdapter, cacheProvider)
		log.Println("Hospital adapter wrapped with caching layer")
	} else {
		hospitalAdapter = baseHospitalAdapter
		log.Println("Hospital adapter running without cache (Redis unavailable)")
	}

	symptomAdapter := database.NewSymptomAdapter(pgClient)
	patientAdapter := database.NewPatientAdapter(pgClient)
	queueAdapter := database.NewQueueAdapter(pgClient)
	waitTimeAdapter := database.NewWaitTimeAdapter(pgClient)

	// Initialize services
	hospitalService := services.NewHospitalService(hospitalAdapter, symptomAdapter)
	patientService := services.NewPatientService(patientAdapter)
	recommendationService := services.NewRecommendationService(
		hospitalAdapter,
		symptomAdapter,
		patientAdapter,
		queueAdapter,
		waitTimeAdapter,
		metrics,
	)
	commitService := services.NewCommitService(queueAdapter, patientAdapter, eventBus)
	queueStatsService := services.NewQueueStatsService(queueAdapter)
	waitTimeService := services.NewWaitTimeService(waitTimeAdapter)
	aggregationService := services.NewAggregationService(waitTimeAdapter, cfg.Aggregation.Cutoff, metrics)

	// Initialize handlers
	hospitalHandler := handlers.NewHospitalHandler(hospitalService)
	patientHandler := handlers.NewPatientHandler(patientService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, commitService)
	queueHandler := handlers.NewQueueHandler(queueStatsService)
	waitTimeHandler := handlers.NewWaitTimeHandler(waitTimeService, aggregationService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		hospitalHandler,
		patientHandler,
		recommendationHandler,
		queueHandler,
		waitTimeHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
