package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/timetocare/backend/internal/adapters/database"
	"github.com/timetocare/backend/internal/adapters/events"
	"github.com/timetocare/backend/internal/application/services"
	"github.com/timetocare/backend/internal/domain/providers"
	"github.com/timetocare/backend/internal/infrastructure/clients/postgres"
	"github.com/timetocare/backend/internal/infrastructure/clients/redis"
	"github.com/timetocare/backend/internal/infrastructure/observability"
	"github.com/timetocare/backend/pkg/config"
)

// Feeds synthetic queue activity into the system at a fixed interval so
// dashboards have live data outside of intake hours. Stops cleanly on
// SIGINT/SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Redis unavailable, queue events will not be published: %v", err)
	} else {
		defer redisClient.Close()
		eventBus = events.NewRedisEventBus(redisClient)
	}

	hospitalRepo := database.NewHospitalAdapter(pgClient)
	queueRepo := database.NewQueueAdapter(pgClient)

	svc := services.NewSimulationService(hospitalRepo, queueRepo, eventBus, cfg.Simulator.Interval)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Simulator failed: %v", err)
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}
}
