package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/timetocare/backend/internal/adapters/database"
	"github.com/timetocare/backend/internal/application/services"
	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/infrastructure/clients/postgres"
	"github.com/timetocare/backend/internal/infrastructure/observability"
	"github.com/timetocare/backend/pkg/config"
)

// Batch job: reads raw visit records from a CSV export and upserts weekly
// averages. Columns: hospital_id, triage_code, date (YYYY-MM-DD),
// wait_time_minutes. Safe to re-run on the same input.
func main() {
	var inputPath string
	flag.StringVar(&inputPath, "input", "", "Path to the visit records CSV")
	flag.Parse()

	if inputPath == "" {
		log.Fatal("-input is required")
	}

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

	records, err := readVisitRecords(inputPath)
	if err != nil {
		log.Fatalf("Failed to read visit records: %v", err)
	}
	log.Printf("Read %d visit records from %s", len(records), inputPath)

	waitTimeRepo := database.NewWaitTimeAdapter(pgClient)
	svc := services.NewAggregationService(waitTimeRepo, cfg.Aggregation.Cutoff, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	written, err := svc.Aggregate(ctx, records)
	if err != nil {
		log.Fatalf("Aggregation failed: %v", err)
	}

	log.Printf("Wrote %d weekly rows in %v", written, time.Since(start))
}

func readVisitRecords(path string) ([]*entities.VisitRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []*entities.VisitRecord
	for i, row := range rows {
		// Skip a header row if present.
		if i == 0 && row[0] == "hospital_id" {
			continue
		}
		if len(row) < 4 {
			log.Printf("Skipping malformed row %d", i+1)
			continue
		}

		triage := entities.TriageCode(row[1])
		if !triage.IsValid() {
			log.Printf("Skipping row %d: invalid triage code %q", i+1, row[1])
			continue
		}
		date, err := time.Parse("2006-01-02", row[2])
		if err != nil {
			log.Printf("Skipping row %d: invalid date %q", i+1, row[2])
			continue
		}
		waitMinutes, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			log.Printf("Skipping row %d: invalid wait time %q", i+1, row[3])
			continue
		}

		records = append(records, &entities.VisitRecord{
			HospitalID:      row[0],
			TriageCode:      triage,
			Date:            date,
			WaitTimeMinutes: waitMinutes,
		})
	}

	return records, nil
}
