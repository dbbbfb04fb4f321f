package main

import (
	"context"
	"log"
	"time"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/infrastructure/clients/postgres"
	"github.com/timetocare/backend/pkg/config"
)

// Seeds the hospital directory, the symptom index and a few weeks of
// historical wait times so the recommenders have data to work with on a
// fresh database. Idempotent: re-running replaces what it wrote.

var hospitals = []entities.Hospital{
	{Name: "Ospedale Niguarda", Specialization: "Cardiology", Location: entities.Location{Latitude: 45.5086, Longitude: 9.1906}},
	{Name: "Policlinico di Milano", Specialization: "General Medicine", Location: entities.Location{Latitude: 45.4582, Longitude: 9.1955}},
	{Name: "Istituto Ortopedico Galeazzi", Specialization: "Orthopedics", Location: entities.Location{Latitude: 45.5123, Longitude: 9.1090}},
	{Name: "Ospedale San Raffaele", Specialization: "Neurology", Location: entities.Location{Latitude: 45.5056, Longitude: 9.2638}},
	{Name: "Ospedale San Paolo", Specialization: "Orthopedics", Location: entities.Location{Latitude: 45.4339, Longitude: 9.1582}},
	{Name: "Ospedale Fatebenefratelli", Specialization: "Cardiology", Location: entities.Location{Latitude: 45.4757, Longitude: 9.1895}},
	{Name: "Ospedale Buzzi", Specialization: "Pediatrics", Location: entities.Location{Latitude: 45.4947, Longitude: 9.1630}},
}

var symptomMappings = []entities.SymptomMapping{
	{Symptom: "chest pain", Specialization: "Cardiology"},
	{Symptom: "palpitations", Specialization: "Cardiology"},
	{Symptom: "shortness of breath", Specialization: "Cardiology"},
	{Symptom: "fracture", Specialization: "Orthopedics"},
	{Symptom: "joint pain", Specialization: "Orthopedics"},
	{Symptom: "back pain", Specialization: "Orthopedics"},
	{Symptom: "headache", Specialization: "Neurology"},
	{Symptom: "dizziness", Specialization: "Neurology"},
	{Symptom: "seizure", Specialization: "Neurology"},
	{Symptom: "fever", Specialization: "General Medicine"},
	{Symptom: "fatigue", Specialization: "General Medicine"},
	{Symptom: "child fever", Specialization: "Pediatrics"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()
	db := pgClient.DB()

	// 1. Seed hospitals
	for _, h := range hospitals {
		_, err := db.ExecContext(ctx, `
			INSERT INTO hospitals (name, specialization, latitude, longitude)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO UPDATE SET
				specialization = EXCLUDED.specialization,
				latitude = EXCLUDED.latitude,
				longitude = EXCLUDED.longitude`,
			h.Name, h.Specialization, h.Location.Latitude, h.Location.Longitude,
		)
		if err != nil {
			log.Fatalf("Failed to seed hospital %s: %v", h.Name, err)
		}
	}
	log.Printf("Seeded %d hospitals", len(hospitals))

	// 2. Seed symptom mappings
	for _, m := range symptomMappings {
		_, err := db.ExecContext(ctx, `
			INSERT INTO symptoms (symptom_name, specialization)
			VALUES ($1, $2)
			ON CONFLICT (symptom_name) DO UPDATE SET
				specialization = EXCLUDED.specialization`,
			m.Symptom, m.Specialization,
		)
		if err != nil {
			log.Fatalf("Failed to seed symptom %s: %v", m.Symptom, err)
		}
	}
	log.Printf("Seeded %d symptom mappings", len(symptomMappings))

	// 3. Seed historical wait times: four recent Mondays so the reference
	// week lookup has depth.
	weekStart := entities.WeekStartOf(time.Now().UTC()).AddDate(0, 0, -21)
	rows := 0
	for week := 0; week < 4; week++ {
		ws := weekStart.AddDate(0, 0, week*7)
		for i, h := range hospitals {
			for j, triage := range entities.ValidTriageCodes() {
				// Deterministic spread so scores differ between hospitals.
				avg := float64(10 + i*7 + j*15 + week*2)
				_, err := db.ExecContext(ctx, `
					INSERT INTO historical_wait_times (hospital_id, triage_code, week_start, average_wait_time)
					VALUES ($1, $2, $3, $4)
					ON CONFLICT (hospital_id, triage_code, week_start)
					DO UPDATE SET average_wait_time = EXCLUDED.average_wait_time`,
					h.Name, string(triage), ws, avg,
				)
				if err != nil {
					log.Fatalf("Failed to seed wait time for %s: %v", h.Name, err)
				}
				rows++
			}
		}
	}
	log.Printf("Seeded %d historical wait time rows", rows)

	log.Println("Seeding complete")
}
