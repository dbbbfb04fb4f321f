package entities

import "time"

// VisitRecord is a raw per-visit observation fed into the weekly aggregation
// job.
type VisitRecord struct {
	HospitalID      string     `json:"hospital_id"`
	TriageCode      TriageCode `json:"triage_code"`
	Date            time.Time  `json:"date"`
	WaitTimeMinutes float64    `json:"wait_time_minutes"`
}

// WeeklyWaitTime is the aggregated average wait time for one hospital, triage
// code and ISO week. WeekStart is always the Monday of the week containing
// the source dates. The composite key (hospital, triage, week start) has
// upsert semantics: re-aggregation replaces the stored average.
type WeeklyWaitTime struct {
	HospitalID         string     `json:"hospital_id" db:"hospital_id"`
	TriageCode         TriageCode `json:"triage_code" db:"triage_code"`
	WeekStart          time.Time  `json:"week_start" db:"week_start"`
	AverageWaitMinutes float64    `json:"average_wait_minutes" db:"average_wait_time"`
}

// HospitalWaitTime is a read-model row for the wait-time dashboard tables:
// one average per hospital and triage code.
type HospitalWaitTime struct {
	HospitalID         string     `json:"hospital_id" db:"hospital_id"`
	TriageCode         TriageCode `json:"triage_code" db:"triage_code"`
	AverageWaitMinutes float64    `json:"average_wait_minutes" db:"avg_wait_time"`
}

// WeekStartOf returns the Monday of the ISO week containing t, truncated to
// midnight in t's location.
func WeekStartOf(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -daysSinceMonday)
}
