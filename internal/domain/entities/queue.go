package entities

import "time"

// QueueEntry represents a patient admitted into a hospital queue. An entry is
// never deleted when treatment finishes; it simply ages out once its expected
// treatment window has elapsed.
type QueueEntry struct {
	ID              string     `json:"id" db:"id"`
	HospitalID      string     `json:"hospital_id" db:"hospital_id"`
	TriageCode      TriageCode `json:"triage_code" db:"triage_code"`
	WaitTimeMinutes float64    `json:"wait_time_minutes" db:"wait_time_minutes"`
	Timestamp       time.Time  `json:"timestamp" db:"timestamp"`
}

// EndTime returns the moment the entry stops counting toward congestion.
func (e *QueueEntry) EndTime() time.Time {
	return e.Timestamp.Add(time.Duration(e.WaitTimeMinutes * float64(time.Minute)))
}

// ActiveAt reports whether the entry still counts toward the hospital's
// congestion at the given reference time.
func (e *QueueEntry) ActiveAt(at time.Time) bool {
	return !e.EndTime().Before(at)
}

// QueueStats aggregates active queue entries for one hospital, broken down by
// triage code. Used by the dashboard endpoints.
type QueueStats struct {
	HospitalID string             `json:"hospital_id"`
	Total      int                `json:"total"`
	ByTriage   map[TriageCode]int `json:"by_triage"`
}
