package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// QueueEventType represents the type of queue change event
type QueueEventType string

const (
	// QueueEventTypeAdmission is emitted when an accepted recommendation
	// places a patient into a hospital queue.
	QueueEventTypeAdmission QueueEventType = "admission"

	// QueueEventTypeSimulated is emitted by the real-time data simulator.
	QueueEventTypeSimulated QueueEventType = "simulated"
)

// QueueEvent represents a real-time change to a hospital queue, published so
// live dashboards can refresh without polling.
type QueueEvent struct {
	ID              string         `json:"id"`
	HospitalID      string         `json:"hospital_id"`
	EventType       QueueEventType `json:"event_type"`
	TriageCode      TriageCode     `json:"triage_code"`
	WaitTimeMinutes float64        `json:"wait_time_minutes"`
	Timestamp       time.Time      `json:"timestamp"`
}

// NewQueueEvent creates a new queue event
func NewQueueEvent(hospitalID string, eventType QueueEventType, triage TriageCode, waitMinutes float64) *QueueEvent {
	return &QueueEvent{
		ID:              generateEventID(),
		HospitalID:      hospitalID,
		EventType:       eventType,
		TriageCode:      triage,
		WaitTimeMinutes: waitMinutes,
		Timestamp:       time.Now(),
	}
}

func generateEventID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}
