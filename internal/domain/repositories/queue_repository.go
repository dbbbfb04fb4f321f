package repositories

import (
	"context"
	"time"

	"github.com/timetocare/backend/internal/domain/entities"
)

// QueueRepository defines the contract for the live hospital queue store.
type QueueRepository interface {
	// Append writes a new queue entry.
	Append(ctx context.Context, entry *entities.QueueEntry) error

	// CountActive counts entries for the hospital whose treatment window has
	// not elapsed at the reference time. The reference time is explicit so
	// callers and tests control the clock.
	CountActive(ctx context.Context, hospitalID string, at time.Time) (int, error)

	// ActiveStats returns active entry counts for every hospital with at
	// least one active entry, broken down by triage code.
	ActiveStats(ctx context.Context, at time.Time) ([]*entities.QueueStats, error)
}

// PatientRepository defines the contract for the unassigned patient pool.
type PatientRepository interface {
	// Create adds a patient to the pool.
	Create(ctx context.Context, patient *entities.Patient) error

	// GetByID retrieves a patient by ID.
	GetByID(ctx context.Context, id string) (*entities.Patient, error)

	// List retrieves all unassigned patients in intake order.
	List(ctx context.Context) ([]*entities.Patient, error)

	// Remove deletes a patient from the pool. Removing a patient that is
	// already gone returns a NOT_FOUND error; callers decide whether that
	// outcome is fatal.
	Remove(ctx context.Context, id string) error
}
