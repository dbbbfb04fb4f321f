package repositories

import (
	"context"

	"github.com/timetocare/backend/internal/domain/entities"
)

// HospitalRepository defines the read contract for the hospital directory.
// The directory is reference data: adapters only need to serve it, never
// mutate it through this interface.
type HospitalRepository interface {
	// ListAll retrieves every hospital in a stable order (by name). The
	// recommenders rely on this order for deterministic tie-breaking.
	ListAll(ctx context.Context) ([]*entities.Hospital, error)

	// GetByName retrieves a single hospital by its name.
	GetByName(ctx context.Context, name string) (*entities.Hospital, error)
}

// SymptomRepository defines the read contract for the symptom index.
type SymptomRepository interface {
	// LoadIndex retrieves the full symptom-to-specialization mapping.
	LoadIndex(ctx context.Context) (*entities.SymptomIndex, error)
}
