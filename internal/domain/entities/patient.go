package entities

import (
	"time"

	apperrors "github.com/timetocare/backend/pkg/errors"
)

// Patient represents an unassigned patient waiting for a hospital
// recommendation. Patients live in the unassigned pool from intake until a
// recommendation is accepted, at which point they are removed.
type Patient struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Symptoms  []string  `json:"symptoms" db:"-"`
	Location  Location  `json:"location" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Validate checks the fields required for intake. Coordinates are only
// range-checked; whether they are reachable is not this layer's concern.
func (p *Patient) Validate() error {
	if p.Name == "" {
		return apperrors.NewValidationError("patient name is required")
	}
	if len(p.Symptoms) == 0 {
		return apperrors.NewValidationError("at least one symptom is required")
	}
	if p.Location.Latitude < -90 || p.Location.Latitude > 90 {
		return apperrors.NewValidationError("latitude must be between -90 and 90")
	}
	if p.Location.Longitude < -180 || p.Location.Longitude > 180 {
		return apperrors.NewValidationError("longitude must be between -180 and 180")
	}
	return nil
}
