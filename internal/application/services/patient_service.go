package services

import (
	"context"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/repositories"
)

// PatientService handles intake into and reads from the unassigned pool.
type PatientService struct {
	patientRepo repositories.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repositories.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// Create validates and stores a new patient.
func (s *PatientService) Create(ctx context.Context, patient *entities.Patient) error {
	if err := patient.Validate(); err != nil {
		return err
	}
	return s.patientRepo.Create(ctx, patient)
}

// GetByID retrieves a patient by ID.
func (s *PatientService) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	return s.patientRepo.GetByID(ctx, id)
}

// List retrieves all unassigned patients in intake order.
func (s *PatientService) List(ctx context.Context) ([]*entities.Patient, error) {
	return s.patientRepo.List(ctx)
}

// Remove deletes a patient from the pool.
func (s *PatientService) Remove(ctx context.Context, id string) error {
	return s.patientRepo.Remove(ctx, id)
}
