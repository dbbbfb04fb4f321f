package services

import (
	"context"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/repositories"
)

// HospitalService serves the hospital directory and the symptom index.
type HospitalService struct {
	hospitalRepo repositories.HospitalRepository
	symptomRepo  repositories.SymptomRepository
}

// NewHospitalService creates a new hospital service
func NewHospitalService(hospitalRepo repositories.HospitalRepository, symptomRepo repositories.SymptomRepository) *HospitalService {
	return &HospitalService{
		hospitalRepo: hospitalRepo,
		symptomRepo:  symptomRepo,
	}
}

// List retrieves every hospital in stable name order.
func (s *HospitalService) List(ctx context.Context) ([]*entities.Hospital, error) {
	return s.hospitalRepo.ListAll(ctx)
}

// GetByName retrieves a single hospital by name.
func (s *HospitalService) GetByName(ctx context.Context, name string) (*entities.Hospital, error) {
	return s.hospitalRepo.GetByName(ctx, name)
}

// ListSymptoms returns all known symptom names.
func (s *HospitalService) ListSymptoms(ctx context.Context) ([]string, error) {
	index, err := s.symptomRepo.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}
	return index.Symptoms(), nil
}
