package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/repositories"
	"github.com/timetocare/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/timetocare/backend/pkg/errors"
)

// HospitalAdapter implements the HospitalRepository interface
type HospitalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHospitalAdapter creates a new hospital adapter
func NewHospitalAdapter(client *postgres.Client) repositories.HospitalRepository {
	return &HospitalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListAll retrieves every hospital ordered by name. The stable order makes
// recommendation tie-breaking deterministic.
func (a *HospitalAdapter) ListAll(ctx context.Context) ([]*entities.Hospital, error) {
	query, args, err := a.db.Select("name", "specialization", "latitude", "longitude").
		From("hospitals").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build hospital list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to list hospitals", err)
	}
	defer rows.Close()

	var hospitals []*entities.Hospital
	for rows.Next() {
		hospital := &entities.Hospital{}
		err := rows.Scan(
			&hospital.Name,
			&hospital.Specialization,
			&hospital.Location.Latitude,
			&hospital.Location.Longitude,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital", err)
		}
		hospitals = append(hospitals, hospital)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("error iterating hospitals", err)
	}

	return hospitals, nil
}

// GetByName retrieves a single hospital by name
func (a *HospitalAdapter) GetByName(ctx context.Context, name string) (*entities.Hospital, error) {
	query, args, err := a.db.Select("name", "specialization", "latitude", "longitude").
		From("hospitals").
		Where(goqu.Ex{"name": name}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build hospital query", err)
	}

	hospital := &entities.Hospital{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&hospital.Name,
		&hospital.Specialization,
		&hospital.Location.Latitude,
		&hospital.Location.Longitude,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital %q not found", name))
	}
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to get hospital", err)
	}

	return hospital, nil
}
