package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/repositories"
	"github.com/timetocare/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/timetocare/backend/pkg/errors"
)

// PatientAdapter implements the PatientRepository interface over the
// unassigned patient pool table.
type PatientAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client *postgres.Client) repositories.PatientRepository {
	return &PatientAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create adds a patient to the unassigned pool
func (a *PatientAdapter) Create(ctx context.Context, patient *entities.Patient) error {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	if patient.CreatedAt.IsZero() {
		patient.CreatedAt = time.Now()
	}

	record := goqu.Record{
		"id":         patient.ID,
		"name":       patient.Name,
		"symptoms":   pq.Array(patient.Symptoms),
		"latitude":   patient.Location.Latitude,
		"longitude":  patient.Location.Longitude,
		"created_at": patient.CreatedAt,
	}

	query, args, err := a.db.Insert("patients").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build patient insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewUnavailableError("failed to create patient", err)
	}

	return nil
}

// GetByID retrieves a patient by ID
func (a *PatientAdapter) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	query, args, err := a.db.Select("id", "name", "symptoms", "latitude", "longitude", "created_at").
		From("patients").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build patient query", err)
	}

	patient := &entities.Patient{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&patient.ID,
		&patient.Name,
		pq.Array(&patient.Symptoms),
		&patient.Location.Latitude,
		&patient.Location.Longitude,
		&patient.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to get patient", err)
	}

	return patient, nil
}

// List retrieves all unassigned patients in intake order
func (a *PatientAdapter) List(ctx context.Context) ([]*entities.Patient, error) {
	query, args, err := a.db.Select("id", "name", "symptoms", "latitude", "longitude", "created_at").
		From("patients").
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build patient list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to list patients", err)
	}
	defer rows.Close()

	var patients []*entities.Patient
	for rows.Next() {
		patient := &entities.Patient{}
		err := rows.Scan(
			&patient.ID,
			&patient.Name,
			pq.Array(&patient.Symptoms),
			&patient.Location.Latitude,
			&patient.Location.Longitude,
			&patient.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan patient", err)
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("error iterating patients", err)
	}

	return patients, nil
}

// Remove deletes a patient from the pool. A patient that is already gone
// yields NOT_FOUND so concurrent acceptors can detect the double removal.
func (a *PatientAdapter) Remove(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("patients").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build patient delete", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewUnavailableError("failed to remove patient", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", id))
	}

	return nil
}
