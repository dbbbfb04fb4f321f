package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/repositories"
	"github.com/timetocare/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/timetocare/backend/pkg/errors"
)

// SymptomAdapter implements the SymptomRepository interface
type SymptomAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSymptomAdapter creates a new symptom adapter
func NewSymptomAdapter(client *postgres.Client) repositories.SymptomRepository {
	return &SymptomAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// LoadIndex retrieves the full symptom-to-specialization mapping
func (a *SymptomAdapter) LoadIndex(ctx context.Context) (*entities.SymptomIndex, error) {
	query, args, err := a.db.Select("symptom_name", "specialization").
		From("symptoms").
		Order(goqu.I("symptom_name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build symptom query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to load symptom index", err)
	}
	defer rows.Close()

	var mappings []entities.SymptomMapping
	for rows.Next() {
		var m entities.SymptomMapping
		if err := rows.Scan(&m.Symptom, &m.Specialization); err != nil {
			return nil, apperrors.NewInternalError("failed to scan symptom mapping", err)
		}
		mappings = append(mappings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("error iterating symptom mappings", err)
	}

	return entities.NewSymptomIndex(mappings), nil
}
