package services

import (
	"context"
	"fmt"
	"time"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/providers"
	"github.com/timetocare/backend/internal/domain/repositories"
	"github.com/timetocare/backend/internal/infrastructure/observability"
	apperrors "github.com/timetocare/backend/pkg/errors"
)

// CommitService turns an accepted recommendation into durable state: a queue
// entry at the chosen hospital and removal from the unassigned pool.
type CommitService struct {
	queueRepo   repositories.QueueRepository
	patientRepo repositories.PatientRepository
	eventBus    providers.EventBus
}

// NewCommitService creates a new commit service. eventBus may be nil when no
// live dashboard is attached.
func NewCommitService(queueRepo repositories.QueueRepository, patientRepo repositories.PatientRepository, eventBus providers.EventBus) *CommitService {
	return &CommitService{
		queueRepo:   queueRepo,
		patientRepo: patientRepo,
		eventBus:    eventBus,
	}
}

// Accept writes the queue entry, then removes the patient from the pool.
// A patient already removed by a concurrent accept is tolerated: the first
// writer won and the outcome is still a consistent committed state. Any
// other removal failure leaves the patient both queued and unassigned; that
// half-committed state is surfaced as a PARTIAL_COMMIT error naming the
// orphaned entry.
func (s *CommitService) Accept(ctx context.Context, patientID string, rec *entities.Recommendation, at time.Time) (*entities.QueueEntry, error) {
	ctx, span := observability.StartSpan(ctx, "CommitService.Accept")
	defer span.End()

	if patientID == "" {
		return nil, apperrors.NewValidationError("patient id is required")
	}
	if rec == nil || rec.Hospital == "" {
		return nil, apperrors.NewValidationError("recommendation with a hospital is required")
	}
	if !rec.TriageCode.IsValid() {
		return nil, apperrors.NewValidationError("invalid triage code: " + string(rec.TriageCode))
	}

	entry := &entities.QueueEntry{
		HospitalID:      rec.Hospital,
		TriageCode:      rec.TriageCode,
		WaitTimeMinutes: rec.WaitTimeMinutes,
		Timestamp:       at,
	}
	if err := s.queueRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.patientRepo.Remove(ctx, patientID); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			// Already removed by a concurrent accept. First writer wins;
			// the commit still ends in a consistent state.
			observability.LoggerFromContext(ctx).Warn().
				Str("patient_id", patientID).
				Msg("patient already removed from pool during accept")
		} else {
			return nil, apperrors.NewPartialCommitError(
				fmt.Sprintf("queue entry %s written but patient %s not removed from pool", entry.ID, patientID),
				err,
			)
		}
	}

	s.publishAdmission(ctx, entry)
	return entry, nil
}

// publishAdmission notifies live dashboards of the queue change. Delivery is
// best effort; a publish failure never rolls back the commit.
func (s *CommitService) publishAdmission(ctx context.Context, entry *entities.QueueEntry) {
	if s.eventBus == nil {
		return
	}

	event := entities.NewQueueEvent(entry.HospitalID, entities.QueueEventTypeAdmission, entry.TriageCode, entry.WaitTimeMinutes)
	for _, channel := range []string{providers.EventChannelQueueUpdates, providers.GetHospitalChannel(entry.HospitalID)} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("channel", channel).
				Str("hospital_id", entry.HospitalID).
				Msg("failed to publish queue event")
		}
	}
}
