package services

import (
	"context"
	"time"

	"github.com/timetocare/backend/internal/assignment"
	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/repositories"
	"github.com/timetocare/backend/internal/geo"
	"github.com/timetocare/backend/internal/infrastructure/observability"
	apperrors "github.com/timetocare/backend/pkg/errors"
)

// missingWaitPenaltyMinutes stands in for an absent historical average.
// Large enough to rank a data-less hospital behind any realistic candidate
// while keeping scores finite and comparable.
const missingWaitPenaltyMinutes = 240.0

// scoreHospital blends distance, historical wait and live queue size onto a
// single comparable scale. Every 10 minutes of historical wait weighs like
// 1 km of travel; every patient ahead in the queue weighs like 2 km.
func scoreHospital(distanceKm, waitMinutes float64, queueSize int) float64 {
	return distanceKm + waitMinutes/10 + float64(queueSize)*2
}

// groupCost is the cost-matrix cell for batch assignment. Distance carries
// extra weight so the matcher avoids sending patients far afield just to
// shave minutes off a queue.
func groupCost(distanceKm, waitMinutes float64, queueSize int) float64 {
	return 1.5*distanceKm + waitMinutes/10 + float64(queueSize)*2
}

// RecommendationService produces hospital recommendations for single
// patients and for the whole unassigned pool. All methods are read-only;
// persistence happens in CommitService after operator acceptance.
type RecommendationService struct {
	hospitalRepo repositories.HospitalRepository
	symptomRepo  repositories.SymptomRepository
	patientRepo  repositories.PatientRepository
	queueRepo    repositories.QueueRepository
	waitTimeRepo repositories.WaitTimeRepository
	metrics      *observability.Metrics
}

// NewRecommendationService creates a new recommendation service. metrics may
// be nil, in which case instrumentation is skipped.
func NewRecommendationService(
	hospitalRepo repositories.HospitalRepository,
	symptomRepo repositories.SymptomRepository,
	patientRepo repositories.PatientRepository,
	queueRepo repositories.QueueRepository,
	waitTimeRepo repositories.WaitTimeRepository,
	metrics *observability.Metrics,
) *RecommendationService {
	return &RecommendationService{
		hospitalRepo: hospitalRepo,
		symptomRepo:  symptomRepo,
		patientRepo:  patientRepo,
		queueRepo:    queueRepo,
		waitTimeRepo: waitTimeRepo,
		metrics:      metrics,
	}
}

// candidateState carries the per-hospital inputs a scoring pass needs. The
// reference week lookup is resolved once per call so every hospital is
// compared against the same week.
type candidateState struct {
	refWeek time.Time
	haveRef bool
}

func (s *RecommendationService) loadState(ctx context.Context) (*candidateState, error) {
	refWeek, haveRef, err := s.waitTimeRepo.LatestWeekStart(ctx)
	if err != nil {
		return nil, err
	}
	return &candidateState{refWeek: refWeek, haveRef: haveRef}, nil
}

// historicalWait returns the reference-week average for the hospital and
// triage code, substituting the sentinel penalty when no record exists.
func (s *RecommendationService) historicalWait(ctx context.Context, st *candidateState, hospitalID string, triage entities.TriageCode) (float64, error) {
	if !st.haveRef {
		return missingWaitPenaltyMinutes, nil
	}
	avg, found, err := s.waitTimeRepo.WeeklyAverage(ctx, hospitalID, triage, st.refWeek)
	if err != nil {
		return 0, err
	}
	if !found {
		return missingWaitPenaltyMinutes, nil
	}
	return avg, nil
}

// Recommend scores every hospital covering any of the patient's mapped
// symptoms and returns the cheapest one. A nil result with a nil error means
// no hospital matches; callers present that as "no recommendation
// available", not as a failure.
func (s *RecommendationService) Recommend(ctx context.Context, patientID string, triage entities.TriageCode, at time.Time) (*entities.Recommendation, error) {
	ctx, span := observability.StartSpan(ctx, "RecommendationService.Recommend")
	defer span.End()

	if !triage.IsValid() {
		return nil, apperrors.NewValidationError("invalid triage code: " + string(triage))
	}

	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	index, err := s.symptomRepo.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}

	eligible := index.SpecializationsFor(patient.Symptoms)
	if len(eligible) == 0 {
		s.recordRecommendation(ctx, "single", false)
		return nil, nil
	}
	eligibleSet := make(map[string]struct{}, len(eligible))
	for _, spec := range eligible {
		eligibleSet[spec] = struct{}{}
	}

	hospitals, err := s.hospitalRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}

	// Hospitals arrive in stable name order, so a strict-minimum comparison
	// makes tie-breaking deterministic across calls.
	var best *entities.Recommendation
	for _, h := range hospitals {
		if _, ok := eligibleSet[h.Specialization]; !ok {
			continue
		}

		distance := geo.Distance(patient.Location.Latitude, patient.Location.Longitude, h.Location.Latitude, h.Location.Longitude)

		wait, err := s.historicalWait(ctx, st, h.Name, triage)
		if err != nil {
			return nil, err
		}

		queueSize, err := s.queueRepo.CountActive(ctx, h.Name, at)
		if err != nil {
			return nil, err
		}

		score := scoreHospital(distance, wait, queueSize)
		if best == nil || score < best.Score {
			best = &entities.Recommendation{
				Hospital:        h.Name,
				Score:           score,
				DistanceKm:      distance,
				WaitTimeMinutes: wait,
				QueueSize:       queueSize,
				TriageCode:      triage,
			}
		}
	}

	s.recordRecommendation(ctx, "single", best != nil)
	return best, nil
}

// RecommendGroup assigns every patient in the unassigned pool to a hospital,
// minimizing total cost within each specialization group. Patients the pass
// cannot place are reported with a reason instead of being dropped.
//
// Each patient is bucketed by the specialization of their first mapped
// symptom. The batch flow does not collect a per-patient triage code, so
// costs and results use Green throughout.
func (s *RecommendationService) RecommendGroup(ctx context.Context, at time.Time) (*entities.GroupResult, error) {
	ctx, span := observability.StartSpan(ctx, "RecommendationService.RecommendGroup")
	defer span.End()

	patients, err := s.patientRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &entities.GroupResult{}
	if len(patients) == 0 {
		return result, nil
	}

	index, err := s.symptomRepo.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}

	hospitals, err := s.hospitalRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	bySpecialization := make(map[string][]*entities.Hospital)
	for _, h := range hospitals {
		bySpecialization[h.Specialization] = append(bySpecialization[h.Specialization], h)
	}

	st, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}

	// Bucket patients in pool order so group output stays deterministic.
	groups := make(map[string][]*entities.Patient)
	var groupOrder []string
	for _, p := range patients {
		spec, ok := index.FirstSpecialization(p.Symptoms)
		if !ok {
			result.Unassigned = append(result.Unassigned, entities.UnassignedPatient{
				PatientID:   p.ID,
				PatientName: p.Name,
				Reason:      entities.UnassignedNoSpecialization,
			})
			continue
		}
		if _, seen := groups[spec]; !seen {
			groupOrder = append(groupOrder, spec)
		}
		groups[spec] = append(groups[spec], p)
	}

	for _, spec := range groupOrder {
		group := groups[spec]
		candidates := bySpecialization[spec]
		if len(candidates) == 0 {
			for _, p := range group {
				result.Unassigned = append(result.Unassigned, entities.UnassignedPatient{
					PatientID:   p.ID,
					PatientName: p.Name,
					Reason:      entities.UnassignedNoHospital,
				})
			}
			continue
		}

		// Resolve wait and queue once per hospital; the cost matrix reuses
		// them across every patient row.
		waits := make([]float64, len(candidates))
		queueSizes := make([]int, len(candidates))
		for j, h := range candidates {
			wait, err := s.historicalWait(ctx, st, h.Name, entities.TriageGreen)
			if err != nil {
				return nil, err
			}
			queueSize, err := s.queueRepo.CountActive(ctx, h.Name, at)
			if err != nil {
				return nil, err
			}
			waits[j] = wait
			queueSizes[j] = queueSize
		}

		cost := make([][]float64, len(group))
		for i, p := range group {
			cost[i] = make([]float64, len(candidates))
			for j, h := range candidates {
				distance := geo.Distance(p.Location.Latitude, p.Location.Longitude, h.Location.Latitude, h.Location.Longitude)
				cost[i][j] = groupCost(distance, waits[j], queueSizes[j])
			}
		}

		solveStart := time.Now()
		cols, _, err := assignment.Solve(cost)
		if err != nil {
			return nil, apperrors.NewInternalError("assignment solve failed for specialization "+spec, err)
		}
		observability.RecordSolveDuration(ctx, s.metrics, len(group), len(candidates), time.Since(solveStart))

		for i, p := range group {
			j := cols[i]
			if j == assignment.Unassigned {
				result.Unassigned = append(result.Unassigned, entities.UnassignedPatient{
					PatientID:   p.ID,
					PatientName: p.Name,
					Reason:      entities.UnassignedOverCapacity,
				})
				continue
			}

			h := candidates[j]
			// Recomputed for the assigned pair rather than read back from
			// the matrix, so results cannot drift from cached inputs.
			distance := geo.Distance(p.Location.Latitude, p.Location.Longitude, h.Location.Latitude, h.Location.Longitude)
			result.Assignments = append(result.Assignments, entities.GroupAssignment{
				PatientID:       p.ID,
				PatientName:     p.Name,
				Hospital:        h.Name,
				Specialization:  spec,
				DistanceKm:      distance,
				WaitTimeMinutes: waits[j],
				QueueSize:       queueSizes[j],
				TriageCode:      entities.TriageGreen,
			})
		}
	}

	s.recordRecommendation(ctx, "group", len(result.Assignments) > 0)
	return result, nil
}

func (s *RecommendationService) recordRecommendation(ctx context.Context, flow string, matched bool) {
	observability.RecordRecommendation(ctx, s.metrics, flow, matched)
}
