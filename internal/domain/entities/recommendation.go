package entities

// Recommendation is the outcome of scoring one patient against one hospital.
// It is transient: it only exists between a recommendation call and the
// operator accepting or discarding it.
type Recommendation struct {
	Hospital        string     `json:"hospital"`
	Score           float64    `json:"score"`
	DistanceKm      float64    `json:"distance_km"`
	WaitTimeMinutes float64    `json:"wait_time_minutes"`
	QueueSize       int        `json:"queue_size"`
	TriageCode      TriageCode `json:"triage_code"`
}

// GroupAssignment is one matched (patient, hospital) pair produced by the
// group recommendation pass. Distance, wait time and queue size are
// recomputed for the assigned pair, not copied from the cost matrix.
type GroupAssignment struct {
	PatientID       string     `json:"patient_id"`
	PatientName     string     `json:"patient_name"`
	Hospital        string     `json:"hospital"`
	Specialization  string     `json:"specialization"`
	DistanceKm      float64    `json:"distance_km"`
	WaitTimeMinutes float64    `json:"wait_time_minutes"`
	QueueSize       int        `json:"queue_size"`
	TriageCode      TriageCode `json:"triage_code"`
}

// UnassignedPatient reports a patient the group pass could not place, with
// the reason, so operators can follow up instead of losing them silently.
type UnassignedPatient struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	Reason      string `json:"reason"`
}

// Reasons a patient can come out of the group pass without an assignment.
const (
	UnassignedNoSpecialization = "no symptom maps to a known specialization"
	UnassignedNoHospital       = "no hospital offers the required specialization"
	UnassignedOverCapacity     = "more patients than candidate hospitals in the group"
)

// GroupResult is the full outcome of a group recommendation pass.
type GroupResult struct {
	Assignments []GroupAssignment   `json:"assignments"`
	Unassigned  []UnassignedPatient `json:"unassigned"`
}
