package entities

// TriageCode represents the urgency category assigned to a patient
type TriageCode string

const (
	TriageGreen  TriageCode = "Green"
	TriageYellow TriageCode = "Yellow"
	TriageRed    TriageCode = "Red"
)

// ValidTriageCodes returns all valid triage code values.
func ValidTriageCodes() []TriageCode {
	return []TriageCode{TriageGreen, TriageYellow, TriageRed}
}

// IsValid checks if the triage code is one of the defined constants.
func (t TriageCode) IsValid() bool {
	switch t {
	case TriageGreen, TriageYellow, TriageRed:
		return true
	}
	return false
}
