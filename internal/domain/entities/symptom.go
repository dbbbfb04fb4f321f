package entities

// SymptomMapping links a symptom name to the specialization that treats it.
// Many symptoms may map to one specialization.
type SymptomMapping struct {
	Symptom        string `json:"symptom" db:"symptom_name"`
	Specialization string `json:"specialization" db:"specialization"`
}

// SymptomIndex is the full symptom-to-specialization lookup table, loaded in
// full at startup and treated as immutable for the session. Symptoms without
// a mapping are simply absent.
type SymptomIndex struct {
	bySymptom map[string]string
	symptoms  []string
}

// NewSymptomIndex builds an index from mapping rows. Later duplicates of the
// same symptom win, matching the source table's one-row-per-symptom shape.
func NewSymptomIndex(mappings []SymptomMapping) *SymptomIndex {
	idx := &SymptomIndex{bySymptom: make(map[string]string, len(mappings))}
	for _, m := range mappings {
		if _, seen := idx.bySymptom[m.Symptom]; !seen {
			idx.symptoms = append(idx.symptoms, m.Symptom)
		}
		idx.bySymptom[m.Symptom] = m.Specialization
	}
	return idx
}

// SpecializationFor returns the specialization treating the symptom, if any.
func (idx *SymptomIndex) SpecializationFor(symptom string) (string, bool) {
	spec, ok := idx.bySymptom[symptom]
	return spec, ok
}

// SpecializationsFor returns the deduplicated specializations covering all
// mapped symptoms, in first-seen order. Unmapped symptoms contribute nothing.
func (idx *SymptomIndex) SpecializationsFor(symptoms []string) []string {
	var specs []string
	seen := make(map[string]struct{})
	for _, s := range symptoms {
		spec, ok := idx.bySymptom[s]
		if !ok {
			continue
		}
		if _, dup := seen[spec]; dup {
			continue
		}
		seen[spec] = struct{}{}
		specs = append(specs, spec)
	}
	return specs
}

// FirstSpecialization returns the specialization of the first symptom that
// has a mapping. The group-recommendation flow buckets each patient by this
// single specialization.
func (idx *SymptomIndex) FirstSpecialization(symptoms []string) (string, bool) {
	for _, s := range symptoms {
		if spec, ok := idx.bySymptom[s]; ok {
			return spec, true
		}
	}
	return "", false
}

// Symptoms returns all indexed symptom names in first-seen order.
func (idx *SymptomIndex) Symptoms() []string {
	return idx.symptoms
}

// Len returns the number of indexed symptoms.
func (idx *SymptomIndex) Len() int {
	return len(idx.bySymptom)
}
