package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueEntry_ActiveAt(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	entry := QueueEntry{
		HospitalID:      "Hospital A",
		TriageCode:      TriageGreen,
		WaitTimeMinutes: 30,
		Timestamp:       now,
	}

	assert.True(t, entry.ActiveAt(now))
	assert.True(t, entry.ActiveAt(now.Add(29*time.Minute)))
	assert.True(t, entry.ActiveAt(now.Add(30*time.Minute)), "boundary counts as active")
	assert.False(t, entry.ActiveAt(now.Add(31*time.Minute)))
}

func TestWeekStartOf(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"monday maps to itself", "2024-12-02", "2024-12-02"},
		{"tuesday", "2024-12-03", "2024-12-02"},
		{"sunday", "2024-12-08", "2024-12-02"},
		{"year boundary wednesday", "2025-01-01", "2024-12-30"},
		{"sunday before a monday new year", "2023-12-31", "2023-12-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := time.Parse("2006-01-02", tt.date)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, WeekStartOf(d).Format("2006-01-02"))
		})
	}
}

func TestWeekStartOf_TruncatesTimeOfDay(t *testing.T) {
	d := time.Date(2024, 12, 4, 17, 45, 3, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC), WeekStartOf(d))
}

func TestSymptomIndex_Lookups(t *testing.T) {
	idx := NewSymptomIndex([]SymptomMapping{
		{Symptom: "fracture", Specialization: "Orthopedics"},
		{Symptom: "sprain", Specialization: "Orthopedics"},
		{Symptom: "chest pain", Specialization: "Cardiology"},
	})

	spec, ok := idx.SpecializationFor("fracture")
	assert.True(t, ok)
	assert.Equal(t, "Orthopedics", spec)

	_, ok = idx.SpecializationFor("headache")
	assert.False(t, ok)

	// Union over all mapped symptoms, deduplicated, stable order.
	specs := idx.SpecializationsFor([]string{"sprain", "headache", "chest pain", "fracture"})
	assert.Equal(t, []string{"Orthopedics", "Cardiology"}, specs)

	// First mapped symptom wins for the group flow.
	first, ok := idx.FirstSpecialization([]string{"headache", "chest pain", "fracture"})
	assert.True(t, ok)
	assert.Equal(t, "Cardiology", first)

	_, ok = idx.FirstSpecialization([]string{"headache"})
	assert.False(t, ok)
}

func TestTriageCode_IsValid(t *testing.T) {
	for _, code := range ValidTriageCodes() {
		assert.True(t, code.IsValid())
	}
	assert.False(t, TriageCode("Purple").IsValid())
	assert.False(t, TriageCode("").IsValid())
}

func TestPatient_Validate(t *testing.T) {
	valid := Patient{
		Name:     "Ada",
		Symptoms: []string{"fracture"},
		Location: Location{Latitude: 45.46, Longitude: 9.19},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *Patient)
	}{
		{"missing name", func(p *Patient) { p.Name = "" }},
		{"no symptoms", func(p *Patient) { p.Symptoms = nil }},
		{"latitude out of range", func(p *Patient) { p.Location.Latitude = 91 }},
		{"longitude out of range", func(p *Patient) { p.Location.Longitude = -181 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			p.Symptoms = append([]string(nil), valid.Symptoms...)
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}
