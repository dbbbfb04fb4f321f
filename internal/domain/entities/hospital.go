package entities

// Hospital represents a hospital in the directory. The name doubles as the
// unique identifier; directory rows are immutable reference data loaded once
// per session.
type Hospital struct {
	Name           string   `json:"name" db:"name"`
	Specialization string   `json:"specialization" db:"specialization"`
	Location       Location `json:"location" db:"-"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
