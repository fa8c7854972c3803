package models

import "time"

// Competition is one edition of the league. Only one competition is active at a time.
type Competition struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Year      int       `json:"year" db:"year"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Modalities []Modality `json:"modalities,omitempty" db:"-"`
}
