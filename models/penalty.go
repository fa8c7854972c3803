package models

import "time"

// Penalty deducts points from an athletic's competition total.
type Penalty struct {
	ID            int       `json:"id" db:"id"`
	CompetitionID int       `json:"competition_id" db:"competition_id"`
	AthleticID    int       `json:"athletic_id" db:"athletic_id"`
	Points        int       `json:"points" db:"points"`
	Reason        string    `json:"reason" db:"reason"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
