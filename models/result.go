package models

import (
	"sort"
	"time"
)

// MaxRank is the lowest placement that can be recorded for a modality.
const MaxRank = 8

// Ranking maps a finishing position (1..MaxRank) to an athletic ID.
// It is sparse: a position may be missing when nobody placed there.
type Ranking map[int]int

// Ranks returns the recorded positions in ascending order.
func (r Ranking) Ranks() []int {
	ranks := make([]int, 0, len(r))
	for rank := range r {
		ranks = append(ranks, rank)
	}
	sort.Ints(ranks)
	return ranks
}

// Clone returns an independent copy of the ranking.
func (r Ranking) Clone() Ranking {
	out := make(Ranking, len(r))
	for rank, athleticID := range r {
		out[rank] = athleticID
	}
	return out
}

// Result is the final placement of one modality. There is at most one per
// (competition, modality) pair.
type Result struct {
	ID            int       `json:"id" db:"id"`
	CompetitionID int       `json:"competition_id" db:"competition_id"`
	ModalityID    int       `json:"modality_id" db:"modality_id"`
	Ranking       Ranking   `json:"ranking" db:"ranking_json"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
