package models

import (
	"errors"
	"fmt"
)

// ScoreRule holds the points awarded per finishing position: index i is rank i+1.
type ScoreRule []int

// DefaultScoreRule applies to every modality without an override.
var DefaultScoreRule = ScoreRule{12, 9, 7, 5, 4, 3, 2, 1}

// PointsFor returns the award for rank. Ranks outside the rule score nothing.
func (r ScoreRule) PointsFor(rank int) int {
	if rank < 1 || rank > len(r) {
		return 0
	}
	return r[rank-1]
}

// ModalityScoreRule is a per-modality override of the default rule.
type ModalityScoreRule struct {
	ModalityID int       `json:"modality_id" db:"modality_id"`
	Points     ScoreRule `json:"points" db:"points_json"`
}

var ErrInvalidScoreRule = errors.New("invalid score rule")

// Validate checks that the rule awards points for 1 to MaxRank positions and
// that no award is negative.
func (r ScoreRule) Validate() error {
	if len(r) == 0 || len(r) > MaxRank {
		return fmt.Errorf("%w: expected 1 to %d values, got %d", ErrInvalidScoreRule, MaxRank, len(r))
	}
	for i, points := range r {
		if points < 0 {
			return fmt.Errorf("%w: rank %d awards negative points", ErrInvalidScoreRule, i+1)
		}
	}
	return nil
}
