// Package standings turns modality results and penalties into the ranked
// competition leaderboard.
package standings

import (
	"sort"

	"github.com/Dosada05/atletica-scoreboard/models"
)

type ReferenceKind string

const (
	ReferenceResult  ReferenceKind = "result"
	ReferencePenalty ReferenceKind = "penalty"
)

// SkippedReference records an entry that pointed at an athletic missing from
// the roster. Such entries are left out of the totals.
type SkippedReference struct {
	Kind       ReferenceKind `json:"kind"`
	SourceID   int           `json:"source_id"` // result or penalty ID
	AthleticID int           `json:"athletic_id"`
	Rank       int           `json:"rank,omitempty"`
}

type Input struct {
	Athletics []models.Athletic
	Results   []models.Result
	Penalties []models.Penalty
	Rules     RuleBook
}

type Table struct {
	Entries []models.LeaderboardEntry `json:"entries"`
	Skipped []SkippedReference        `json:"skipped,omitempty"`
}

// Compute builds the standings table. Every roster athletic appears exactly
// once. Ordering is total points descending, then penalty points ascending,
// then roster order.
func Compute(in Input) Table {
	entries := make([]*models.LeaderboardEntry, 0, len(in.Athletics))
	index := make(map[int]*models.LeaderboardEntry, len(in.Athletics))
	for _, a := range in.Athletics {
		if _, dup := index[a.ID]; dup {
			continue
		}
		entry := &models.LeaderboardEntry{
			AthleticID: a.ID,
			Name:       a.Name,
			LogoURL:    a.LogoURL,
		}
		index[a.ID] = entry
		entries = append(entries, entry)
	}

	var skipped []SkippedReference

	for _, result := range in.Results {
		rule := in.Rules.RuleFor(result.ModalityID)
		for _, rank := range result.Ranking.Ranks() {
			athleticID := result.Ranking[rank]
			entry, ok := index[athleticID]
			if !ok {
				skipped = append(skipped, SkippedReference{
					Kind:       ReferenceResult,
					SourceID:   result.ID,
					AthleticID: athleticID,
					Rank:       rank,
				})
				continue
			}
			entry.RawPoints += rule.PointsFor(rank)
		}
	}

	for _, p := range in.Penalties {
		entry, ok := index[p.AthleticID]
		if !ok {
			skipped = append(skipped, SkippedReference{
				Kind:       ReferencePenalty,
				SourceID:   p.ID,
				AthleticID: p.AthleticID,
			})
			continue
		}
		entry.Penalties += p.Points
	}

	for _, entry := range entries {
		entry.TotalPoints = entry.RawPoints - entry.Penalties
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].Penalties < entries[j].Penalties
	})

	table := Table{
		Entries: make([]models.LeaderboardEntry, len(entries)),
		Skipped: skipped,
	}
	for i, entry := range entries {
		entry.Position = i + 1
		table.Entries[i] = *entry
	}
	return table
}

// ComputeStandings is Compute without the skipped-reference report.
func ComputeStandings(
	athletics []models.Athletic,
	results []models.Result,
	penalties []models.Penalty,
	rule models.ScoreRule,
	overrides map[int]models.ScoreRule,
) []models.LeaderboardEntry {
	return Compute(Input{
		Athletics: athletics,
		Results:   results,
		Penalties: penalties,
		Rules:     RuleBook{Default: rule, Overrides: overrides},
	}).Entries
}
