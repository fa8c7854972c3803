package standings

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/atletica-scoreboard/models"
)

func roster(names ...string) []models.Athletic {
	out := make([]models.Athletic, len(names))
	for i, name := range names {
		out[i] = models.Athletic{ID: i + 1, Name: name}
	}
	return out
}

func TestCompute_EndToEndExample(t *testing.T) {
	athletics := roster("A", "B", "C")
	results := []models.Result{
		{ID: 1, ModalityID: 10, Ranking: models.Ranking{1: 1, 2: 2, 3: 3}},
	}
	penalties := []models.Penalty{{ID: 1, AthleticID: 2, Points: 4}}

	table := Compute(Input{Athletics: athletics, Results: results, Penalties: penalties, Rules: DefaultRuleBook()})

	want := []models.LeaderboardEntry{
		{AthleticID: 1, Name: "A", RawPoints: 12, Penalties: 0, TotalPoints: 12, Position: 1},
		{AthleticID: 3, Name: "C", RawPoints: 7, Penalties: 0, TotalPoints: 7, Position: 2},
		{AthleticID: 2, Name: "B", RawPoints: 9, Penalties: 4, TotalPoints: 5, Position: 3},
	}
	if diff := cmp.Diff(want, table.Entries); diff != "" {
		t.Fatalf("standings mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, table.Skipped)
}

func TestCompute_TieBrokenByFewerPenalties(t *testing.T) {
	athletics := roster("A", "B")
	results := []models.Result{
		{ID: 1, ModalityID: 1, Ranking: models.Ranking{1: 1, 2: 2}}, // A 12, B 9
		{ID: 2, ModalityID: 2, Ranking: models.Ranking{1: 2, 2: 1}}, // B 12, A 9
	}
	penalties := []models.Penalty{
		{ID: 1, AthleticID: 1, Points: 3},
		{ID: 2, AthleticID: 2, Points: 1},
		{ID: 3, AthleticID: 2, Points: 2},
	}

	entries := Compute(Input{Athletics: athletics, Results: results, Penalties: penalties}).Entries
	require.Len(t, entries, 2)
	// Both total 18 and both carry 3 penalty points: roster order decides.
	assert.Equal(t, 1, entries[0].AthleticID)
	assert.Equal(t, 2, entries[1].AthleticID)
	assert.Equal(t, 18, entries[0].TotalPoints)
	assert.Equal(t, 18, entries[1].TotalPoints)

	penalties = penalties[:2]
	entries = Compute(Input{Athletics: athletics, Results: results, Penalties: penalties}).Entries
	// A 21-3=18, B 21-1=20.
	assert.Equal(t, 2, entries[0].AthleticID)
	assert.Equal(t, 20, entries[0].TotalPoints)
}

func TestCompute_EqualTotalsPreferFewerPenalties(t *testing.T) {
	athletics := roster("A", "B")
	results := []models.Result{
		{ID: 1, ModalityID: 1, Ranking: models.Ranking{1: 1, 4: 2}}, // A 12, B 5
	}
	penalties := []models.Penalty{{ID: 1, AthleticID: 1, Points: 7}} // A 5 after penalty

	entries := Compute(Input{Athletics: athletics, Results: results, Penalties: penalties}).Entries
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].AthleticID, "B has the same total with no penalties")
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 1, entries[1].AthleticID)
	assert.Equal(t, 2, entries[1].Position)
}

func TestCompute_DanglingReferencesAreSkipped(t *testing.T) {
	athletics := roster("A")
	results := []models.Result{
		{ID: 7, ModalityID: 1, Ranking: models.Ranking{1: 99, 2: 1}},
	}
	penalties := []models.Penalty{{ID: 3, AthleticID: 42, Points: 5}}

	table := Compute(Input{Athletics: athletics, Results: results, Penalties: penalties})

	require.Len(t, table.Entries, 1)
	assert.Equal(t, 9, table.Entries[0].TotalPoints)
	assert.Equal(t, []SkippedReference{
		{Kind: ReferenceResult, SourceID: 7, AthleticID: 99, Rank: 1},
		{Kind: ReferencePenalty, SourceID: 3, AthleticID: 42},
	}, table.Skipped)
}

func TestCompute_RanksOutsideRuleScoreZero(t *testing.T) {
	athletics := roster("A", "B", "C")
	results := []models.Result{
		{ID: 1, ModalityID: 5, Ranking: models.Ranking{3: 1, 9: 2, 0: 3}},
	}
	rules := RuleBook{Overrides: map[int]models.ScoreRule{5: {10, 6}}}

	entries := Compute(Input{Athletics: athletics, Results: results, Rules: rules}).Entries
	for _, e := range entries {
		assert.Zero(t, e.TotalPoints, "athletic %d", e.AthleticID)
	}
}

func TestCompute_OverridesApplyPerModality(t *testing.T) {
	athletics := roster("A", "B")
	results := []models.Result{
		{ID: 1, ModalityID: 1, Ranking: models.Ranking{1: 1, 2: 2}},
		{ID: 2, ModalityID: 2, Ranking: models.Ranking{1: 2, 2: 1}},
	}
	rules := RuleBook{
		Default:   models.DefaultScoreRule,
		Overrides: map[int]models.ScoreRule{2: {30, 1}},
	}

	entries := Compute(Input{Athletics: athletics, Results: results, Rules: rules}).Entries
	require.Len(t, entries, 2)
	assert.Equal(t, models.LeaderboardEntry{AthleticID: 2, Name: "B", RawPoints: 39, TotalPoints: 39, Position: 1}, entries[0])
	assert.Equal(t, models.LeaderboardEntry{AthleticID: 1, Name: "A", RawPoints: 13, TotalPoints: 13, Position: 2}, entries[1])
}

func TestCompute_TotalsMayGoNegative(t *testing.T) {
	entries := Compute(Input{
		Athletics: roster("A"),
		Penalties: []models.Penalty{{ID: 1, AthleticID: 1, Points: 10}},
	}).Entries
	require.Len(t, entries, 1)
	assert.Equal(t, -10, entries[0].TotalPoints)
}

func TestCompute_DuplicateRosterEntriesCollapse(t *testing.T) {
	athletics := []models.Athletic{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 1, Name: "A again"}}
	entries := Compute(Input{Athletics: athletics}).Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].Name)
}

func TestCompute_Properties(t *testing.T) {
	faker := gofakeit.New(20241017)

	for run := 0; run < 50; run++ {
		n := faker.IntRange(1, 12)
		athletics := make([]models.Athletic, n)
		for i := range athletics {
			athletics[i] = models.Athletic{ID: i + 1, Name: faker.Company()}
		}

		var results []models.Result
		for m := 0; m < faker.IntRange(0, 10); m++ {
			ranking := models.Ranking{}
			for rank := 1; rank <= models.MaxRank; rank++ {
				if faker.Bool() {
					ranking[rank] = faker.IntRange(1, n+2) // may dangle
				}
			}
			results = append(results, models.Result{ID: m + 1, ModalityID: m + 1, Ranking: ranking})
		}

		var penalties []models.Penalty
		penaltyTotals := map[int]int{}
		for p := 0; p < faker.IntRange(0, 6); p++ {
			pen := models.Penalty{ID: p + 1, AthleticID: faker.IntRange(1, n+2), Points: faker.IntRange(1, 15)}
			penalties = append(penalties, pen)
			penaltyTotals[pen.AthleticID] += pen.Points
		}

		in := Input{Athletics: athletics, Results: results, Penalties: penalties, Rules: DefaultRuleBook()}
		first := Compute(in)
		second := Compute(in)
		require.Equal(t, first, second, "compute must be deterministic")

		require.Len(t, first.Entries, n)
		seen := map[int]bool{}
		for i, e := range first.Entries {
			assert.False(t, seen[e.AthleticID], "athletic %d listed twice", e.AthleticID)
			seen[e.AthleticID] = true
			assert.Equal(t, i+1, e.Position)
			assert.Equal(t, e.RawPoints-penaltyTotals[e.AthleticID], e.TotalPoints)
			assert.Equal(t, penaltyTotals[e.AthleticID], e.Penalties)
		}
	}
}

func TestComputeStandings_Wrapper(t *testing.T) {
	entries := ComputeStandings(
		roster("A", "B"),
		[]models.Result{{ID: 1, ModalityID: 3, Ranking: models.Ranking{1: 2}}},
		nil,
		models.DefaultScoreRule,
		map[int]models.ScoreRule{3: {50}},
	)
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].AthleticID)
	assert.Equal(t, 50, entries[0].TotalPoints)
}
