package brackets

import (
	"fmt"

	"github.com/Dosada05/atletica-scoreboard/models"
)

// Resolve derives the finishing order from a snapshot.
//
// The final must have a winner (ErrFinalUndecided otherwise). The champion
// is 1st and the other finalist 2nd. The remaining player of the semifinal
// holding the champion is 3rd, and the remaining player of the semifinal
// holding the runner-up is 4th. Semifinals are matched by slot membership,
// so semifinal winners implied by the final need not be recorded.
// Quarterfinal losers take 5th onwards in quarterfinal order. Ranks that
// cannot be determined are left out.
func Resolve(s Snapshot) (models.Ranking, error) {
	if s.Final.Winner == nil {
		return nil, ErrFinalUndecided
	}
	if err := validateWinners(s); err != nil {
		return nil, err
	}

	ranking := models.Ranking{}
	champion := *s.Final.Winner
	ranking[1] = champion

	runnerUp := s.Final.Opponent(champion)
	if runnerUp != nil {
		ranking[2] = *runnerUp
	}

	championSemi := -1
	for k, semi := range s.Semifinals {
		if semi.Has(champion) {
			championSemi = k
			if third := semi.Opponent(champion); third != nil {
				ranking[3] = *third
			}
			break
		}
	}
	if runnerUp != nil {
		for k, semi := range s.Semifinals {
			if k == championSemi || !semi.Has(*runnerUp) {
				continue
			}
			if fourth := semi.Opponent(*runnerUp); fourth != nil {
				ranking[4] = *fourth
			}
			break
		}
	}

	rank := 5
	for _, q := range s.Quarterfinals {
		if loser := q.Loser(); loser != nil {
			ranking[rank] = *loser
			rank++
		}
	}

	seen := make(map[int]int, len(ranking))
	for _, r := range ranking.Ranks() {
		id := ranking[r]
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: athletic %d at ranks %d and %d", ErrInconsistent, id, prev, r)
		}
		seen[id] = r
	}
	return ranking, nil
}

// validateWinners rejects recorded winners that sit in neither slot of a
// match with at least one filled slot.
func validateWinners(s Snapshot) error {
	check := func(round Round, index int, m Match) error {
		if m.Winner == nil || (m.Slot1 == nil && m.Slot2 == nil) {
			return nil
		}
		if !m.Has(*m.Winner) {
			return fmt.Errorf("%w: athletic %d in %s %d", ErrWinnerNotInMatch, *m.Winner, round, index)
		}
		return nil
	}
	for i, m := range s.Quarterfinals {
		if err := check(RoundQuarterfinal, i, m); err != nil {
			return err
		}
	}
	for i, m := range s.Semifinals {
		if err := check(RoundSemifinal, i, m); err != nil {
			return err
		}
	}
	return check(RoundFinal, 0, s.Final)
}
