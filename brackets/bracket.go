// Package brackets models the fixed eight-team knockout used by collective
// modalities and turns it into a finishing order.
package brackets

import (
	"errors"
	"fmt"

	"github.com/Dosada05/atletica-scoreboard/models"
)

var (
	ErrFinalUndecided    = errors.New("final has no recorded winner")
	ErrDerivedSlot       = errors.New("only quarterfinal slots can be set directly")
	ErrTeamAlreadyPlaced = errors.New("athletic already placed in another quarterfinal slot")
	ErrWinnerNotInMatch  = errors.New("winner must occupy one of the match slots")
	ErrInvalidMatch      = errors.New("invalid bracket match")
	ErrInvalidSlot       = errors.New("invalid bracket slot")
	ErrInconsistent      = errors.New("athletic placed more than once")
)

// Snapshot is the plain-data form of a bracket, as stored and sent over the API.
type Snapshot struct {
	Quarterfinals [4]Match `json:"quarterfinals"`
	Semifinals    [2]Match `json:"semifinals"`
	Final         Match    `json:"final"`
}

func (s Snapshot) clone() Snapshot {
	var out Snapshot
	for i, m := range s.Quarterfinals {
		out.Quarterfinals[i] = m.clone()
	}
	for i, m := range s.Semifinals {
		out.Semifinals[i] = m.clone()
	}
	out.Final = s.Final.clone()
	return out
}

// Bracket is the editable bracket. Semifinal and final slots are always
// derived from the previous round's winners; a match whose derived slots
// change loses its recorded winner, which clears every later round that
// depended on it.
type Bracket struct {
	s Snapshot
}

func New() *Bracket {
	return &Bracket{}
}

// Replay rebuilds a bracket from a snapshot by setting the quarterfinal
// slots and then every recorded winner round by round. Derived slots in the
// snapshot are recomputed, not trusted. A winner left unrecorded is implied
// when the snapshot's next round already carries one of the match's
// athletics, the same reading Resolve applies.
func Replay(s Snapshot) (*Bracket, error) {
	b := New()
	for i, m := range s.Quarterfinals {
		if err := b.SetSlot(RoundQuarterfinal, i, Slot1, m.Slot1); err != nil {
			return nil, err
		}
		if err := b.SetSlot(RoundQuarterfinal, i, Slot2, m.Slot2); err != nil {
			return nil, err
		}
	}
	for i, m := range s.Quarterfinals {
		winner := m.Winner
		if winner == nil {
			winner = impliedWinner(b.s.Quarterfinals[i], s.Semifinals[i/2])
		}
		if err := b.SetWinner(RoundQuarterfinal, i, winner); err != nil {
			return nil, err
		}
	}
	for i, m := range s.Semifinals {
		winner := m.Winner
		if winner == nil {
			winner = impliedWinner(b.s.Semifinals[i], s.Final)
		}
		if err := b.SetWinner(RoundSemifinal, i, winner); err != nil {
			return nil, err
		}
	}
	if err := b.SetWinner(RoundFinal, 0, s.Final.Winner); err != nil {
		return nil, err
	}
	return b, nil
}

// impliedWinner returns the athletic of m that advanced into next, or nil.
func impliedWinner(m Match, next Match) *int {
	for _, id := range []*int{next.Slot1, next.Slot2} {
		if id != nil && m.Has(*id) {
			return cloneID(id)
		}
	}
	return nil
}

func (b *Bracket) match(round Round, index int) (*Match, error) {
	if index < 0 || index >= round.Matches() {
		return nil, fmt.Errorf("%w: %s %d", ErrInvalidMatch, round, index)
	}
	switch round {
	case RoundQuarterfinal:
		return &b.s.Quarterfinals[index], nil
	case RoundSemifinal:
		return &b.s.Semifinals[index], nil
	default:
		return &b.s.Final, nil
	}
}

// Match returns a copy of one match.
func (b *Bracket) Match(round Round, index int) (Match, error) {
	m, err := b.match(round, index)
	if err != nil {
		return Match{}, err
	}
	return m.clone(), nil
}

func (b *Bracket) State(round Round, index int) (MatchState, error) {
	m, err := b.match(round, index)
	if err != nil {
		return StateEmpty, err
	}
	return m.State(), nil
}

// SetSlot places athleticID (nil empties the slot) in a quarterfinal.
// Changing a slot clears the match winner.
func (b *Bracket) SetSlot(round Round, index int, slot Slot, athleticID *int) error {
	if round != RoundQuarterfinal {
		return fmt.Errorf("%w: %s %d", ErrDerivedSlot, round, index)
	}
	if slot != Slot1 && slot != Slot2 {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	m, err := b.match(round, index)
	if err != nil {
		return err
	}
	if sameTeam(m.slot(slot), athleticID) {
		return nil
	}

	if athleticID != nil {
		for i, q := range b.s.Quarterfinals {
			for _, s := range []Slot{Slot1, Slot2} {
				if i == index && s == slot {
					continue
				}
				if sameTeam(q.slot(s), athleticID) {
					return fmt.Errorf("%w: athletic %d in quarterfinal %d", ErrTeamAlreadyPlaced, *athleticID, i)
				}
			}
		}
	}

	if slot == Slot1 {
		m.Slot1 = cloneID(athleticID)
	} else {
		m.Slot2 = cloneID(athleticID)
	}
	m.Winner = nil
	b.derive()
	return nil
}

// SetWinner records the winner of a match. A nil athleticID clears it.
func (b *Bracket) SetWinner(round Round, index int, athleticID *int) error {
	m, err := b.match(round, index)
	if err != nil {
		return err
	}
	if athleticID != nil && !m.Has(*athleticID) {
		return fmt.Errorf("%w: athletic %d in %s %d", ErrWinnerNotInMatch, *athleticID, round, index)
	}
	if sameTeam(m.Winner, athleticID) {
		return nil
	}
	m.Winner = cloneID(athleticID)
	b.derive()
	return nil
}

func (b *Bracket) derive() {
	q := b.s.Quarterfinals
	for k := range b.s.Semifinals {
		feed(&b.s.Semifinals[k], q[2*k].Winner, q[2*k+1].Winner)
	}
	feed(&b.s.Final, b.s.Semifinals[0].Winner, b.s.Semifinals[1].Winner)
}

func feed(m *Match, slot1, slot2 *int) {
	if sameTeam(m.Slot1, slot1) && sameTeam(m.Slot2, slot2) {
		return
	}
	m.Slot1 = cloneID(slot1)
	m.Slot2 = cloneID(slot2)
	m.Winner = nil
}

func (b *Bracket) Snapshot() Snapshot {
	return b.s.clone()
}

func (b *Bracket) Resolve() (models.Ranking, error) {
	return Resolve(b.s)
}
