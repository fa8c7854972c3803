package brackets

import "fmt"

type Round int

const (
	RoundQuarterfinal Round = iota
	RoundSemifinal
	RoundFinal
)

func (r Round) String() string {
	switch r {
	case RoundQuarterfinal:
		return "quarterfinal"
	case RoundSemifinal:
		return "semifinal"
	case RoundFinal:
		return "final"
	default:
		return fmt.Sprintf("round(%d)", int(r))
	}
}

// Matches is the number of matches played in the round.
func (r Round) Matches() int {
	switch r {
	case RoundQuarterfinal:
		return 4
	case RoundSemifinal:
		return 2
	case RoundFinal:
		return 1
	default:
		return 0
	}
}

type Slot int

const (
	Slot1 Slot = 1
	Slot2 Slot = 2
)

type MatchState int

const (
	StateEmpty MatchState = iota
	StateWaiting
	StateReady
	StateDecided
)

func (s MatchState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateWaiting:
		return "waiting"
	case StateReady:
		return "ready"
	case StateDecided:
		return "decided"
	default:
		return "unknown"
	}
}

func (s MatchState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Match holds two candidate slots and the recorded winner, all athletic IDs.
type Match struct {
	Slot1  *int `json:"slot1"`
	Slot2  *int `json:"slot2"`
	Winner *int `json:"winner"`
}

func (m Match) State() MatchState {
	switch {
	case m.Winner != nil:
		return StateDecided
	case m.Slot1 != nil && m.Slot2 != nil:
		return StateReady
	case m.Slot1 != nil || m.Slot2 != nil:
		return StateWaiting
	default:
		return StateEmpty
	}
}

// Has reports whether athleticID occupies one of the slots.
func (m Match) Has(athleticID int) bool {
	return sameTeam(m.Slot1, &athleticID) || sameTeam(m.Slot2, &athleticID)
}

// Opponent returns the occupant of the slot facing athleticID, or nil when
// athleticID is not in the match or has no opponent.
func (m Match) Opponent(athleticID int) *int {
	switch {
	case sameTeam(m.Slot1, &athleticID):
		return cloneID(m.Slot2)
	case sameTeam(m.Slot2, &athleticID):
		return cloneID(m.Slot1)
	default:
		return nil
	}
}

// Loser is the opponent of the winner. It is nil unless both slots are
// filled and a winner is recorded.
func (m Match) Loser() *int {
	if m.Winner == nil || m.Slot1 == nil || m.Slot2 == nil {
		return nil
	}
	return m.Opponent(*m.Winner)
}

func (m Match) slot(s Slot) *int {
	if s == Slot1 {
		return m.Slot1
	}
	return m.Slot2
}

func (m Match) clone() Match {
	return Match{Slot1: cloneID(m.Slot1), Slot2: cloneID(m.Slot2), Winner: cloneID(m.Winner)}
}

func sameTeam(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
