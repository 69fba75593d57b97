package rules

import "fmt"

// PlayerID identifies one of the two seats.
type PlayerID uint8

const (
	PlayerFirst PlayerID = iota
	PlayerSecond
)

// Opposite returns the other seat.
func (p PlayerID) Opposite() PlayerID { return p ^ 1 }

func (p PlayerID) String() string {
	switch p {
	case PlayerFirst:
		return "PLAYER_FIRST"
	case PlayerSecond:
		return "PLAYER_SECOND"
	}
	return fmt.Sprintf("PLAYER_%d", int(p))
}

// PhaseKind represents the broad phases of a round.
type PhaseKind uint8

const (
	PhaseSelectStartingCharacter PhaseKind = iota
	PhaseRoll
	PhaseAction
	PhaseEnd
	PhaseWinnerDecided
)

var phaseNames = map[PhaseKind]string{
	PhaseSelectStartingCharacter: "SELECT_STARTING_CHARACTER",
	PhaseRoll:                    "ROLL",
	PhaseAction:                  "ACTION",
	PhaseEnd:                     "END",
	PhaseWinnerDecided:           "WINNER_DECIDED",
}

func (k PhaseKind) String() string {
	if name, ok := phaseNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(k))
}

// Phase is the round-level position of the game.
type Phase struct {
	Kind PhaseKind
	// Active is the player expected to act. During WinnerDecided it holds the winner.
	Active PlayerID
	// First is the player who acts first this round.
	First PlayerID
	// Ended has bit p set once player p declared end of round.
	Ended uint8
	// FirstEnded is the first player to declare end of round; valid when Ended != 0.
	FirstEnded PlayerID
}

// HasEnded reports whether the player declared end of round.
func (p Phase) HasEnded(player PlayerID) bool { return p.Ended&(1<<player) != 0 }

// WithEnded marks the player as having declared end of round.
func (p Phase) WithEnded(player PlayerID) Phase {
	if p.Ended == 0 {
		p.FirstEnded = player
	}
	p.Ended |= 1 << player
	return p
}

// BothEnded reports whether both players declared end of round.
func (p Phase) BothEnded() bool { return p.Ended == 0b11 }

// Winner returns the winning player once the game is decided.
func (p Phase) Winner() (PlayerID, bool) {
	if p.Kind != PhaseWinnerDecided {
		return 0, false
	}
	return p.Active, true
}

// Pack encodes the phase into a single integer for hashing.
func (p Phase) Pack() uint64 {
	return uint64(p.Kind) |
		uint64(p.Active)<<8 |
		uint64(p.First)<<16 |
		uint64(p.Ended)<<24 |
		uint64(p.firstEnded())<<32
}

// firstEnded is FirstEnded, or zero while nobody has ended the round.
func (p Phase) firstEnded() PlayerID {
	if p.Ended == 0 {
		return 0
	}
	return p.FirstEnded
}

// Transpose swaps every player reference in the phase.
func (p Phase) Transpose() Phase {
	t := Phase{
		Kind:   p.Kind,
		Active: p.Active.Opposite(),
		First:  p.First.Opposite(),
		Ended:  (p.Ended&1)<<1 | (p.Ended>>1)&1,
	}
	if p.Ended != 0 {
		t.FirstEnded = p.FirstEnded.Opposite()
	}
	return t
}

func (p Phase) String() string {
	switch p.Kind {
	case PhaseWinnerDecided:
		return fmt.Sprintf("%s(%s)", p.Kind, p.Active)
	case PhaseAction:
		return fmt.Sprintf("%s(active=%s ended=%02b)", p.Kind, p.Active, p.Ended)
	}
	return fmt.Sprintf("%s(active=%s)", p.Kind, p.Active)
}
