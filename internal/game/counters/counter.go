// Package counters holds the compact bookkeeping carried by one applied status.
package counters

import "fmt"

const (
	// MaxUsages is the largest usage or duration value a State can hold.
	MaxUsages = 7
	// MaxCounter is the largest secondary counter value a State can hold.
	MaxCounter = 15
)

const (
	usagesMask  = 0b0000_0111
	onceFlag    = 0b0000_1000
	counterMask = 0b1111_0000
	counterBits = 4
)

// State packs the bookkeeping of one status instance into a byte.
//
// The low three bits hold either remaining usages or remaining duration in
// rounds. Which one is meaningful is decided by the status declaration, so the
// two can never both be nonzero. Bit 3 marks the once-per-round effect as
// already used, and the high nibble is a free secondary counter.
type State uint8

// Usages returns the remaining usages.
func (s State) Usages() uint8 { return uint8(s) & usagesMask }

// Duration returns the remaining duration in rounds.
func (s State) Duration() uint8 { return uint8(s) & usagesMask }

// Counter returns the secondary counter.
func (s State) Counter() uint8 { return uint8(s) >> counterBits }

// OncePerRoundUsed reports whether the once-per-round effect was used this round.
func (s State) OncePerRoundUsed() bool { return uint8(s)&onceFlag != 0 }

// WithUsages sets remaining usages, saturating at MaxUsages.
func (s State) WithUsages(n uint8) State {
	if n > MaxUsages {
		n = MaxUsages
	}
	return State(uint8(s)&^usagesMask | n)
}

// WithDuration sets remaining duration, saturating at MaxUsages.
func (s State) WithDuration(n uint8) State { return s.WithUsages(n) }

// AddUsages increases usages by n, saturating at limit (and at MaxUsages).
// A zero limit means MaxUsages.
func (s State) AddUsages(n, limit uint8) State {
	if limit == 0 || limit > MaxUsages {
		limit = MaxUsages
	}
	total := uint16(s.Usages()) + uint16(n)
	if total > uint16(limit) {
		total = uint16(limit)
	}
	return s.WithUsages(uint8(total))
}

// DecrementUsages removes n usages, stopping at zero.
func (s State) DecrementUsages(n uint8) State {
	u := s.Usages()
	if n >= u {
		return s.WithUsages(0)
	}
	return s.WithUsages(u - n)
}

// DecrementDuration removes one round of duration, stopping at zero.
func (s State) DecrementDuration() State { return s.DecrementUsages(1) }

// WithCounter sets the secondary counter, saturating at MaxCounter.
func (s State) WithCounter(n uint8) State {
	if n > MaxCounter {
		n = MaxCounter
	}
	return State(uint8(s)&^counterMask | n<<counterBits)
}

// WithOncePerRound sets or clears the once-per-round flag.
func (s State) WithOncePerRound(used bool) State {
	if used {
		return State(uint8(s) | onceFlag)
	}
	return State(uint8(s) &^ onceFlag)
}

func (s State) String() string {
	return fmt.Sprintf("State{usages=%d counter=%d once=%t}", s.Usages(), s.Counter(), s.OncePerRoundUsed())
}
