package effects

import (
	"fmt"

	"github.com/tcgsim/tcgsim/internal/game/counters"
)

// Spec is the static declaration of a status, summon or support.
type Spec struct {
	Name   string
	Attach AttachKind
	// Usages is the initial usage count. Zero means the status is not usage-based.
	Usages uint8
	// MaxUsages lets re-application stack usages up to this cap.
	MaxUsages uint8
	// Duration is the number of round ends the status survives. Zero means permanent.
	Duration uint8
	// ShieldPoints marks usages as shield points absorbing damage.
	ShieldPoints bool
	// ManualDiscard keeps the status at zero usages; it must delete itself.
	ManualDiscard bool
	// Counter is the initial secondary counter.
	Counter uint8

	Capabilities Capabilities
}

// Validate checks the declaration for contradictions.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("status declared without a name")
	}
	if s.Usages > 0 && s.Duration > 0 {
		return fmt.Errorf("status %s declares both usages and duration", s.Name)
	}
	if s.Usages > counters.MaxUsages || s.MaxUsages > counters.MaxUsages || s.Duration > counters.MaxUsages {
		return fmt.Errorf("status %s exceeds %d usages", s.Name, counters.MaxUsages)
	}
	if s.MaxUsages > 0 && s.MaxUsages < s.Usages {
		return fmt.Errorf("status %s has max usages below initial usages", s.Name)
	}
	if s.ShieldPoints {
		if s.Usages == 0 {
			return fmt.Errorf("shield status %s needs usages", s.Name)
		}
		s.Capabilities.Hooks |= HookShieldPoints
	}
	if s.Counter > counters.MaxCounter {
		return fmt.Errorf("status %s counter exceeds %d", s.Name, counters.MaxCounter)
	}
	return nil
}

// InitialState is the state of a freshly applied instance.
func (s *Spec) InitialState() counters.State {
	var st counters.State
	if s.Duration > 0 {
		st = st.WithDuration(s.Duration)
	} else {
		st = st.WithUsages(s.Usages)
	}
	return st.WithCounter(s.Counter)
}

// Reapply computes the state when the status is applied again while present.
// Usages stack up to MaxUsages when declared, otherwise refresh; duration refreshes.
func (s *Spec) Reapply(existing counters.State) counters.State {
	switch {
	case s.Duration > 0:
		return existing.WithDuration(s.Duration)
	case s.MaxUsages > s.Usages:
		return existing.AddUsages(s.Usages, s.MaxUsages)
	case existing.Usages() < s.Usages:
		return existing.WithUsages(s.Usages)
	}
	return existing
}

// TickDuration counts down one round end. It reports true when the status expires.
func (s *Spec) TickDuration(state counters.State) (counters.State, bool) {
	if s.Duration == 0 {
		return state, false
	}
	state = state.DecrementDuration()
	return state, state.Duration() == 0
}

// ResetRound clears the once-per-round flag at the start of a round.
func ResetRound(state counters.State) counters.State {
	return state.WithOncePerRound(false)
}
