package effects

import (
	"fmt"

	"github.com/tcgsim/tcgsim/internal/game/counters"
)

// OutcomeKind is what a hook asks to happen to the status that ran it.
type OutcomeKind uint8

const (
	OutcomeNoop OutcomeKind = iota
	OutcomeHandled
	OutcomeDelete
	OutcomeDecrementUsages
	OutcomeConsumeOncePerRound
	OutcomeSetCounter
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeNoop:                "NOOP",
	OutcomeHandled:             "HANDLED",
	OutcomeDelete:              "DELETE",
	OutcomeDecrementUsages:     "DECREMENT_USAGES",
	OutcomeConsumeOncePerRound: "CONSUME_ONCE_PER_ROUND",
	OutcomeSetCounter:          "SET_COUNTER",
}

func (k OutcomeKind) String() string {
	if name, ok := outcomeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("OUTCOME_%d", int(k))
}

// Outcome is the result of invoking a hook.
type Outcome struct {
	Kind OutcomeKind
	// N is the usage count for OutcomeDecrementUsages or the value for OutcomeSetCounter.
	N uint8
	// Consume also marks the once-per-round effect used, for OutcomeSetCounter.
	Consume bool
}

// Noop means the hook did not apply.
func Noop() Outcome { return Outcome{} }

// Handled means the hook applied without changing the status.
func Handled() Outcome { return Outcome{Kind: OutcomeHandled} }

// Delete removes the status.
func Delete() Outcome { return Outcome{Kind: OutcomeDelete} }

// DecrementUsage uses up one usage.
func DecrementUsage() Outcome { return DecrementUsages(1) }

// DecrementUsages uses up n usages.
func DecrementUsages(n uint8) Outcome { return Outcome{Kind: OutcomeDecrementUsages, N: n} }

// ConsumeOncePerRound marks the once-per-round effect used.
func ConsumeOncePerRound() Outcome { return Outcome{Kind: OutcomeConsumeOncePerRound} }

// SetCounter stores v in the secondary counter, optionally also consuming once-per-round.
func SetCounter(v uint8, consume bool) Outcome {
	return Outcome{Kind: OutcomeSetCounter, N: v, Consume: consume}
}

// Applied reports whether the hook did anything.
func (o Outcome) Applied() bool { return o.Kind != OutcomeNoop }

// Apply computes the status state after the outcome. It reports true when the
// status should be removed from the registry.
func (o Outcome) Apply(state counters.State, spec *Spec) (counters.State, bool) {
	switch o.Kind {
	case OutcomeDelete:
		return state, true
	case OutcomeDecrementUsages:
		state = state.DecrementUsages(o.N)
		return state, state.Usages() == 0 && spec.Usages > 0 && !spec.ManualDiscard
	case OutcomeConsumeOncePerRound:
		return state.WithOncePerRound(true), false
	case OutcomeSetCounter:
		state = state.WithCounter(o.N)
		if o.Consume {
			state = state.WithOncePerRound(true)
		}
		return state, false
	}
	return state, false
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeDecrementUsages:
		return fmt.Sprintf("%s(%d)", o.Kind, o.N)
	case OutcomeSetCounter:
		return fmt.Sprintf("%s(%d,%t)", o.Kind, o.N, o.Consume)
	}
	return o.Kind.String()
}
