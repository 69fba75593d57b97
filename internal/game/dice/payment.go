package dice

import (
	"sort"

	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// Select chooses which dice pay for a cost, given the dice held and the
// element of the active character. The choice is deterministic:
//   - elemental dice use the exact face first, then omni;
//   - aligned dice use the non-omni face held most (ties go to the active
//     element, then to the lower face), topped up with omni;
//   - unaligned dice use faces not matching the active element, fewest held
//     first, then the active element, then omni.
//
// It reports false when the held dice cannot pay. Energy is not considered.
func Select(available Counter, cost Cost, active rules.Element) (Counter, bool) {
	var spent Counter
	avail := available

	take := func(k Kind, n uint8) uint8 {
		d := min(avail[k], n)
		avail[k] -= d
		spent[k] += d
		return n - d
	}

	if cost.Elemental > 0 {
		rest := take(KindOf(cost.Element), cost.Elemental)
		if take(Omni, rest) > 0 {
			return Counter{}, false
		}
	}

	if cost.Aligned > 0 {
		best := alignedFace(avail, active)
		rest := cost.Aligned
		if best != Omni {
			rest = take(best, rest)
		}
		if take(Omni, rest) > 0 {
			return Counter{}, false
		}
	}

	if cost.Unaligned > 0 {
		rest := cost.Unaligned
		for _, k := range unalignedOrder(avail, active) {
			rest = take(k, rest)
			if rest == 0 {
				break
			}
		}
		if rest > 0 {
			return Counter{}, false
		}
	}

	return spent, true
}

// CanPay reports whether the held dice can pay the dice portion of a cost.
func CanPay(available Counter, cost Cost, active rules.Element) bool {
	_, ok := Select(available, cost, active)
	return ok
}

func alignedFace(avail Counter, active rules.Element) Kind {
	best := Omni
	activeKind := KindOf(active)
	for k := Kind(1); k < KindCount; k++ {
		if avail[k] == 0 {
			continue
		}
		switch {
		case best == Omni, avail[k] > avail[best]:
			best = k
		case avail[k] == avail[best] && k == activeKind:
			best = k
		}
	}
	return best
}

func unalignedOrder(avail Counter, active rules.Element) []Kind {
	activeKind := KindOf(active)
	order := make([]Kind, 0, KindCount)
	for k := Kind(1); k < KindCount; k++ {
		if k != activeKind && avail[k] > 0 {
			order = append(order, k)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return avail[order[i]] < avail[order[j]]
	})
	return append(order, activeKind, Omni)
}

// CanTune reports whether any die can be converted by elemental tuning.
// Omni dice and dice already matching the active element cannot.
func CanTune(available Counter, active rules.Element) bool {
	_, ok := TuneSelect(available, active)
	return ok
}

// TuneSelect picks the die converted by elemental tuning: the face not
// matching the active element that is held least (ties go to the lower face).
func TuneSelect(available Counter, active rules.Element) (Kind, bool) {
	activeKind := KindOf(active)
	best, found := Omni, false
	for k := Kind(1); k < KindCount; k++ {
		if k == activeKind || available[k] == 0 {
			continue
		}
		if !found || available[k] < available[best] {
			best, found = k, true
		}
	}
	return best, found
}
