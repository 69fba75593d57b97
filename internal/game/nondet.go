package game

import (
	"math/rand/v2"

	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// NondetProvider produces results for nondeterministic requests. The engine
// never generates randomness itself.
type NondetProvider interface {
	Resolve(s *GameState, req NondetRequest) NondetResult
	// Clone copies the provider's position. Resolving on the copy leaves the
	// original untouched.
	Clone() NondetProvider
}

// StandardNondet draws from per-player decks and rolls fair dice using a
// seeded generator. It is not safe for concurrent use.
type StandardNondet struct {
	src   *rand.PCG
	rng   *rand.Rand
	decks [2][]CardID
}

// NewStandardNondet creates a provider with the given seed. Each deck is a
// multiset of the cards that player can still draw.
func NewStandardNondet(seed uint64, decks [2][]CardID) *StandardNondet {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &StandardNondet{
		src:   src,
		rng:   rand.New(src),
		decks: [2][]CardID{append([]CardID(nil), decks[0]...), append([]CardID(nil), decks[1]...)},
	}
}

func (n *StandardNondet) Clone() NondetProvider {
	src := *n.src
	return &StandardNondet{
		src:   &src,
		rng:   rand.New(&src),
		decks: [2][]CardID{append([]CardID(nil), n.decks[0]...), append([]CardID(nil), n.decks[1]...)},
	}
}

// DeckSize returns how many cards a player can still draw.
func (n *StandardNondet) DeckSize(p rules.PlayerID) int { return len(n.decks[p]) }

func (n *StandardNondet) Resolve(_ *GameState, req NondetRequest) NondetResult {
	res := NondetResult{Kind: req.Kind}
	switch req.Kind {
	case NondetDrawCards:
		for p := range n.decks {
			for i := uint8(0); i < req.Counts[p] && len(n.decks[p]) > 0; i++ {
				deck := n.decks[p]
				j := n.rng.IntN(len(deck))
				res.Cards[p] = append(res.Cards[p], deck[j])
				deck[j] = deck[len(deck)-1]
				n.decks[p] = deck[:len(deck)-1]
			}
		}
	case NondetRollDice:
		for p := range res.Dice {
			for i := uint8(0); i < req.Counts[p]; i++ {
				res.Dice[p][n.rng.IntN(dice.KindCount)]++
			}
		}
	case NondetSelectSummons:
		pool := append([]SummonID(nil), Pool(req.Pool)...)
		n.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		res.Summons = pool[:req.Count]
	}
	return res
}

// DeterministicNondet answers every request the same way: omni dice, cards
// in deck order and the first summons of a pool. Search uses it to explore
// without sampling.
type DeterministicNondet struct {
	decks [2][]CardID
	next  [2]int
}

// NewDeterministicNondet creates a provider drawing the decks in order.
func NewDeterministicNondet(decks [2][]CardID) *DeterministicNondet {
	return &DeterministicNondet{decks: decks}
}

// Clone shares the decks, which are never written.
func (n *DeterministicNondet) Clone() NondetProvider {
	cp := *n
	return &cp
}

func (n *DeterministicNondet) Resolve(_ *GameState, req NondetRequest) NondetResult {
	res := NondetResult{Kind: req.Kind}
	switch req.Kind {
	case NondetDrawCards:
		for p := range n.decks {
			for i := uint8(0); i < req.Counts[p] && n.next[p] < len(n.decks[p]); i++ {
				res.Cards[p] = append(res.Cards[p], n.decks[p][n.next[p]])
				n.next[p]++
			}
		}
	case NondetRollDice:
		for p := range res.Dice {
			res.Dice[p] = dice.OmniDice(req.Counts[p])
		}
	case NondetSelectSummons:
		res.Summons = append([]SummonID(nil), Pool(req.Pool)[:req.Count]...)
	}
	return res
}

// RunUntilPlayerInput advances through every step that needs no player
// decision, resolving nondeterminism with the provider. Applied inputs are
// recorded when rec is not nil.
func (s *GameState) RunUntilPlayerInput(provider NondetProvider, rec *Replay) (DispatchResult, error) {
	for {
		exp := s.Expected()
		var input Input
		switch exp.Kind {
		case DispatchNoInput:
			input = NoAction()
		case DispatchNondet:
			input = NondetInput(provider.Resolve(s, exp.Request))
		default:
			return exp, nil
		}
		if _, err := s.Advance(input); err != nil {
			return DispatchResult{}, err
		}
		if rec != nil {
			rec.Record(input, s.Hash())
		}
	}
}

// InitialHandSize is how many cards each player starts with.
const InitialHandSize = 5

// DealHands fills the setup's starting hands by drawing n cards per player
// from the provider.
func DealHands(provider NondetProvider, setup Setup, n uint8) Setup {
	res := provider.Resolve(nil, NondetRequest{Kind: NondetDrawCards, Counts: [2]uint8{n, n}})
	for p := range setup.Hands {
		setup.Hands[p] = append(append([]CardID(nil), setup.Hands[p]...), res.Cards[p]...)
	}
	return setup
}
