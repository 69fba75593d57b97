package game

import (
	"fmt"

	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/rules"
	"github.com/tcgsim/tcgsim/internal/game/zobrist"
)

// SuspendKind is why command execution stopped.
type SuspendKind uint8

const (
	// SuspendPostDeathSwitch waits for a player whose active character died.
	SuspendPostDeathSwitch SuspendKind = iota
	// SuspendNondet waits for a nondeterministic result.
	SuspendNondet
)

func (k SuspendKind) String() string {
	switch k {
	case SuspendPostDeathSwitch:
		return "POST_DEATH_SWITCH"
	case SuspendNondet:
		return "NONDET"
	}
	return fmt.Sprintf("SUSPEND_%d", int(k))
}

// NondetKind is the type of randomness requested.
type NondetKind uint8

const (
	NondetDrawCards NondetKind = iota
	NondetRollDice
	NondetSelectSummons
)

var nondetNames = map[NondetKind]string{
	NondetDrawCards:     "DRAW_CARDS",
	NondetRollDice:      "ROLL_DICE",
	NondetSelectSummons: "SELECT_SUMMONS",
}

func (k NondetKind) String() string {
	if name, ok := nondetNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NONDET_%d", int(k))
}

// NondetRequest asks the caller for a random outcome.
type NondetRequest struct {
	Kind NondetKind
	// Counts is the number of cards or dice per player for draw and roll requests.
	Counts [2]uint8
	// Player, Count and Pool describe a summon selection.
	Player rules.PlayerID
	Count  uint8
	Pool   PoolID
}

func (r NondetRequest) String() string {
	if r.Kind == NondetSelectSummons {
		return fmt.Sprintf("%s(%s pool=%d n=%d)", r.Kind, r.Player, r.Pool, r.Count)
	}
	return fmt.Sprintf("%s(%d,%d)", r.Kind, r.Counts[0], r.Counts[1])
}

// Transpose swaps the player references in the request.
func (r NondetRequest) Transpose() NondetRequest {
	r.Counts[0], r.Counts[1] = r.Counts[1], r.Counts[0]
	if r.Kind == NondetSelectSummons {
		r.Player = r.Player.Opposite()
	}
	return r
}

// NondetResult is the caller-supplied answer to a NondetRequest.
type NondetResult struct {
	Kind NondetKind
	// Cards drawn per player; may be fewer than requested when a deck runs out.
	Cards [2][]CardID
	// Dice rolled per player; totals must equal the requested counts.
	Dice [2]dice.Counter
	// Summons selected; exactly the requested count, distinct, from the pool.
	Summons []SummonID
}

// Validate checks that the result answers the request.
func (r *NondetResult) Validate(req NondetRequest) error {
	if r.Kind != req.Kind {
		return inputErr(ErrNondetShapeMismatch, "expected %s, got %s", req.Kind, r.Kind)
	}
	switch req.Kind {
	case NondetDrawCards:
		for p := range r.Cards {
			if len(r.Cards[p]) > int(req.Counts[p]) {
				return inputErr(ErrNondetShapeMismatch, "player %d drew %d cards, requested %d", p, len(r.Cards[p]), req.Counts[p])
			}
			for _, c := range r.Cards[p] {
				if c == 0 || int(c) > CardCount() {
					return inputErr(ErrNondetShapeMismatch, "unknown card id %d", c)
				}
			}
		}
	case NondetRollDice:
		for p := range r.Dice {
			if r.Dice[p].Total() != int(req.Counts[p]) {
				return inputErr(ErrNondetShapeMismatch, "player %d rolled %d dice, requested %d", p, r.Dice[p].Total(), req.Counts[p])
			}
		}
	case NondetSelectSummons:
		if len(r.Summons) != int(req.Count) {
			return inputErr(ErrNondetShapeMismatch, "selected %d summons, requested %d", len(r.Summons), req.Count)
		}
		pool := Pool(req.Pool)
		seen := make(map[SummonID]bool, len(r.Summons))
		for _, id := range r.Summons {
			if seen[id] {
				return inputErr(ErrNondetShapeMismatch, "summon %d selected twice", id)
			}
			seen[id] = true
			if !containsSummon(pool, id) {
				return inputErr(ErrNondetShapeMismatch, "summon %d is not in pool %d", id, req.Pool)
			}
		}
	}
	return nil
}

func containsSummon(pool []SummonID, id SummonID) bool {
	for _, s := range pool {
		if s == id {
			return true
		}
	}
	return false
}

// commands turns a validated result into the commands that apply it.
func (r *NondetResult) commands(req NondetRequest) []CommandEntry {
	var out []CommandEntry
	switch req.Kind {
	case NondetDrawCards:
		for p := range r.Cards {
			ctx := EventContext(rules.PlayerID(p))
			for _, c := range r.Cards[p] {
				out = append(out, Entry(ctx, AddCardToHand(c)))
			}
		}
	case NondetRollDice:
		for p := range r.Dice {
			out = append(out, Entry(EventContext(rules.PlayerID(p)), AddDice(r.Dice[p])))
		}
	case NondetSelectSummons:
		ctx := EventContext(req.Player)
		for _, id := range r.Summons {
			out = append(out, Entry(ctx, AddSummon(id)))
		}
	}
	return out
}

// Transpose swaps the player references in the result.
func (r NondetResult) Transpose() NondetResult {
	r.Cards[0], r.Cards[1] = r.Cards[1], r.Cards[0]
	r.Dice[0], r.Dice[1] = r.Dice[1], r.Dice[0]
	return r
}

// SuspendedState records what the engine waits for.
type SuspendedState struct {
	Kind SuspendKind
	// Player is the player who must switch after a death.
	Player  rules.PlayerID
	Request NondetRequest
}

// PendingCommands is a suspension: the reason plus the commands that run
// once it is resolved.
type PendingCommands struct {
	Suspended SuspendedState
	Queue     []CommandEntry
}

func (pc *PendingCommands) clone() *PendingCommands {
	return &PendingCommands{
		Suspended: pc.Suspended,
		Queue:     append([]CommandEntry(nil), pc.Queue...),
	}
}

func (pc *PendingCommands) transpose() {
	switch pc.Suspended.Kind {
	case SuspendPostDeathSwitch:
		pc.Suspended.Player = pc.Suspended.Player.Opposite()
	case SuspendNondet:
		pc.Suspended.Request = pc.Suspended.Request.Transpose()
	}
	for i := range pc.Queue {
		pc.Queue[i].Ctx = pc.Queue[i].Ctx.Transpose()
	}
}

func (pc *PendingCommands) digest(d *zobrist.Digest) {
	req := pc.Suspended.Request
	d.Write(uint64(pc.Suspended.Kind) | uint64(pc.Suspended.Player)<<8 |
		uint64(req.Kind)<<16 | uint64(req.Counts[0])<<24 | uint64(req.Counts[1])<<32 |
		uint64(req.Player)<<40 | uint64(req.Count)<<48)
	d.Write(uint64(req.Pool) | uint64(len(pc.Queue))<<16)
	for i := range pc.Queue {
		pc.Queue[i].digest(d)
	}
}
