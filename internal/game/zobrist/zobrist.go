// Package zobrist holds the process-wide tables of pseudo-random constants
// used to maintain incremental state hashes.
//
// Tables are filled once on first use and never written afterwards, so they
// can be read from any number of goroutines.
package zobrist

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Table sizes. Values outside these bounds are hashed with Mix instead.
const (
	Players    = 2
	MaxChars   = 8
	MaxHealth  = 32
	MaxEnergy  = 8
	MaxApplied = 128
	DiceKinds  = 8
	MaxDice    = 32
	MaxRounds  = 64
	MaxCards   = 128
	MaxCopies  = 16
	// Status keys are tabled by attach kind, character, slot and id.
	MaxAttachKinds = 5
	MaxSlots       = 4
	MaxStatusIDs   = 64
)

// Domain separates the open id spaces hashed with Mix.
type Domain uint8

const (
	DomainHealth Domain = iota + 1
	DomainEnergy
	DomainApplied
	DomainActive
	DomainDice
	DomainRound
	DomainHand
	DomainStatus
	DomainPhase
	DomainFlags
	DomainPending
)

type tables struct {
	health  [Players][MaxChars][MaxHealth]uint64
	energy  [Players][MaxChars][MaxEnergy]uint64
	applied [Players][MaxChars][MaxApplied]uint64
	active  [Players][MaxChars]uint64
	dice    [Players][DiceKinds][MaxDice]uint64
	round   [MaxRounds]uint64
	hand    [Players][MaxCards][MaxCopies]uint64
	// A status contributes statusKey * statusState. Key constants are odd,
	// so each key maps the states to distinct values.
	statusKey   [Players][MaxAttachKinds][MaxChars][MaxSlots][MaxStatusIDs]uint64
	statusState [256]uint64
}

var (
	once sync.Once
	tbl  *tables
)

func get() *tables {
	once.Do(func() {
		t := &tables{}
		for p := 0; p < Players; p++ {
			for c := 0; c < MaxChars; c++ {
				for v := 0; v < MaxHealth; v++ {
					t.health[p][c][v] = derive(DomainHealth, p, c, v)
				}
				for v := 0; v < MaxEnergy; v++ {
					t.energy[p][c][v] = derive(DomainEnergy, p, c, v)
				}
				for v := 0; v < MaxApplied; v++ {
					t.applied[p][c][v] = derive(DomainApplied, p, c, v)
				}
				t.active[p][c] = derive(DomainActive, p, c, 0)
			}
			for k := 0; k < DiceKinds; k++ {
				for v := 0; v < MaxDice; v++ {
					t.dice[p][k][v] = derive(DomainDice, p, k, v)
				}
			}
			for c := 1; c < MaxCards; c++ {
				for n := 1; n < MaxCopies; n++ {
					t.hand[p][c][n] = derive(DomainHand, p, c, n)
				}
			}
			for k := range t.statusKey[p] {
				for c := range t.statusKey[p][k] {
					for s := range t.statusKey[p][k][c] {
						for id := range t.statusKey[p][k][c][s] {
							t.statusKey[p][k][c][s][id] = Mix(DomainStatus, statusKey(p, k, c, s, id)) | 1
						}
					}
				}
			}
		}
		for st := range t.statusState {
			t.statusState[st] = Mix(DomainStatus, uint64(st)|1<<63)
		}
		for r := 0; r < MaxRounds; r++ {
			t.round[r] = derive(DomainRound, 0, 0, r)
		}
		tbl = t
	})
	return tbl
}

func derive(d Domain, a, b, c int) uint64 {
	return Mix(d, uint64(a)<<48|uint64(b)<<32|uint64(c))
}

// Mix hashes a value within a domain. Zero is never returned for a nonzero
// domain, so a contribution is never silently absent.
func Mix(d Domain, v uint64) uint64 {
	var buf [9]byte
	buf[0] = byte(d)
	binary.LittleEndian.PutUint64(buf[1:], v)
	h := xxhash.Sum64(buf[:])
	if h == 0 {
		h = 1
	}
	return h
}

// Health is the contribution of a character's health.
func Health(player, char int, v uint8) uint64 {
	if char < MaxChars && int(v) < MaxHealth {
		return get().health[player][char][v]
	}
	return derive(DomainHealth, player, char, int(v))
}

// Energy is the contribution of a character's energy.
func Energy(player, char int, v uint8) uint64 {
	if char < MaxChars && int(v) < MaxEnergy {
		return get().energy[player][char][v]
	}
	return derive(DomainEnergy, player, char, int(v))
}

// Applied is the contribution of a character's applied element set.
func Applied(player, char int, set uint8) uint64 {
	if char < MaxChars && int(set) < MaxApplied {
		return get().applied[player][char][set]
	}
	return derive(DomainApplied, player, char, int(set))
}

// Active is the contribution of a player's active character index.
func Active(player, char int) uint64 {
	if char < MaxChars {
		return get().active[player][char]
	}
	return derive(DomainActive, player, char, 0)
}

// Dice is the contribution of how many dice of one face a player holds.
func Dice(player, kind int, count uint8) uint64 {
	if kind < DiceKinds && int(count) < MaxDice {
		return get().dice[player][kind][count]
	}
	return derive(DomainDice, player, kind, int(count))
}

// Round is the contribution of the round counter.
func Round(r uint8) uint64 {
	if int(r) < MaxRounds {
		return get().round[r]
	}
	return derive(DomainRound, 0, 0, int(r))
}

// Hand is the contribution of holding count copies of a card. Zero copies contribute nothing.
func Hand(player int, card uint16, count uint8) uint64 {
	if count == 0 {
		return 0
	}
	if int(card) < MaxCards && int(count) < MaxCopies {
		return get().hand[player][card][count]
	}
	return derive(DomainHand, player, int(card), int(count))
}

func statusKey(player, kind, char, slot, id int) uint64 {
	return uint64(player)<<56 | uint64(kind)<<48 | uint64(char)<<40 | uint64(slot)<<32 | uint64(id)
}

// Status is the contribution of one registry entry.
func Status(player int, kind, char, slot uint8, id uint16, state uint8) uint64 {
	if int(kind) < MaxAttachKinds && int(char) < MaxChars && int(slot) < MaxSlots && int(id) < MaxStatusIDs {
		t := get()
		return t.statusKey[player][kind][char][slot][id] * t.statusState[state]
	}
	key := statusKey(player, int(kind), int(char), int(slot), int(id))
	return Mix(DomainStatus, key^uint64(state)<<24|1<<62)
}

// Phase is the contribution of the packed phase.
func Phase(packed uint64) uint64 {
	return Mix(DomainPhase, packed)
}

// Digest accumulates an order-dependent hash over a sequence of values. It is
// used for parts of the state that are recomputed rather than maintained.
type Digest struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewDigest starts a digest for a domain.
func NewDigest(d Domain) *Digest {
	dg := &Digest{d: xxhash.New()}
	dg.Write(uint64(d))
	return dg
}

// Write appends a value.
func (dg *Digest) Write(v uint64) {
	binary.LittleEndian.PutUint64(dg.buf[:], v)
	_, _ = dg.d.Write(dg.buf[:])
}

// Sum returns the hash of everything written so far.
func (dg *Digest) Sum() uint64 { return dg.d.Sum64() }
