package game

import (
	"github.com/tcgsim/tcgsim/internal/game/counters"
	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
	"github.com/tcgsim/tcgsim/internal/game/zobrist"
)

// Every mutation of a hashed field goes through one of the setters below so
// the incremental hash stays equal to a full recomputation.

func (s *GameState) setHealth(p rules.PlayerID, c uint8, v uint8) {
	ch := &s.players[p].chars[c]
	if ch.health == v {
		return
	}
	s.hash ^= zobrist.Health(int(p), int(c), ch.health) ^ zobrist.Health(int(p), int(c), v)
	ch.health = v
}

func (s *GameState) setEnergy(p rules.PlayerID, c uint8, v uint8) {
	ch := &s.players[p].chars[c]
	if ch.energy == v {
		return
	}
	s.hash ^= zobrist.Energy(int(p), int(c), ch.energy) ^ zobrist.Energy(int(p), int(c), v)
	ch.energy = v
}

func (s *GameState) setApplied(p rules.PlayerID, c uint8, v rules.ElementSet) {
	ch := &s.players[p].chars[c]
	if ch.applied == v {
		return
	}
	s.hash ^= zobrist.Applied(int(p), int(c), uint8(ch.applied)) ^ zobrist.Applied(int(p), int(c), uint8(v))
	ch.applied = v
}

func (s *GameState) setActive(p rules.PlayerID, c uint8) {
	ps := &s.players[p]
	if ps.active == c {
		return
	}
	s.hash ^= zobrist.Active(int(p), int(ps.active)) ^ zobrist.Active(int(p), int(c))
	ps.active = c
}

func (s *GameState) setDice(p rules.PlayerID, d dice.Counter) {
	ps := &s.players[p]
	for k := range d {
		if ps.dice[k] != d[k] {
			s.hash ^= zobrist.Dice(int(p), k, ps.dice[k]) ^ zobrist.Dice(int(p), k, d[k])
		}
	}
	ps.dice = d
}

// addCardToHand adds one copy of a card. It reports false when the hand is
// full and the card was discarded.
func (s *GameState) addCardToHand(p rules.PlayerID, card CardID) bool {
	ps := &s.players[p]
	if ps.HandSize() >= MaxHandSize {
		return false
	}
	i, ok := ps.handIndex(card)
	if !ok {
		ps.hand = append(ps.hand, HandEntry{})
		copy(ps.hand[i+1:], ps.hand[i:])
		ps.hand[i] = HandEntry{Card: card}
	}
	prev := ps.hand[i].Count
	ps.hand[i].Count++
	s.hash ^= zobrist.Hand(int(p), uint16(card), prev) ^ zobrist.Hand(int(p), uint16(card), prev+1)
	return true
}

// removeCardFromHand removes one copy of a card. It reports false when the
// card is not held.
func (s *GameState) removeCardFromHand(p rules.PlayerID, card CardID) bool {
	ps := &s.players[p]
	i, ok := ps.handIndex(card)
	if !ok {
		return false
	}
	prev := ps.hand[i].Count
	s.hash ^= zobrist.Hand(int(p), uint16(card), prev) ^ zobrist.Hand(int(p), uint16(card), prev-1)
	if prev == 1 {
		ps.hand = append(ps.hand[:i], ps.hand[i+1:]...)
	} else {
		ps.hand[i].Count--
	}
	return true
}

func statusHash(p rules.PlayerID, k effects.Key, st counters.State) uint64 {
	return zobrist.Status(int(p), uint8(k.Kind), k.Char, k.Slot, k.ID, uint8(st))
}

// setStatus inserts or updates a status entry.
func (s *GameState) setStatus(p rules.PlayerID, k effects.Key, st counters.State) {
	prev, existed := s.players[p].status.set(k, st)
	if existed {
		if prev == st {
			return
		}
		s.hash ^= statusHash(p, k, prev)
	}
	s.hash ^= statusHash(p, k, st)
}

// removeStatus deletes a status entry and refreshes the capability cache.
func (s *GameState) removeStatus(p rules.PlayerID, k effects.Key) bool {
	if !s.takeStatus(p, k) {
		return false
	}
	s.players[p].status.refresh()
	return true
}

// takeStatus deletes a status entry without refreshing the capability cache.
func (s *GameState) takeStatus(p rules.PlayerID, k effects.Key) bool {
	prev, ok := s.players[p].status.take(k)
	if ok {
		s.hash ^= statusHash(p, k, prev)
	}
	return ok
}

func (s *GameState) setPhase(ph rules.Phase) {
	if s.phase == ph {
		return
	}
	s.hash ^= zobrist.Phase(s.phase.Pack()) ^ zobrist.Phase(ph.Pack())
	s.phase = ph
}

func (s *GameState) setRound(r uint8) {
	if s.round == r {
		return
	}
	s.hash ^= zobrist.Round(s.round) ^ zobrist.Round(r)
	s.round = r
}

// Hash returns the full state hash as of the last UpdateHash. Two states that
// are equal in every observable field have equal hashes.
func (s *GameState) Hash() uint64 { return s.fullHash }

// UpdateHash folds the fields that are not maintained incrementally into the
// full hash. Advance calls it before returning.
func (s *GameState) UpdateHash() {
	s.fullHash = s.hash ^ s.remainderHash()
}

// Rehash recomputes the incremental hash from scratch.
func (s *GameState) Rehash() {
	s.hash = s.incrementalHash()
	s.UpdateHash()
}

// ComputeHash recomputes the full hash without touching the state. It must
// always agree with Hash after UpdateHash.
func (s *GameState) ComputeHash() uint64 {
	return s.incrementalHash() ^ s.remainderHash()
}

func (s *GameState) incrementalHash() uint64 {
	h := zobrist.Phase(s.phase.Pack()) ^ zobrist.Round(s.round)
	for pi := range s.players {
		ps := &s.players[pi]
		p := rules.PlayerID(pi)
		h ^= zobrist.Active(pi, int(ps.active))
		for ci := range ps.chars {
			ch := &ps.chars[ci]
			h ^= zobrist.Health(pi, ci, ch.health) ^
				zobrist.Energy(pi, ci, ch.energy) ^
				zobrist.Applied(pi, ci, uint8(ch.applied))
		}
		for k, n := range ps.dice {
			h ^= zobrist.Dice(pi, k, n)
		}
		for _, e := range ps.hand {
			h ^= zobrist.Hand(pi, uint16(e.Card), e.Count)
		}
		for _, e := range ps.status.entries {
			h ^= statusHash(p, e.Key, e.State)
		}
	}
	return h
}

func (s *GameState) remainderHash() uint64 {
	flags := uint64(s.players[0].flags) | uint64(s.players[1].flags)<<8
	if s.ignoreCosts {
		flags |= 1 << 16
	}
	h := zobrist.Mix(zobrist.DomainFlags, flags)
	if s.pending == nil {
		return h
	}
	d := zobrist.NewDigest(zobrist.DomainPending)
	s.pending.digest(d)
	return h ^ d.Sum()
}

// digest feeds a queued command into a running digest.
func (e *CommandEntry) digest(d *zobrist.Digest) {
	ctx, src, cmd := &e.Ctx, &e.Ctx.Source, &e.Cmd
	hasTarget := uint64(0)
	if ctx.HasTarget {
		hasTarget = 1
	}
	d.Write(uint64(ctx.Player) | uint64(src.Kind)<<8 | uint64(src.CharIdx)<<16 |
		uint64(src.From)<<24 | uint64(src.To)<<32 | uint64(ctx.Target.Player)<<40 |
		uint64(ctx.Target.CharIdx)<<48 | hasTarget<<56)
	d.Write(uint64(src.Skill) | uint64(src.Card)<<16 | uint64(src.Summon)<<32)
	d.Write(uint64(cmd.Kind) | uint64(cmd.Damage.Type)<<8 | uint64(cmd.Damage.Amount)<<16 |
		uint64(cmd.Damage.PiercingOthers)<<24 | uint64(cmd.Element)<<32 | uint64(cmd.Amount)<<40 |
		uint64(cmd.CharIdx)<<48 | uint64(cmd.Slot)<<56)
	d.Write(uint64(cmd.Status) | uint64(cmd.Summon)<<16 | uint64(cmd.Support)<<32 | uint64(cmd.Card)<<48)
	d.Write(uint64(cmd.Skill) | uint64(cmd.Pool)<<16 | uint64(cmd.Trigger)<<32 | uint64(cmd.Flag)<<40)
	d.Write(cmd.Key.Pack())
	var packed uint64
	for k, n := range cmd.Dice {
		packed |= uint64(n) << (8 * k)
	}
	d.Write(packed)
}
