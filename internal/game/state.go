package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// MaxCharacters is the largest team size.
const MaxCharacters = 8

// MaxHandSize is the most cards a hand may hold; extra cards are discarded.
const MaxHandSize = 10

// MaxSummons and MaxSupports bound the summon and support zones.
const (
	MaxSummons  = 4
	MaxSupports = 4
)

// CharState is one character on the board. A defeated character stays in
// place with zero health.
type CharState struct {
	ID      CharID
	health  uint8
	energy  uint8
	applied rules.ElementSet
}

func (c *CharState) Health() uint8             { return c.health }
func (c *CharState) Energy() uint8             { return c.energy }
func (c *CharState) Applied() rules.ElementSet { return c.applied }
func (c *CharState) IsAlive() bool             { return c.health > 0 }
func (c *CharState) Desc() *CharacterDesc      { return Character(c.ID) }
func (c *CharState) Element() rules.Element    { return Character(c.ID).Element }
func (c *CharState) HasFullEnergy() bool       { return c.energy >= Character(c.ID).MaxEnergy }

// HandEntry is a card held with its number of copies.
type HandEntry struct {
	Card  CardID
	Count uint8
}

// PlayerState is one player's side of the board.
type PlayerState struct {
	active uint8
	dice   dice.Counter
	chars  []CharState
	// hand is kept sorted by card id.
	hand   []HandEntry
	status StatusCollection
	flags  PlayerFlags
}

// ActiveIndex returns the index of the active character.
func (p *PlayerState) ActiveIndex() uint8 { return p.active }

// Active returns the active character.
func (p *PlayerState) Active() *CharState { return &p.chars[p.active] }

// Character returns a character by index.
func (p *PlayerState) Character(i uint8) *CharState { return &p.chars[i] }

// Characters returns the team in index order. The slice must not be modified.
func (p *PlayerState) Characters() []CharState { return p.chars }

// Dice returns the dice held.
func (p *PlayerState) Dice() dice.Counter { return p.dice }

// Hand returns the hand sorted by card id. The slice must not be modified.
func (p *PlayerState) Hand() []HandEntry { return p.hand }

// HandSize returns the number of cards held.
func (p *PlayerState) HandSize() int {
	n := 0
	for _, e := range p.hand {
		n += int(e.Count)
	}
	return n
}

// HandCount returns how many copies of a card are held.
func (p *PlayerState) HandCount(card CardID) uint8 {
	if i, ok := p.handIndex(card); ok {
		return p.hand[i].Count
	}
	return 0
}

func (p *PlayerState) handIndex(card CardID) (int, bool) {
	for i, e := range p.hand {
		if e.Card == card {
			return i, true
		}
		if e.Card > card {
			return i, false
		}
	}
	return len(p.hand), false
}

// Statuses returns the player's status registry.
func (p *PlayerState) Statuses() *StatusCollection { return &p.status }

// Flags returns the player's flag set.
func (p *PlayerState) Flags() PlayerFlags { return p.flags }

// HasFlag reports whether a flag is set.
func (p *PlayerState) HasFlag(f PlayerFlags) bool { return p.flags&f != 0 }

// IsAlive reports whether the character at index i is alive.
func (p *PlayerState) IsAlive(i uint8) bool {
	return int(i) < len(p.chars) && p.chars[i].health > 0
}

// LivingCount returns the number of living characters.
func (p *PlayerState) LivingCount() int {
	n := 0
	for i := range p.chars {
		if p.chars[i].health > 0 {
			n++
		}
	}
	return n
}

// relativeLiving returns the next living character after the active one in
// the given direction, wrapping around. It reports false if there is none.
func (p *PlayerState) relativeLiving(step int) (uint8, bool) {
	n := len(p.chars)
	for d := 1; d < n; d++ {
		i := (int(p.active) + step*d + n*d) % n
		if p.chars[i].health > 0 {
			return uint8(i), true
		}
	}
	return 0, false
}

func (p *PlayerState) clone() PlayerState {
	return PlayerState{
		active: p.active,
		dice:   p.dice,
		chars:  append([]CharState(nil), p.chars...),
		hand:   append([]HandEntry(nil), p.hand...),
		status: p.status.clone(),
		flags:  p.flags,
	}
}

// Setup describes a new game.
type Setup struct {
	Characters [2][]CharID
	Hands      [2][]CardID
	// LogEvents enables the in-state event log.
	LogEvents   bool
	LogCapacity int
	// IgnoreCosts lets every action be taken for free. Used for debugging content.
	IgnoreCosts bool
}

// GameState is the complete state of one game. It is owned by a single
// caller; clones are fully independent.
type GameState struct {
	players     [2]PlayerState
	phase       rules.Phase
	round       uint8
	pending     *PendingCommands
	log         *EventLog
	ignoreCosts bool

	// hash is maintained incrementally by the hashed mutators. fullHash also
	// covers the flags and pending commands and is refreshed by UpdateHash.
	hash     uint64
	fullHash uint64

	logger *zap.Logger
}

// NewGameState creates a game in the starting character selection phase.
func NewGameState(setup Setup) (*GameState, error) {
	s := &GameState{
		round:       1,
		phase:       rules.Phase{Kind: rules.PhaseSelectStartingCharacter, Active: rules.PlayerFirst, First: rules.PlayerFirst},
		log:         NewEventLog(setup.LogEvents, setup.LogCapacity),
		ignoreCosts: setup.IgnoreCosts,
		logger:      zap.NewNop(),
	}
	for p := range s.players {
		ids := setup.Characters[p]
		if len(ids) == 0 || len(ids) > MaxCharacters {
			return nil, fmt.Errorf("player %d: team must have 1 to %d characters, got %d", p, MaxCharacters, len(ids))
		}
		chars := make([]CharState, len(ids))
		for i, id := range ids {
			if id == 0 || int(id) > CharacterCount() {
				return nil, fmt.Errorf("player %d: unknown character id %d", p, id)
			}
			chars[i] = CharState{ID: id, health: Character(id).MaxHealth}
		}
		s.players[p].chars = chars
		for _, card := range setup.Hands[p] {
			if card == 0 || int(card) > CardCount() {
				return nil, fmt.Errorf("player %d: unknown card id %d", p, card)
			}
			s.addCardToHand(rules.PlayerID(p), card)
		}
	}
	s.Rehash()
	return s, nil
}

// WithLogger attaches a logger used for debug output. Nil detaches it.
func (s *GameState) WithLogger(logger *zap.Logger) *GameState {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
	return s
}

// Player returns a player's state for reading.
func (s *GameState) Player(p rules.PlayerID) *PlayerState { return &s.players[p] }

// Phase returns the current phase.
func (s *GameState) Phase() rules.Phase { return s.phase }

// Round returns the round number, starting at 1.
func (s *GameState) Round() uint8 { return s.round }

// Pending returns the suspension in progress, if any.
func (s *GameState) Pending() *PendingCommands { return s.pending }

// Log returns the event log.
func (s *GameState) Log() *EventLog { return s.log }

// IgnoreCosts reports whether costs are waived.
func (s *GameState) IgnoreCosts() bool { return s.ignoreCosts }

// Winner returns the winner once decided.
func (s *GameState) Winner() (rules.PlayerID, bool) { return s.phase.Winner() }

// CharacterCount implements targeting.StateAccessor.
func (s *GameState) CharacterCount(p rules.PlayerID) int { return len(s.players[p].chars) }

// IsAlive implements targeting.StateAccessor.
func (s *GameState) IsAlive(p rules.PlayerID, char uint8) bool { return s.players[p].IsAlive(char) }

// ActiveIndex implements targeting.StateAccessor.
func (s *GameState) ActiveIndex(p rules.PlayerID) uint8 { return s.players[p].active }

// Clone returns a fully independent copy of the state.
func (s *GameState) Clone() *GameState {
	c := &GameState{
		players:     [2]PlayerState{s.players[0].clone(), s.players[1].clone()},
		phase:       s.phase,
		round:       s.round,
		log:         s.log.clone(),
		ignoreCosts: s.ignoreCosts,
		hash:        s.hash,
		fullHash:    s.fullHash,
		logger:      s.logger,
	}
	if s.pending != nil {
		c.pending = s.pending.clone()
	}
	return c
}
