package game

import (
	"fmt"

	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// DefaultLogCapacity is the number of entries kept when no capacity is given.
const DefaultLogCapacity = 256

// LogKind is the type of a logged game event.
type LogKind uint8

const (
	LogDamage LogKind = iota
	LogReaction
	LogHeal
	LogDefeat
	LogSwitch
	LogSkill
	LogCard
	LogPhase
	LogStatus
)

var logKindNames = map[LogKind]string{
	LogDamage:   "DAMAGE",
	LogReaction: "REACTION",
	LogHeal:     "HEAL",
	LogDefeat:   "DEFEAT",
	LogSwitch:   "SWITCH",
	LogSkill:    "SKILL",
	LogCard:     "CARD",
	LogPhase:    "PHASE",
	LogStatus:   "STATUS",
}

func (k LogKind) String() string {
	if name, ok := logKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("LOG_%d", int(k))
}

// LogEntry is one observable game event. Player is the player the event
// happened to; for damage that is the defender.
type LogEntry struct {
	Kind     LogKind
	Round    uint8
	Player   rules.PlayerID
	CharIdx  uint8
	Amount   uint8
	Damage   rules.DamageType
	Reaction rules.Reaction
	Skill    SkillID
	Card     CardID
	Key      effects.Key
	Phase    rules.PhaseKind
	// From is the previous active character for switches.
	From uint8
	// Removed marks a status removal rather than an addition.
	Removed bool
}

func (e LogEntry) String() string {
	switch e.Kind {
	case LogDamage:
		return fmt.Sprintf("r%d %s %s[%d] -%d %s", e.Round, e.Kind, e.Player, e.CharIdx, e.Amount, e.Damage)
	case LogReaction:
		return fmt.Sprintf("r%d %s %s[%d] %s", e.Round, e.Kind, e.Player, e.CharIdx, e.Reaction)
	case LogHeal:
		return fmt.Sprintf("r%d %s %s[%d] +%d", e.Round, e.Kind, e.Player, e.CharIdx, e.Amount)
	case LogSwitch:
		return fmt.Sprintf("r%d %s %s %d->%d", e.Round, e.Kind, e.Player, e.From, e.CharIdx)
	case LogSkill:
		return fmt.Sprintf("r%d %s %s[%d] %s", e.Round, e.Kind, e.Player, e.CharIdx, Skill(e.Skill).Name)
	case LogCard:
		return fmt.Sprintf("r%d %s %s %s", e.Round, e.Kind, e.Player, Card(e.Card).Name)
	case LogPhase:
		return fmt.Sprintf("r%d %s %s", e.Round, e.Kind, e.Phase)
	case LogStatus:
		op := "+"
		if e.Removed {
			op = "-"
		}
		return fmt.Sprintf("r%d %s %s %s%s", e.Round, e.Kind, e.Player, op, e.Key)
	}
	return fmt.Sprintf("r%d %s %s[%d]", e.Round, e.Kind, e.Player, e.CharIdx)
}

// EventLog keeps the most recent game events. A disabled log records nothing.
// The log is not part of the state hash.
type EventLog struct {
	enabled  bool
	capacity int
	entries  []LogEntry
	dropped  int
}

// NewEventLog creates a log keeping at most capacity entries.
func NewEventLog(enabled bool, capacity int) *EventLog {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &EventLog{enabled: enabled, capacity: capacity}
}

// Enabled reports whether the log records events.
func (l *EventLog) Enabled() bool { return l.enabled }

// Entries returns the recorded entries, oldest first. The slice must not be modified.
func (l *EventLog) Entries() []LogEntry { return l.entries }

// Dropped returns how many entries were evicted to respect the capacity.
func (l *EventLog) Dropped() int { return l.dropped }

// Len returns the number of entries held.
func (l *EventLog) Len() int { return len(l.entries) }

// Filter returns the entries of one kind.
func (l *EventLog) Filter(kind LogKind) []LogEntry {
	var out []LogEntry
	for _, e := range l.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Clear removes all entries.
func (l *EventLog) Clear() {
	l.entries = l.entries[:0]
	l.dropped = 0
}

func (l *EventLog) add(e LogEntry) {
	if !l.enabled {
		return
	}
	if len(l.entries) == l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
		l.dropped++
	}
	l.entries = append(l.entries, e)
}

func (l *EventLog) transpose() {
	for i := range l.entries {
		l.entries[i].Player = l.entries[i].Player.Opposite()
	}
}

func (l *EventLog) clone() *EventLog {
	return &EventLog{
		enabled:  l.enabled,
		capacity: l.capacity,
		entries:  append([]LogEntry(nil), l.entries...),
		dropped:  l.dropped,
	}
}

// logEvent stamps the entry with the current round and records it.
func (s *GameState) logEvent(e LogEntry) {
	if !s.log.enabled {
		return
	}
	e.Round = s.round
	s.log.add(e)
}
