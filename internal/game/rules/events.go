package rules

import (
	"fmt"
	"strings"
)

// Trigger is a discrete, named moment that statuses can subscribe to.
type Trigger uint8

const (
	TriggerRollPhase Trigger = iota
	TriggerActionPhase
	TriggerEndPhase
	TriggerSwitched
	TriggerDeclaredEndOfRound
	TriggerCardPlayed
	TriggerCharacterDefeated
	triggerCount
)

var triggerNames = map[Trigger]string{
	TriggerRollPhase:          "ROLL_PHASE",
	TriggerActionPhase:        "ACTION_PHASE",
	TriggerEndPhase:           "END_PHASE",
	TriggerSwitched:           "SWITCHED",
	TriggerDeclaredEndOfRound: "DECLARED_END_OF_ROUND",
	TriggerCardPlayed:         "CARD_PLAYED",
	TriggerCharacterDefeated:  "CHARACTER_DEFEATED",
}

func (t Trigger) String() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TRIGGER_%d", int(t))
}

// TriggerSet is a bitset of discrete triggers.
type TriggerSet uint16

// TriggersOf builds a set from the given triggers.
func TriggersOf(triggers ...Trigger) TriggerSet {
	var s TriggerSet
	for _, t := range triggers {
		s |= 1 << t
	}
	return s
}

func (s TriggerSet) Has(t Trigger) bool { return s&(1<<t) != 0 }
func (s TriggerSet) IsEmpty() bool      { return s == 0 }

func (s TriggerSet) String() string {
	parts := make([]string, 0, 2)
	for t := Trigger(0); t < triggerCount; t++ {
		if s.Has(t) {
			parts = append(parts, t.String())
		}
	}
	return "{" + strings.Join(parts, "|") + "}"
}

// EventMask classifies a cross-cutting event (damage or skill occurrence).
//
// The mask is split into three groups: what kind of event it is, who raised it
// relative to the listening player, and what caused it. A status mask matches
// an event mask when they intersect in every group, so a status declaring
// EventDamageDealt|EventByOwner|EventNormalAttack only sees damage from its
// owner's normal attacks.
type EventMask uint16

const (
	// kind
	EventSkillCast EventMask = 1 << iota
	EventDamageDealt

	// who
	EventByOwner
	EventByOpponent

	// what
	EventNormalAttack
	EventElementalSkill
	EventElementalBurst
	EventSummon
	EventReaction
)

const (
	EventKindMask = EventSkillCast | EventDamageDealt
	EventWhoMask  = EventByOwner | EventByOpponent
	EventWhatMask = EventNormalAttack | EventElementalSkill | EventElementalBurst | EventSummon | EventReaction

	// EventAnySkill matches every skill type.
	EventAnySkill = EventNormalAttack | EventElementalSkill | EventElementalBurst
	// EventAnyone matches events raised by either side.
	EventAnyone = EventWhoMask
)

var eventMaskNames = []struct {
	bit  EventMask
	name string
}{
	{EventSkillCast, "SKILL_CAST"},
	{EventDamageDealt, "DAMAGE_DEALT"},
	{EventByOwner, "BY_OWNER"},
	{EventByOpponent, "BY_OPPONENT"},
	{EventNormalAttack, "NORMAL_ATTACK"},
	{EventElementalSkill, "ELEMENTAL_SKILL"},
	{EventElementalBurst, "ELEMENTAL_BURST"},
	{EventSummon, "SUMMON"},
	{EventReaction, "REACTION"},
}

// Matches reports whether a listener declaring mask m should see the event.
func (m EventMask) Matches(event EventMask) bool {
	return m&event&EventKindMask != 0 &&
		m&event&EventWhoMask != 0 &&
		m&event&EventWhatMask != 0
}

// Flip swaps the owner and opponent bits, viewing the event from the other side.
func (m EventMask) Flip() EventMask {
	who := m & EventWhoMask
	out := m &^ EventWhoMask
	if who&EventByOwner != 0 {
		out |= EventByOpponent
	}
	if who&EventByOpponent != 0 {
		out |= EventByOwner
	}
	return out
}

func (m EventMask) String() string {
	parts := make([]string, 0, 3)
	for _, e := range eventMaskNames {
		if m&e.bit != 0 {
			parts = append(parts, e.name)
		}
	}
	return "{" + strings.Join(parts, "|") + "}"
}
