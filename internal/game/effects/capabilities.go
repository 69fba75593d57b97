package effects

import (
	"strings"

	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// Hook is a bitset of the hook categories a status implements.
type Hook uint16

const (
	HookUpdateCost Hook = 1 << iota
	HookOutgoingDamage
	HookLateOutgoingDamage
	HookOutgoingReactionDamage
	HookMultiplierDamage
	HookIncomingDamage
	HookShieldPoints
	HookIncapacitation
	HookTrigger
	HookEvent
)

var hookNames = []struct {
	bit  Hook
	name string
}{
	{HookUpdateCost, "UPDATE_COST"},
	{HookOutgoingDamage, "OUTGOING_DAMAGE"},
	{HookLateOutgoingDamage, "LATE_OUTGOING_DAMAGE"},
	{HookOutgoingReactionDamage, "OUTGOING_REACTION_DAMAGE"},
	{HookMultiplierDamage, "MULTIPLIER_DAMAGE"},
	{HookIncomingDamage, "INCOMING_DAMAGE"},
	{HookShieldPoints, "SHIELD_POINTS"},
	{HookIncapacitation, "INCAPACITATION"},
	{HookTrigger, "TRIGGER"},
	{HookEvent, "EVENT"},
}

func (h Hook) String() string {
	parts := make([]string, 0, 2)
	for _, n := range hookNames {
		if h&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return "{" + strings.Join(parts, "|") + "}"
}

// Capabilities summarizes what a status can respond to. A registry caches the
// union over its entries so hooks no entry implements are skipped outright.
type Capabilities struct {
	Hooks    Hook
	Triggers rules.TriggerSet
	Events   rules.EventMask
}

// Union combines two capability sets.
func (c Capabilities) Union(o Capabilities) Capabilities {
	return Capabilities{
		Hooks:    c.Hooks | o.Hooks,
		Triggers: c.Triggers | o.Triggers,
		Events:   c.Events | o.Events,
	}
}

// HasHook reports whether any of the given hooks is present.
func (c Capabilities) HasHook(h Hook) bool { return c.Hooks&h != 0 }

// RespondsToTrigger reports whether the trigger is handled.
func (c Capabilities) RespondsToTrigger(t rules.Trigger) bool {
	return c.Hooks&HookTrigger != 0 && c.Triggers.Has(t)
}

// RespondsToEvent reports whether a cross-cutting event could be handled.
// On a union of masks this is a conservative prefilter.
func (c Capabilities) RespondsToEvent(event rules.EventMask) bool {
	return c.Hooks&HookEvent != 0 && c.Events.Matches(event)
}
