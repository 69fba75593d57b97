package game

import (
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// Statuses and summons created by elemental reactions. They are part of the
// engine rather than the content catalog because the damage pipeline
// produces them.
var (
	StatusFrozen          StatusID
	StatusCrystallize     StatusID
	StatusDendroCore      StatusID
	StatusCatalyzingField StatusID
	SummonBurningFlame    SummonID
)

func init() {
	StatusFrozen = RegisterStatus(StatusDesc{
		Spec: effects.Spec{
			Name:     "Frozen",
			Attach:   effects.AttachCharacter,
			Duration: 1,
			Capabilities: effects.Capabilities{
				Hooks: effects.HookIncapacitation | effects.HookIncomingDamage,
			},
		},
		Impl: frozen{},
	})
	StatusCrystallize = RegisterStatus(StatusDesc{
		Spec: effects.Spec{
			Name:         "Crystallize",
			Attach:       effects.AttachTeam,
			Usages:       1,
			MaxUsages:    2,
			ShieldPoints: true,
		},
	})
	StatusDendroCore = RegisterStatus(StatusDesc{
		Spec: effects.Spec{
			Name:         "Dendro Core",
			Attach:       effects.AttachTeam,
			Usages:       1,
			Capabilities: effects.Capabilities{Hooks: effects.HookOutgoingDamage},
		},
		Impl: elementBoost{elements: rules.ElementSetOf(rules.Pyro, rules.Electro), bonus: 2},
	})
	StatusCatalyzingField = RegisterStatus(StatusDesc{
		Spec: effects.Spec{
			Name:         "Catalyzing Field",
			Attach:       effects.AttachTeam,
			Usages:       2,
			Capabilities: effects.Capabilities{Hooks: effects.HookOutgoingDamage},
		},
		Impl: elementBoost{elements: rules.ElementSetOf(rules.Electro, rules.Dendro), bonus: 1},
	})
	SummonBurningFlame = RegisterSummon(StatusDesc{
		Spec: effects.Spec{
			Name:      "Burning Flame",
			Usages:    1,
			MaxUsages: 2,
			Capabilities: effects.Capabilities{
				Hooks:    effects.HookTrigger,
				Triggers: rules.TriggersOf(rules.TriggerEndPhase),
			},
		},
		Impl: EndPhaseDamage{Damage: rules.ElementalDamage(rules.Pyro), Amount: 1},
	})
}

type frozen struct{ BaseStatus }

func (frozen) Incapacitated(*StatusContext) bool { return true }

// Pyro and physical damage break the ice for 2 extra damage.
func (frozen) IncomingDamage(_ *StatusContext, d *DamageContext) effects.Outcome {
	if d.Type != rules.DamagePhysical && d.Type != rules.ElementalDamage(rules.Pyro) {
		return effects.Noop()
	}
	d.Add(2)
	return effects.Delete()
}

// elementBoost adds damage to the next primary hit of one of its elements.
type elementBoost struct {
	BaseStatus
	elements rules.ElementSet
	bonus    int
}

func (b elementBoost) OutgoingDamage(_ *StatusContext, d *DamageContext) effects.Outcome {
	e, ok := d.Element()
	if !ok || d.Secondary || !b.elements.Has(e) {
		return effects.Noop()
	}
	d.Add(b.bonus)
	return effects.DecrementUsage()
}

// EndPhaseDamage is the behavior of a summon that deals damage at the end
// phase, spending one usage each time. Declare it with HookTrigger on
// TriggerEndPhase.
type EndPhaseDamage struct {
	BaseStatus
	Damage   rules.DamageType
	Amount   uint8
	Piercing uint8
}

func (e EndPhaseDamage) Trigger(c *StatusContext, t rules.Trigger) effects.Outcome {
	if t != rules.TriggerEndPhase {
		return effects.Noop()
	}
	c.Emit(DealDamagePiercing(e.Damage, e.Amount, e.Piercing))
	return effects.DecrementUsage()
}
