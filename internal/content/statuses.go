package content

import (
	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// Statuses.
var (
	PyroInfusion        game.StatusID
	RainSword           game.StatusID
	RainbowBladework    game.StatusID
	Icicle              game.StatusID
	FullPlate           game.StatusID
	SweepingTime        game.StatusID
	IllusoryBubble      game.StatusID
	ChangingShifts      game.StatusID
	LeaveItToMe         game.StatusID
	Satiated            game.StatusID
	FerventFlames       game.StatusID
	TravelersHandySword game.StatusID
)

// Summons and summon pools.
var (
	Oz              game.SummonID
	LargeWindSpirit game.SummonID
	CuileinAnbar    game.SummonID
	Reflection      game.SummonID
	OceanidSquirrel game.SummonID
	OceanidRaptor   game.SummonID
	OceanidFrog     game.SummonID
	OceanidPool     game.PoolID
)

// Supports.
var (
	PaimonSupport     game.SupportID
	DawnWinerySupport game.SupportID
)

func hooks(h effects.Hook) effects.Capabilities { return effects.Capabilities{Hooks: h} }

func onTrigger(triggers ...rules.Trigger) effects.Capabilities {
	return effects.Capabilities{Hooks: effects.HookTrigger, Triggers: rules.TriggersOf(triggers...)}
}

func endPhaseSummon(name string, usages uint8, e rules.Element, amount, piercing uint8) game.SummonID {
	return game.RegisterSummon(game.StatusDesc{
		Spec: effects.Spec{
			Name:         name,
			Usages:       usages,
			Capabilities: onTrigger(rules.TriggerEndPhase),
		},
		Impl: game.EndPhaseDamage{Damage: rules.ElementalDamage(e), Amount: amount, Piercing: piercing},
	})
}

func registerStatuses() {
	PyroInfusion = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Pyro Infusion",
			Attach:       effects.AttachCharacter,
			Duration:     2,
			Capabilities: hooks(effects.HookLateOutgoingDamage),
		},
		Impl: infusion{element: rules.Pyro},
	})
	RainSword = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Rain Sword",
			Attach:       effects.AttachTeam,
			Usages:       2,
			Capabilities: hooks(effects.HookIncomingDamage),
		},
		Impl: damageReduction{minimum: 3, amount: 1},
	})
	RainbowBladework = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:   "Rainbow Bladework",
			Attach: effects.AttachTeam,
			Usages: 3,
			Capabilities: effects.Capabilities{
				Hooks:  effects.HookEvent,
				Events: rules.EventDamageDealt | rules.EventByOwner | rules.EventNormalAttack,
			},
		},
		Impl: followUpAttack{damage: rules.ElementalDamage(rules.Hydro), amount: 1},
	})
	Icicle = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Icicle",
			Attach:       effects.AttachTeam,
			Usages:       3,
			Capabilities: onTrigger(rules.TriggerSwitched),
		},
		Impl: switchStrike{damage: rules.ElementalDamage(rules.Cryo), amount: 2},
	})
	FullPlate = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Full Plate",
			Attach:       effects.AttachTeam,
			Usages:       2,
			ShieldPoints: true,
		},
	})
	SweepingTime = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Sweeping Time",
			Attach:       effects.AttachCharacter,
			Duration:     2,
			Capabilities: hooks(effects.HookLateOutgoingDamage | effects.HookUpdateCost),
		},
		Impl: sweepingTime{
			infusion: infusion{element: rules.Geo, bonus: 2},
			cheaper:  costReduction{costType: game.CostSkill, skillType: rules.NormalAttack, amount: 1, elementalOnly: true, oncePerRound: true},
		},
	})
	IllusoryBubble = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Illusory Bubble",
			Attach:       effects.AttachTeam,
			Usages:       1,
			Capabilities: hooks(effects.HookMultiplierDamage),
		},
		Impl: damageMultiplier{factor: 2},
	})
	ChangingShifts = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Changing Shifts",
			Attach:       effects.AttachTeam,
			Usages:       1,
			Capabilities: hooks(effects.HookUpdateCost),
		},
		Impl: costReduction{costType: game.CostSwitch, amount: 1},
	})
	LeaveItToMe = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Leave It to Me!",
			Attach:       effects.AttachTeam,
			Usages:       1,
			Capabilities: hooks(effects.HookUpdateCost),
		},
		Impl: costReduction{costType: game.CostSwitch, fast: true},
	})
	Satiated = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:     "Satiated",
			Attach:   effects.AttachCharacter,
			Duration: 1,
		},
	})
	FerventFlames = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Elemental Resonance: Fervent Flames",
			Attach:       effects.AttachTeam,
			Duration:     1,
			Capabilities: hooks(effects.HookOutgoingReactionDamage),
		},
		Impl: reactionBoost{element: rules.Pyro, bonus: 3},
	})
	TravelersHandySword = game.RegisterStatus(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Traveler's Handy Sword",
			Attach:       effects.AttachEquipment,
			Capabilities: hooks(effects.HookOutgoingDamage),
		},
		Impl: outgoingBonus{bonus: 1},
	})

	Oz = endPhaseSummon("Oz", 2, rules.Electro, 1, 0)
	LargeWindSpirit = endPhaseSummon("Large Wind Spirit", 3, rules.Anemo, 2, 0)
	CuileinAnbar = endPhaseSummon("Cuilein-Anbar", 2, rules.Dendro, 2, 0)
	OceanidSquirrel = endPhaseSummon("Oceanid Mimic: Squirrel", 2, rules.Hydro, 2, 0)
	OceanidRaptor = endPhaseSummon("Oceanid Mimic: Raptor", 3, rules.Hydro, 1, 0)
	OceanidFrog = game.RegisterSummon(game.StatusDesc{
		Spec: effects.Spec{
			Name:          "Oceanid Mimic: Frog",
			Usages:        2,
			ManualDiscard: true,
			Capabilities: effects.Capabilities{
				Hooks:    effects.HookIncomingDamage | effects.HookTrigger,
				Triggers: rules.TriggersOf(rules.TriggerEndPhase),
			},
		},
		Impl: frog{},
	})
	OceanidPool = game.RegisterSummonPool(OceanidSquirrel, OceanidRaptor, OceanidFrog)
	Reflection = game.RegisterSummon(game.StatusDesc{
		Spec: effects.Spec{
			Name:   "Reflection",
			Usages: 1,
			Capabilities: effects.Capabilities{
				Hooks:    effects.HookIncomingDamage | effects.HookTrigger,
				Triggers: rules.TriggersOf(rules.TriggerEndPhase),
			},
		},
		Impl: reflection{},
	})

	PaimonSupport = game.RegisterSupport(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Paimon",
			Usages:       2,
			Capabilities: onTrigger(rules.TriggerActionPhase),
		},
		Impl: generateDice{omni: 2},
	})
	DawnWinerySupport = game.RegisterSupport(game.StatusDesc{
		Spec: effects.Spec{
			Name:         "Dawn Winery",
			Capabilities: hooks(effects.HookUpdateCost),
		},
		Impl: costReduction{costType: game.CostSwitch, amount: 1, oncePerRound: true},
	})
}

// sweepingTime infuses Noelle's normal attacks with Geo and makes one of
// them cheaper each round.
type sweepingTime struct {
	infusion
	cheaper costReduction
}

func (s sweepingTime) UpdateCost(c *game.StatusContext, cost *game.CostContext) effects.Outcome {
	return s.cheaper.UpdateCost(c, cost)
}
