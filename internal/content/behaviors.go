package content

import (
	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// infusion converts the owner's physical normal attacks to an element and
// optionally adds damage to them.
type infusion struct {
	game.BaseStatus
	element rules.Element
	bonus   int
}

func (i infusion) LateOutgoingDamage(_ *game.StatusContext, d *game.DamageContext) effects.Outcome {
	if !d.IsSkill(rules.NormalAttack) || !d.Infuse(i.element) {
		return effects.Noop()
	}
	d.Add(i.bonus)
	return effects.Handled()
}

// damageReduction lowers incoming damage of at least minimum by amount per usage.
type damageReduction struct {
	game.BaseStatus
	minimum int
	amount  int
}

func (r damageReduction) IncomingDamage(c *game.StatusContext, d *game.DamageContext) effects.Outcome {
	if d.Amount < r.minimum || d.Amount == 0 || c.State.Usages() == 0 {
		return effects.Noop()
	}
	d.Add(-r.amount)
	return effects.DecrementUsage()
}

// followUpAttack deals extra damage after each of the owner's normal attacks.
type followUpAttack struct {
	game.BaseStatus
	damage rules.DamageType
	amount uint8
}

func (f followUpAttack) Event(c *game.StatusContext, _ *game.XEvent) effects.Outcome {
	c.Emit(game.DealDamage(f.damage, f.amount))
	return effects.DecrementUsage()
}

// switchStrike deals damage whenever the owner switches characters.
type switchStrike struct {
	game.BaseStatus
	damage rules.DamageType
	amount uint8
}

func (s switchStrike) Trigger(c *game.StatusContext, t rules.Trigger) effects.Outcome {
	if t != rules.TriggerSwitched {
		return effects.Noop()
	}
	c.Emit(game.DealDamage(s.damage, s.amount))
	return effects.DecrementUsage()
}

// costReduction lowers the dice cost of matching actions. Once-per-round
// reductions consume the round flag; others spend a usage.
type costReduction struct {
	game.BaseStatus
	costType      game.CostType
	skillType     rules.SkillType
	anySkill      bool
	amount        uint8
	elementalOnly bool
	oncePerRound  bool
	// fast makes a matching switch a fast action instead of cheaper.
	fast bool
}

func (r costReduction) matches(cost *game.CostContext) bool {
	if cost.Type != r.costType {
		return false
	}
	if cost.Type == game.CostSkill && !r.anySkill {
		st, _ := cost.SkillType()
		return st == r.skillType
	}
	return true
}

func (r costReduction) UpdateCost(c *game.StatusContext, cost *game.CostContext) effects.Outcome {
	if !r.matches(cost) || (r.oncePerRound && c.State.OncePerRoundUsed()) {
		return effects.Noop()
	}
	if r.fast {
		if cost.Fast {
			return effects.Noop()
		}
		cost.Fast = true
	} else {
		var used uint8
		if r.elementalOnly {
			cost.Cost, used = cost.Cost.ReduceElemental(r.amount)
		} else {
			cost.Cost, used = cost.Cost.Reduce(r.amount)
		}
		if used == 0 {
			return effects.Noop()
		}
	}
	if r.oncePerRound {
		return effects.ConsumeOncePerRound()
	}
	return effects.DecrementUsage()
}

// generateDice adds omni dice at the start of each action phase.
type generateDice struct {
	game.BaseStatus
	omni uint8
}

func (g generateDice) Trigger(c *game.StatusContext, t rules.Trigger) effects.Outcome {
	if t != rules.TriggerActionPhase {
		return effects.Noop()
	}
	c.Emit(game.AddDice(dice.OmniDice(g.omni)))
	return effects.DecrementUsage()
}

// reactionBoost adds damage to the owner's reactions involving an element,
// once per round.
type reactionBoost struct {
	game.BaseStatus
	element rules.Element
	bonus   int
}

func (r reactionBoost) OutgoingReactionDamage(c *game.StatusContext, d *game.DamageContext) effects.Outcome {
	if c.State.OncePerRoundUsed() || d.Secondary || !reactionInvolves(d, r.element) {
		return effects.Noop()
	}
	d.Add(r.bonus)
	return effects.ConsumeOncePerRound()
}

func reactionInvolves(d *game.DamageContext, e rules.Element) bool {
	if de, ok := d.Element(); ok && de == e {
		return true
	}
	switch e {
	case rules.Pyro:
		switch d.Reaction {
		case rules.Melt, rules.Vaporize, rules.Overloaded, rules.Burning:
			return true
		}
	}
	return false
}

// damageMultiplier doubles the next damage dealt by the owner.
type damageMultiplier struct {
	game.BaseStatus
	factor int
}

func (m damageMultiplier) MultiplierDamage(c *game.StatusContext, d *game.DamageContext) effects.Outcome {
	if c.Player != d.Attacker || d.Secondary || d.Amount == 0 {
		return effects.Noop()
	}
	d.Amount *= m.factor
	return effects.DecrementUsage()
}

// outgoingBonus adds damage to the owner's skills.
type outgoingBonus struct {
	game.BaseStatus
	bonus int
}

func (b outgoingBonus) OutgoingDamage(_ *game.StatusContext, d *game.DamageContext) effects.Outcome {
	if _, ok := d.SkillType(); !ok || d.Secondary {
		return effects.Noop()
	}
	d.Add(b.bonus)
	return effects.Handled()
}

// frog absorbs damage for the active character. Once its usages run out it
// stays on the field and bursts for Hydro damage at the end phase.
type frog struct{ game.BaseStatus }

func (frog) IncomingDamage(c *game.StatusContext, d *game.DamageContext) effects.Outcome {
	if c.State.Usages() == 0 || d.Amount == 0 {
		return effects.Noop()
	}
	d.Add(-1)
	return effects.DecrementUsage()
}

func (frog) Trigger(c *game.StatusContext, t rules.Trigger) effects.Outcome {
	if t != rules.TriggerEndPhase || c.State.Usages() > 0 {
		return effects.Noop()
	}
	c.Emit(game.DealDamage(rules.ElementalDamage(rules.Hydro), 2))
	return effects.Delete()
}

// reflection shields the active character once and deals Hydro damage at
// the end phase.
type reflection struct{ game.BaseStatus }

func (reflection) IncomingDamage(c *game.StatusContext, d *game.DamageContext) effects.Outcome {
	if c.State.Counter() > 0 || d.Amount == 0 {
		return effects.Noop()
	}
	d.Add(-1)
	return effects.SetCounter(1, false)
}

func (reflection) Trigger(c *game.StatusContext, t rules.Trigger) effects.Outcome {
	if t != rules.TriggerEndPhase {
		return effects.Noop()
	}
	c.Emit(game.DealDamage(rules.ElementalDamage(rules.Hydro), 1))
	return effects.DecrementUsage()
}
