package game

import (
	"fmt"

	"github.com/tcgsim/tcgsim/internal/game/counters"
	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// StatusImpl is the behavior behind a status, summon or support. Hooks read
// the state through the context and request changes by emitting commands;
// they never mutate the state directly. Only hooks whose bit is declared in
// the status capabilities are ever invoked.
type StatusImpl interface {
	UpdateCost(c *StatusContext, cost *CostContext) effects.Outcome
	OutgoingDamage(c *StatusContext, d *DamageContext) effects.Outcome
	LateOutgoingDamage(c *StatusContext, d *DamageContext) effects.Outcome
	OutgoingReactionDamage(c *StatusContext, d *DamageContext) effects.Outcome
	MultiplierDamage(c *StatusContext, d *DamageContext) effects.Outcome
	IncomingDamage(c *StatusContext, d *DamageContext) effects.Outcome
	Incapacitated(c *StatusContext) bool
	Trigger(c *StatusContext, t rules.Trigger) effects.Outcome
	Event(c *StatusContext, e *XEvent) effects.Outcome
}

// BaseStatus implements every hook as a no-op. Embed it and override the
// hooks the status declares.
type BaseStatus struct{}

func (BaseStatus) UpdateCost(*StatusContext, *CostContext) effects.Outcome {
	return effects.Noop()
}
func (BaseStatus) OutgoingDamage(*StatusContext, *DamageContext) effects.Outcome {
	return effects.Noop()
}
func (BaseStatus) LateOutgoingDamage(*StatusContext, *DamageContext) effects.Outcome {
	return effects.Noop()
}
func (BaseStatus) OutgoingReactionDamage(*StatusContext, *DamageContext) effects.Outcome {
	return effects.Noop()
}
func (BaseStatus) MultiplierDamage(*StatusContext, *DamageContext) effects.Outcome {
	return effects.Noop()
}
func (BaseStatus) IncomingDamage(*StatusContext, *DamageContext) effects.Outcome {
	return effects.Noop()
}
func (BaseStatus) Incapacitated(*StatusContext) bool { return false }
func (BaseStatus) Trigger(*StatusContext, rules.Trigger) effects.Outcome {
	return effects.Noop()
}
func (BaseStatus) Event(*StatusContext, *XEvent) effects.Outcome { return effects.Noop() }

// StatusContext is handed to every hook invocation.
type StatusContext struct {
	game   *GameState
	Player rules.PlayerID
	Key    effects.Key
	State  counters.State
	// Cause is the context of the command that raised the hook, if any.
	Cause CommandContext
	out   *[]CommandEntry
}

// Game returns the state for reading.
func (c *StatusContext) Game() *GameState { return c.game }

// Self returns the owning player's state.
func (c *StatusContext) Self() *PlayerState { return &c.game.players[c.Player] }

// Opponent returns the other player's state.
func (c *StatusContext) Opponent() *PlayerState { return &c.game.players[c.Player.Opposite()] }

// CharIndex returns the character the status is attached to. Calling it for a
// status that is not attached to a character is a content bug.
func (c *StatusContext) CharIndex() uint8 {
	idx, ok := c.Key.CharIndex()
	if !ok {
		panic(fmt.Sprintf("game: status %s has no character index", c.Key))
	}
	return idx
}

// IsActive reports whether the status' character is the active character.
func (c *StatusContext) IsActive() bool {
	return c.Self().active == c.CharIndex()
}

// Emit queues a command on behalf of the owning player, targeting the
// opponent's active character. Summons are recorded as the source.
func (c *StatusContext) Emit(cmd Command) {
	ctx := CommandContext{Player: c.Player}
	switch c.Key.Kind {
	case effects.AttachSummon:
		ctx.Source = CommandSource{Kind: SourceSummon, Summon: SummonID(c.Key.ID)}
	case effects.AttachCharacter, effects.AttachEquipment:
		ctx.Source = CommandSource{Kind: SourceCharacter, CharIdx: c.Key.Char}
	}
	c.EmitWith(ctx, cmd)
}

// EmitWith queues a command with an explicit context.
func (c *StatusContext) EmitWith(ctx CommandContext, cmd Command) {
	if c.out == nil {
		panic(fmt.Sprintf("game: status %s emitted %s from a read-only hook", c.Key, cmd))
	}
	*c.out = append(*c.out, CommandEntry{Ctx: ctx, Cmd: cmd})
}

// CostType is what a cost is being computed for.
type CostType uint8

const (
	CostSkill CostType = iota
	CostCard
	CostSwitch
)

// CostContext carries a cost through UpdateCost hooks.
type CostContext struct {
	Type    CostType
	CharIdx uint8
	Skill   SkillID
	Card    CardID
	Cost    dice.Cost
	// Fast turns a switch into a fast action.
	Fast bool
}

// SkillType returns the type of the skill being paid for.
func (c *CostContext) SkillType() (rules.SkillType, bool) {
	if c.Type != CostSkill {
		return 0, false
	}
	return Skill(c.Skill).Type, true
}

// DamageContext carries one damage instance through the pipeline.
type DamageContext struct {
	Attacker rules.PlayerID
	Source   CommandSource
	Defender rules.PlayerID
	Target   uint8
	Type     rules.DamageType
	Amount   int
	Reaction rules.Reaction
	// Secondary marks piercing or swirl damage to a non-primary target.
	Secondary bool
}

// SkillType returns the skill type when the damage comes from a skill.
func (d *DamageContext) SkillType() (rules.SkillType, bool) {
	if d.Source.Kind != SourceSkill {
		return 0, false
	}
	return Skill(d.Source.Skill).Type, true
}

// IsSkill reports whether the damage comes from a skill of the given type.
func (d *DamageContext) IsSkill(t rules.SkillType) bool {
	st, ok := d.SkillType()
	return ok && st == t
}

// Element returns the element of the damage.
func (d *DamageContext) Element() (rules.Element, bool) { return d.Type.Element() }

// Infuse converts physical damage to the given element.
func (d *DamageContext) Infuse(e rules.Element) bool {
	if d.Type != rules.DamagePhysical {
		return false
	}
	d.Type = rules.ElementalDamage(e)
	return true
}

// Add increases the damage amount. Negative values reduce it, never below zero.
func (d *DamageContext) Add(n int) {
	d.Amount += n
	if d.Amount < 0 {
		d.Amount = 0
	}
}

// XEvent is a cross-cutting event delivered to Event hooks. Mask is viewed
// from the listening player's side.
type XEvent struct {
	Mask   rules.EventMask
	Source CommandSource
	Skill  SkillID
	Damage *DamageContext
}
