package game

import (
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// dealDamage resolves one damage instance against a character and every
// secondary target it expands to. Outgoing hooks run only when the damage
// comes from the attacker's side; TakeDamage skips them. The returned
// commands are the reaction side effects, hook emissions, defeat triggers
// and event responses, in that order of occurrence.
func (s *GameState) dealDamage(ctx CommandContext, defender rules.PlayerID, target uint8, spec DamageSpec, outgoing bool) []CommandEntry {
	if !s.players[defender].IsAlive(target) {
		return nil
	}
	var out []CommandEntry
	d := &DamageContext{
		Attacker: ctx.Player,
		Source:   ctx.Source,
		Defender: defender,
		Target:   target,
		Type:     spec.Type,
		Amount:   int(spec.Amount),
	}

	piercing := spec.PiercingOthers
	swirled, swirl := rules.Element(0), false
	if d.Type != rules.DamagePiercing {
		if outgoing {
			s.damageHooks(ctx, d.Attacker, effects.HookOutgoingDamage, s.outgoingAccept(d), &out, d, StatusImpl.OutgoingDamage)
			s.damageHooks(ctx, d.Attacker, effects.HookLateOutgoingDamage, s.outgoingAccept(d), &out, d, StatusImpl.LateOutgoingDamage)
		}
		res := s.applyReaction(ctx, d, &out)
		piercing += res.PiercingOthers
		if res.Reaction == rules.Swirl {
			swirled, swirl = res.Consumed, true
		}
		s.modifyDamage(ctx, d, outgoing, &out)
	}
	s.reduceHealth(ctx, d, &out)

	// Secondary targets resolve after the primary, in index order, and do
	// not expand further.
	n := uint8(len(s.players[defender].chars))
	if piercing > 0 {
		for i := uint8(0); i < n; i++ {
			if i == target {
				continue
			}
			s.reduceHealth(ctx, &DamageContext{
				Attacker:  d.Attacker,
				Source:    d.Source,
				Defender:  defender,
				Target:    i,
				Type:      rules.DamagePiercing,
				Amount:    int(piercing),
				Secondary: true,
			}, &out)
		}
	}
	if swirl {
		for i := uint8(0); i < n; i++ {
			if i == target || !s.players[defender].IsAlive(i) {
				continue
			}
			sd := &DamageContext{
				Attacker:  d.Attacker,
				Source:    d.Source,
				Defender:  defender,
				Target:    i,
				Type:      rules.ElementalDamage(swirled),
				Amount:    1,
				Secondary: true,
			}
			s.applyReaction(ctx, sd, &out)
			s.modifyDamage(ctx, sd, outgoing, &out)
			s.reduceHealth(ctx, sd, &out)
		}
	}

	if outgoing {
		out = append(out, s.runEvent(d.Attacker, XEvent{
			Mask:   damageEventMask(d),
			Source: d.Source,
			Skill:  d.Source.Skill,
			Damage: d,
		}, ctx)...)
	}
	return out
}

// damageEventMask classifies a resolved damage instance from the attacker's side.
func damageEventMask(d *DamageContext) rules.EventMask {
	m := rules.EventDamageDealt | rules.EventByOwner
	if st, ok := d.SkillType(); ok {
		m |= st.EventMask()
	}
	if d.Source.Kind == SourceSummon {
		m |= rules.EventSummon
	}
	if d.Reaction != rules.ReactionNone {
		m |= rules.EventReaction
	}
	return m
}

// modifyDamage runs the stages after the reaction: reaction modifiers,
// multipliers, shields and incoming modifiers.
func (s *GameState) modifyDamage(ctx CommandContext, d *DamageContext, outgoing bool, out *[]CommandEntry) {
	if outgoing && d.Reaction != rules.ReactionNone {
		s.damageHooks(ctx, d.Attacker, effects.HookOutgoingReactionDamage, s.outgoingAccept(d), out, d, StatusImpl.OutgoingReactionDamage)
	}
	if outgoing {
		s.damageHooks(ctx, d.Attacker, effects.HookMultiplierDamage, s.outgoingAccept(d), out, d, StatusImpl.MultiplierDamage)
	}
	s.damageHooks(ctx, d.Defender, effects.HookMultiplierDamage, s.incomingAccept(d), out, d, StatusImpl.MultiplierDamage)
	s.consumeShields(ctx, d)
	s.damageHooks(ctx, d.Defender, effects.HookIncomingDamage, s.incomingAccept(d), out, d, StatusImpl.IncomingDamage)
}

func (s *GameState) damageHooks(ctx CommandContext, p rules.PlayerID, hook effects.Hook, accept func(effects.Key) bool,
	out *[]CommandEntry, d *DamageContext, fn func(StatusImpl, *StatusContext, *DamageContext) effects.Outcome) {
	s.runHooks(hookRun{player: p, hook: hook, accept: accept, cause: ctx, out: out},
		func(c *StatusContext, desc *StatusDesc) effects.Outcome {
			return fn(desc.Impl, c, d)
		})
}

// outgoingAccept selects the attacker's entries that modify outgoing damage:
// everything except character statuses of characters other than the source.
func (s *GameState) outgoingAccept(d *DamageContext) func(effects.Key) bool {
	return func(k effects.Key) bool {
		idx, ok := k.CharIndex()
		if !ok {
			return true
		}
		return d.Source.HasCharacter() && idx == d.Source.CharIdx
	}
}

// incomingAccept selects the defender's entries that modify incoming damage:
// the target's own statuses, plus team-wide entries when the target is active.
func (s *GameState) incomingAccept(d *DamageContext) func(effects.Key) bool {
	active := s.players[d.Defender].active == d.Target
	return func(k effects.Key) bool {
		idx, ok := k.CharIndex()
		if !ok {
			return active
		}
		return idx == d.Target
	}
}

// consumeShields absorbs damage with shield points, character shields first
// and then team shields when the target is active.
func (s *GameState) consumeShields(ctx CommandContext, d *DamageContext) {
	sc := &s.players[d.Defender].status
	if d.Amount == 0 || !sc.caps.HasHook(effects.HookShieldPoints) {
		return
	}
	absorb := func(c *StatusContext, desc *StatusDesc) effects.Outcome {
		if d.Amount == 0 || !desc.ShieldPoints {
			return effects.Noop()
		}
		n := int(c.State.Usages())
		if n > d.Amount {
			n = d.Amount
		}
		if n == 0 {
			return effects.Noop()
		}
		d.Amount -= n
		return effects.DecrementUsages(uint8(n))
	}
	s.runHooks(hookRun{
		player: d.Defender,
		hook:   effects.HookShieldPoints,
		accept: func(k effects.Key) bool {
			idx, ok := k.CharIndex()
			return ok && idx == d.Target
		},
		cause: ctx,
	}, absorb)
	if s.players[d.Defender].active != d.Target {
		return
	}
	s.runHooks(hookRun{
		player: d.Defender,
		hook:   effects.HookShieldPoints,
		accept: func(k effects.Key) bool {
			_, ok := k.CharIndex()
			return !ok
		},
		cause: ctx,
	}, absorb)
}

// applyReaction lands the damage element on the target, records the
// reaction and adds its bonus and side effects.
func (s *GameState) applyReaction(ctx CommandContext, d *DamageContext, out *[]CommandEntry) rules.ReactionResult {
	e, ok := d.Type.Element()
	if !ok {
		return rules.ReactionResult{}
	}
	return s.landElement(ctx, d.Defender, d.Target, e, d, out)
}

// landElement applies an element to a character, with or without damage.
func (s *GameState) landElement(ctx CommandContext, p rules.PlayerID, char uint8, e rules.Element, d *DamageContext, out *[]CommandEntry) rules.ReactionResult {
	ch := &s.players[p].chars[char]
	res := rules.React(ch.applied, e)
	s.setApplied(p, char, res.Applied)
	if res.Reaction == rules.ReactionNone {
		return res
	}
	s.logEvent(LogEntry{Kind: LogReaction, Player: p, CharIdx: char, Reaction: res.Reaction})
	if d != nil {
		d.Reaction = res.Reaction
		d.Add(int(res.Bonus))
	}
	*out = append(*out, reactionCommands(ctx, p, char, res)...)
	return res
}

// reactionCommands are the side effects of a reaction beyond its damage bonus.
func reactionCommands(ctx CommandContext, p rules.PlayerID, char uint8, res rules.ReactionResult) []CommandEntry {
	at := ctx.WithTarget(p, char)
	switch res.Reaction {
	case rules.Overloaded:
		return []CommandEntry{Entry(at, SwitchNextForTarget())}
	case rules.Frozen:
		return []CommandEntry{Entry(at, AddCharacterStatusToTarget(StatusFrozen))}
	case rules.Crystallize:
		return []CommandEntry{Entry(ctx, AddStatus(StatusCrystallize))}
	case rules.Bloom:
		return []CommandEntry{Entry(ctx, AddStatus(StatusDendroCore))}
	case rules.Quicken:
		return []CommandEntry{Entry(ctx, AddStatus(StatusCatalyzingField))}
	case rules.Burning:
		return []CommandEntry{Entry(ctx, AddSummon(SummonBurningFlame))}
	}
	return nil
}

// reduceHealth applies the final amount to a living character and handles
// its defeat.
func (s *GameState) reduceHealth(ctx CommandContext, d *DamageContext, out *[]CommandEntry) {
	ps := &s.players[d.Defender]
	if !ps.IsAlive(d.Target) {
		return
	}
	health := int(ps.chars[d.Target].health)
	amount := d.Amount
	if amount > health {
		amount = health
	}
	s.setHealth(d.Defender, d.Target, uint8(health-amount))
	logged := d.Amount
	if logged > 255 {
		logged = 255
	}
	s.logEvent(LogEntry{Kind: LogDamage, Player: d.Defender, CharIdx: d.Target, Amount: uint8(logged), Damage: d.Type, Reaction: d.Reaction})
	if health-amount == 0 {
		*out = append(*out, s.defeat(d.Defender, d.Target)...)
	}
}

// defeat clears a character that just reached zero health.
func (s *GameState) defeat(p rules.PlayerID, char uint8) []CommandEntry {
	s.setEnergy(p, char, 0)
	s.setApplied(p, char, 0)
	sc := &s.players[p].status
	var attached []effects.Key
	for _, e := range sc.entries {
		if idx, ok := e.Key.CharIndex(); ok && idx == char {
			attached = append(attached, e.Key)
		}
	}
	s.dropStatuses(p, attached)
	s.players[p].flags |= FlagDiedThisRound
	s.logEvent(LogEntry{Kind: LogDefeat, Player: p, CharIdx: char})
	return []CommandEntry{Entry(EventContext(p).WithTarget(p, char), TriggerEvent(rules.TriggerCharacterDefeated))}
}
