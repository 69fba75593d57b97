package game

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tcgsim/tcgsim/internal/game/counters"
	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// RollDiceCount is the number of dice each player rolls per round.
const RollDiceCount = 8

// EndPhaseDrawCount is the number of cards each player draws at round end.
const EndPhaseDrawCount = 2

// execResult is the outcome of executing one command.
type execResult struct {
	// add is pushed to the front of the queue.
	add []CommandEntry
	// suspend stops execution when set.
	suspend *SuspendedState
}

func (r execResult) with(entries ...CommandEntry) execResult {
	r.add = append(r.add, entries...)
	return r
}

func suspendFor(req NondetRequest) execResult {
	return execResult{suspend: &SuspendedState{Kind: SuspendNondet, Request: req}}
}

// ExecCommands runs commands in order until the queue drains, a winner is
// decided, or execution suspends. Commands produced while executing a
// command run before the rest of the queue. On suspension the exact
// remaining queue is saved in Pending.
func (s *GameState) ExecCommands(entries []CommandEntry) {
	q := newCommandQueue(entries)
	for {
		e, ok := q.pop()
		if !ok {
			return
		}
		res := s.exec(e)
		q.pushFront(res.add)
		if res.suspend != nil {
			s.suspend(*res.suspend, q.drain())
			return
		}
		if s.checkDefeat(e.Ctx, q) {
			return
		}
	}
}

func (s *GameState) debugEnabled() bool {
	return s.logger.Core().Enabled(zapcore.DebugLevel)
}

func (s *GameState) suspend(st SuspendedState, queue []CommandEntry) {
	s.pending = &PendingCommands{Suspended: st, Queue: queue}
	if s.debugEnabled() {
		s.logger.Debug("Execution suspended",
			zap.Stringer("kind", st.Kind),
			zap.Stringer("player", st.Player),
			zap.Stringer("request", st.Request),
			zap.Int("queued", len(queue)))
	}
}

// checkDefeat runs after every command. A side with no living characters
// loses; when both sides are wiped out by the same command, the player
// that issued it wins. A dead active character suspends execution until
// its owner switches.
func (s *GameState) checkDefeat(ctx CommandContext, q *commandQueue) bool {
	order := [2]rules.PlayerID{ctx.Player.Opposite(), ctx.Player}
	for _, p := range order {
		if s.players[p].LivingCount() == 0 {
			winner := p.Opposite()
			s.setPhase(rules.Phase{Kind: rules.PhaseWinnerDecided, Active: winner, First: s.phase.First})
			s.pending = nil
			q.drain()
			if s.debugEnabled() {
				s.logger.Debug("Winner decided", zap.Stringer("winner", winner), zap.Uint8("round", s.round))
			}
			return true
		}
	}
	for _, p := range order {
		if !s.players[p].Active().IsAlive() {
			s.suspend(SuspendedState{Kind: SuspendPostDeathSwitch, Player: p}, q.drain())
			return true
		}
	}
	return false
}

// targetChar resolves the character a command addresses on side p: the
// explicit target when it is on that side, otherwise the active character.
func (s *GameState) targetChar(ctx CommandContext, p rules.PlayerID) uint8 {
	if ctx.HasTarget && ctx.Target.Player == p {
		return ctx.Target.CharIdx
	}
	return s.players[p].active
}

func (s *GameState) exec(e CommandEntry) execResult {
	ctx, cmd := e.Ctx, e.Cmd
	p := ctx.Player
	ps := &s.players[p]
	var res execResult

	switch cmd.Kind {
	case CmdTriggerEvent:
		res.add = s.runTrigger(p, cmd.Trigger, ctx)
		if cmd.Trigger == rules.TriggerEndPhase {
			s.tickDurations(p)
		}

	case CmdCastSkill:
		return s.castSkill(ctx, cmd.Skill)

	case CmdSkillCastEvent:
		skill := Skill(cmd.Skill)
		char := ctx.Source.CharIdx
		if skill.Type != rules.ElementalBurst && ps.IsAlive(char) {
			s.gainEnergy(p, char, 1)
		}
		res.add = s.runEvent(p, XEvent{
			Mask:   rules.EventSkillCast | rules.EventByOwner | skill.Type.EventMask(),
			Source: ctx.Source,
			Skill:  cmd.Skill,
		}, ctx)

	case CmdSwitchCharacter:
		return res.with(s.switchTo(p, cmd.CharIdx)...)
	case CmdSwitchNext, CmdSwitchPrevious:
		step := 1
		if cmd.Kind == CmdSwitchPrevious {
			step = -1
		}
		if to, ok := ps.relativeLiving(step); ok {
			return res.with(s.switchTo(p, to)...)
		}
	case CmdSwitchNextForTarget, CmdSwitchPreviousForTarget:
		tp := ctx.Target.Player
		if !ctx.HasTarget {
			tp = p.Opposite()
		}
		if s.targetChar(ctx, tp) != s.players[tp].active {
			break
		}
		step := 1
		if cmd.Kind == CmdSwitchPreviousForTarget {
			step = -1
		}
		if to, ok := s.players[tp].relativeLiving(step); ok {
			return res.with(s.switchTo(tp, to)...)
		}

	case CmdApplyElementToTarget:
		tp := p.Opposite()
		if ctx.HasTarget {
			tp = ctx.Target.Player
		}
		if c := s.targetChar(ctx, tp); s.players[tp].IsAlive(c) {
			s.landElement(ctx, tp, c, cmd.Element, nil, &res.add)
		}
	case CmdApplyElementToSelf:
		if c := ps.active; ps.IsAlive(c) {
			s.landElement(ctx, p, c, cmd.Element, nil, &res.add)
		}

	case CmdDealDamage:
		def := p.Opposite()
		res.add = s.dealDamage(ctx, def, s.targetChar(ctx, def), cmd.Damage, true)
	case CmdTakeDamage:
		res.add = s.dealDamage(ctx, p, ps.active, cmd.Damage, false)

	case CmdHeal:
		s.heal(p, s.targetChar(ctx, p), cmd.Amount)
	case CmdHealAll:
		for i := range ps.chars {
			s.heal(p, uint8(i), cmd.Amount)
		}

	case CmdAddEnergy:
		char := s.targetChar(ctx, p)
		if !ctx.HasTarget && ctx.Source.HasCharacter() {
			char = ctx.Source.CharIdx
		}
		if ps.IsAlive(char) {
			s.gainEnergy(p, char, cmd.Amount)
		}
	case CmdAddEnergyToNonActive:
		for i := range ps.chars {
			if c := uint8(i); c != ps.active && ps.IsAlive(c) {
				s.gainEnergy(p, c, cmd.Amount)
			}
		}
	case CmdSetEnergyForActive:
		s.setEnergy(p, ps.active, min(cmd.Amount, ps.Active().Desc().MaxEnergy))

	case CmdAddStatus:
		s.addStatus(p, effects.TeamKey(uint16(cmd.Status)))
	case CmdAddCharacterStatus:
		if ps.IsAlive(cmd.CharIdx) {
			s.addStatus(p, effects.CharacterKey(cmd.CharIdx, uint16(cmd.Status)))
		}
	case CmdAddCharacterStatusToActive:
		s.addStatus(p, effects.CharacterKey(ps.active, uint16(cmd.Status)))
	case CmdAddCharacterStatusToTarget:
		tp := ctx.Target.Player
		if !ctx.HasTarget {
			panic(fmt.Sprintf("game: %s without a target", cmd))
		}
		if s.players[tp].IsAlive(ctx.Target.CharIdx) {
			s.addStatus(tp, effects.CharacterKey(ctx.Target.CharIdx, uint16(cmd.Status)))
		}
	case CmdAddEquipment:
		s.equip(p, cmd.CharIdx, cmd.Slot, cmd.Status)

	case CmdDeleteStatus:
		if s.removeStatus(p, cmd.Key) {
			s.logEvent(LogEntry{Kind: LogStatus, Player: p, Key: cmd.Key, Removed: true})
		}
	case CmdDeleteStatusForTarget:
		tp := p.Opposite()
		if ctx.HasTarget {
			tp = ctx.Target.Player
		}
		if s.removeStatus(tp, cmd.Key) {
			s.logEvent(LogEntry{Kind: LogStatus, Player: tp, Key: cmd.Key, Removed: true})
		}
	case CmdIncreaseStatusUsages:
		if st, ok := ps.status.Get(cmd.Key); ok {
			desc := StatusForKey(cmd.Key)
			s.setStatus(p, cmd.Key, st.AddUsages(cmd.Amount, desc.MaxUsages))
		}

	case CmdSummon:
		s.summon(p, cmd.Summon)
	case CmdSummonRandom:
		n := min(int(cmd.Amount), len(Pool(cmd.Pool)))
		if n == 0 {
			break
		}
		return suspendFor(NondetRequest{Kind: NondetSelectSummons, Player: p, Count: uint8(n), Pool: cmd.Pool})
	case CmdAddSupport:
		s.addSupport(p, cmd.Support)

	case CmdAddDice:
		s.setDice(p, ps.dice.Plus(cmd.Dice))
	case CmdSubtractDice:
		rest, ok := ps.dice.Minus(cmd.Dice)
		if !ok {
			panic(fmt.Sprintf("game: %s cannot subtract %s from %s", p, cmd.Dice, ps.dice))
		}
		s.setDice(p, rest)

	case CmdAddCardToHand:
		if !s.addCardToHand(p, cmd.Card) && s.debugEnabled() {
			s.logger.Debug("Hand full, card discarded", zap.Stringer("player", p), zap.String("card", Card(cmd.Card).Name))
		}
	case CmdRemoveCardFromHand:
		if !s.removeCardFromHand(p, cmd.Card) {
			panic(fmt.Sprintf("game: %s does not hold card %s", p, Card(cmd.Card).Name))
		}
	case CmdDrawCards:
		var req NondetRequest
		req.Kind = NondetDrawCards
		req.Counts[p] = cmd.Amount
		return suspendFor(req)
	case CmdDrawCardsBoth:
		return suspendFor(NondetRequest{Kind: NondetDrawCards, Counts: [2]uint8{cmd.Amount, cmd.Amount}})
	case CmdRollDiceBoth:
		return suspendFor(NondetRequest{Kind: NondetRollDice, Counts: [2]uint8{cmd.Amount, cmd.Amount}})

	case CmdHandOverPlayer:
		if s.phase.Kind == rules.PhaseAction && !s.phase.HasEnded(p.Opposite()) {
			ph := s.phase
			ph.Active = p.Opposite()
			s.setPhase(ph)
		}
	case CmdDeclareEndOfRound:
		s.setPhase(s.phase.WithEnded(p))
		res.add = append(res.add, Entry(EventContext(p), TriggerEvent(rules.TriggerDeclaredEndOfRound)))
		if s.phase.BothEnded() {
			res.add = append(res.add, Entry(EventContext(p), Command{Kind: CmdEnterEndPhase}))
		} else {
			res.add = append(res.add, Entry(EventContext(p), Command{Kind: CmdHandOverPlayer}))
		}

	case CmdSetPlayerFlag:
		ps.flags |= cmd.Flag
	case CmdClearPlayerFlag:
		ps.flags &^= cmd.Flag

	case CmdEnterActionPhase:
		first := s.phase.First
		s.enterPhase(rules.Phase{Kind: rules.PhaseAction, Active: first, First: first})
		return res.with(
			Entry(EventContext(first), TriggerEvent(rules.TriggerActionPhase)),
			Entry(EventContext(first.Opposite()), TriggerEvent(rules.TriggerActionPhase)),
		)
	case CmdEnterEndPhase:
		first := s.phase.First
		s.enterPhase(rules.Phase{Kind: rules.PhaseEnd, Active: first, First: first, Ended: s.phase.Ended, FirstEnded: s.phase.FirstEnded})
		return res.with(
			Entry(EventContext(first), TriggerEvent(rules.TriggerEndPhase)),
			Entry(EventContext(first.Opposite()), TriggerEvent(rules.TriggerEndPhase)),
			Entry(EventContext(first), Command{Kind: CmdDrawCardsBoth, Amount: EndPhaseDrawCount}),
			Entry(EventContext(first), Command{Kind: CmdStartNextRound}),
		)
	case CmdStartNextRound:
		first := s.phase.First
		if s.phase.Ended != 0 {
			first = s.phase.FirstEnded
		}
		s.setRound(s.round + 1)
		for i := range s.players {
			pl := rules.PlayerID(i)
			s.resetRound(pl)
			s.players[i].flags &^= FlagDiedThisRound
			s.setDice(pl, dice.Counter{})
		}
		return res.with(s.rollPhaseCommands(first)...)

	default:
		panic(fmt.Sprintf("game: unknown command %s", cmd))
	}
	return res
}

// rollPhaseCommands enters the roll phase with first acting first.
func (s *GameState) rollPhaseCommands(first rules.PlayerID) []CommandEntry {
	s.enterPhase(rules.Phase{Kind: rules.PhaseRoll, Active: first, First: first})
	return []CommandEntry{
		Entry(EventContext(first), TriggerEvent(rules.TriggerRollPhase)),
		Entry(EventContext(first.Opposite()), TriggerEvent(rules.TriggerRollPhase)),
		Entry(EventContext(first), Command{Kind: CmdRollDiceBoth, Amount: RollDiceCount}),
		Entry(EventContext(first), Command{Kind: CmdEnterActionPhase}),
	}
}

func (s *GameState) enterPhase(ph rules.Phase) {
	s.setPhase(ph)
	s.logEvent(LogEntry{Kind: LogPhase, Player: ph.Active, Phase: ph.Kind})
	if s.debugEnabled() {
		s.logger.Debug("Phase changed", zap.Stringer("phase", ph), zap.Uint8("round", s.round))
	}
}

// castSkill runs a skill of the active character.
func (s *GameState) castSkill(ctx CommandContext, id SkillID) execResult {
	p := ctx.Player
	char := s.players[p].active
	skill := Skill(id)
	sctx := CommandContext{
		Player:    p,
		Source:    CommandSource{Kind: SourceSkill, CharIdx: char, Skill: id},
		Target:    ctx.Target,
		HasTarget: ctx.HasTarget,
	}
	s.logEvent(LogEntry{Kind: LogSkill, Player: p, CharIdx: char, Skill: id})
	var res execResult
	for _, c := range skill.Commands {
		res.add = append(res.add, Entry(sctx, c))
	}
	if skill.Build != nil {
		for _, c := range skill.Build(s, p, char) {
			res.add = append(res.add, Entry(sctx, c))
		}
	}
	return res.with(Entry(sctx, Command{Kind: CmdSkillCastEvent, Skill: id}))
}

// switchTo makes another living character active and raises Switched.
func (s *GameState) switchTo(p rules.PlayerID, to uint8) []CommandEntry {
	ps := &s.players[p]
	from := ps.active
	if to == from || !ps.IsAlive(to) {
		return nil
	}
	s.setActive(p, to)
	s.logEvent(LogEntry{Kind: LogSwitch, Player: p, CharIdx: to, From: from})
	ctx := CommandContext{Player: p, Source: CommandSource{Kind: SourceSwitch, From: from, To: to}}
	return []CommandEntry{Entry(ctx, TriggerEvent(rules.TriggerSwitched))}
}

func (s *GameState) heal(p rules.PlayerID, char uint8, amount uint8) {
	ps := &s.players[p]
	if !ps.IsAlive(char) {
		return
	}
	ch := &ps.chars[char]
	limit := ch.Desc().MaxHealth
	v := min(int(ch.health)+int(amount), int(limit))
	if uint8(v) == ch.health {
		return
	}
	healed := uint8(v) - ch.health
	s.setHealth(p, char, uint8(v))
	s.logEvent(LogEntry{Kind: LogHeal, Player: p, CharIdx: char, Amount: healed})
}

func (s *GameState) gainEnergy(p rules.PlayerID, char uint8, amount uint8) {
	ch := &s.players[p].chars[char]
	v := min(int(ch.energy)+int(amount), int(ch.Desc().MaxEnergy))
	s.setEnergy(p, char, uint8(v))
}

// addStatus applies a status, or re-applies it when already present.
func (s *GameState) addStatus(p rules.PlayerID, k effects.Key) {
	desc := StatusForKey(k)
	if desc.Attach != k.Kind {
		panic(fmt.Sprintf("game: status %s attaches as %s, applied as %s", desc.Name, desc.Attach, k))
	}
	var st counters.State
	if prev, ok := s.players[p].status.Get(k); ok {
		st = desc.Reapply(prev)
	} else {
		st = desc.InitialState()
		s.logEvent(LogEntry{Kind: LogStatus, Player: p, Key: k})
	}
	s.setStatus(p, k, st)
}

// equip places equipment in a slot, replacing whatever occupied it.
func (s *GameState) equip(p rules.PlayerID, char uint8, slot effects.EquipSlot, id StatusID) {
	if !s.players[p].IsAlive(char) {
		return
	}
	k := effects.EquipmentKey(char, slot, uint16(id))
	if old, ok := s.players[p].status.find(func(o effects.Key) bool {
		return o.Kind == effects.AttachEquipment && o.Char == char && o.EquipSlot() == slot && o != k
	}); ok {
		s.removeStatus(p, old.Key)
	}
	s.addStatus(p, k)
}

// summon adds a summon or refreshes it. Summons beyond MaxSummons are lost.
func (s *GameState) summon(p rules.PlayerID, id SummonID) {
	k := effects.SummonKey(uint16(id))
	sc := &s.players[p].status
	if !sc.Has(k) && sc.Count(effects.AttachSummon) >= MaxSummons {
		return
	}
	s.addStatus(p, k)
}

// addSupport places a support in the first free slot. Supports beyond
// MaxSupports are lost.
func (s *GameState) addSupport(p rules.PlayerID, id SupportID) {
	sc := &s.players[p].status
	var used [MaxSupports]bool
	for _, e := range sc.entries {
		if e.Key.Kind == effects.AttachSupport && int(e.Key.Slot) < MaxSupports {
			used[e.Key.Slot] = true
		}
	}
	for slot, taken := range used {
		if !taken {
			s.addStatus(p, effects.SupportKey(uint8(slot), uint16(id)))
			return
		}
	}
}
