package game

import (
	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/rules"
	"github.com/tcgsim/tcgsim/internal/game/targeting"
)

// switchCost is the base cost of switching characters.
var switchCost = dice.Cost{Unaligned: 1}

// actionCommands validates an action phase decision and returns the
// commands that carry it out.
func (s *GameState) actionCommands(p rules.PlayerID, a PlayerAction) ([]CommandEntry, error) {
	if s.phase.Kind != rules.PhaseAction {
		return nil, inputErr(ErrWrongPhase, "%s outside the action phase", a.Kind)
	}
	switch a.Kind {
	case ActionEndRound:
		return []CommandEntry{Entry(EventContext(p), Command{Kind: CmdDeclareEndOfRound})}, nil
	case ActionPlayCard:
		return s.playCard(p, a.Card, a.TargetPtr(), true)
	case ActionElementalTuning:
		return s.tune(p, a.Card)
	case ActionCastSkill:
		return s.castSkillAction(p, a.Skill, true)
	case ActionSwitchCharacter:
		return s.switchAction(p, a.CharIdx, true)
	case ActionPostDeathSwitch:
		return nil, inputErr(ErrWrongPhase, "no post-death switch pending")
	}
	return nil, inputErr(ErrWrongPhase, "unknown action %s", a.Kind)
}

// payment checks that a cost can be paid and returns the dice to spend.
func (s *GameState) payment(p rules.PlayerID, cost dice.Cost) (dice.Counter, error) {
	if s.ignoreCosts {
		return dice.Counter{}, nil
	}
	ps := &s.players[p]
	if cost.Energy > ps.Active().energy {
		return dice.Counter{}, inputErr(ErrInsufficientEnergy, "need %d, have %d", cost.Energy, ps.Active().energy)
	}
	spent, ok := dice.Select(ps.dice, cost, ps.Active().Element())
	if !ok {
		return dice.Counter{}, inputErr(ErrInsufficientDice, "cannot pay %s with %s", cost, ps.dice)
	}
	return spent, nil
}

// finalCost runs UpdateCost hooks. With apply unset the hooks are only
// previewed.
func (s *GameState) finalCost(p rules.PlayerID, cc CostContext, apply bool) CostContext {
	s.updateCost(p, &cc, !apply)
	return cc
}

func (s *GameState) payCommands(ctx CommandContext, spent dice.Counter, energy uint8, current uint8) []CommandEntry {
	var out []CommandEntry
	if s.ignoreCosts {
		return nil
	}
	if !spent.IsEmpty() {
		out = append(out, Entry(ctx, SubtractDice(spent)))
	}
	if energy > 0 {
		out = append(out, Entry(ctx, SetEnergyForActive(current-energy)))
	}
	return out
}

func (s *GameState) playCard(p rules.PlayerID, card CardID, target *targeting.Target, apply bool) ([]CommandEntry, error) {
	ps := &s.players[p]
	if card == 0 || int(card) > CardCount() || ps.HandCount(card) == 0 {
		return nil, inputErr(ErrCardNotInHand, "card %d", card)
	}
	desc := Card(card)
	if err := targeting.NewValidator(s).Validate(p, target, desc.Target); err != nil {
		return nil, &InputError{Reason: ErrInvalidTarget, Detail: err.Error()}
	}
	if desc.CanPlay != nil && !desc.CanPlay(s, p, target) {
		return nil, inputErr(ErrCannotPlayCard, "%s", desc.Name)
	}
	base := CostContext{Type: CostCard, CharIdx: ps.active, Card: card, Cost: desc.Cost}
	cc := s.finalCost(p, base, false)
	spent, err := s.payment(p, cc.Cost)
	if err != nil || !apply {
		return nil, err
	}
	cc = s.finalCost(p, base, true)
	if spent, err = s.payment(p, cc.Cost); err != nil {
		return nil, err
	}

	ctx := CommandContext{Player: p, Source: CommandSource{Kind: SourceCard, Card: card}}
	if target != nil {
		ctx = ctx.WithTarget(target.Player, target.CharIdx)
	}
	s.logEvent(LogEntry{Kind: LogCard, Player: p, Card: card})
	out := s.payCommands(ctx, spent, cc.Cost.Energy, ps.Active().energy)
	out = append(out, Entry(ctx, RemoveCardFromHand(card)))
	for _, c := range desc.Commands {
		out = append(out, Entry(ctx, c))
	}
	if desc.Build != nil {
		for _, c := range desc.Build(s, p, target) {
			out = append(out, Entry(ctx, c))
		}
	}
	return append(out, Entry(ctx, TriggerEvent(rules.TriggerCardPlayed))), nil
}

func (s *GameState) tune(p rules.PlayerID, card CardID) ([]CommandEntry, error) {
	ps := &s.players[p]
	if card == 0 || int(card) > CardCount() || ps.HandCount(card) == 0 {
		return nil, inputErr(ErrCardNotInHand, "card %d", card)
	}
	elem := ps.Active().Element()
	kind, ok := dice.TuneSelect(ps.dice, elem)
	if !ok {
		return nil, inputErr(ErrInsufficientDice, "no die can be tuned to %s", elem)
	}
	var from, to dice.Counter
	from[kind] = 1
	to[dice.KindOf(elem)] = 1
	ctx := EventContext(p)
	return []CommandEntry{
		Entry(ctx, RemoveCardFromHand(card)),
		Entry(ctx, SubtractDice(from)),
		Entry(ctx, AddDice(to)),
	}, nil
}

func (s *GameState) castSkillAction(p rules.PlayerID, id SkillID, apply bool) ([]CommandEntry, error) {
	ps := &s.players[p]
	char := ps.active
	active := ps.Active()
	known := false
	for _, sk := range active.Desc().Skills {
		known = known || sk == id
	}
	if !known {
		return nil, inputErr(ErrCannotCastSkill, "skill %d does not belong to %s", id, active.Desc().Name)
	}
	if s.isIncapacitated(p, char) {
		return nil, inputErr(ErrCannotCastSkill, "%s is incapacitated", active.Desc().Name)
	}
	skill := Skill(id)
	base := CostContext{Type: CostSkill, CharIdx: char, Skill: id, Cost: skill.Cost}
	cc := s.finalCost(p, base, false)
	spent, err := s.payment(p, cc.Cost)
	if err != nil || !apply {
		return nil, err
	}
	charged := skill.Type == rules.NormalAttack && ps.dice.Total()%2 == 0
	cc = s.finalCost(p, base, true)
	if spent, err = s.payment(p, cc.Cost); err != nil {
		return nil, err
	}

	ctx := CommandContext{Player: p, Source: CommandSource{Kind: SourceSkill, CharIdx: char, Skill: id}}
	out := s.payCommands(ctx, spent, cc.Cost.Energy, active.energy)
	if charged {
		out = append(out, Entry(ctx, SetPlayerFlag(FlagChargedAttack)))
	}
	return append(out,
		Entry(ctx, Command{Kind: CmdCastSkill, Skill: id}),
		Entry(ctx, ClearPlayerFlag(FlagChargedAttack)),
		Entry(ctx, ClearPlayerFlag(FlagPlungingAttack)),
		Entry(ctx, Command{Kind: CmdHandOverPlayer}),
	), nil
}

func (s *GameState) switchAction(p rules.PlayerID, char uint8, apply bool) ([]CommandEntry, error) {
	if err := s.checkSwitchTarget(p, char); err != nil {
		return nil, err
	}
	ps := &s.players[p]
	base := CostContext{Type: CostSwitch, CharIdx: ps.active, Cost: switchCost}
	cc := s.finalCost(p, base, false)
	spent, err := s.payment(p, cc.Cost)
	if err != nil || !apply {
		return nil, err
	}
	cc = s.finalCost(p, base, true)
	if spent, err = s.payment(p, cc.Cost); err != nil {
		return nil, err
	}
	ctx := CommandContext{Player: p, Source: CommandSource{Kind: SourceSwitch, From: ps.active, To: char}}
	out := s.payCommands(ctx, spent, 0, 0)
	out = append(out,
		Entry(ctx, SwitchCharacter(char)),
		Entry(ctx, SetPlayerFlag(FlagPlungingAttack)),
	)
	if !cc.Fast {
		out = append(out, Entry(ctx, Command{Kind: CmdHandOverPlayer}))
	}
	return out, nil
}

// AvailableActions lists every legal input for the player expected to act,
// or the switch menu during a post-death switch. It is computed from the
// current state on every call.
func (s *GameState) AvailableActions() []Input {
	exp := s.Expected()
	if exp.Kind != DispatchPlayerInput {
		return nil
	}
	p := exp.Player
	ps := &s.players[p]
	var out []Input
	add := func(a PlayerAction) { out = append(out, PlayerInput(p, a)) }

	if s.pending != nil || s.phase.Kind == rules.PhaseSelectStartingCharacter {
		kind := ActionSwitchCharacter
		if s.pending != nil {
			kind = ActionPostDeathSwitch
		}
		for i := range ps.chars {
			if ps.IsAlive(uint8(i)) {
				add(PlayerAction{Kind: kind, CharIdx: uint8(i)})
			}
		}
		return out
	}

	add(EndRoundAction())
	for _, sk := range ps.Active().Desc().Skills {
		if _, err := s.castSkillAction(p, sk, false); err == nil {
			add(CastSkillAction(sk))
		}
	}
	validator := targeting.NewValidator(s)
	canTune := dice.CanTune(ps.dice, ps.Active().Element())
	for _, h := range ps.hand {
		desc := Card(h.Card)
		if desc.Target.Type == targeting.TargetNone {
			if _, err := s.playCard(p, h.Card, nil, false); err == nil {
				add(PlayCardAction(h.Card, nil))
			}
		} else {
			for _, t := range validator.Candidates(p, desc.Target) {
				if _, err := s.playCard(p, h.Card, &t, false); err == nil {
					add(PlayCardAction(h.Card, &t))
				}
			}
		}
		if canTune {
			add(TuningAction(h.Card))
		}
	}
	for i := range ps.chars {
		if _, err := s.switchAction(p, uint8(i), false); err == nil {
			add(SwitchAction(uint8(i)))
		}
	}
	return out
}
