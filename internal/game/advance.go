package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tcgsim/tcgsim/internal/game/rules"
	"github.com/tcgsim/tcgsim/internal/game/targeting"
)

// InputKind is the shape of an input to Advance.
type InputKind uint8

const (
	InputNoAction InputKind = iota
	InputNondet
	InputPlayer
)

var inputKindNames = map[InputKind]string{
	InputNoAction: "NO_ACTION",
	InputNondet:   "NONDET",
	InputPlayer:   "PLAYER",
}

func (k InputKind) String() string {
	if name, ok := inputKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("INPUT_%d", int(k))
}

// ActionKind is a player's choice.
type ActionKind uint8

const (
	ActionEndRound ActionKind = iota
	ActionPlayCard
	ActionElementalTuning
	ActionCastSkill
	ActionSwitchCharacter
	ActionPostDeathSwitch
)

var actionKindNames = map[ActionKind]string{
	ActionEndRound:        "END_ROUND",
	ActionPlayCard:        "PLAY_CARD",
	ActionElementalTuning: "ELEMENTAL_TUNING",
	ActionCastSkill:       "CAST_SKILL",
	ActionSwitchCharacter: "SWITCH_CHARACTER",
	ActionPostDeathSwitch: "POST_DEATH_SWITCH",
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ACTION_%d", int(k))
}

// PlayerAction is one player decision. Only the fields relevant to Kind are used.
type PlayerAction struct {
	Kind      ActionKind
	Card      CardID
	Skill     SkillID
	CharIdx   uint8
	Target    targeting.Target
	HasTarget bool
}

func EndRoundAction() PlayerAction { return PlayerAction{Kind: ActionEndRound} }

func PlayCardAction(card CardID, target *targeting.Target) PlayerAction {
	a := PlayerAction{Kind: ActionPlayCard, Card: card}
	if target != nil {
		a.Target, a.HasTarget = *target, true
	}
	return a
}

func TuningAction(card CardID) PlayerAction {
	return PlayerAction{Kind: ActionElementalTuning, Card: card}
}

func CastSkillAction(skill SkillID) PlayerAction {
	return PlayerAction{Kind: ActionCastSkill, Skill: skill}
}

func SwitchAction(char uint8) PlayerAction {
	return PlayerAction{Kind: ActionSwitchCharacter, CharIdx: char}
}

func PostDeathSwitchAction(char uint8) PlayerAction {
	return PlayerAction{Kind: ActionPostDeathSwitch, CharIdx: char}
}

// TargetPtr returns the card target, or nil when the action has none.
func (a PlayerAction) TargetPtr() *targeting.Target {
	if !a.HasTarget {
		return nil
	}
	t := a.Target
	return &t
}

func (a PlayerAction) String() string {
	switch a.Kind {
	case ActionPlayCard:
		if a.HasTarget {
			return fmt.Sprintf("%s(%s -> %s)", a.Kind, Card(a.Card).Name, a.Target)
		}
		return fmt.Sprintf("%s(%s)", a.Kind, Card(a.Card).Name)
	case ActionElementalTuning:
		return fmt.Sprintf("%s(%s)", a.Kind, Card(a.Card).Name)
	case ActionCastSkill:
		return fmt.Sprintf("%s(%s)", a.Kind, Skill(a.Skill).Name)
	case ActionSwitchCharacter, ActionPostDeathSwitch:
		return fmt.Sprintf("%s(%d)", a.Kind, a.CharIdx)
	}
	return a.Kind.String()
}

// Transpose swaps the player reference of the target.
func (a PlayerAction) Transpose() PlayerAction {
	if a.HasTarget {
		a.Target = a.Target.Transpose()
	}
	return a
}

// Input is the argument to Advance.
type Input struct {
	Kind   InputKind
	Player rules.PlayerID
	Action PlayerAction
	Nondet NondetResult
}

// NoAction is the input when nothing is expected.
func NoAction() Input { return Input{Kind: InputNoAction} }

// NondetInput answers a nondeterministic request.
func NondetInput(r NondetResult) Input { return Input{Kind: InputNondet, Nondet: r} }

// PlayerInput is a player's decision.
func PlayerInput(p rules.PlayerID, a PlayerAction) Input {
	return Input{Kind: InputPlayer, Player: p, Action: a}
}

func (in Input) String() string {
	switch in.Kind {
	case InputPlayer:
		return fmt.Sprintf("%s %s", in.Player, in.Action)
	case InputNondet:
		return fmt.Sprintf("%s(%s)", in.Kind, in.Nondet.Kind)
	}
	return in.Kind.String()
}

// Transpose swaps every player reference in the input.
func (in Input) Transpose() Input {
	switch in.Kind {
	case InputPlayer:
		in.Player = in.Player.Opposite()
		in.Action = in.Action.Transpose()
	case InputNondet:
		in.Nondet = in.Nondet.Transpose()
	}
	return in
}

// DispatchKind is what the game expects next.
type DispatchKind uint8

const (
	DispatchWinner DispatchKind = iota
	DispatchNoInput
	DispatchNondet
	DispatchPlayerInput
)

var dispatchNames = map[DispatchKind]string{
	DispatchWinner:      "WINNER",
	DispatchNoInput:     "NO_INPUT",
	DispatchNondet:      "NONDET",
	DispatchPlayerInput: "PLAYER_INPUT",
}

func (k DispatchKind) String() string {
	if name, ok := dispatchNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DISPATCH_%d", int(k))
}

// DispatchResult describes the next input the game needs. Player is the
// winner or the player to act; Request is set for DispatchNondet.
type DispatchResult struct {
	Kind    DispatchKind
	Player  rules.PlayerID
	Request NondetRequest
}

func (r DispatchResult) String() string {
	switch r.Kind {
	case DispatchWinner, DispatchPlayerInput:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Player)
	case DispatchNondet:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Request)
	}
	return r.Kind.String()
}

// Expected returns what the game waits for.
func (s *GameState) Expected() DispatchResult {
	if w, ok := s.phase.Winner(); ok {
		return DispatchResult{Kind: DispatchWinner, Player: w}
	}
	if s.pending != nil {
		switch s.pending.Suspended.Kind {
		case SuspendPostDeathSwitch:
			return DispatchResult{Kind: DispatchPlayerInput, Player: s.pending.Suspended.Player}
		case SuspendNondet:
			return DispatchResult{Kind: DispatchNondet, Request: s.pending.Suspended.Request}
		}
	}
	switch s.phase.Kind {
	case rules.PhaseSelectStartingCharacter, rules.PhaseAction:
		return DispatchResult{Kind: DispatchPlayerInput, Player: s.phase.Active}
	}
	return DispatchResult{Kind: DispatchNoInput}
}

// Advance applies one input and runs the game until it needs the next one.
// An *InputError means the input did not fit the current state; the state
// must then be discarded.
func (s *GameState) Advance(input Input) (DispatchResult, error) {
	if err := s.advance(input); err != nil {
		if s.debugEnabled() {
			s.logger.Debug("Input rejected", zap.Stringer("input", input), zap.Error(err))
		}
		return DispatchResult{}, err
	}
	s.UpdateHash()
	return s.Expected(), nil
}

func (s *GameState) advance(input Input) error {
	exp := s.Expected()
	switch exp.Kind {
	case DispatchWinner:
		return inputErr(ErrGameOver, "winner is %s", exp.Player)
	case DispatchNoInput:
		if input.Kind != InputNoAction {
			return inputErr(ErrWrongPhase, "no input expected, got %s", input.Kind)
		}
		return nil
	case DispatchNondet:
		if input.Kind != InputNondet {
			return inputErr(ErrNondetShapeMismatch, "expected %s, got %s input", exp.Request, input.Kind)
		}
		if err := input.Nondet.Validate(exp.Request); err != nil {
			return err
		}
		s.resume(input.Nondet.commands(exp.Request))
		return nil
	}

	if input.Kind != InputPlayer {
		return inputErr(ErrWrongPhase, "expected %s to act, got %s input", exp.Player, input.Kind)
	}
	if input.Player != exp.Player {
		return inputErr(ErrWrongPlayer, "expected %s, got %s", exp.Player, input.Player)
	}
	p, a := input.Player, input.Action

	if s.pending != nil {
		if a.Kind != ActionPostDeathSwitch {
			return inputErr(ErrWrongPhase, "post-death switch expected, got %s", a.Kind)
		}
		if err := s.checkSwitchTarget(p, a.CharIdx); err != nil {
			return err
		}
		s.resume([]CommandEntry{Entry(EventContext(p), SwitchCharacter(a.CharIdx))})
		return nil
	}

	if s.phase.Kind == rules.PhaseSelectStartingCharacter {
		return s.selectStarting(p, a)
	}

	cmds, err := s.actionCommands(p, a)
	if err != nil {
		return err
	}
	s.ExecCommands(cmds)
	return nil
}

// resume runs the commands resolving a suspension, then the saved queue.
func (s *GameState) resume(resolution []CommandEntry) {
	queue := s.pending.Queue
	s.pending = nil
	s.ExecCommands(append(resolution, queue...))
}

// selectStarting handles the starting character choice. The first player
// chooses, then the second, then the first round's roll phase begins.
func (s *GameState) selectStarting(p rules.PlayerID, a PlayerAction) error {
	if a.Kind != ActionSwitchCharacter {
		return inputErr(ErrWrongPhase, "starting character selection expected, got %s", a.Kind)
	}
	ps := &s.players[p]
	if int(a.CharIdx) >= len(ps.chars) || !ps.IsAlive(a.CharIdx) {
		return inputErr(ErrInvalidSwitch, "character %d", a.CharIdx)
	}
	s.setActive(p, a.CharIdx)
	if p == s.phase.First {
		ph := s.phase
		ph.Active = p.Opposite()
		s.setPhase(ph)
		return nil
	}
	s.ExecCommands(s.rollPhaseCommands(s.phase.First))
	return nil
}

func (s *GameState) checkSwitchTarget(p rules.PlayerID, char uint8) error {
	ps := &s.players[p]
	switch {
	case int(char) >= len(ps.chars):
		return inputErr(ErrInvalidSwitch, "character %d out of range", char)
	case !ps.IsAlive(char):
		return inputErr(ErrInvalidSwitch, "character %d is defeated", char)
	case char == ps.active:
		return inputErr(ErrInvalidSwitch, "character %d is already active", char)
	}
	return nil
}
