package server

import (
	"fmt"

	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/game/rules"
	"github.com/tcgsim/tcgsim/internal/game/targeting"
	"github.com/tcgsim/tcgsim/internal/session"
)

func parseActionKind(name string) (game.ActionKind, error) {
	for k := game.ActionEndRound; k <= game.ActionPostDeathSwitch; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown action kind %q", name)
}

func parsePlayer(p uint8) (rules.PlayerID, error) {
	if p > uint8(rules.PlayerSecond) {
		return 0, fmt.Errorf("player must be 0 or 1, got %d", p)
	}
	return rules.PlayerID(p), nil
}

// toInput converts a wire action into an engine input.
func toInput(a Action) (game.Input, error) {
	player, err := parsePlayer(a.Player)
	if err != nil {
		return game.Input{}, err
	}
	kind, err := parseActionKind(a.Kind)
	if err != nil {
		return game.Input{}, err
	}

	var action game.PlayerAction
	switch kind {
	case game.ActionEndRound:
		action = game.EndRoundAction()
	case game.ActionPlayCard:
		var target *targeting.Target
		if a.Target != nil {
			tp, err := parsePlayer(a.Target.Player)
			if err != nil {
				return game.Input{}, fmt.Errorf("target: %w", err)
			}
			target = &targeting.Target{Player: tp, CharIdx: a.Target.CharIdx}
		}
		action = game.PlayCardAction(game.CardID(a.Card), target)
	case game.ActionElementalTuning:
		action = game.TuningAction(game.CardID(a.Card))
	case game.ActionCastSkill:
		action = game.CastSkillAction(game.SkillID(a.Skill))
	case game.ActionSwitchCharacter:
		action = game.SwitchAction(a.CharIdx)
	case game.ActionPostDeathSwitch:
		action = game.PostDeathSwitchAction(a.CharIdx)
	}
	return game.PlayerInput(player, action), nil
}

// fromInput renders an engine input for the wire.
func fromInput(in game.Input) Action {
	a := in.Action
	out := Action{
		Player:  uint8(in.Player),
		Kind:    a.Kind.String(),
		Card:    uint16(a.Card),
		Skill:   uint16(a.Skill),
		CharIdx: a.CharIdx,
		Label:   a.String(),
	}
	if a.HasTarget {
		out.Target = &Target{Player: uint8(a.Target.Player), CharIdx: a.Target.CharIdx}
	}
	return out
}

func toExpected(r game.DispatchResult) Expected {
	return Expected{Kind: r.Kind.String(), Player: uint8(r.Player)}
}

func toGameResponse(snap session.Snapshot, withState bool) *GameResponse {
	resp := &GameResponse{
		GameID:    snap.ID,
		Lifecycle: snap.Lifecycle,
		Steps:     snap.Steps,
		Expected:  toExpected(snap.Expected),
	}
	if withState {
		summary := snap.Summary
		resp.State = &summary
	}
	return resp
}
