package targeting

import (
	"fmt"

	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// StateAccessor provides the board facts needed for target validation.
type StateAccessor interface {
	CharacterCount(player rules.PlayerID) int
	IsAlive(player rules.PlayerID, char uint8) bool
	ActiveIndex(player rules.PlayerID) uint8
}

// Validator checks card targets against a board.
type Validator struct {
	state StateAccessor
}

// NewValidator creates a validator reading from the given state.
func NewValidator(state StateAccessor) *Validator {
	return &Validator{state: state}
}

// Validate checks that target satisfies the requirement for a card played by caster.
func (v *Validator) Validate(caster rules.PlayerID, target *Target, req TargetRequirement) error {
	if req.Type == TargetNone {
		if target != nil {
			return fmt.Errorf("card takes no target, got %s", target)
		}
		return nil
	}
	if target == nil {
		return fmt.Errorf("card requires a %s target", req.Type)
	}

	switch req.Type {
	case TargetOwnCharacter, TargetOwnStandbyCharacter:
		if target.Player != caster {
			return fmt.Errorf("target %s is not the caster's character", target)
		}
	case TargetOpponentCharacter:
		if target.Player != caster.Opposite() {
			return fmt.Errorf("target %s is not an opponent character", target)
		}
	}

	if int(target.CharIdx) >= v.state.CharacterCount(target.Player) {
		return fmt.Errorf("target %s out of range", target)
	}
	if !req.AllowDefeated && !v.state.IsAlive(target.Player, target.CharIdx) {
		return fmt.Errorf("target %s is defeated", target)
	}
	if req.Type == TargetOwnStandbyCharacter && v.state.ActiveIndex(target.Player) == target.CharIdx {
		return fmt.Errorf("target %s is the active character", target)
	}
	return nil
}

// Candidates lists every legal target for the requirement, in character order.
func (v *Validator) Candidates(caster rules.PlayerID, req TargetRequirement) []Target {
	if req.Type == TargetNone {
		return nil
	}
	player := caster
	if req.Type == TargetOpponentCharacter {
		player = caster.Opposite()
	}
	n := v.state.CharacterCount(player)
	out := make([]Target, 0, n)
	for i := 0; i < n; i++ {
		t := Target{Player: player, CharIdx: uint8(i)}
		if v.Validate(caster, &t, req) == nil {
			out = append(out, t)
		}
	}
	return out
}
