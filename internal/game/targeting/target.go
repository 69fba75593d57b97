// Package targeting describes and validates the character targets of cards.
package targeting

import (
	"fmt"

	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// TargetType represents what a card may target.
type TargetType uint8

const (
	// TargetNone means the card takes no target.
	TargetNone TargetType = iota
	// TargetOwnCharacter targets one of the caster's characters.
	TargetOwnCharacter
	// TargetOwnStandbyCharacter targets one of the caster's non-active characters.
	TargetOwnStandbyCharacter
	// TargetOpponentCharacter targets one of the opponent's characters.
	TargetOpponentCharacter
)

var targetTypeNames = map[TargetType]string{
	TargetNone:                "NONE",
	TargetOwnCharacter:        "OWN_CHARACTER",
	TargetOwnStandbyCharacter: "OWN_STANDBY_CHARACTER",
	TargetOpponentCharacter:   "OPPONENT_CHARACTER",
}

func (t TargetType) String() string {
	if name, ok := targetTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TARGET_%d", int(t))
}

// TargetRequirement defines what target a card requires.
type TargetRequirement struct {
	Type TargetType
	// AllowDefeated lets the card target a defeated character.
	AllowDefeated bool
	// Description is a human-readable description of the requirement.
	Description string
}

// Target names a character on one side of the board.
type Target struct {
	Player  rules.PlayerID
	CharIdx uint8
}

func (t Target) String() string {
	return fmt.Sprintf("%s[%d]", t.Player, t.CharIdx)
}

// Transpose swaps the player the target refers to.
func (t Target) Transpose() Target {
	t.Player = t.Player.Opposite()
	return t
}
