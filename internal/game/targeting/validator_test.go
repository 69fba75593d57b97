package targeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgsim/tcgsim/internal/game/rules"
)

type fakeBoard struct {
	health [2][]uint8
	active [2]uint8
}

func (b *fakeBoard) CharacterCount(p rules.PlayerID) int    { return len(b.health[p]) }
func (b *fakeBoard) IsAlive(p rules.PlayerID, c uint8) bool { return b.health[p][c] > 0 }
func (b *fakeBoard) ActiveIndex(p rules.PlayerID) uint8     { return b.active[p] }

func newBoard() *fakeBoard {
	return &fakeBoard{
		health: [2][]uint8{{10, 0, 5}, {10, 10}},
		active: [2]uint8{0, 1},
	}
}

func TestValidateOwnCharacter(t *testing.T) {
	v := NewValidator(newBoard())
	req := TargetRequirement{Type: TargetOwnCharacter}

	require.NoError(t, v.Validate(rules.PlayerFirst, &Target{rules.PlayerFirst, 2}, req))
	assert.Error(t, v.Validate(rules.PlayerFirst, &Target{rules.PlayerFirst, 1}, req), "defeated")
	assert.Error(t, v.Validate(rules.PlayerFirst, &Target{rules.PlayerSecond, 0}, req), "wrong side")
	assert.Error(t, v.Validate(rules.PlayerFirst, &Target{rules.PlayerFirst, 3}, req), "out of range")
	assert.Error(t, v.Validate(rules.PlayerFirst, nil, req), "missing")

	req.AllowDefeated = true
	assert.NoError(t, v.Validate(rules.PlayerFirst, &Target{rules.PlayerFirst, 1}, req))
}

func TestValidateStandbyExcludesActive(t *testing.T) {
	v := NewValidator(newBoard())
	req := TargetRequirement{Type: TargetOwnStandbyCharacter}
	assert.Error(t, v.Validate(rules.PlayerFirst, &Target{rules.PlayerFirst, 0}, req))
	assert.NoError(t, v.Validate(rules.PlayerFirst, &Target{rules.PlayerFirst, 2}, req))
}

func TestValidateNoTarget(t *testing.T) {
	v := NewValidator(newBoard())
	assert.NoError(t, v.Validate(rules.PlayerFirst, nil, TargetRequirement{}))
	assert.Error(t, v.Validate(rules.PlayerFirst, &Target{}, TargetRequirement{}))
}

func TestCandidates(t *testing.T) {
	v := NewValidator(newBoard())
	assert.Equal(t,
		[]Target{{rules.PlayerFirst, 0}, {rules.PlayerFirst, 2}},
		v.Candidates(rules.PlayerFirst, TargetRequirement{Type: TargetOwnCharacter}))
	assert.Equal(t,
		[]Target{{rules.PlayerSecond, 0}, {rules.PlayerSecond, 1}},
		v.Candidates(rules.PlayerFirst, TargetRequirement{Type: TargetOpponentCharacter}))
	assert.Nil(t, v.Candidates(rules.PlayerFirst, TargetRequirement{}))
}

func TestTargetTranspose(t *testing.T) {
	tg := Target{Player: rules.PlayerFirst, CharIdx: 2}
	assert.Equal(t, Target{Player: rules.PlayerSecond, CharIdx: 2}, tg.Transpose())
}
