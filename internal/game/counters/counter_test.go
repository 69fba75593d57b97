package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateFieldsAreIndependent(t *testing.T) {
	var s State
	s = s.WithUsages(3).WithCounter(9).WithOncePerRound(true)

	assert.Equal(t, uint8(3), s.Usages())
	assert.Equal(t, uint8(9), s.Counter())
	assert.True(t, s.OncePerRoundUsed())

	s = s.WithUsages(1)
	assert.Equal(t, uint8(1), s.Usages())
	assert.Equal(t, uint8(9), s.Counter())
	assert.True(t, s.OncePerRoundUsed())

	s = s.WithOncePerRound(false)
	assert.False(t, s.OncePerRoundUsed())
	assert.Equal(t, uint8(1), s.Usages())
}

func TestStateSaturates(t *testing.T) {
	var s State
	assert.Equal(t, uint8(MaxUsages), s.WithUsages(200).Usages())
	assert.Equal(t, uint8(MaxCounter), s.WithCounter(99).Counter())
	assert.Equal(t, uint8(MaxUsages), s.WithDuration(8).Duration())
}

func TestStateDecrementStopsAtZero(t *testing.T) {
	s := State(0).WithUsages(2)
	assert.Equal(t, uint8(1), s.DecrementUsages(1).Usages())
	assert.Equal(t, uint8(0), s.DecrementUsages(5).Usages())
	assert.Equal(t, uint8(0), State(0).DecrementDuration().Duration())
}

func TestStateAddUsagesRespectsMax(t *testing.T) {
	s := State(0).WithUsages(2)
	assert.Equal(t, uint8(3), s.AddUsages(4, 3).Usages())
	assert.Equal(t, uint8(6), s.AddUsages(4, 0).Usages())
	assert.Equal(t, uint8(MaxUsages), s.AddUsages(9, 12).Usages())
}
