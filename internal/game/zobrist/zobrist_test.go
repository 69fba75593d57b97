package zobrist

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablesAreStable(t *testing.T) {
	assert.Equal(t, Health(0, 1, 10), Health(0, 1, 10))
	assert.NotEqual(t, Health(0, 1, 10), Health(1, 1, 10))
	assert.NotEqual(t, Health(0, 1, 10), Health(0, 1, 9))
	assert.NotEqual(t, Health(0, 1, 10), Energy(0, 1, 10))
}

func TestOutOfRangeFallsBackToMix(t *testing.T) {
	// Same value regardless of whether it came from the table.
	assert.Equal(t, derive(DomainHealth, 0, 0, 5), Health(0, 0, 5))
	assert.Equal(t, derive(DomainHealth, 0, 0, 40), Health(0, 0, 40))
	assert.Equal(t, derive(DomainDice, 1, 0, 33), Dice(1, 0, 33))
	assert.Equal(t, derive(DomainRound, 0, 0, 70), Round(70))
}

func TestHandZeroCountContributesNothing(t *testing.T) {
	assert.Zero(t, Hand(0, 12, 0))
	assert.NotZero(t, Hand(0, 12, 1))
	assert.NotEqual(t, Hand(0, 12, 1), Hand(0, 12, 2))
}

func TestHandTableMatchesFallback(t *testing.T) {
	assert.Equal(t, derive(DomainHand, 1, 12, 3), Hand(1, 12, 3))
	assert.Equal(t, derive(DomainHand, 0, 500, 2), Hand(0, 500, 2))
	assert.Equal(t, derive(DomainHand, 0, 12, 20), Hand(0, 12, 20))
}

func TestStatusContributionsAreDistinct(t *testing.T) {
	seen := make(map[uint64]string)
	add := func(name string, v uint64) {
		t.Helper()
		assert.NotZero(t, v, name)
		prev, dup := seen[v]
		assert.False(t, dup, "%s collides with %s", name, prev)
		seen[v] = name
	}
	for p := 0; p < Players; p++ {
		for st := 0; st < 256; st++ {
			add(fmt.Sprintf("p%d team#3 state %d", p, st), Status(p, 0, 0, 0, 3, uint8(st)))
		}
		add(fmt.Sprintf("p%d char[2]#3", p), Status(p, 1, 2, 0, 3, 1))
		add(fmt.Sprintf("p%d equip[2/1]#3", p), Status(p, 2, 2, 1, 3, 1))
		add(fmt.Sprintf("p%d summon#3", p), Status(p, 3, 0, 0, 3, 1))
		add(fmt.Sprintf("p%d summon#300", p), Status(p, 3, 0, 0, 300, 1))
		add(fmt.Sprintf("p%d summon#300 state 2", p), Status(p, 3, 0, 0, 300, 2))
	}
	assert.Equal(t, Status(1, 3, 0, 0, 300, 2), Status(1, 3, 0, 0, 300, 2))
}

func TestXorOrderInvariance(t *testing.T) {
	a := Health(0, 0, 10) ^ Health(0, 0, 7) ^ Dice(0, 0, 8) ^ Dice(0, 0, 5)
	b := Dice(0, 0, 8) ^ Dice(0, 0, 5) ^ Health(0, 0, 10) ^ Health(0, 0, 7)
	assert.Equal(t, a, b)
}

func TestConcurrentInitialisation(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]uint64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Active(1, 3)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}

func TestDigestIsOrderDependent(t *testing.T) {
	a := NewDigest(DomainPending)
	a.Write(1)
	a.Write(2)
	b := NewDigest(DomainPending)
	b.Write(2)
	b.Write(1)
	assert.NotEqual(t, a.Sum(), b.Sum())
}
