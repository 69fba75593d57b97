package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

var dummy = RegisterCharacter(CharacterDesc{
	Name:      "Training Dummy",
	Element:   rules.Cryo,
	MaxHealth: 10,
	MaxEnergy: 2,
	Skills: []SkillID{RegisterSkill(SkillDesc{
		Name:     "Dummy Strike",
		Type:     rules.NormalAttack,
		Cost:     dice.Cost{Unaligned: 1},
		Commands: []Command{DealDamage(rules.DamagePhysical, 1)},
	})},
})

func newDummyGame(t *testing.T, perSide int) *GameState {
	t.Helper()
	var setup Setup
	for p := range setup.Characters {
		for i := 0; i < perSide; i++ {
			setup.Characters[p] = append(setup.Characters[p], dummy)
		}
	}
	s, err := NewGameState(setup)
	require.NoError(t, err)
	return s
}

func assertCapsConsistent(t *testing.T, sc *StatusCollection) {
	t.Helper()
	var want effects.Capabilities
	for _, e := range sc.Entries() {
		want = want.Union(StatusForKey(e.Key).Capabilities)
	}
	assert.Equal(t, want, sc.Capabilities())
}

func TestCapabilityCacheTracksEntries(t *testing.T) {
	s := newDummyGame(t, 2)
	p := rules.PlayerFirst
	sc := &s.players[p].status

	s.addStatus(p, effects.TeamKey(uint16(StatusCrystallize)))
	s.addStatus(p, effects.CharacterKey(1, uint16(StatusFrozen)))
	s.summon(p, SummonBurningFlame)
	assertCapsConsistent(t, sc)
	assert.True(t, sc.Capabilities().HasHook(effects.HookShieldPoints))
	assert.True(t, sc.Capabilities().RespondsToTrigger(rules.TriggerEndPhase))

	s.removeStatus(p, effects.SummonKey(uint16(SummonBurningFlame)))
	assertCapsConsistent(t, sc)
	assert.False(t, sc.Capabilities().RespondsToTrigger(rules.TriggerEndPhase))

	s.dropStatuses(p, []effects.Key{
		effects.TeamKey(uint16(StatusCrystallize)),
		effects.CharacterKey(1, uint16(StatusFrozen)),
	})
	assertCapsConsistent(t, sc)
	assert.Zero(t, sc.Len())
	assert.Equal(t, effects.Capabilities{}, sc.Capabilities())
	assert.Equal(t, s.incrementalHash(), s.hash)
}

func TestDefeatDropsCharacterStatuses(t *testing.T) {
	s := newDummyGame(t, 2)
	p := rules.PlayerSecond
	s.addStatus(p, effects.CharacterKey(0, uint16(StatusFrozen)))
	s.addStatus(p, effects.TeamKey(uint16(StatusCrystallize)))
	s.setEnergy(p, 0, 2)

	s.ExecCommands([]CommandEntry{Entry(EventContext(p.Opposite()), DealDamage(rules.DamagePiercing, 20))})

	ps := &s.players[p]
	assert.False(t, ps.IsAlive(0))
	assert.Zero(t, ps.chars[0].energy)
	assert.False(t, ps.status.Has(effects.CharacterKey(0, uint16(StatusFrozen))))
	assert.True(t, ps.status.Has(effects.TeamKey(uint16(StatusCrystallize))))
	assertCapsConsistent(t, &ps.status)
	require.NotNil(t, s.pending)
	assert.Equal(t, SuspendPostDeathSwitch, s.pending.Suspended.Kind)
	assert.Equal(t, p, s.pending.Suspended.Player)
}

func TestTakeDamageHitsOwnSide(t *testing.T) {
	s := newDummyGame(t, 1)
	s.ExecCommands([]CommandEntry{Entry(EventContext(rules.PlayerFirst), TakeDamage(rules.DamagePhysical, 4))})
	assert.Equal(t, uint8(6), s.players[rules.PlayerFirst].chars[0].health)
	assert.Equal(t, uint8(10), s.players[rules.PlayerSecond].chars[0].health)
}

func TestSimultaneousWipeFavoursSourcePlayer(t *testing.T) {
	for _, src := range []rules.PlayerID{rules.PlayerFirst, rules.PlayerSecond} {
		s := newDummyGame(t, 1)
		s.setHealth(rules.PlayerFirst, 0, 0)
		s.setHealth(rules.PlayerSecond, 0, 0)
		q := newCommandQueue([]CommandEntry{Entry(EventContext(src), SwitchNext())})

		require.True(t, s.checkDefeat(EventContext(src), q))
		w, ok := s.Winner()
		require.True(t, ok)
		assert.Equal(t, src, w)
		_, more := q.pop()
		assert.False(t, more, "queue is discarded")
	}
}

func TestPendingQueueIsHashed(t *testing.T) {
	s := newDummyGame(t, 2)
	s.ExecCommands([]CommandEntry{
		Entry(EventContext(rules.PlayerFirst), DrawCards(1)),
		Entry(EventContext(rules.PlayerFirst), Heal(1)),
	})
	s.UpdateHash()
	require.NotNil(t, s.pending)
	require.Len(t, s.pending.Queue, 1)
	a := s.Hash()

	s.pending.Queue[0].Cmd.Amount = 2
	s.UpdateHash()
	assert.NotEqual(t, a, s.Hash())
	assert.Equal(t, s.ComputeHash(), s.Hash())
}

func TestHandOrderDoesNotAffectHash(t *testing.T) {
	if CardCount() < 2 {
		t.Skip("needs registered cards")
	}
	first := newDummyGame(t, 1)
	second := newDummyGame(t, 1)
	cards := []CardID{1, 2, 1}
	for _, c := range cards {
		first.addCardToHand(rules.PlayerFirst, c)
	}
	for i := len(cards) - 1; i >= 0; i-- {
		second.addCardToHand(rules.PlayerFirst, cards[i])
	}
	first.UpdateHash()
	second.UpdateHash()
	assert.Equal(t, first.Hash(), second.Hash())
	assert.Equal(t, first.players[0].hand, second.players[0].hand)
}

func TestEventLogEvictsOldest(t *testing.T) {
	l := NewEventLog(true, 2)
	for i := uint8(1); i <= 3; i++ {
		l.add(LogEntry{Kind: LogHeal, Amount: i})
	}
	require.Equal(t, 2, l.Len())
	assert.Equal(t, uint8(2), l.Entries()[0].Amount)
	assert.Equal(t, 1, l.Dropped())

	off := NewEventLog(false, 2)
	off.add(LogEntry{Kind: LogHeal})
	assert.Zero(t, off.Len())
}
