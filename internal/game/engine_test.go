package game_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/tcgsim/tcgsim/internal/content"
	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
	"github.com/tcgsim/tcgsim/internal/game/targeting"
)

func newTestGame(t *testing.T, setup game.Setup) *game.GameState {
	t.Helper()
	s, err := game.NewGameState(setup)
	require.NoError(t, err)
	return s.WithLogger(zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel)))
}

// startGame picks the first character on both sides and runs into the
// first action phase with all-omni dice.
func startGame(t *testing.T, setup game.Setup) *game.GameState {
	t.Helper()
	s := newTestGame(t, setup)
	advance(t, s, game.PlayerInput(rules.PlayerFirst, game.SwitchAction(0)))
	advance(t, s, game.PlayerInput(rules.PlayerSecond, game.SwitchAction(0)))
	exp, err := s.RunUntilPlayerInput(game.NewDeterministicNondet(content.DemoDecks()), nil)
	require.NoError(t, err)
	require.Equal(t, game.DispatchPlayerInput, exp.Kind)
	require.Equal(t, rules.PhaseAction, s.Phase().Kind)
	return s
}

func advance(t *testing.T, s *game.GameState, in game.Input) game.DispatchResult {
	t.Helper()
	exp, err := s.Advance(in)
	require.NoError(t, err, "input %s", in)
	return exp
}

func exec(s *game.GameState, p rules.PlayerID, cmds ...game.Command) {
	entries := make([]game.CommandEntry, len(cmds))
	for i, c := range cmds {
		entries[i] = game.Entry(game.EventContext(p), c)
	}
	s.ExecCommands(entries)
	s.UpdateHash()
}

func TestNewGameStateValidatesTeams(t *testing.T) {
	_, err := game.NewGameState(game.Setup{})
	assert.Error(t, err)

	_, err = game.NewGameState(game.Setup{Characters: [2][]game.CharID{{content.Diluc}, {9999}}})
	assert.Error(t, err)

	s, err := game.NewGameState(content.DemoSetup())
	require.NoError(t, err)
	assert.Equal(t, uint8(1), s.Round())
	assert.Equal(t, rules.PhaseSelectStartingCharacter, s.Phase().Kind)
	assert.Equal(t, s.ComputeHash(), s.Hash())
}

func TestStartingSelectionRollsDice(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	for _, p := range []rules.PlayerID{rules.PlayerFirst, rules.PlayerSecond} {
		assert.Equal(t, game.RollDiceCount, s.Player(p).Dice().Total())
	}
	assert.Equal(t, rules.PlayerFirst, s.Expected().Player)
}

func TestPhysicalDamage(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	s.Log().Clear()

	exec(s, rules.PlayerFirst, game.DealDamage(rules.DamagePhysical, 3))

	assert.Equal(t, uint8(7), s.Player(rules.PlayerSecond).Active().Health())
	dmg := s.Log().Filter(game.LogDamage)
	require.Len(t, dmg, 1)
	assert.Equal(t, uint8(3), dmg[0].Amount)
	assert.Equal(t, rules.PlayerSecond, dmg[0].Player)
	assert.Empty(t, s.Log().Filter(game.LogReaction))
	assert.Equal(t, s.ComputeHash(), s.Hash())
}

func TestReactionLoggedBeforeDamage(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	exec(s, rules.PlayerFirst, game.ApplyElementToTarget(rules.Pyro))
	require.True(t, s.Player(rules.PlayerSecond).Active().Applied().Has(rules.Pyro))
	s.Log().Clear()

	exec(s, rules.PlayerFirst, game.DealDamage(rules.ElementalDamage(rules.Hydro), 1))

	entries := s.Log().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, game.LogReaction, entries[0].Kind)
	assert.Equal(t, rules.Vaporize, entries[0].Reaction)
	assert.Equal(t, game.LogDamage, entries[1].Kind)
	// 1 Hydro + 2 Vaporize.
	assert.Equal(t, uint8(3), entries[1].Amount)
	assert.Equal(t, uint8(7), s.Player(rules.PlayerSecond).Active().Health())
	assert.True(t, s.Player(rules.PlayerSecond).Active().Applied().IsEmpty())
}

func TestElectroChargedPiercesStandby(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	exec(s, rules.PlayerFirst, game.ApplyElementToTarget(rules.Hydro))
	exec(s, rules.PlayerFirst, game.DealDamage(rules.ElementalDamage(rules.Electro), 1))

	def := s.Player(rules.PlayerSecond)
	assert.Equal(t, uint8(8), def.Character(0).Health())
	assert.Equal(t, uint8(9), def.Character(1).Health())
	assert.Equal(t, uint8(9), def.Character(2).Health())
}

func TestSwirlSpreadsAfterPrimaryInIndexOrder(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	exec(s, rules.PlayerFirst, game.ApplyElementToTarget(rules.Pyro))
	s.Log().Clear()

	exec(s, rules.PlayerFirst, game.DealDamage(rules.ElementalDamage(rules.Anemo), 1))

	entries := s.Log().Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, game.LogReaction, entries[0].Kind)
	assert.Equal(t, rules.Swirl, entries[0].Reaction)
	for i, want := range []uint8{0, 1, 2} {
		e := entries[i+1]
		assert.Equal(t, game.LogDamage, e.Kind)
		assert.Equal(t, want, e.CharIdx)
		assert.Equal(t, uint8(1), e.Amount)
	}
	assert.Equal(t, rules.ElementalDamage(rules.Anemo), entries[1].Damage)
	assert.Equal(t, rules.ElementalDamage(rules.Pyro), entries[2].Damage)

	def := s.Player(rules.PlayerSecond)
	assert.True(t, def.Character(0).Applied().IsEmpty())
	assert.True(t, def.Character(1).Applied().Has(rules.Pyro))
	assert.True(t, def.Character(2).Applied().Has(rules.Pyro))
	assert.Equal(t, s.ComputeHash(), s.Hash())
}

func TestFrozenIncapacitatesAndBreaks(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	exec(s, rules.PlayerFirst, game.ApplyElementToTarget(rules.Cryo))
	exec(s, rules.PlayerFirst, game.DealDamage(rules.ElementalDamage(rules.Hydro), 1))

	def := s.Player(rules.PlayerSecond)
	frozen := effects.CharacterKey(0, uint16(game.StatusFrozen))
	require.True(t, def.Statuses().Has(frozen))
	assert.Equal(t, uint8(8), def.Active().Health())

	exec(s, rules.PlayerFirst, game.DealDamage(rules.DamagePhysical, 1))
	assert.False(t, def.Statuses().Has(frozen))
	assert.Equal(t, uint8(5), def.Active().Health())
}

func TestSkillCastSpendsDiceAndGainsEnergy(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	skill := game.Character(content.Diluc).Skills[1]

	exp := advance(t, s, game.PlayerInput(rules.PlayerFirst, game.CastSkillAction(skill)))

	me := s.Player(rules.PlayerFirst)
	assert.Equal(t, game.RollDiceCount-3, me.Dice().Total())
	assert.Equal(t, uint8(1), me.Active().Energy())
	assert.Equal(t, uint8(7), s.Player(rules.PlayerSecond).Active().Health())
	assert.Equal(t, rules.PlayerSecond, exp.Player)
}

func TestBurstRequiresEnergy(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	burst := game.Character(content.Diluc).Skills[2]
	_, err := s.Clone().Advance(game.PlayerInput(rules.PlayerFirst, game.CastSkillAction(burst)))
	assert.ErrorIs(t, err, game.ErrInsufficientEnergy)
	assert.True(t, game.IsInputError(err))
}

func TestWrongPlayerRejected(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	_, err := s.Advance(game.PlayerInput(rules.PlayerSecond, game.EndRoundAction()))
	assert.ErrorIs(t, err, game.ErrWrongPlayer)
}

func TestTuningOmittedWhenImpossible(t *testing.T) {
	setup := content.DemoSetup()
	setup.Hands[0] = []game.CardID{content.Strategize}
	s := startGame(t, setup)

	// All-omni dice cannot be tuned.
	for _, in := range s.AvailableActions() {
		assert.NotEqual(t, game.ActionElementalTuning, in.Action.Kind, "unexpected %s", in)
	}
	_, err := s.Clone().Advance(game.PlayerInput(rules.PlayerFirst, game.TuningAction(content.Strategize)))
	assert.Error(t, err)
}

func TestTuningConvertsOneDie(t *testing.T) {
	setup := content.DemoSetup()
	setup.Hands[0] = []game.CardID{content.Strategize}
	s := newTestGame(t, setup)
	advance(t, s, game.PlayerInput(rules.PlayerFirst, game.SwitchAction(0)))
	exp := advance(t, s, game.PlayerInput(rules.PlayerSecond, game.SwitchAction(0)))
	require.Equal(t, game.DispatchNondet, exp.Kind)
	roll := game.NondetResult{Kind: game.NondetRollDice}
	roll.Dice[0] = dice.Counter{}.Add(dice.KindOf(rules.Cryo), 8)
	roll.Dice[1] = dice.OmniDice(8)
	advance(t, s, game.NondetInput(roll))

	var tuning bool
	for _, in := range s.AvailableActions() {
		tuning = tuning || in.Action.Kind == game.ActionElementalTuning
	}
	require.True(t, tuning)

	advance(t, s, game.PlayerInput(rules.PlayerFirst, game.TuningAction(content.Strategize)))
	me := s.Player(rules.PlayerFirst)
	assert.Equal(t, uint8(7), me.Dice().Get(dice.KindOf(rules.Cryo)))
	assert.Equal(t, uint8(1), me.Dice().Get(dice.KindOf(rules.Pyro)))
	assert.Zero(t, me.HandSize())
	// Tuning is a fast action.
	assert.Equal(t, rules.PlayerFirst, s.Expected().Player)
}

func TestNondetShapeMismatch(t *testing.T) {
	s := newTestGame(t, content.DemoSetup())
	advance(t, s, game.PlayerInput(rules.PlayerFirst, game.SwitchAction(0)))
	advance(t, s, game.PlayerInput(rules.PlayerSecond, game.SwitchAction(0)))

	short := game.NondetResult{Kind: game.NondetRollDice}
	short.Dice[0] = dice.OmniDice(7)
	short.Dice[1] = dice.OmniDice(8)
	_, err := s.Clone().Advance(game.NondetInput(short))
	assert.ErrorIs(t, err, game.ErrNondetShapeMismatch)

	_, err = s.Clone().Advance(game.NondetInput(game.NondetResult{Kind: game.NondetDrawCards}))
	assert.ErrorIs(t, err, game.ErrNondetShapeMismatch)

	_, err = s.Clone().Advance(game.PlayerInput(rules.PlayerFirst, game.EndRoundAction()))
	assert.Error(t, err)
}

func TestSuspensionResumesSavedQueue(t *testing.T) {
	setup := content.DemoSetup()
	setup.Hands[0] = []game.CardID{content.Strategize}
	s := startGame(t, setup)

	exp := advance(t, s, game.PlayerInput(rules.PlayerFirst, game.PlayCardAction(content.Strategize, nil)))
	require.Equal(t, game.DispatchNondet, exp.Kind)
	assert.Equal(t, game.NondetDrawCards, exp.Request.Kind)
	assert.Equal(t, [2]uint8{2, 0}, exp.Request.Counts)
	require.NotNil(t, s.Pending())
	// The CardPlayed trigger is still queued behind the draw.
	assert.NotEmpty(t, s.Pending().Queue)
	assert.Equal(t, s.ComputeHash(), s.Hash())

	draw := game.NondetResult{Kind: game.NondetDrawCards}
	draw.Cards[0] = []game.CardID{content.Paimon, content.SweetMadame}
	exp = advance(t, s, game.NondetInput(draw))

	assert.Nil(t, s.Pending())
	assert.Equal(t, 2, s.Player(rules.PlayerFirst).HandSize())
	// Playing a card is a fast action.
	assert.Equal(t, game.DispatchPlayerInput, exp.Kind)
	assert.Equal(t, rules.PlayerFirst, exp.Player)
}

func TestSuspendedStatesHashDifferently(t *testing.T) {
	setup := content.DemoSetup()
	setup.Hands[0] = []game.CardID{content.Strategize}
	s := startGame(t, setup)
	before := s.Hash()
	advance(t, s, game.PlayerInput(rules.PlayerFirst, game.PlayCardAction(content.Strategize, nil)))
	assert.NotEqual(t, before, s.Hash())
}

func TestPostDeathSwitch(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	exec(s, rules.PlayerFirst, game.DealDamage(rules.DamagePhysical, 10))

	exp := s.Expected()
	require.Equal(t, game.DispatchPlayerInput, exp.Kind)
	assert.Equal(t, rules.PlayerSecond, exp.Player)
	require.NotNil(t, s.Pending())
	assert.Equal(t, game.SuspendPostDeathSwitch, s.Pending().Suspended.Kind)
	assert.True(t, s.Player(rules.PlayerSecond).HasFlag(game.FlagDiedThisRound))
	assert.Len(t, s.Log().Filter(game.LogDefeat), 1)

	for _, in := range s.AvailableActions() {
		assert.Equal(t, game.ActionPostDeathSwitch, in.Action.Kind)
		assert.NotEqual(t, uint8(0), in.Action.CharIdx)
	}

	_, err := s.Clone().Advance(game.PlayerInput(rules.PlayerSecond, game.PostDeathSwitchAction(0)))
	assert.ErrorIs(t, err, game.ErrInvalidSwitch)
	_, err = s.Clone().Advance(game.PlayerInput(rules.PlayerSecond, game.PostDeathSwitchAction(7)))
	assert.ErrorIs(t, err, game.ErrInvalidSwitch)
	_, err = s.Clone().Advance(game.PlayerInput(rules.PlayerSecond, game.SwitchAction(1)))
	assert.ErrorIs(t, err, game.ErrWrongPhase)

	advance(t, s, game.PlayerInput(rules.PlayerSecond, game.PostDeathSwitchAction(2)))
	assert.Equal(t, uint8(2), s.Player(rules.PlayerSecond).ActiveIndex())
	assert.Nil(t, s.Pending())
}

func TestDefeatDecidesWinner(t *testing.T) {
	s := startGame(t, game.Setup{Characters: [2][]game.CharID{{content.Diluc}, {content.Kaeya}}})
	exec(s, rules.PlayerFirst, game.DealDamage(rules.DamagePhysical, 20))

	w, ok := s.Winner()
	require.True(t, ok)
	assert.Equal(t, rules.PlayerFirst, w)
	assert.Equal(t, game.DispatchWinner, s.Expected().Kind)
	assert.Nil(t, s.Pending())

	_, err := s.Advance(game.PlayerInput(rules.PlayerFirst, game.EndRoundAction()))
	assert.ErrorIs(t, err, game.ErrGameOver)
}

func TestShieldAbsorbsDamage(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	exec(s, rules.PlayerSecond, game.AddStatus(content.FullPlate))
	exec(s, rules.PlayerFirst, game.DealDamage(rules.DamagePhysical, 3))

	def := s.Player(rules.PlayerSecond)
	assert.Equal(t, uint8(9), def.Active().Health())
	assert.False(t, def.Statuses().Has(effects.TeamKey(uint16(content.FullPlate))))
}

func TestSwitchCostAndFastSwitch(t *testing.T) {
	setup := content.DemoSetup()
	setup.Hands[0] = []game.CardID{content.LeaveItToMeCard}
	s := startGame(t, setup)

	exp := advance(t, s, game.PlayerInput(rules.PlayerFirst, game.PlayCardAction(content.LeaveItToMeCard, nil)))
	require.Equal(t, rules.PlayerFirst, exp.Player)
	exp = advance(t, s, game.PlayerInput(rules.PlayerFirst, game.SwitchAction(1)))

	me := s.Player(rules.PlayerFirst)
	assert.Equal(t, uint8(1), me.ActiveIndex())
	assert.Equal(t, game.RollDiceCount-1, me.Dice().Total())
	// The status made this switch fast and was consumed.
	assert.Equal(t, rules.PlayerFirst, exp.Player)
	assert.False(t, me.Statuses().Has(effects.TeamKey(uint16(content.LeaveItToMe))))

	exp = advance(t, s, game.PlayerInput(rules.PlayerFirst, game.SwitchAction(2)))
	assert.Equal(t, rules.PlayerSecond, exp.Player)
}

func TestSweetMadameTargetsOwnCharacter(t *testing.T) {
	setup := content.DemoSetup()
	setup.Hands[0] = []game.CardID{content.SweetMadame, content.SweetMadame}
	s := startGame(t, setup)
	exec(s, rules.PlayerSecond, game.DealDamage(rules.DamagePhysical, 2))

	target := &targeting.Target{Player: rules.PlayerFirst, CharIdx: 0}
	advance(t, s, game.PlayerInput(rules.PlayerFirst, game.PlayCardAction(content.SweetMadame, target)))
	assert.Equal(t, uint8(9), s.Player(rules.PlayerFirst).Active().Health())

	_, err := s.Clone().Advance(game.PlayerInput(rules.PlayerFirst, game.PlayCardAction(content.SweetMadame, target)))
	assert.ErrorIs(t, err, game.ErrCannotPlayCard, "satiated")

	enemy := &targeting.Target{Player: rules.PlayerSecond, CharIdx: 0}
	_, err = s.Clone().Advance(game.PlayerInput(rules.PlayerFirst, game.PlayCardAction(content.SweetMadame, enemy)))
	assert.ErrorIs(t, err, game.ErrInvalidTarget)
}

func TestEndPhaseSummonDamageAndRoundAdvance(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	exec(s, rules.PlayerFirst, game.AddSummon(content.Oz))

	advance(t, s, game.PlayerInput(rules.PlayerFirst, game.EndRoundAction()))
	exp := advance(t, s, game.PlayerInput(rules.PlayerSecond, game.EndRoundAction()))
	require.Equal(t, game.DispatchNondet, exp.Kind, "end phase draws")

	_, err := s.RunUntilPlayerInput(game.NewDeterministicNondet(content.DemoDecks()), nil)
	require.NoError(t, err)

	assert.Equal(t, uint8(2), s.Round())
	assert.Equal(t, rules.PhaseAction, s.Phase().Kind)
	// First to end the round acts first.
	assert.Equal(t, rules.PlayerFirst, s.Phase().First)
	assert.Equal(t, uint8(9), s.Player(rules.PlayerSecond).Active().Health())
	st, ok := s.Player(rules.PlayerFirst).Statuses().Get(effects.SummonKey(uint16(content.Oz)))
	require.True(t, ok)
	assert.Equal(t, uint8(1), st.Usages())
	assert.Equal(t, 2, s.Player(rules.PlayerFirst).HandSize())
}

func TestRandomSummonSuspends(t *testing.T) {
	setup := game.Setup{Characters: [2][]game.CharID{{content.Rhodeia}, {content.Kaeya}}}
	s := startGame(t, setup)
	skill := game.Character(content.Rhodeia).Skills[2]

	exp := advance(t, s, game.PlayerInput(rules.PlayerFirst, game.CastSkillAction(skill)))
	require.Equal(t, game.DispatchNondet, exp.Kind)
	assert.Equal(t, game.NondetSelectSummons, exp.Request.Kind)
	assert.Equal(t, uint8(2), exp.Request.Count)

	dup := game.NondetResult{Kind: game.NondetSelectSummons, Summons: []game.SummonID{content.OceanidFrog, content.OceanidFrog}}
	_, err := s.Clone().Advance(game.NondetInput(dup))
	assert.ErrorIs(t, err, game.ErrNondetShapeMismatch)

	pick := game.NondetResult{Kind: game.NondetSelectSummons, Summons: []game.SummonID{content.OceanidFrog, content.OceanidRaptor}}
	advance(t, s, game.NondetInput(pick))
	sc := s.Player(rules.PlayerFirst).Statuses()
	assert.Equal(t, 2, sc.Count(effects.AttachSummon))
	assert.Equal(t, uint8(1), s.Player(rules.PlayerFirst).Active().Energy())
}

func TestTransposeRoundTrip(t *testing.T) {
	setup := content.DemoSetup()
	setup.Hands[0] = []game.CardID{content.Strategize, content.Paimon}
	s := startGame(t, setup)
	exec(s, rules.PlayerFirst, game.DealDamage(rules.ElementalDamage(rules.Pyro), 2))
	advance(t, s, game.PlayerInput(rules.PlayerFirst, game.PlayCardAction(content.Strategize, nil)))
	require.NotNil(t, s.Pending())

	tr := s.Transposed()
	assert.Equal(t, s.Player(rules.PlayerFirst).Hand(), tr.Player(rules.PlayerSecond).Hand())
	assert.Equal(t, uint8(8), tr.Player(rules.PlayerFirst).Active().Health())
	assert.Equal(t, [2]uint8{0, 2}, tr.Pending().Suspended.Request.Counts)
	assert.Equal(t, tr.ComputeHash(), tr.Hash())

	back := tr.Transposed()
	assert.Equal(t, s.Hash(), back.Hash())
	assert.Equal(t, s.Summary(), back.Summary())
}

func TestCloneIsIndependent(t *testing.T) {
	s := startGame(t, content.DemoSetup())
	c := s.Clone()
	exec(c, rules.PlayerFirst, game.DealDamage(rules.DamagePhysical, 4))
	assert.Equal(t, uint8(10), s.Player(rules.PlayerSecond).Active().Health())
	assert.NotEqual(t, s.Hash(), c.Hash())
}

func TestIgnoreCostsSkipsPayment(t *testing.T) {
	setup := content.DemoSetup()
	setup.IgnoreCosts = true
	s := startGame(t, setup)
	burst := game.Character(content.Diluc).Skills[2]
	advance(t, s, game.PlayerInput(rules.PlayerFirst, game.CastSkillAction(burst)))
	assert.Equal(t, game.RollDiceCount, s.Player(rules.PlayerFirst).Dice().Total())
	assert.Equal(t, uint8(2), s.Player(rules.PlayerSecond).Active().Health())
}

// playout drives a game with uniformly random choices, checking the
// incremental hash after every step and recording a replay.
func playout(t *testing.T, seed uint64, setup game.Setup) (*game.GameState, *game.Replay) {
	t.Helper()
	provider := game.NewStandardNondet(seed, content.DemoDecks())
	setup = game.DealHands(provider, setup, game.InitialHandSize)
	s := newTestGame(t, setup)
	rec := game.NewReplay(setup, s.Hash())
	rng := rand.New(rand.NewPCG(seed, 1))
	for step := 0; step < 3000; step++ {
		exp := s.Expected()
		var in game.Input
		switch exp.Kind {
		case game.DispatchWinner:
			return s, rec
		case game.DispatchNoInput:
			in = game.NoAction()
		case game.DispatchNondet:
			in = game.NondetInput(provider.Resolve(s, exp.Request))
		case game.DispatchPlayerInput:
			actions := s.AvailableActions()
			require.NotEmpty(t, actions, "no actions at step %d", step)
			in = actions[rng.IntN(len(actions))]
		}
		_, err := s.Advance(in)
		require.NoError(t, err, "step %d input %s", step, in)
		require.Equal(t, s.ComputeHash(), s.Hash(), "hash drift at step %d after %s", step, in)
		rec.Record(in, s.Hash())
	}
	return s, rec
}

func TestRandomPlayoutsKeepHashConsistent(t *testing.T) {
	setups := []game.Setup{
		content.DemoSetup(),
		{Characters: content.AltTeams(), LogEvents: true},
	}
	for seed := uint64(1); seed <= 12; seed++ {
		setup := setups[seed%2]
		s, _ := playout(t, seed, setup)
		if w, ok := s.Winner(); ok {
			assert.Zero(t, s.Player(w.Opposite()).LivingCount())
		}
	}
}

func TestTransposeCommutesWithAdvance(t *testing.T) {
	setups := []game.Setup{
		content.DemoSetup(),
		{Characters: content.AltTeams()},
	}
	for seed := uint64(1); seed <= 20; seed++ {
		provider := game.NewStandardNondet(seed, content.DemoDecks())
		setup := game.DealHands(provider, setups[seed%2], game.InitialHandSize)
		s := newTestGame(t, setup)
		rng := rand.New(rand.NewPCG(seed, 2))

		for step := 0; step < 2000; step++ {
			exp := s.Expected()
			if exp.Kind == game.DispatchWinner {
				break
			}
			var in game.Input
			switch exp.Kind {
			case game.DispatchNoInput:
				in = game.NoAction()
			case game.DispatchNondet:
				in = game.NondetInput(provider.Resolve(s, exp.Request))
			case game.DispatchPlayerInput:
				actions := s.AvailableActions()
				require.NotEmpty(t, actions)
				in = actions[rng.IntN(len(actions))]
			}

			tr := s.Transposed()
			_, err := tr.Advance(in.Transpose())
			require.NoError(t, err, "seed %d step %d transposed input %s", seed, step, in.Transpose())
			advance(t, s, in)

			want := s.Transposed()
			require.Equal(t, want.Hash(), tr.Hash(), "seed %d step %d after %s", seed, step, in)
			require.Equal(t, want.Summary(), tr.Summary(), "seed %d step %d after %s", seed, step, in)
		}
	}
}

func TestInputErrorsAreDistinguishable(t *testing.T) {
	err := error(&game.InputError{Reason: game.ErrInvalidTarget, Detail: "x"})
	assert.True(t, errors.Is(err, game.ErrInvalidTarget))
	assert.Equal(t, "invalid target: x", err.Error())
	assert.False(t, game.IsInputError(errors.New("other")))
}
