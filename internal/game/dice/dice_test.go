package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgsim/tcgsim/internal/game/rules"
)

func counterOf(pairs map[Kind]uint8) Counter {
	var c Counter
	for k, n := range pairs {
		c[k] = n
	}
	return c
}

func TestParseCost(t *testing.T) {
	tests := []struct {
		input    string
		expected Cost
		err      bool
	}{
		{"", Cost{}, false},
		{"{3}", Cost{Unaligned: 3}, false},
		{"{Pyro}", Cost{Element: rules.Pyro, Elemental: 1}, false},
		{"{3Hydro}", Cost{Element: rules.Hydro, Elemental: 3}, false},
		{"{3 Cryo}{3E}", Cost{Element: rules.Cryo, Elemental: 3, Energy: 3}, false},
		{"{2A}", Cost{Aligned: 2}, false},
		{"{1Dendro}{2}", Cost{Element: rules.Dendro, Elemental: 1, Unaligned: 2}, false},
		{"{Pyro}{Hydro}", Cost{}, true},
		{"{Void}", Cost{}, true},
		{"{}", Cost{}, true},
		{"nonsense", Cost{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCost(tt.input)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCostStringRoundTrip(t *testing.T) {
	c := Cost{Element: rules.Electro, Elemental: 3, Unaligned: 1, Energy: 2}
	parsed, err := ParseCost(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestCounterPlusCapsAtMaxDice(t *testing.T) {
	c := OmniDice(10)
	c = c.Plus(counterOf(map[Kind]uint8{KindOf(rules.Pyro): 4, KindOf(rules.Geo): 4}))
	assert.Equal(t, MaxDice, c.Total())
	assert.Equal(t, uint8(4), c[KindOf(rules.Pyro)])
	assert.Equal(t, uint8(2), c[KindOf(rules.Geo)])
}

func TestCounterMinus(t *testing.T) {
	c := counterOf(map[Kind]uint8{Omni: 2, KindOf(rules.Cryo): 1})
	rest, ok := c.Minus(OmniDice(1))
	require.True(t, ok)
	assert.Equal(t, 2, rest.Total())

	_, ok = c.Minus(OmniDice(3))
	assert.False(t, ok)
}

func TestSelectElementalPrefersExactFace(t *testing.T) {
	avail := counterOf(map[Kind]uint8{Omni: 3, KindOf(rules.Pyro): 2, KindOf(rules.Hydro): 2})
	spent, ok := Select(avail, Cost{Element: rules.Pyro, Elemental: 3}, rules.Pyro)
	require.True(t, ok)
	assert.Equal(t, uint8(2), spent[KindOf(rules.Pyro)])
	assert.Equal(t, uint8(1), spent[Omni])
	assert.Equal(t, uint8(0), spent[KindOf(rules.Hydro)])
}

func TestSelectElementalFails(t *testing.T) {
	avail := counterOf(map[Kind]uint8{Omni: 1, KindOf(rules.Pyro): 1, KindOf(rules.Hydro): 5})
	_, ok := Select(avail, Cost{Element: rules.Pyro, Elemental: 3}, rules.Pyro)
	assert.False(t, ok)
}

func TestSelectUnalignedAvoidsActiveElement(t *testing.T) {
	avail := counterOf(map[Kind]uint8{
		Omni:                1,
		KindOf(rules.Pyro):  3,
		KindOf(rules.Hydro): 2,
		KindOf(rules.Anemo): 1,
	})
	spent, ok := Select(avail, Cost{Unaligned: 3}, rules.Pyro)
	require.True(t, ok)
	assert.Equal(t, uint8(1), spent[KindOf(rules.Anemo)], "fewest held face goes first")
	assert.Equal(t, uint8(2), spent[KindOf(rules.Hydro)])
	assert.Equal(t, uint8(0), spent[KindOf(rules.Pyro)])
	assert.Equal(t, uint8(0), spent[Omni])
}

func TestSelectUnalignedUsesOmniLast(t *testing.T) {
	avail := counterOf(map[Kind]uint8{Omni: 2, KindOf(rules.Pyro): 1})
	spent, ok := Select(avail, Cost{Unaligned: 2}, rules.Pyro)
	require.True(t, ok)
	assert.Equal(t, uint8(1), spent[KindOf(rules.Pyro)])
	assert.Equal(t, uint8(1), spent[Omni])
}

func TestSelectAligned(t *testing.T) {
	avail := counterOf(map[Kind]uint8{Omni: 1, KindOf(rules.Cryo): 2, KindOf(rules.Geo): 2})
	spent, ok := Select(avail, Cost{Aligned: 3}, rules.Geo)
	require.True(t, ok)
	assert.Equal(t, uint8(2), spent[KindOf(rules.Geo)], "tie goes to the active element")
	assert.Equal(t, uint8(1), spent[Omni])

	_, ok = Select(avail, Cost{Aligned: 4}, rules.Geo)
	assert.False(t, ok)

	spent, ok = Select(OmniDice(3), Cost{Aligned: 2}, rules.Geo)
	require.True(t, ok)
	assert.Equal(t, uint8(2), spent[Omni])
}

func TestSelectCombinedCostNeverDoubleSpends(t *testing.T) {
	avail := counterOf(map[Kind]uint8{Omni: 1, KindOf(rules.Hydro): 2})
	_, ok := Select(avail, Cost{Element: rules.Hydro, Elemental: 2, Unaligned: 2}, rules.Hydro)
	assert.False(t, ok)

	spent, ok := Select(avail, Cost{Element: rules.Hydro, Elemental: 2, Unaligned: 1}, rules.Hydro)
	require.True(t, ok)
	assert.Equal(t, avail, spent)
}

func TestTuneSelect(t *testing.T) {
	_, ok := TuneSelect(OmniDice(8), rules.Pyro)
	assert.False(t, ok, "omni dice cannot be tuned")

	_, ok = TuneSelect(counterOf(map[Kind]uint8{KindOf(rules.Pyro): 4}), rules.Pyro)
	assert.False(t, ok, "dice matching the active element cannot be tuned")

	k, ok := TuneSelect(counterOf(map[Kind]uint8{KindOf(rules.Cryo): 3, KindOf(rules.Geo): 1}), rules.Pyro)
	require.True(t, ok)
	assert.Equal(t, KindOf(rules.Geo), k)
	assert.True(t, CanTune(counterOf(map[Kind]uint8{KindOf(rules.Cryo): 1}), rules.Pyro))
}

func TestCostReduce(t *testing.T) {
	c := Cost{Element: rules.Pyro, Elemental: 2, Unaligned: 1, Aligned: 1}
	got, used := c.Reduce(2)
	assert.Equal(t, uint8(2), used)
	assert.Equal(t, uint8(0), got.Unaligned)
	assert.Equal(t, uint8(1), got.Elemental)
	assert.Equal(t, uint8(1), got.Aligned)

	got, used = c.Reduce(9)
	assert.Equal(t, uint8(4), used)
	assert.Equal(t, 0, got.DiceTotal())

	got, used = Cost{Energy: 2}.ReduceEnergy(1)
	assert.Equal(t, uint8(1), used)
	assert.Equal(t, uint8(1), got.Energy)
}
