package playout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tcgsim/tcgsim/internal/config"
	"github.com/tcgsim/tcgsim/internal/game"
)

func testConfig() config.PlayoutConfig {
	return config.PlayoutConfig{Games: 6, Seed: 100, MaxSteps: 3000, Lineup: "demo"}
}

func TestPlayIsReproducible(t *testing.T) {
	r := NewRunner(testConfig(), config.EngineConfig{}, 1, zaptest.NewLogger(t))
	a, err := r.Play(42)
	require.NoError(t, err)
	b, err := r.Play(42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Positive(t, a.Transitions)
	assert.Positive(t, a.Decisions)
}

func TestRunAggregatesResults(t *testing.T) {
	cfg := testConfig()
	cfg.Lineup = "alt"
	r := NewRunner(cfg, config.EngineConfig{LogEvents: true, LogCapacity: 16}, 3, zaptest.NewLogger(t))

	seen := map[uint64]bool{}
	stats, err := r.Run(context.Background(), func(res Result) {
		seen[res.Seed] = true
	})
	require.NoError(t, err)
	assert.Equal(t, cfg.Games, stats.Games)
	assert.Equal(t, cfg.Games, stats.Wins[0]+stats.Wins[1]+stats.Unfinished)
	assert.Len(t, seen, cfg.Games)
	assert.Positive(t, stats.Transitions)
	assert.Positive(t, stats.TransitionsPerSecond())
}

func TestMaxStepsStopsEarly(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSteps = 3
	r := NewRunner(cfg, config.EngineConfig{}, 1, nil)
	res, err := r.Play(1)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Transitions)
	assert.False(t, res.HasWinner)
}

func TestSavedReplaysVerify(t *testing.T) {
	cfg := testConfig()
	cfg.ReplayDir = t.TempDir()
	cfg.Deterministic = true
	r := NewRunner(cfg, config.EngineConfig{}, 1, zaptest.NewLogger(t))

	res, err := r.Play(9)
	require.NoError(t, err)
	require.NotEmpty(t, res.ReplayID)

	replay, err := game.LoadReplayFromFile(cfg.ReplayDir, res.ReplayID)
	require.NoError(t, err)
	assert.Equal(t, res.Transitions, replay.Size())
	assert.NoError(t, replay.Verify())
}

func TestUnknownLineup(t *testing.T) {
	cfg := testConfig()
	cfg.Lineup = "nope"
	_, err := NewRunner(cfg, config.EngineConfig{}, 1, nil).Play(1)
	assert.Error(t, err)
}

func TestCancelledRunStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := NewRunner(testConfig(), config.EngineConfig{}, 2, nil).Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Games)
}
