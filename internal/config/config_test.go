package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ":50051", cfg.Server.GRPC.Address)
	assert.Equal(t, 1000, cfg.Server.MaxGames)
	assert.True(t, cfg.Engine.LogEvents)
	assert.Equal(t, 256, cfg.Engine.LogCapacity)
	assert.Equal(t, uint64(1), cfg.Playout.Seed)
	assert.Equal(t, "demo", cfg.Playout.Lineup)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
logging:
  level: debug
  format: json
server:
  max_games: 3
playout:
  games: 7
  lineup: alt
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	t.Setenv("TCGSIM_SERVER_GRPC_ADDRESS", "127.0.0.1:9000")
	t.Setenv("TCGSIM_PLAYOUT_SEED", "42")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 3, cfg.Server.MaxGames)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.GRPC.Address)
	assert.Equal(t, 7, cfg.Playout.Games)
	assert.Equal(t, uint64(42), cfg.Playout.Seed)
	assert.Equal(t, "alt", cfg.Playout.Lineup)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  max_games: 0\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_games")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [unterminated\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
