// Package config loads server and playout settings from a YAML file and
// TCGSIM_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete configuration for the server and playout binaries.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Playout PlayoutConfig `mapstructure:"playout"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig configures the gRPC engine service.
type ServerConfig struct {
	GRPC      GRPCConfig      `mapstructure:"grpc"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
	MaxGames  int             `mapstructure:"max_games"`
	// ReplayDir is where finished games are saved. Empty disables recording.
	ReplayDir string `mapstructure:"replay_dir"`
}

type GRPCConfig struct {
	Address              string `mapstructure:"address"`
	MaxConcurrentStreams int    `mapstructure:"max_concurrent_streams"`
}

// WebSocketConfig configures the spectator feed. An empty address disables it.
type WebSocketConfig struct {
	Address string `mapstructure:"address"`
}

// EngineConfig holds the defaults applied to every new game.
type EngineConfig struct {
	LogEvents   bool `mapstructure:"log_events"`
	LogCapacity int  `mapstructure:"log_capacity"`
	IgnoreCosts bool `mapstructure:"ignore_costs"`
}

// PlayoutConfig drives the random playout benchmark.
type PlayoutConfig struct {
	Games         int    `mapstructure:"games"`
	Seed          uint64 `mapstructure:"seed"`
	Deterministic bool   `mapstructure:"deterministic"`
	MaxSteps      int    `mapstructure:"max_steps"`
	Lineup        string `mapstructure:"lineup"`
	ReplayDir     string `mapstructure:"replay_dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.grpc.address", ":50051")
	v.SetDefault("server.grpc.max_concurrent_streams", 100)
	v.SetDefault("server.websocket.address", "")
	v.SetDefault("server.max_games", 1000)
	v.SetDefault("server.replay_dir", "")

	v.SetDefault("engine.log_events", true)
	v.SetDefault("engine.log_capacity", 256)
	v.SetDefault("engine.ignore_costs", false)

	v.SetDefault("playout.games", 100)
	v.SetDefault("playout.seed", 1)
	v.SetDefault("playout.deterministic", false)
	v.SetDefault("playout.max_steps", 5000)
	v.SetDefault("playout.lineup", "demo")
	v.SetDefault("playout.replay_dir", "")
}

// Load reads the configuration. A missing file is not an error; every key has
// a default and can be overridden by TCGSIM_<SECTION>_<KEY>.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TCGSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the binaries cannot run with.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if c.Server.MaxGames <= 0 {
		return fmt.Errorf("server.max_games must be positive, got %d", c.Server.MaxGames)
	}
	if c.Engine.LogCapacity < 0 {
		return fmt.Errorf("engine.log_capacity must not be negative, got %d", c.Engine.LogCapacity)
	}
	if c.Playout.MaxSteps <= 0 {
		return fmt.Errorf("playout.max_steps must be positive, got %d", c.Playout.MaxSteps)
	}
	switch c.Playout.Lineup {
	case "demo", "alt":
	default:
		return fmt.Errorf("playout.lineup must be demo or alt, got %q", c.Playout.Lineup)
	}
	return nil
}
