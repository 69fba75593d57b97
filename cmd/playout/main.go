package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tcgsim/tcgsim/internal/config"
	"github.com/tcgsim/tcgsim/internal/logging"
	"github.com/tcgsim/tcgsim/internal/playout"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	games      = flag.Int("games", 0, "number of games (overrides playout.games)")
	seed       = flag.Uint64("seed", 0, "first seed (overrides playout.seed)")
	lineup     = flag.String("lineup", "", "demo or alt (overrides playout.lineup)")
	workers    = flag.Int("workers", 0, "parallel games, 0 for GOMAXPROCS")
	verbose    = flag.Bool("v", false, "log every game result")
	replayPath = flag.String("replay", "", "verify and print a saved replay instead of playing")
)

func main() {
	flag.Parse()

	if *replayPath != "" {
		replay, err := playout.LoadReplay(*replayPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load replay: %v\n", err)
			os.Exit(1)
		}
		if err := playout.Describe(os.Stdout, replay); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid replay: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *games > 0 {
		cfg.Playout.Games = *games
	}
	if *seed > 0 {
		cfg.Playout.Seed = *seed
	}
	if *lineup != "" {
		cfg.Playout.Lineup = *lineup
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting playouts",
		zap.Int("games", cfg.Playout.Games),
		zap.Uint64("seed", cfg.Playout.Seed),
		zap.String("lineup", cfg.Playout.Lineup),
		zap.Bool("deterministic", cfg.Playout.Deterministic),
		zap.Int("max_steps", cfg.Playout.MaxSteps),
	)

	runner := playout.NewRunner(cfg.Playout, cfg.Engine, *workers, logger)
	var onResult func(playout.Result)
	if *verbose {
		onResult = func(res playout.Result) {
			fields := []zap.Field{
				zap.Uint64("seed", res.Seed),
				zap.Uint8("rounds", res.Rounds),
				zap.Int("decisions", res.Decisions),
				zap.Int("transitions", res.Transitions),
			}
			if res.HasWinner {
				fields = append(fields, zap.Stringer("winner", res.Winner))
			}
			if res.ReplayID != "" {
				fields = append(fields, zap.String("replay_id", res.ReplayID))
			}
			logger.Info("game finished", fields...)
		}
	}

	stats, err := runner.Run(ctx, onResult)
	if err != nil {
		logger.Error("playouts failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("games=%d first=%d second=%d unfinished=%d transitions=%d elapsed=%s rate=%.0f/s\n",
		stats.Games, stats.Wins[0], stats.Wins[1], stats.Unfinished,
		stats.Transitions, stats.Elapsed, stats.TransitionsPerSecond())
}
