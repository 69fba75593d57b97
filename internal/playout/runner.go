// Package playout plays seeded random games end to end. It is the engine's
// throughput benchmark and a broad consistency check: every transition is
// re-hashed from scratch and compared with the incremental hash.
package playout

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tcgsim/tcgsim/internal/config"
	"github.com/tcgsim/tcgsim/internal/content"
	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/game/rules"
	"github.com/tcgsim/tcgsim/internal/session"
)

// ErrHashDrift means the incremental hash diverged from a full recompute.
var ErrHashDrift = errors.New("incremental hash drifted")

// Result is the outcome of one playout.
type Result struct {
	Seed        uint64
	Winner      rules.PlayerID
	HasWinner   bool
	Rounds      uint8
	Decisions   int
	Transitions int
	ReplayID    string
}

// Stats aggregates a batch of playouts.
type Stats struct {
	Games       int
	Wins        [2]int
	Unfinished  int
	Transitions int
	Elapsed     time.Duration
}

// TransitionsPerSecond is the batch throughput.
func (s Stats) TransitionsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Transitions) / s.Elapsed.Seconds()
}

func (s *Stats) add(r Result) {
	s.Games++
	s.Transitions += r.Transitions
	if r.HasWinner {
		s.Wins[r.Winner]++
	} else {
		s.Unfinished++
	}
}

// Runner plays batches of games.
type Runner struct {
	cfg     config.PlayoutConfig
	engine  config.EngineConfig
	workers int
	logger  *zap.Logger
}

// NewRunner creates a runner. Workers defaults to GOMAXPROCS.
func NewRunner(cfg config.PlayoutConfig, engine config.EngineConfig, workers int, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{cfg: cfg, engine: engine, workers: workers, logger: logger}
}

func (r *Runner) provider(seed uint64) game.NondetProvider {
	if r.cfg.Deterministic {
		return game.NewDeterministicNondet(content.DemoDecks())
	}
	return game.NewStandardNondet(seed, content.DemoDecks())
}

// Play runs one game with the given seed. Player choices are uniform over the
// legal actions.
func (r *Runner) Play(seed uint64) (Result, error) {
	teams, err := session.Lineup(r.cfg.Lineup)
	if err != nil {
		return Result{}, err
	}
	provider := r.provider(seed)
	setup := game.Setup{
		Characters:  teams,
		LogEvents:   r.engine.LogEvents,
		LogCapacity: r.engine.LogCapacity,
		IgnoreCosts: r.engine.IgnoreCosts,
	}
	setup = game.DealHands(provider, setup, game.InitialHandSize)

	s, err := game.NewGameState(setup)
	if err != nil {
		return Result{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	var replay *game.Replay
	if r.cfg.ReplayDir != "" {
		replay = game.NewReplay(setup, s.Hash())
	}

	rng := rand.New(rand.NewPCG(seed, 0x5eed))
	res := Result{Seed: seed}
	for res.Transitions < r.cfg.MaxSteps {
		exp := s.Expected()
		if exp.Kind == game.DispatchWinner {
			break
		}
		var input game.Input
		switch exp.Kind {
		case game.DispatchNoInput:
			input = game.NoAction()
		case game.DispatchNondet:
			input = game.NondetInput(provider.Resolve(s, exp.Request))
		case game.DispatchPlayerInput:
			actions := s.AvailableActions()
			if len(actions) == 0 {
				return res, fmt.Errorf("seed %d: no legal actions for %s", seed, exp.Player)
			}
			input = actions[rng.IntN(len(actions))]
			res.Decisions++
		}
		if _, err := s.Advance(input); err != nil {
			return res, fmt.Errorf("seed %d step %d: %w", seed, res.Transitions, err)
		}
		res.Transitions++
		if full := s.ComputeHash(); full != s.Hash() {
			return res, fmt.Errorf("%w: seed %d step %d after %s", ErrHashDrift, seed, res.Transitions, input)
		}
		if replay != nil {
			replay.Record(input, s.Hash())
		}
	}
	if w, ok := s.Winner(); ok {
		res.Winner, res.HasWinner = w, true
	}
	res.Rounds = s.Round()

	if replay != nil {
		if err := replay.SaveToFile(r.cfg.ReplayDir); err != nil {
			return res, fmt.Errorf("seed %d: %w", seed, err)
		}
		res.ReplayID = replay.ID
	}
	return res, nil
}

// Run plays cfg.Games games with consecutive seeds across the worker pool.
// onResult, when set, is called once per finished game, one call at a time.
func (r *Runner) Run(ctx context.Context, onResult func(Result)) (Stats, error) {
	var (
		stats Stats
		mu    sync.Mutex
	)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := 0; i < r.cfg.Games; i++ {
		if gctx.Err() != nil {
			break
		}
		seed := r.cfg.Seed + uint64(i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.Play(seed)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			stats.add(res)
			if onResult != nil {
				onResult(res)
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	stats.Elapsed = time.Since(start)

	r.logger.Info("playouts finished",
		zap.Int("games", stats.Games),
		zap.Int("first_wins", stats.Wins[rules.PlayerFirst]),
		zap.Int("second_wins", stats.Wins[rules.PlayerSecond]),
		zap.Int("unfinished", stats.Unfinished),
		zap.Int("transitions", stats.Transitions),
		zap.Duration("elapsed", stats.Elapsed),
		zap.Float64("transitions_per_second", stats.TransitionsPerSecond()),
	)
	return stats, err
}
