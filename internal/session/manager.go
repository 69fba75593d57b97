// Package session owns the games hosted by the engine service. Each session
// wraps one GameState together with its nondeterminism source, its replay and
// a lifecycle state machine.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/tcgsim/tcgsim/internal/config"
	"github.com/tcgsim/tcgsim/internal/content"
	"github.com/tcgsim/tcgsim/internal/game"
)

// Lifecycle states.
const (
	StateCreated  = "created"
	StateRunning  = "running"
	StateFinished = "finished"
)

const (
	eventStart  = "start"
	eventFinish = "finish"
)

var (
	ErrNotFound       = errors.New("game not found")
	ErrTooManyGames   = errors.New("too many games")
	ErrFinished       = errors.New("game is finished")
	ErrUnknownLineup  = errors.New("unknown lineup")
	ErrNotPlayerInput = errors.New("game is not waiting for a player")
)

// Options configure a new game.
type Options struct {
	// Lineup is "demo" or "alt". Empty selects demo.
	Lineup string
	// Seed drives card draws and dice rolls. Zero picks a random seed.
	Seed uint64
	// Deterministic replaces random draws with omni dice and deck order.
	Deterministic bool
	IgnoreCosts   bool
}

// Lineup resolves a lineup name to the two teams.
func Lineup(name string) ([2][]game.CharID, error) {
	switch name {
	case "", "demo":
		return content.DemoTeams(), nil
	case "alt":
		return content.AltTeams(), nil
	}
	return [2][]game.CharID{}, fmt.Errorf("%w: %q", ErrUnknownLineup, name)
}

// Session is one hosted game.
type Session struct {
	ID         string
	Lineup     string
	Seed       uint64
	CreateTime time.Time
	EndTime    *time.Time

	mu        sync.Mutex
	state     *game.GameState
	nondet    game.NondetProvider
	replay    *game.Replay
	lifecycle *fsm.FSM
	steps     int
}

// Snapshot captures a consistent view of a session.
type Snapshot struct {
	ID         string
	Lifecycle  string
	Steps      int
	Expected   game.DispatchResult
	Summary    game.Summary
	Actions    []game.Input
	CreateTime time.Time
	EndTime    *time.Time
}

func newLifecycle() *fsm.FSM {
	return fsm.NewFSM(
		StateCreated,
		fsm.Events{
			{Name: eventStart, Src: []string{StateCreated}, Dst: StateRunning},
			{Name: eventFinish, Src: []string{StateCreated, StateRunning}, Dst: StateFinished},
		},
		fsm.Callbacks{},
	)
}

// Lifecycle returns the current lifecycle state.
func (s *Session) Lifecycle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle.Current()
}

// Snapshot returns the state, expectation and legal actions under the lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:         s.ID,
		Lifecycle:  s.lifecycle.Current(),
		Steps:      s.steps,
		Expected:   s.state.Expected(),
		Summary:    s.state.Summary(),
		Actions:    s.state.AvailableActions(),
		CreateTime: s.CreateTime,
		EndTime:    cloneTime(s.EndTime),
	}
}

// Replay returns the session's replay, or nil when recording is disabled.
func (s *Session) Replay() *game.Replay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replay
}

// Apply plays one player input, then resolves every following step that
// needs no decision. The input runs on a clone of the state and of the
// nondeterminism provider, so a failure anywhere leaves the session and its
// replay untouched.
func (s *Session) Apply(ctx context.Context, input game.Input) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lifecycle.Is(StateFinished) {
		return Snapshot{}, ErrFinished
	}
	if exp := s.state.Expected(); exp.Kind != game.DispatchPlayerInput {
		return Snapshot{}, fmt.Errorf("%w: expecting %s", ErrNotPlayerInput, exp)
	}

	next := s.state.Clone()
	if _, err := next.Advance(input); err != nil {
		return Snapshot{}, err
	}
	recorded := 0
	if s.replay != nil {
		recorded = s.replay.Size()
		s.replay.Record(input, next.Hash())
	}
	nondet := s.nondet.Clone()
	exp, err := next.RunUntilPlayerInput(nondet, s.replay)
	if err != nil {
		if s.replay != nil {
			s.replay.Truncate(recorded)
		}
		return Snapshot{}, fmt.Errorf("failed to resolve game %s: %w", s.ID, err)
	}
	s.state = next
	s.nondet = nondet
	s.steps++

	if s.lifecycle.Can(eventStart) {
		if err := s.lifecycle.Event(ctx, eventStart); err != nil {
			return Snapshot{}, fmt.Errorf("failed to start game %s: %w", s.ID, err)
		}
	}
	if exp.Kind == game.DispatchWinner {
		if err := s.lifecycle.Event(ctx, eventFinish); err != nil {
			return Snapshot{}, fmt.Errorf("failed to finish game %s: %w", s.ID, err)
		}
		now := time.Now()
		s.EndTime = &now
	}
	return s.snapshotLocked(), nil
}

func cloneTime(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	cp := *src
	return &cp
}

// Observer is told about every change to a hosted game. Calls are made
// without any manager or session lock held.
type Observer interface {
	GameUpdated(snap Snapshot)
	GameRemoved(id string)
}

// Manager manages hosted games.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	maxGames int
	engine   config.EngineConfig
	recorder *game.ReplayRecorder
	observer Observer
	logger   *zap.Logger
}

// NewManager creates a session manager. Finished games are saved under
// replayDir when it is not empty.
func NewManager(maxGames int, engine config.EngineConfig, replayDir string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		sessions: make(map[string]*Session),
		maxGames: maxGames,
		engine:   engine,
		logger:   logger,
	}
	if replayDir != "" {
		m.recorder = game.NewReplayRecorder(logger, replayDir)
	}
	return m
}

// SetObserver registers the observer. It must be called before the manager
// is shared.
func (m *Manager) SetObserver(o Observer) {
	m.observer = o
}

// CreateGame deals the starting hands and registers a new session.
func (m *Manager) CreateGame(opts Options) (*Session, error) {
	teams, err := Lineup(opts.Lineup)
	if err != nil {
		return nil, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	var provider game.NondetProvider
	if opts.Deterministic {
		provider = game.NewDeterministicNondet(content.DemoDecks())
	} else {
		provider = game.NewStandardNondet(seed, content.DemoDecks())
	}

	setup := game.Setup{
		Characters:  teams,
		LogEvents:   m.engine.LogEvents,
		LogCapacity: m.engine.LogCapacity,
		IgnoreCosts: m.engine.IgnoreCosts || opts.IgnoreCosts,
	}
	setup = game.DealHands(provider, setup, game.InitialHandSize)

	state, err := game.NewGameState(setup)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	id := uuid.NewString()
	state.WithLogger(m.logger.With(zap.String("game_id", id)))

	sess := &Session{
		ID:         id,
		Lineup:     opts.Lineup,
		Seed:       seed,
		CreateTime: time.Now(),
		state:      state,
		nondet:     provider,
		lifecycle:  newLifecycle(),
	}

	if err := m.register(sess, setup); err != nil {
		return nil, err
	}
	if m.observer != nil {
		m.observer.GameUpdated(sess.Snapshot())
	}

	m.logger.Info("game created",
		zap.String("game_id", id),
		zap.String("lineup", opts.Lineup),
		zap.Uint64("seed", seed),
		zap.Bool("deterministic", opts.Deterministic),
	)
	return sess, nil
}

func (m *Manager) register(sess *Session, setup game.Setup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxGames {
		return fmt.Errorf("%w: limit is %d", ErrTooManyGames, m.maxGames)
	}
	if m.recorder != nil {
		sess.replay = m.recorder.StartRecording(sess.ID, setup, sess.state.Hash())
	}
	if _, err := sess.state.RunUntilPlayerInput(sess.nondet, sess.replay); err != nil {
		if m.recorder != nil {
			m.recorder.ClearReplay(sess.ID)
		}
		return fmt.Errorf("failed to start game: %w", err)
	}
	m.sessions[sess.ID] = sess
	return nil
}

// GetGame retrieves a session by id.
func (m *Manager) GetGame(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, nil
}

// Advance applies a player input to a session and saves its replay once the
// game has a winner.
func (m *Manager) Advance(ctx context.Context, id string, input game.Input) (Snapshot, error) {
	sess, err := m.GetGame(id)
	if err != nil {
		return Snapshot{}, err
	}
	snap, err := sess.Apply(ctx, input)
	if err != nil {
		return Snapshot{}, err
	}
	if snap.Lifecycle == StateFinished {
		m.logger.Info("game finished",
			zap.String("game_id", id),
			zap.String("expected", snap.Expected.String()),
			zap.Int("steps", snap.Steps),
		)
		if m.recorder != nil {
			if _, err := m.recorder.SaveReplay(id); err != nil {
				m.logger.Warn("failed to save replay", zap.String("game_id", id), zap.Error(err))
			}
		}
	}
	if m.observer != nil {
		m.observer.GameUpdated(snap)
	}
	return snap, nil
}

// RemoveGame drops a session and any unsaved replay.
func (m *Manager) RemoveGame(id string) error {
	m.mu.Lock()
	if _, ok := m.sessions[id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.sessions, id)
	if m.recorder != nil {
		m.recorder.ClearReplay(id)
	}
	m.mu.Unlock()

	if m.observer != nil {
		m.observer.GameRemoved(id)
	}
	m.logger.Info("game removed", zap.String("game_id", id))
	return nil
}

// GetAllGames returns every session.
func (m *Manager) GetAllGames() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	return sessions
}

// GetActiveGameCount returns how many sessions have no winner yet.
func (m *Manager) GetActiveGameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, sess := range m.sessions {
		if sess.Lifecycle() != StateFinished {
			count++
		}
	}
	return count
}

// CloseAll removes every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.sessions {
		if m.recorder != nil {
			m.recorder.ClearReplay(id)
		}
	}
	clear(m.sessions)
}
