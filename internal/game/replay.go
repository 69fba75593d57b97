package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const replayVersion = 1

// ReplayStep is one input and the full state hash after it was applied.
type ReplayStep struct {
	Input Input
	Hash  uint64
}

// Replay is a recorded game: the setup it started from and every input
// applied since, each with the hash it produced. Replaying the inputs on a
// fresh state must reproduce every hash.
type Replay struct {
	ID          string
	Setup       Setup
	InitialHash uint64
	Steps       []ReplayStep
	mu          sync.RWMutex
}

// NewReplay starts a replay for a game created from setup.
func NewReplay(setup Setup, initialHash uint64) *Replay {
	return &Replay{
		ID:          uuid.NewString(),
		Setup:       setup,
		InitialHash: initialHash,
	}
}

// Record appends a step.
func (r *Replay) Record(input Input, hash uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Steps = append(r.Steps, ReplayStep{Input: input, Hash: hash})
}

// Truncate drops every step after the first n.
func (r *Replay) Truncate(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if n < len(r.Steps) {
		r.Steps = r.Steps[:n]
	}
}

// Size returns the number of recorded steps.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.Steps)
}

// StepAt returns the step at a specific index.
func (r *Replay) StepAt(index int) (ReplayStep, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= 0 && index < len(r.Steps) {
		return r.Steps[index], true
	}
	return ReplayStep{}, false
}

// Rebuild replays the first n steps on a fresh state.
func (r *Replay) Rebuild(n int) (*GameState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n > len(r.Steps) {
		n = len(r.Steps)
	}
	s, err := NewGameState(r.Setup)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	for i := 0; i < n; i++ {
		if _, err := s.Advance(r.Steps[i].Input); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return s, nil
}

// Verify replays every step and checks the recorded hashes.
func (r *Replay) Verify() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, err := NewGameState(r.Setup)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	if s.Hash() != r.InitialHash {
		return fmt.Errorf("initial hash mismatch: recorded %016x, got %016x", r.InitialHash, s.Hash())
	}
	for i, step := range r.Steps {
		if _, err := s.Advance(step.Input); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Input, err)
		}
		if s.Hash() != step.Hash {
			return fmt.Errorf("step %d (%s): hash mismatch: recorded %016x, got %016x", i, step.Input, step.Hash, s.Hash())
		}
	}
	return nil
}

// replayMetadata contains information about a saved replay
type replayMetadata struct {
	ID          string
	Timestamp   time.Time
	Version     int
	Setup       Setup
	InitialHash uint64
	StepCount   int
}

// SaveToFile saves the replay to a gzipped file named after its id.
func (r *Replay) SaveToFile(directory string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", r.ID))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := gob.NewEncoder(gzipWriter)

	metadata := replayMetadata{
		ID:          r.ID,
		Timestamp:   time.Now(),
		Version:     replayVersion,
		Setup:       r.Setup,
		InitialHash: r.InitialHash,
		StepCount:   len(r.Steps),
	}
	if err := encoder.Encode(&metadata); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	for i := range r.Steps {
		if err := encoder.Encode(&r.Steps[i]); err != nil {
			return fmt.Errorf("failed to encode step %d: %w", i, err)
		}
	}

	return nil
}

// LoadReplayFromFile loads a replay saved by SaveToFile.
func LoadReplayFromFile(directory, id string) (*Replay, error) {
	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", id))

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)

	var metadata replayMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	if metadata.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", metadata.Version)
	}

	replay := &Replay{
		ID:          metadata.ID,
		Setup:       metadata.Setup,
		InitialHash: metadata.InitialHash,
		Steps:       make([]ReplayStep, 0, metadata.StepCount),
	}
	for i := 0; i < metadata.StepCount; i++ {
		var step ReplayStep
		if err := decoder.Decode(&step); err != nil {
			return nil, fmt.Errorf("failed to decode step %d: %w", i, err)
		}
		replay.Steps = append(replay.Steps, step)
	}

	return replay, nil
}

// ReplayRecorder keeps replays of running games keyed by game id.
type ReplayRecorder struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	replays map[string]*Replay
	saveDir string
}

// NewReplayRecorder creates a recorder saving to saveDir.
func NewReplayRecorder(logger *zap.Logger, saveDir string) *ReplayRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayRecorder{
		logger:  logger,
		replays: make(map[string]*Replay),
		saveDir: saveDir,
	}
}

// StartRecording begins recording a game.
func (rr *ReplayRecorder) StartRecording(gameID string, setup Setup, initialHash uint64) *Replay {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	replay := NewReplay(setup, initialHash)
	rr.replays[gameID] = replay

	rr.logger.Debug("started replay recording",
		zap.String("game_id", gameID),
		zap.String("replay_id", replay.ID),
	)
	return replay
}

// Record appends a step to a game's replay if it is being recorded.
func (rr *ReplayRecorder) Record(gameID string, input Input, hash uint64) {
	rr.mu.RLock()
	replay := rr.replays[gameID]
	rr.mu.RUnlock()

	if replay == nil {
		return
	}
	replay.Record(input, hash)
}

// GetReplay returns the replay for a game.
func (rr *ReplayRecorder) GetReplay(gameID string) (*Replay, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	replay, exists := rr.replays[gameID]
	return replay, exists
}

// SaveReplay saves a replay to disk and removes it from memory. It returns
// the replay id the file is named after.
func (rr *ReplayRecorder) SaveReplay(gameID string) (string, error) {
	rr.mu.Lock()
	replay, exists := rr.replays[gameID]
	if !exists {
		rr.mu.Unlock()
		return "", fmt.Errorf("no replay found for game %s", gameID)
	}
	delete(rr.replays, gameID)
	rr.mu.Unlock()

	if err := replay.SaveToFile(rr.saveDir); err != nil {
		return "", fmt.Errorf("failed to save replay: %w", err)
	}

	rr.logger.Info("saved replay to disk",
		zap.String("game_id", gameID),
		zap.String("replay_id", replay.ID),
		zap.Int("step_count", replay.Size()),
		zap.String("directory", rr.saveDir),
	)
	return replay.ID, nil
}

// LoadReplay loads a replay from disk.
func (rr *ReplayRecorder) LoadReplay(replayID string) (*Replay, error) {
	replay, err := LoadReplayFromFile(rr.saveDir, replayID)
	if err != nil {
		return nil, err
	}

	rr.logger.Info("loaded replay from disk",
		zap.String("replay_id", replayID),
		zap.Int("step_count", replay.Size()),
	)
	return replay, nil
}

// ClearReplay removes a replay from memory without saving.
func (rr *ReplayRecorder) ClearReplay(gameID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	delete(rr.replays, gameID)
}

// IsRecording reports whether a game is being recorded.
func (rr *ReplayRecorder) IsRecording(gameID string) bool {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	_, ok := rr.replays[gameID]
	return ok
}
