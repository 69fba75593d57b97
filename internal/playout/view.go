package playout

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tcgsim/tcgsim/internal/game"
)

// LoadReplay opens a replay file written by SaveToFile.
func LoadReplay(path string) (*game.Replay, error) {
	dir, name := filepath.Split(path)
	id := strings.TrimSuffix(name, ".replay")
	if dir == "" {
		dir = "."
	}
	return game.LoadReplayFromFile(dir, id)
}

// Describe verifies a replay, then writes every step with its hash followed
// by the final state.
func Describe(w io.Writer, r *game.Replay) error {
	if err := r.Verify(); err != nil {
		return fmt.Errorf("replay %s: %w", r.ID, err)
	}

	n := r.Size()
	fmt.Fprintf(w, "replay %s steps=%d initial=%016x\n", r.ID, n, r.InitialHash)
	for i := 0; i < n; i++ {
		step, _ := r.StepAt(i)
		fmt.Fprintf(w, "%5d %016x %s\n", i, step.Hash, step.Input)
	}

	final, err := r.Rebuild(n)
	if err != nil {
		return fmt.Errorf("replay %s: %w", r.ID, err)
	}
	data, err := json.MarshalIndent(final.Summary(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
