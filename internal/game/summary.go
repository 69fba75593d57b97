package game

import (
	"fmt"
	"strings"
)

// CharacterSummary is a read-only view of one character.
type CharacterSummary struct {
	Name      string   `json:"name"`
	Health    uint8    `json:"health"`
	MaxHealth uint8    `json:"max_health"`
	Energy    uint8    `json:"energy"`
	MaxEnergy uint8    `json:"max_energy"`
	Applied   []string `json:"applied,omitempty"`
	Active    bool     `json:"active,omitempty"`
}

// StatusSummary is a read-only view of one status, summon or support.
type StatusSummary struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Usages   uint8  `json:"usages,omitempty"`
	Duration uint8  `json:"duration,omitempty"`
	Counter  uint8  `json:"counter,omitempty"`
}

// PlayerSummary is a read-only view of one side.
type PlayerSummary struct {
	Characters []CharacterSummary `json:"characters"`
	Dice       string             `json:"dice"`
	Hand       []string           `json:"hand"`
	Statuses   []StatusSummary    `json:"statuses,omitempty"`
	Flags      uint8              `json:"flags,omitempty"`
}

// Summary is a JSON-friendly snapshot of the game for display.
type Summary struct {
	Round    uint8            `json:"round"`
	Phase    string           `json:"phase"`
	Expected string           `json:"expected"`
	Hash     string           `json:"hash"`
	Players  [2]PlayerSummary `json:"players"`
	Log      []string         `json:"log,omitempty"`
}

// Summary builds a display snapshot of the state.
func (s *GameState) Summary() Summary {
	out := Summary{
		Round:    s.round,
		Phase:    s.phase.String(),
		Expected: s.Expected().String(),
		Hash:     fmt.Sprintf("%016x", s.fullHash),
	}
	for p := range s.players {
		ps := &s.players[p]
		view := PlayerSummary{Dice: ps.dice.String(), Flags: uint8(ps.flags)}
		for i := range ps.chars {
			ch := &ps.chars[i]
			desc := ch.Desc()
			cs := CharacterSummary{
				Name:      desc.Name,
				Health:    ch.health,
				MaxHealth: desc.MaxHealth,
				Energy:    ch.energy,
				MaxEnergy: desc.MaxEnergy,
				Active:    uint8(i) == ps.active,
			}
			for _, e := range ch.applied.Elements() {
				cs.Applied = append(cs.Applied, e.String())
			}
			view.Characters = append(view.Characters, cs)
		}
		for _, h := range ps.hand {
			for n := uint8(0); n < h.Count; n++ {
				view.Hand = append(view.Hand, Card(h.Card).Name)
			}
		}
		for _, e := range ps.status.entries {
			desc := StatusForKey(e.Key)
			ss := StatusSummary{Key: e.Key.String(), Name: desc.Name, Counter: e.State.Counter()}
			if desc.Duration > 0 {
				ss.Duration = e.State.Duration()
			} else {
				ss.Usages = e.State.Usages()
			}
			view.Statuses = append(view.Statuses, ss)
		}
		out.Players[p] = view
	}
	for _, e := range s.log.entries {
		out.Log = append(out.Log, e.String())
	}
	return out
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "round %d %s expecting %s [%s]\n", s.Round, s.Phase, s.Expected, s.Hash)
	for p, ps := range s.Players {
		fmt.Fprintf(&b, "player %d dice=%s hand=%d\n", p, ps.Dice, len(ps.Hand))
		for _, c := range ps.Characters {
			marker := " "
			if c.Active {
				marker = "*"
			}
			fmt.Fprintf(&b, "  %s %-12s %2d/%-2d energy %d/%d %v\n", marker, c.Name, c.Health, c.MaxHealth, c.Energy, c.MaxEnergy, c.Applied)
		}
		for _, st := range ps.Statuses {
			fmt.Fprintf(&b, "    %s %s\n", st.Key, st.Name)
		}
	}
	return b.String()
}
