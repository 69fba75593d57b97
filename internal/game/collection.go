package game

import (
	"github.com/tcgsim/tcgsim/internal/game/counters"
	"github.com/tcgsim/tcgsim/internal/game/effects"
)

// StatusEntry is one applied status.
type StatusEntry struct {
	Key   effects.Key
	State counters.State
}

// StatusCollection is a player's registry of applied statuses, summons and
// supports. Entries keep insertion order, hold at most one entry per key, and
// the union of their capabilities is cached.
type StatusCollection struct {
	entries []StatusEntry
	caps    effects.Capabilities
}

// Len returns the number of entries.
func (sc *StatusCollection) Len() int { return len(sc.entries) }

// Entries returns the entries in iteration order. The slice must not be modified.
func (sc *StatusCollection) Entries() []StatusEntry { return sc.entries }

// Capabilities returns the cached union of the entries' capabilities.
func (sc *StatusCollection) Capabilities() effects.Capabilities { return sc.caps }

func (sc *StatusCollection) index(k effects.Key) int {
	for i := range sc.entries {
		if sc.entries[i].Key == k {
			return i
		}
	}
	return -1
}

// Get returns the state of the entry with the given key.
func (sc *StatusCollection) Get(k effects.Key) (counters.State, bool) {
	if i := sc.index(k); i >= 0 {
		return sc.entries[i].State, true
	}
	return 0, false
}

// Has reports whether an entry with the key exists.
func (sc *StatusCollection) Has(k effects.Key) bool { return sc.index(k) >= 0 }

// Count returns the number of entries of an attachment kind.
func (sc *StatusCollection) Count(kind effects.AttachKind) int {
	n := 0
	for _, e := range sc.entries {
		if e.Key.Kind == kind {
			n++
		}
	}
	return n
}

// find returns the first entry matching pred.
func (sc *StatusCollection) find(pred func(effects.Key) bool) (StatusEntry, bool) {
	for _, e := range sc.entries {
		if pred(e.Key) {
			return e, true
		}
	}
	return StatusEntry{}, false
}

// set inserts or updates an entry. It reports the previous state if one existed.
func (sc *StatusCollection) set(k effects.Key, st counters.State) (counters.State, bool) {
	if i := sc.index(k); i >= 0 {
		prev := sc.entries[i].State
		sc.entries[i].State = st
		return prev, true
	}
	sc.entries = append(sc.entries, StatusEntry{Key: k, State: st})
	sc.caps = sc.caps.Union(StatusForKey(k).Capabilities)
	return 0, false
}

// remove deletes an entry, preserving the order of the rest.
func (sc *StatusCollection) remove(k effects.Key) (counters.State, bool) {
	prev, ok := sc.take(k)
	if ok {
		sc.refresh()
	}
	return prev, ok
}

// take deletes an entry without refreshing the capability cache. Callers
// removing several entries refresh once at the end.
func (sc *StatusCollection) take(k effects.Key) (counters.State, bool) {
	i := sc.index(k)
	if i < 0 {
		return 0, false
	}
	prev := sc.entries[i].State
	sc.entries = append(sc.entries[:i], sc.entries[i+1:]...)
	return prev, true
}

// refresh recomputes the cached capabilities from the surviving entries.
func (sc *StatusCollection) refresh() {
	var caps effects.Capabilities
	for _, e := range sc.entries {
		caps = caps.Union(StatusForKey(e.Key).Capabilities)
	}
	sc.caps = caps
}

func (sc StatusCollection) clone() StatusCollection {
	return StatusCollection{
		entries: append([]StatusEntry(nil), sc.entries...),
		caps:    sc.caps,
	}
}
