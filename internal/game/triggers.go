package game

import (
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// hookRun describes one pass over a player's registry.
type hookRun struct {
	player rules.PlayerID
	hook   effects.Hook
	// accept filters entries by key; nil accepts every entry.
	accept func(k effects.Key) bool
	cause  CommandContext
	// out receives emitted commands; nil makes the pass read-only.
	out *[]CommandEntry
	// preview evaluates hooks without applying their outcomes.
	preview bool
}

// runHooks invokes fn on every entry declaring the hook, in registry order,
// and applies the returned outcomes. Entries deleted by an outcome are
// removed after the pass with a single capability refresh. It reports
// whether any hook applied.
func (s *GameState) runHooks(r hookRun, fn func(c *StatusContext, desc *StatusDesc) effects.Outcome) bool {
	sc := &s.players[r.player].status
	if !sc.caps.HasHook(r.hook) {
		return false
	}
	var deleted []effects.Key
	applied := false
	for i := 0; i < len(sc.entries); i++ {
		e := sc.entries[i]
		if r.accept != nil && !r.accept(e.Key) {
			continue
		}
		desc := StatusForKey(e.Key)
		if !desc.Capabilities.HasHook(r.hook) {
			continue
		}
		c := &StatusContext{game: s, Player: r.player, Key: e.Key, State: e.State, Cause: r.cause, out: r.out}
		o := fn(c, desc)
		if !o.Applied() {
			continue
		}
		applied = true
		if r.preview {
			continue
		}
		st, del := o.Apply(e.State, &desc.Spec)
		if del {
			deleted = append(deleted, e.Key)
			continue
		}
		s.setStatus(r.player, e.Key, st)
	}
	s.dropStatuses(r.player, deleted)
	return applied
}

// dropStatuses removes several entries with one capability refresh.
func (s *GameState) dropStatuses(p rules.PlayerID, keys []effects.Key) {
	if len(keys) == 0 {
		return
	}
	for _, k := range keys {
		if s.takeStatus(p, k) {
			s.logEvent(LogEntry{Kind: LogStatus, Player: p, Key: k, Removed: true})
		}
	}
	s.players[p].status.refresh()
}

// runTrigger delivers a discrete trigger to one player's registry and
// returns the commands emitted in response.
func (s *GameState) runTrigger(p rules.PlayerID, t rules.Trigger, cause CommandContext) []CommandEntry {
	sc := &s.players[p].status
	if !sc.caps.RespondsToTrigger(t) {
		return nil
	}
	var out []CommandEntry
	s.runHooks(hookRun{
		player: p,
		hook:   effects.HookTrigger,
		accept: func(k effects.Key) bool { return StatusForKey(k).Capabilities.Triggers.Has(t) },
		cause:  cause,
		out:    &out,
	}, func(c *StatusContext, desc *StatusDesc) effects.Outcome {
		return desc.Impl.Trigger(c, t)
	})
	return out
}

// tickDurations counts down every duration-based status of a player at the
// end of a round, removing the ones that expire.
func (s *GameState) tickDurations(p rules.PlayerID) {
	sc := &s.players[p].status
	var expired []effects.Key
	for i := 0; i < len(sc.entries); i++ {
		e := sc.entries[i]
		desc := StatusForKey(e.Key)
		st, done := desc.TickDuration(e.State)
		if done {
			expired = append(expired, e.Key)
			continue
		}
		s.setStatus(p, e.Key, st)
	}
	s.dropStatuses(p, expired)
}

// resetRound clears the once-per-round flag on every status of a player.
func (s *GameState) resetRound(p rules.PlayerID) {
	sc := &s.players[p].status
	for i := 0; i < len(sc.entries); i++ {
		e := sc.entries[i]
		s.setStatus(p, e.Key, effects.ResetRound(e.State))
	}
}

// forCharacter accepts team, summon and support entries, and character or
// equipment entries attached to char.
func forCharacter(char uint8) func(effects.Key) bool {
	return func(k effects.Key) bool {
		idx, ok := k.CharIndex()
		return !ok || idx == char
	}
}

// updateCost runs UpdateCost hooks over the paying player's registry.
// Character statuses only see costs paid for their own character. In
// preview mode outcomes are not applied, so availability checks leave the
// state untouched.
func (s *GameState) updateCost(p rules.PlayerID, cc *CostContext, preview bool) {
	s.runHooks(hookRun{
		player:  p,
		hook:    effects.HookUpdateCost,
		accept:  forCharacter(cc.CharIdx),
		cause:   EventContext(p),
		preview: preview,
	}, func(c *StatusContext, desc *StatusDesc) effects.Outcome {
		return desc.Impl.UpdateCost(c, cc)
	})
}

// isIncapacitated reports whether a character is prevented from acting.
func (s *GameState) isIncapacitated(p rules.PlayerID, char uint8) bool {
	sc := &s.players[p].status
	if !sc.caps.HasHook(effects.HookIncapacitation) {
		return false
	}
	for _, e := range sc.entries {
		if idx, ok := e.Key.CharIndex(); !ok || idx != char {
			continue
		}
		desc := StatusForKey(e.Key)
		if !desc.Capabilities.HasHook(effects.HookIncapacitation) {
			continue
		}
		c := &StatusContext{game: s, Player: p, Key: e.Key, State: e.State}
		if desc.Impl.Incapacitated(c) {
			return true
		}
	}
	return false
}

// runEvent delivers a cross-cutting event raised by player p to both
// registries: p sees the mask as is, the opponent sees it flipped.
func (s *GameState) runEvent(p rules.PlayerID, ev XEvent, cause CommandContext) []CommandEntry {
	var out []CommandEntry
	for _, side := range [2]rules.PlayerID{p, p.Opposite()} {
		view := ev
		if side != p {
			view.Mask = ev.Mask.Flip()
		}
		if !s.players[side].status.caps.RespondsToEvent(view.Mask) {
			continue
		}
		s.runHooks(hookRun{
			player: side,
			hook:   effects.HookEvent,
			accept: func(k effects.Key) bool { return StatusForKey(k).Capabilities.Events.Matches(view.Mask) },
			cause:  cause,
			out:    &out,
		}, func(c *StatusContext, desc *StatusDesc) effects.Outcome {
			return desc.Impl.Event(c, &view)
		})
	}
	return out
}
