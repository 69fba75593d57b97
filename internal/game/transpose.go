package game

// Transpose swaps the two players in place: every player-indexed field, the
// phase, the event log and any suspension in progress. The hash is
// recomputed since player-indexed contributions differ per seat.
func (s *GameState) Transpose() {
	s.players[0], s.players[1] = s.players[1], s.players[0]
	s.phase = s.phase.Transpose()
	if s.pending != nil {
		s.pending.transpose()
	}
	s.log.transpose()
	s.Rehash()
}

// Transposed returns a transposed copy, leaving s untouched.
func (s *GameState) Transposed() *GameState {
	c := s.Clone()
	c.Transpose()
	return c
}
