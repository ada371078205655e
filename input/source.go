package input

// Source turns key events into per-step snapshots. A press registers only on
// the transition from released to held, so OS key repeat never re-triggers it,
// and a press remains visible until the next Poll even if released first.
type Source struct {
	held    [actionCount]bool
	pending [actionCount]bool
}

func NewSource() *Source {
	return &Source{}
}

// KeyDown records a press. Repeats while already held are ignored.
func (s *Source) KeyDown(a Action) {
	if a < 0 || a >= actionCount {
		return
	}
	if !s.held[a] {
		s.pending[a] = true
	}
	s.held[a] = true
}

// KeyUp releases a.
func (s *Source) KeyUp(a Action) {
	if a < 0 || a >= actionCount {
		return
	}
	s.held[a] = false
}

// Blur releases everything, e.g. when the window loses focus.
func (s *Source) Blur() {
	s.held = [actionCount]bool{}
	s.pending = [actionCount]bool{}
}

// Poll returns the snapshot for one simulation step and drains pending presses.
func (s *Source) Poll() Snapshot {
	snap := Snapshot{held: s.held, pressed: s.pending}
	s.pending = [actionCount]bool{}
	return snap
}

// Peek returns the current snapshot without consuming presses.
func (s *Source) Peek() Snapshot {
	return Snapshot{held: s.held, pressed: s.pending}
}
