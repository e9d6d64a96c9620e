package common

// Scope collects the release actions of everything a mounted view acquired:
// timers, animation frames, listeners, subscriptions. Close runs them in
// reverse order of acquisition exactly once; anything acquired after Close
// is released immediately.
type Scope struct {
	cleanups []func()
	closed   bool
}

// NewScope returns an open scope.
func NewScope() *Scope {
	return &Scope{}
}

// Defer registers fn to run when the scope closes.
func (s *Scope) Defer(fn func()) {
	if fn == nil {
		return
	}
	if s.closed {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

// Track registers a scheduler cancellation and returns it unchanged.
func (s *Scope) Track(c Cancel) Cancel {
	s.Defer(c)
	return c
}

// Closed reports whether Close has run.
func (s *Scope) Closed() bool {
	return s.closed
}

// Close releases everything in LIFO order.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

// Child opens a nested scope that closes with its parent. Closing the child
// early does not affect the parent.
func (s *Scope) Child() *Scope {
	child := NewScope()
	s.Defer(child.Close)
	return child
}
