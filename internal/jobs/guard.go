package jobs

import "sync"

// guard holds the at-most-one-in-flight request state for one job kind.
//
// accept is a single atomic check-and-set: checking for a pending run
// and claiming the slot happen under one lock acquisition, so two
// concurrent callers can never both be accepted.
type guard[R any] struct {
	mu      sync.Mutex
	pending bool
	request R
}

// accept transitions idle -> running(req) and returns true, or returns
// false leaving the in-flight request untouched.
func (g *guard[R]) accept(req R) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending {
		return false
	}

	g.pending = true
	g.request = req
	return true
}

// release transitions running -> idle. Only the worker that owns the
// current run calls this, and only after the run's result has been
// stored.
func (g *guard[R]) release() {
	var zero R
	g.mu.Lock()
	g.pending = false
	g.request = zero
	g.mu.Unlock()
}

// isPending reports whether a run is in flight. The answer is a
// snapshot and may be stale by the time the caller acts on it; accept
// is the only operation that may claim the slot.
func (g *guard[R]) isPending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}

// current returns a copy of the in-flight request, if any.
func (g *guard[R]) current() (R, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.request, g.pending
}
