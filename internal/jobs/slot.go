package jobs

import "sync"

// slot is a mutex-guarded optional value with copy-in/copy-out access.
// Critical sections only copy the value; they never call other slots or
// perform I/O, so slots cannot deadlock against each other.
type slot[T any] struct {
	mu  sync.Mutex
	val T
	set bool
}

// store replaces the slot's value.
func (s *slot[T]) store(v T) {
	s.mu.Lock()
	s.val = v
	s.set = true
	s.mu.Unlock()
}

// clear empties the slot.
func (s *slot[T]) clear() {
	var zero T
	s.mu.Lock()
	s.val = zero
	s.set = false
	s.mu.Unlock()
}

// load returns a copy of the value and whether one is present.
func (s *slot[T]) load() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val, s.set
}
