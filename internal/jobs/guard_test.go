package jobs

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestGuardAcceptRelease(t *testing.T) {
	var g guard[string]

	if g.isPending() {
		t.Fatal("expected idle guard")
	}

	if !g.accept("first") {
		t.Fatal("expected accept on idle guard")
	}
	if !g.isPending() {
		t.Error("expected pending after accept")
	}

	if g.accept("second") {
		t.Error("expected rejection while pending")
	}

	req, ok := g.current()
	if !ok || req != "first" {
		t.Errorf("expected in-flight request to be untouched, got %q/%v", req, ok)
	}

	g.release()
	if g.isPending() {
		t.Error("expected idle after release")
	}

	if !g.accept("third") {
		t.Error("expected accept after release")
	}
}

func TestGuardAcceptIsAtomic(t *testing.T) {
	// Many goroutines race to accept; exactly one may win.
	var g guard[int]

	const racers = 64
	var wins atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			<-start
			if g.accept(n) {
				wins.Add(1)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	if wins.Load() != 1 {
		t.Errorf("expected exactly 1 winner, got %d", wins.Load())
	}
}
