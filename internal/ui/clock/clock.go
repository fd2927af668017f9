// Package clock puts timers behind an interface so the page controllers can be driven
// deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Timer cancels a pending callback.
type Timer interface {
	// Stop prevents the callback from firing and reports whether it was still pending.
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

// Real returns the wall clock.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Every runs fn every d until the returned Timer is stopped.
func Every(c Clock, d time.Duration, fn func()) Timer {
	t := &ticker{clock: c, every: d, fn: fn}
	t.mu.Lock()
	t.schedule()
	t.mu.Unlock()
	return t
}

type ticker struct {
	mu      sync.Mutex
	clock   Clock
	every   time.Duration
	fn      func()
	pending Timer
	stopped bool
}

// schedule must be called with mu held.
func (t *ticker) schedule() {
	t.pending = t.clock.AfterFunc(t.every, t.fire)
}

func (t *ticker) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.schedule()
	t.mu.Unlock()
	t.fn()
}

func (t *ticker) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	if t.pending != nil {
		t.pending.Stop()
	}
	return true
}
