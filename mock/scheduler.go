// Package mock provides test doubles for reveal interfaces.
package mock

import (
	"time"

	"github.com/fwojciec/reveal"
)

// Interface compliance check.
var _ reveal.Scheduler = (*Scheduler)(nil)

// Scheduler is a manual clock implementing reveal.Scheduler. Callbacks run
// only when the test calls Advance or RunAll, on the calling goroutine, so
// player behavior is fully deterministic.
type Scheduler struct {
	now    time.Duration
	seq    int
	timers []*Timer
}

// Timer is one scheduled callback. Tests may call Fn directly to simulate a
// callback that was already queued when it was cancelled.
type Timer struct {
	At        time.Duration // Virtual time the callback is due.
	Delay     time.Duration
	Fn        func()
	Cancelled bool
	Fired     bool
	seq       int
}

// Schedule records fn as due d after the current virtual time.
func (s *Scheduler) Schedule(d time.Duration, fn func()) func() {
	s.seq++
	t := &Timer{At: s.now + d, Delay: d, Fn: fn, seq: s.seq}
	s.timers = append(s.timers, t)
	return func() { t.Cancelled = true }
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration { return s.now }

// Timers returns every timer ever scheduled, in scheduling order.
func (s *Scheduler) Timers() []*Timer { return s.timers }

// Pending returns the number of timers neither fired nor cancelled.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.Fired && !t.Cancelled {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing every due timer in order,
// including timers scheduled by callbacks that fall due within the window.
// It returns the number of callbacks fired.
func (s *Scheduler) Advance(d time.Duration) int {
	target := s.now + d
	n := 0
	for {
		t := s.next()
		if t == nil || t.At > target {
			break
		}
		s.fire(t)
		n++
	}
	s.now = target
	return n
}

// RunAll fires pending timers in order until none remain or limit callbacks
// have fired. It returns the number fired.
func (s *Scheduler) RunAll(limit int) int {
	n := 0
	for n < limit {
		t := s.next()
		if t == nil {
			break
		}
		s.fire(t)
		n++
	}
	return n
}

func (s *Scheduler) fire(t *Timer) {
	s.now = max(s.now, t.At)
	t.Fired = true
	t.Fn()
}

func (s *Scheduler) next() *Timer {
	var best *Timer
	for _, t := range s.timers {
		if t.Fired || t.Cancelled {
			continue
		}
		if best == nil || t.At < best.At || (t.At == best.At && t.seq < best.seq) {
			best = t
		}
	}
	return best
}
