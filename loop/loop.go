// Package loop provides a serial event loop that stands in for a UI main
// thread, so a reveal.Player can run outside a TUI framework.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fwojciec/reveal"
)

// ErrClosed indicates work was submitted to a closed Loop.
var ErrClosed = errors.New("loop closed")

// Interface compliance check.
var _ reveal.Scheduler = (*Loop)(nil)

// Loop runs posted functions one at a time, in order, on a single
// goroutine. Timer callbacks from Schedule are posted to the same goroutine,
// so everything touching a Player observes one thread.
//
// Do and Close must not be called from functions running on the loop; they
// wait for the loop and would deadlock.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
	timers map[int]*time.Timer
	nextID int

	wake chan struct{}
	done chan struct{}
}

// New starts a Loop.
func New() *Loop {
	l := &Loop{
		timers: make(map[int]*time.Timer),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

// Post queues fn to run on the loop. It returns false if the loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.signal()
	return true
}

// Do runs fn on the loop and waits for it to return or for ctx to end.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Schedule implements reveal.Scheduler. fn is posted to the loop after d.
// After Close, Schedule does nothing.
func (l *Loop) Schedule(d time.Duration, fn func()) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return func() {}
	}
	l.nextID++
	id := l.nextID
	// The callback takes mu, so it cannot observe the map before the
	// timer is stored.
	l.timers[id] = time.AfterFunc(d, func() {
		l.mu.Lock()
		delete(l.timers, id)
		l.mu.Unlock()
		l.Post(fn)
	})
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if t, ok := l.timers[id]; ok {
			t.Stop()
			delete(l.timers, id)
		}
	}
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Close stops pending timers, runs what is already queued and waits for the
// loop goroutine to exit. Safe to call more than once.
func (l *Loop) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		for id, t := range l.timers {
			t.Stop()
			delete(l.timers, id)
		}
	}
	l.mu.Unlock()
	l.signal()
	<-l.done
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		closed := l.closed
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-l.wake
	}
}
