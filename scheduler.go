package reveal

import "time"

// Scheduler arranges deferred callbacks on the host's event thread.
//
// Schedule must run fn at most once, no earlier than d from now, on the same
// thread that drives the Player. The returned cancel func releases the
// pending callback; it must be safe to call more than once and after fn has
// run. The Player does not rely on cancel for correctness: stale callbacks
// are discarded by generation.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func()) func()

// Schedule calls f(d, fn).
func (f SchedulerFunc) Schedule(d time.Duration, fn func()) func() {
	return f(d, fn)
}
