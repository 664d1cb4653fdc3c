package watch

import (
	"sync"
	"time"
)

// debouncer coalesces rapid events into a single firing after a quiet
// window. Each touch resets the timer; the fired channel receives once per
// coalesced burst.
type debouncer struct {
	window  time.Duration
	ch      chan struct{}
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		ch:     make(chan struct{}, 1),
	}
}

// touch records an event, rescheduling the pending fire.
func (d *debouncer) touch() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	// Non-blocking send; a pending unconsumed fire already covers this burst.
	select {
	case d.ch <- struct{}{}:
	default:
	}
}

// fired returns the channel signalled after each quiet window.
func (d *debouncer) fired() <-chan struct{} {
	return d.ch
}

// stop cancels any pending fire. Safe to call multiple times.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
