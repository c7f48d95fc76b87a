// Package debounce provides a trailing-edge debouncer over timers: rapid
// bursts of calls collapse into one invocation after the interval of quiet.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces calls. Call schedules fn to run after the configured
// interval; calling again before it fires resets the timer and replaces fn.
// Safe for concurrent use.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
}

// New creates a Debouncer with the given interval. Non-positive intervals
// default to 250ms.
func New(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &Debouncer{interval: interval}
}

// Call schedules fn to run once the interval elapses without another Call.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

// Flush runs any pending function immediately and cancels the timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop cancels any pending invocation without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
