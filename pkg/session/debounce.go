package session

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers into one delayed invocation.
// Each Schedule call rearms a single timer slot: only the most recent fn
// within the quiet interval ever fires.
type Debouncer struct {
	interval time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet interval
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Schedule cancels any pending invocation and arms fn to fire after the
// quiet interval, measured from now
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels the pending invocation, if any
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Interval returns the configured quiet interval
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}
