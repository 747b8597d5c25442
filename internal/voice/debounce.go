package voice

import (
	"sync"
	"time"
)

// Debouncer collapses rapid events into one: the function fires only
// after the quiet duration elapses with no new calls. Each call resets
// the timer. This is the silence-commit primitive for continuous
// speech: every partial transcript re-arms it, and only a pause lets
// the accumulated utterance through.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	quiet time.Duration
}

// NewDebouncer creates a debouncer with the given quiet duration.
func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Debounce schedules fn after the quiet duration, cancelling any
// previously scheduled call.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, fn)
}

// SetQuiet changes the quiet duration. A timer already armed keeps
// its old deadline; the next Debounce call uses the new one.
func (d *Debouncer) SetQuiet(quiet time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quiet = quiet
}

// Cancel drops any pending call without firing it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
