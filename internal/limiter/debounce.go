package limiter

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Debouncer groups rapid successive calls into a single invocation after a
// quiet period. Each call resets the pending timer; when the timer finally
// fires, the handler receives the payload of the last call.
//
// Thread-safety: all methods are safe for concurrent use. The handler is
// never called concurrently with itself from the debouncer.
type Debouncer struct {
	mu      sync.Mutex
	clk     clock.Clock
	wait    time.Duration
	timer   *clock.Timer
	pending bool
	seq     uint64 // sequence number to detect stale timer callbacks
	payload any
	fn      Func
}

// NewDebouncer creates a new debouncer around fn.
func NewDebouncer(clk clock.Clock, wait time.Duration, fn Func) *Debouncer {
	return &Debouncer{
		clk:  clk,
		wait: wait,
		fn:   fn,
	}
}

// Call schedules the handler to run after the quiet period, replacing any
// previously scheduled run and its payload.
func (d *Debouncer) Call(payload any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.payload = payload
	d.seq++
	currentSeq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = d.clk.AfterFunc(d.wait, func() {
		d.mu.Lock()
		// Only execute if this is still the current scheduled callback.
		if d.pending && d.seq == currentSeq {
			d.pending = false
			payload := d.payload
			d.payload = nil
			d.mu.Unlock()
			d.fn(payload)
			return
		}
		d.mu.Unlock()
	})
}

// Flush runs the handler immediately if a call is pending, cancelling the
// scheduled run.
func (d *Debouncer) Flush() {
	d.mu.Lock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++

	if d.pending {
		d.pending = false
		payload := d.payload
		d.payload = nil
		d.mu.Unlock()
		d.fn(payload)
		return
	}
	d.mu.Unlock()
}

// Cancel drops any pending call without running the handler.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
	d.payload = nil
}

// IsPending reports whether a call is waiting for the quiet period.
func (d *Debouncer) IsPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
