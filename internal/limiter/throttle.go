package limiter

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Throttler allows at most one invocation per interval.
//
// The first call of a burst invokes the handler immediately (leading edge).
// Calls arriving before the interval has elapsed since the last invocation
// are dropped; there is no trailing invocation.
//
// Thread-safety: all methods are safe for concurrent use.
type Throttler struct {
	mu       sync.Mutex
	clk      clock.Clock
	interval time.Duration
	last     time.Time
	fired    bool
	fn       Func
}

// NewThrottler creates a new throttler around fn.
func NewThrottler(clk clock.Clock, interval time.Duration, fn Func) *Throttler {
	return &Throttler{
		clk:      clk,
		interval: interval,
		fn:       fn,
	}
}

// Call invokes the handler with payload if the suppression window has
// elapsed, and drops the call otherwise.
func (t *Throttler) Call(payload any) {
	t.mu.Lock()

	now := t.clk.Now()
	if t.fired && now.Sub(t.last) < t.interval {
		t.mu.Unlock()
		return
	}
	t.last = now
	t.fired = true
	t.mu.Unlock()

	t.fn(payload)
}

// Reset clears the suppression window so the next call fires immediately.
func (t *Throttler) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fired = false
	t.last = time.Time{}
}
