package limiter

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Func is a payload-carrying handler wrapped by the limiter.
type Func func(payload any)

// cacheKey identifies one logical rate-limited handler. Deriving identity
// from the handler itself is fragile (functions have no stable identity), so
// callers supply an explicit name instead.
type cacheKey struct {
	name     string
	interval time.Duration
}

// Limiter caches throttle and debounce wrappers by logical handler identity.
// Asking twice for the same (name, interval) pair returns the identical
// wrapped handler, sharing one timer state instead of spawning duplicates.
type Limiter struct {
	mu         sync.Mutex
	clk        clock.Clock
	throttlers map[cacheKey]*throttleEntry
	debouncers map[cacheKey]*debounceEntry
}

type throttleEntry struct {
	t       *Throttler
	wrapped Func
}

type debounceEntry struct {
	d       *Debouncer
	wrapped Func
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock sets the clock used for timers and suppression windows.
func WithClock(clk clock.Clock) Option {
	return func(l *Limiter) { l.clk = clk }
}

// New creates a new limiter.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		clk:        clock.New(),
		throttlers: make(map[cacheKey]*throttleEntry),
		debouncers: make(map[cacheKey]*debounceEntry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Throttle returns a leading-edge throttled wrapper around fn. Repeated
// requests for the same (name, interval) pair return the cached wrapper and
// ignore the new fn.
func (l *Limiter) Throttle(name string, interval time.Duration, fn Func) Func {
	key := cacheKey{name: name, interval: interval}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.throttlers[key]; ok {
		return e.wrapped
	}

	t := NewThrottler(l.clk, interval, fn)
	e := &throttleEntry{t: t, wrapped: t.Call}
	l.throttlers[key] = e
	return e.wrapped
}

// Debounce returns a trailing debounced wrapper around fn. Repeated requests
// for the same (name, wait) pair return the cached wrapper and ignore the
// new fn.
func (l *Limiter) Debounce(name string, wait time.Duration, fn Func) Func {
	key := cacheKey{name: name, interval: wait}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.debouncers[key]; ok {
		return e.wrapped
	}

	d := NewDebouncer(l.clk, wait, fn)
	e := &debounceEntry{d: d, wrapped: d.Call}
	l.debouncers[key] = e
	return e.wrapped
}

// Release drops every cached wrapper registered under name, cancelling
// pending debounced calls. Already-handed-out wrappers keep working but are
// no longer shared with future requests.
func (l *Limiter) Release(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.throttlers {
		if key.name == name {
			e.t.Reset()
			delete(l.throttlers, key)
		}
	}
	for key, e := range l.debouncers {
		if key.name == name {
			e.d.Cancel()
			delete(l.debouncers, key)
		}
	}
}

// Reset drops all cached wrappers and cancels pending debounced calls.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.debouncers {
		e.d.Cancel()
	}
	l.throttlers = make(map[cacheKey]*throttleEntry)
	l.debouncers = make(map[cacheKey]*debounceEntry)
}

// Size returns the number of cached wrappers.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.throttlers) + len(l.debouncers)
}
