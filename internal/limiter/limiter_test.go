package limiter

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestThrottle_LeadingEdgeBurst(t *testing.T) {
	mock := clock.NewMock()
	l := New(WithClock(mock))

	calls := 0
	fn := l.Throttle("scroll", 100*time.Millisecond, func(any) { calls++ })

	// 10 calls inside 50ms: only the leading call fires.
	for i := 0; i < 10; i++ {
		fn(i)
		mock.Add(5 * time.Millisecond)
	}
	if calls != 1 {
		t.Fatalf("burst of 10 calls in 50ms fired %d times, want 1", calls)
	}

	// Next call after the window yields a second invocation.
	mock.Add(150 * time.Millisecond)
	fn("again")
	if calls != 2 {
		t.Errorf("call after 150ms quiet fired %d times total, want 2", calls)
	}
}

func TestThrottle_FirstCallPayload(t *testing.T) {
	mock := clock.NewMock()
	l := New(WithClock(mock))

	var got []any
	fn := l.Throttle("scroll", 100*time.Millisecond, func(p any) { got = append(got, p) })

	fn("first")
	fn("dropped")
	mock.Add(200 * time.Millisecond)
	fn("second")

	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("payloads = %v, want [first second]", got)
	}
}

func TestThrottle_NoTrailingInvocation(t *testing.T) {
	mock := clock.NewMock()
	l := New(WithClock(mock))

	calls := 0
	fn := l.Throttle("scroll", 100*time.Millisecond, func(any) { calls++ })

	fn(nil)
	fn(nil)
	fn(nil)
	mock.Add(time.Second)

	// Dropped calls never fire later.
	if calls != 1 {
		t.Errorf("calls = %d after window elapsed, want 1 (no trailing)", calls)
	}
}

func TestDebounce_QuietPeriod(t *testing.T) {
	mock := clock.NewMock()
	l := New(WithClock(mock))

	calls := 0
	var lastPayload any
	var firedAt time.Time
	fn := l.Debounce("resize", 200*time.Millisecond, func(p any) {
		calls++
		lastPayload = p
		firedAt = mock.Now()
	})

	for i := 0; i < 5; i++ {
		fn(i)
		mock.Add(10 * time.Millisecond)
	}
	lastCall := mock.Now().Add(-10 * time.Millisecond)

	if calls != 0 {
		t.Fatalf("debounced handler fired during the burst")
	}

	mock.Add(300 * time.Millisecond)

	if calls != 1 {
		t.Fatalf("5 calls in 50ms fired %d times, want 1", calls)
	}
	if lastPayload != 4 {
		t.Errorf("payload = %v, want last call's payload 4", lastPayload)
	}
	if firedAt.Sub(lastCall) < 200*time.Millisecond {
		t.Errorf("fired %v after last call, want >= 200ms", firedAt.Sub(lastCall))
	}
}

func TestDebounce_TimerResetPerCall(t *testing.T) {
	mock := clock.NewMock()
	l := New(WithClock(mock))

	calls := 0
	fn := l.Debounce("resize", 200*time.Millisecond, func(any) { calls++ })

	fn(nil)
	mock.Add(150 * time.Millisecond)
	fn(nil) // resets the pending timer
	mock.Add(150 * time.Millisecond)
	if calls != 0 {
		t.Fatal("handler fired before a full quiet period")
	}
	mock.Add(100 * time.Millisecond)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDebounce_Cancel(t *testing.T) {
	mock := clock.NewMock()
	calls := 0
	d := NewDebouncer(mock, 100*time.Millisecond, func(any) { calls++ })

	d.Call(nil)
	if !d.IsPending() {
		t.Fatal("IsPending() = false after Call")
	}
	d.Cancel()
	mock.Add(time.Second)

	if calls != 0 {
		t.Errorf("cancelled debouncer fired %d times", calls)
	}
	if d.IsPending() {
		t.Error("IsPending() = true after Cancel")
	}
}

func TestDebounce_Flush(t *testing.T) {
	mock := clock.NewMock()
	var got any
	calls := 0
	d := NewDebouncer(mock, 100*time.Millisecond, func(p any) { calls++; got = p })

	d.Call("pending")
	d.Flush()
	if calls != 1 || got != "pending" {
		t.Fatalf("Flush: calls=%d payload=%v, want immediate run with pending payload", calls, got)
	}

	mock.Add(time.Second)
	if calls != 1 {
		t.Errorf("stale timer fired after Flush, calls = %d", calls)
	}

	// Flush with nothing pending is a no-op.
	d.Flush()
	if calls != 1 {
		t.Errorf("empty Flush ran the handler, calls = %d", calls)
	}
}

func TestLimiter_CacheByIdentity(t *testing.T) {
	mock := clock.NewMock()
	l := New(WithClock(mock))

	calls := 0
	a := l.Throttle("scroll", 100*time.Millisecond, func(any) { calls++ })
	b := l.Throttle("scroll", 100*time.Millisecond, func(any) { t.Error("second fn must be ignored for a cached key") })

	if l.Size() != 1 {
		t.Fatalf("Size() = %d after duplicate request, want 1", l.Size())
	}

	// Both wrappers share one suppression window.
	a(nil)
	b(nil)
	if calls != 1 {
		t.Errorf("shared throttler fired %d times, want 1", calls)
	}
}

func TestLimiter_DistinctKeys(t *testing.T) {
	mock := clock.NewMock()
	l := New(WithClock(mock))

	l.Throttle("scroll", 16*time.Millisecond, func(any) {})
	l.Throttle("scroll", 32*time.Millisecond, func(any) {})
	l.Debounce("scroll", 16*time.Millisecond, func(any) {})
	l.Debounce("resize", 250*time.Millisecond, func(any) {})

	if l.Size() != 4 {
		t.Errorf("Size() = %d, want 4 distinct entries", l.Size())
	}
}

func TestLimiter_Release(t *testing.T) {
	mock := clock.NewMock()
	l := New(WithClock(mock))

	calls := 0
	l.Debounce("resize", 100*time.Millisecond, func(any) { calls++ })
	fn := l.Debounce("resize", 100*time.Millisecond, func(any) { calls++ })

	fn(nil)
	l.Release("resize")
	mock.Add(time.Second)

	if calls != 0 {
		t.Errorf("released debouncer still fired %d times", calls)
	}
	if l.Size() != 0 {
		t.Errorf("Size() = %d after Release, want 0", l.Size())
	}
}
