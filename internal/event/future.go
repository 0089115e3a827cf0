package event

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// Future is a single-resolution handle on the next occurrence of a topic.
// It resolves with the published payload, or rejects with a *TimeoutError
// when its deadline passes first.
type Future struct {
	topic Topic
	done  chan struct{}
	timer atomic.Pointer[clock.Timer]

	once    sync.Once
	payload any
	err     error
}

// WaitFor returns a Future that resolves with the next payload published on
// the topic. When timeout is positive and elapses first, the Future rejects
// with a *TimeoutError and its pending subscription is removed. A zero or
// negative timeout waits indefinitely.
func (b *Bus) WaitFor(topic Topic, timeout time.Duration) (*Future, error) {
	if !topic.Valid() {
		return nil, ErrInvalidTopic
	}

	f := &Future{
		topic: topic,
		done:  make(chan struct{}),
	}

	sub, err := b.Subscribe(topic, HandlerFunc(func(_ context.Context, payload any) error {
		f.resolve(payload, nil)
		if t := f.timer.Load(); t != nil {
			t.Stop()
		}
		return nil
	}), WithOnce(), WithName("waitFor:"+topic.String()))
	if err != nil {
		return nil, err
	}

	if timeout > 0 {
		t := b.clk.AfterFunc(timeout, func() {
			f.resolve(nil, &TimeoutError{Topic: topic, Timeout: timeout})
			// Already-removed subscriptions are fine here; the publish path
			// may have won the race and spent the once-subscription.
			_ = b.Unsubscribe(sub)
		})
		f.timer.Store(t)
		// The publish path may have resolved before the timer existed.
		if f.Resolved() {
			t.Stop()
		}
	}

	return f, nil
}

// resolve settles the future exactly once.
func (f *Future) resolve(payload any, err error) {
	f.once.Do(func() {
		f.payload = payload
		f.err = err
		close(f.done)
	})
}

// Topic returns the topic the future is waiting on.
func (f *Future) Topic() Topic { return f.topic }

// Done returns a channel closed when the future settles.
func (f *Future) Done() <-chan struct{} { return f.done }

// Resolved reports whether the future has settled.
func (f *Future) Resolved() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result returns the settled payload and error. It must only be called after
// Done is closed; calling it earlier returns nil, nil.
func (f *Future) Result() (any, error) {
	if !f.Resolved() {
		return nil, nil
	}
	return f.payload, f.err
}

// Wait blocks until the future settles or the context is cancelled.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.payload, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
