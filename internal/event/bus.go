package event

import (
	"context"
	"runtime/debug"
	"sync/atomic"

	"github.com/benbjohnson/clock"
)

// Bus is a synchronous topic-keyed publish/subscribe bus.
// The zero value is not usable; create one with NewBus.
type Bus struct {
	registry     *registry
	errorHandler ErrorHandler
	clk          clock.Clock

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithErrorHandler sets the handler invoked for listener errors and panics.
// When unset, failures are counted but otherwise discarded.
func WithErrorHandler(h ErrorHandler) BusOption {
	return func(b *Bus) { b.errorHandler = h }
}

// WithClock sets the clock used for Future timeouts.
func WithClock(clk clock.Clock) BusOption {
	return func(b *Bus) { b.clk = clk }
}

// NewBus creates a new event bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		registry: newRegistry(),
		clk:      clock.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for a topic and returns the subscription,
// which doubles as the unsubscribe capability.
// Safe to call concurrently, including from inside a handler.
func (b *Bus) Subscribe(topic Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !topic.Valid() {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(topic, handler, opts...)
	b.registry.add(sub)
	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function handler.
func (b *Bus) SubscribeFunc(topic Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	return b.Subscribe(topic, fn, opts...)
}

// Unsubscribe removes a subscription. Unsubscribing an already-removed
// subscription returns ErrSubscriptionNotFound.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	if !b.registry.remove(sub.id) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Publish synchronously invokes every subscription registered for the topic,
// in registration order, against a snapshot taken before the first handler
// runs. A handler error or panic is reported and does not stop the fan-out.
// Once-subscriptions are removed only after the full loop completes.
func (b *Bus) Publish(ctx context.Context, topic Topic, payload any) error {
	if !topic.Valid() {
		return ErrInvalidTopic
	}

	subs := b.registry.snapshot(topic)
	if len(subs) == 0 {
		return nil
	}

	b.eventsPublished.Add(1)

	var spent []*Subscription
	for _, sub := range subs {
		err := b.dispatch(ctx, topic, sub, payload)
		switch {
		case err == nil:
			b.eventsDelivered.Add(1)
			if sub.once {
				spent = append(spent, sub)
			}
		default:
			b.report(err)
		}
	}

	for _, sub := range spent {
		b.registry.remove(sub.id)
	}

	return nil
}

// dispatch runs one handler with panic recovery. It returns nil on success,
// a *ListenerError when the handler returned an error, or a *PanicError when
// it panicked.
func (b *Bus) dispatch(ctx context.Context, topic Topic, sub *Subscription, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{
				Topic:          topic,
				SubscriptionID: sub.id,
				Value:          r,
				Stack:          debug.Stack(),
			}
		}
	}()

	if herr := sub.handler.Handle(ctx, payload); herr != nil {
		return &ListenerError{
			Topic:          topic,
			SubscriptionID: sub.id,
			Name:           sub.name,
			Err:            herr,
		}
	}
	return nil
}

// report counts a listener failure and forwards it to the error handler.
// The error handler itself is protected: a panic inside it is swallowed.
func (b *Bus) report(err error) {
	if _, ok := err.(*PanicError); ok {
		b.handlerPanics.Add(1)
	} else {
		b.handlerErrors.Add(1)
	}

	if b.errorHandler == nil {
		return
	}
	func() {
		defer func() { _ = recover() }()
		b.errorHandler(err)
	}()
}

// Stats returns current bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsPublished:     b.eventsPublished.Load(),
		EventsDelivered:     b.eventsDelivered.Load(),
		HandlerErrors:       b.handlerErrors.Load(),
		HandlerPanics:       b.handlerPanics.Load(),
		ActiveSubscriptions: b.registry.count(),
	}
}

// Topics returns all topics with at least one subscription.
func (b *Bus) Topics() []Topic {
	return b.registry.topics()
}

// SubscriberCount returns the number of subscriptions for one topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	return b.registry.countTopic(topic)
}

// Clear removes every subscription. Pending Futures are left unresolved
// until their timeout fires.
func (b *Bus) Clear() {
	b.registry.clear()
}
