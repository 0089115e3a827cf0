package event

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription represents one registered handler on one topic. It doubles as
// the unsubscribe capability: pass it back to Bus.Unsubscribe to remove it.
type Subscription struct {
	id        string
	topic     Topic
	handler   Handler
	name      string
	once      bool
	cancelled atomic.Bool
}

// SubscriptionOption configures a subscription at registration time.
type SubscriptionOption func(*Subscription)

// WithOnce marks the subscription for automatic removal after its first
// successful dispatch.
func WithOnce() SubscriptionOption {
	return func(s *Subscription) { s.once = true }
}

// WithName attaches a stable caller-supplied name, used in error reports.
func WithName(name string) SubscriptionOption {
	return func(s *Subscription) { s.name = name }
}

func newSubscription(topic Topic, h Handler, opts ...SubscriptionOption) *Subscription {
	s := &Subscription{
		id:      uuid.NewString(),
		topic:   topic,
		handler: h,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic { return s.topic }

// Name returns the optional caller-supplied name.
func (s *Subscription) Name() string { return s.name }

// Once reports whether the subscription auto-cancels after its first
// successful dispatch.
func (s *Subscription) Once() bool { return s.once }

// IsActive reports whether the subscription is still registered.
func (s *Subscription) IsActive() bool { return !s.cancelled.Load() }

// cancel marks the subscription as removed. Idempotent.
func (s *Subscription) cancel() { s.cancelled.Store(true) }
