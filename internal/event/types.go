package event

import "context"

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes a published payload.
	// The payload is type-erased; handlers should type-assert.
	Handle(ctx context.Context, payload any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, payload any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, payload any) error {
	return f(ctx, payload)
}

// ErrorHandler is called when a subscriber's handler returns an error or
// panics. The err is a *ListenerError or *PanicError. The dispatch loop
// continues regardless of what the error handler does.
type ErrorHandler func(err error)

// Stats contains bus counters.
type Stats struct {
	// EventsPublished is the total number of Publish calls that reached at
	// least the dispatch loop.
	EventsPublished uint64

	// EventsDelivered is the number of successful handler executions.
	EventsDelivered uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscriptions is the current number of registered subscriptions.
	ActiveSubscriptions int
}
