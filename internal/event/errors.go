package event

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the event bus.
var (
	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrInvalidTopic is returned when a topic is empty.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidSubscription is returned when a nil subscription is provided.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrSubscriptionNotFound is returned when unsubscribing a subscription
	// that is not registered.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrListenerPanic is the sentinel matched by PanicError.
	ErrListenerPanic = errors.New("listener panicked")

	// ErrWaitTimeout is the sentinel matched by TimeoutError.
	ErrWaitTimeout = errors.New("wait timed out")
)

// ListenerError wraps an error returned by a subscriber's handler.
// It is reported to the bus's error handler; dispatch continues.
type ListenerError struct {
	// Topic is the topic being dispatched when the handler failed.
	Topic Topic

	// SubscriptionID identifies the failing subscription.
	SubscriptionID string

	// Name is the optional caller-supplied subscription name.
	Name string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener error on topic %q (sub %s): %v", e.Topic, e.SubscriptionID, e.Err)
}

// Unwrap returns the underlying error.
func (e *ListenerError) Unwrap() error { return e.Err }

// PanicError wraps a panic value recovered from a subscriber's handler.
type PanicError struct {
	// Topic is the topic being dispatched when the handler panicked.
	Topic Topic

	// SubscriptionID identifies the panicking subscription.
	SubscriptionID string

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace captured at recovery.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("listener panic on topic %q (sub %s): %v", e.Topic, e.SubscriptionID, e.Value)
}

// Is allows errors.Is to match PanicError with ErrListenerPanic.
func (e *PanicError) Is(target error) bool { return target == ErrListenerPanic }

// TimeoutError is the rejection value of a Future whose deadline passed
// before its topic was published.
type TimeoutError struct {
	// Topic is the topic that was being waited on.
	Topic Topic

	// Timeout is the deadline that elapsed.
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("wait for topic %q timed out after %v", e.Topic, e.Timeout)
}

// Is allows errors.Is to match TimeoutError with ErrWaitTimeout.
func (e *TimeoutError) Is(target error) bool { return target == ErrWaitTimeout }
