package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for the event bus.
var (
	// ErrInvalidEvent is returned when an event does not name its topic.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidTopic is returned when a topic is empty or malformed.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrSubscriptionNotFound is returned when unsubscribing an unknown subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrHandlerPanic matches every *PanicError.
	ErrHandlerPanic = errors.New("handler panicked")
)

// HandlerError wraps an error returned by a handler.
type HandlerError struct {
	SubscriptionID string
	Topic          string
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler error for subscription %s on topic %s: %v", e.SubscriptionID, e.Topic, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value a handler panicked with.
type PanicError struct {
	SubscriptionID string
	Topic          string
	Value          any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panic for subscription %s on topic %s: %v", e.SubscriptionID, e.Topic, e.Value)
}

// Is lets errors.Is match a PanicError with ErrHandlerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanic
}
