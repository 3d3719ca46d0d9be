package event

import "context"

// Priority determines handler execution order. Lower values run first.
type Priority int

const (
	// PriorityCritical is for handlers that keep derived state in step with the field.
	PriorityCritical Priority = 0

	// PriorityHigh is for handlers other components depend on.
	PriorityHigh Priority = 100

	// PriorityNormal is the default, used by plugins.
	PriorityNormal Priority = 200

	// PriorityLow is for logging handlers that run last.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Handler processes events.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// FilterFunc decides whether an event is delivered to a subscription.
type FilterFunc func(event any) bool

// PanicHandler is told about handler panics after they are recovered.
type PanicHandler func(event any, recovered any)

// Stats is a snapshot of bus counters.
type Stats struct {
	EventsPublished   uint64
	EventsDelivered   uint64
	HandlerErrors     uint64
	HandlerPanics     uint64
	ActiveSubscribers int
}
