package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/mathfield/internal/event/topic"
)

// Event is a published event. Events are immutable once created.
type Event[T any] struct {
	// Type is the hierarchical event type, e.g. "field.edited".
	Type topic.Topic

	Payload  T
	Metadata Metadata
}

// Metadata is attached to every event.
type Metadata struct {
	// ID uniquely identifies this event instance.
	ID string

	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// NewEvent creates an event with fresh metadata.
func NewEvent[T any](eventType topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    eventType,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// EventTopic returns the event's topic for type-erased handling.
func (e Event[T]) EventTopic() topic.Topic {
	return e.Type
}

// EventMetadata returns the event's metadata for type-erased handling.
func (e Event[T]) EventMetadata() Metadata {
	return e.Metadata
}

// TopicProvider is implemented by anything publishable.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// Payload extracts the typed payload of a published event.
func Payload[T any](event any) (T, bool) {
	e, ok := event.(Event[T])
	return e.Payload, ok
}
