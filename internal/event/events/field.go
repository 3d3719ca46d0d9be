// Package events defines the topics and payloads published on the event bus.
package events

import "github.com/dshills/mathfield/internal/event/topic"

// Field event topics.
const (
	// TopicFieldEdited is published after the field's content changes.
	TopicFieldEdited topic.Topic = "field.edited"

	// TopicFieldCursorMoved is published after the cursor moves without an edit.
	TopicFieldCursorMoved topic.Topic = "field.cursor.moved"

	// TopicFieldSelectionChanged is published when the selection is created,
	// resized or cleared.
	TopicFieldSelectionChanged topic.Topic = "field.selection.changed"
)

// FieldEdited is published when the field's content changes.
type FieldEdited struct {
	// FieldID identifies the field.
	FieldID string

	// Latex is the whole field's notation after the edit.
	Latex string
}

// CursorMoved is published when the cursor moves.
type CursorMoved struct {
	FieldID string

	// Depth counts the blocks enclosing the cursor, the root included.
	Depth int
}

// SelectionChanged is published when the selection changes.
type SelectionChanged struct {
	FieldID string

	// Latex is the selected notation, empty when the selection was cleared.
	Latex string
}
