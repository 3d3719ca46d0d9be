// Package field is the editing facade over a notation tree: a root block,
// the cursor inside it and the registry of known commands.
//
// Every exported operation leaves the field consistent and then publishes
// what happened on the event bus, if one was configured: an edit publishes
// events.TopicFieldEdited, a cursor movement without an edit publishes
// events.TopicFieldCursorMoved, and any change to the selection publishes
// events.TopicFieldSelectionChanged.
//
// A Field is not safe for concurrent use.
package field
