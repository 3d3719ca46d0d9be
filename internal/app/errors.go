// Package app wires configuration, plugins and the event bus around a
// formula field and manages its lifecycle.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNotRunning indicates the application has been shut down.
	ErrNotRunning = errors.New("application not running")

	// ErrNoConfigFile indicates a reload without a configuration file.
	ErrNoConfigFile = errors.New("no configuration file")
)

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ComponentError represents an error from a specific component.
type ComponentError struct {
	Component string // Component name (e.g., "config", "plugins", "field")
	Action    string // Action being performed
	Err       error  // Underlying error
}

func (e *ComponentError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Action, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}
