package plugin

import (
	"errors"
	"fmt"
)

// Plugin system errors.
var (
	// ErrAlreadyLoaded is returned when running a host a second time.
	ErrAlreadyLoaded = errors.New("plugin is already loaded")

	// ErrScriptFailed matches every *ScriptError.
	ErrScriptFailed = errors.New("plugin script failed")
)

// ScriptError reports a script that failed to run.
type ScriptError struct {
	Name string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("plugin %s: %v", e.Name, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrScriptFailed.
func (e *ScriptError) Is(target error) bool {
	return target == ErrScriptFailed
}
