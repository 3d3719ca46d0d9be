package plugin

// State represents the lifecycle state of a plugin.
type State int

// Plugin states.
const (
	// StateUnloaded - the script has not run, or its host was closed.
	StateUnloaded State = iota

	// StateLoaded - the script ran to completion.
	StateLoaded

	// StateError - the script failed.
	StateError
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
