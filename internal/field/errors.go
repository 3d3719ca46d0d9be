package field

import "errors"

// Sentinel errors for field editing.
var (
	// ErrTooDeep is returned when an edit would nest blocks deeper than the
	// configured maximum. The field is left unchanged.
	ErrTooDeep = errors.New("content nested too deeply")

	// ErrUnknownCommand is returned when typed text names a command that is
	// not registered.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnsupportedCharacter is returned for typed characters that have no
	// notation.
	ErrUnsupportedCharacter = errors.New("unsupported character")
)
