package notation

import "errors"

var (
	// ErrInvalidName indicates a control sequence name that cannot be written.
	ErrInvalidName = errors.New("invalid control sequence name")

	// ErrAlreadyRegistered indicates a name that is already in the registry.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrInvalidArity indicates a command with a negative number of blocks.
	ErrInvalidArity = errors.New("invalid arity")
)
