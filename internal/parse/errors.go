package parse

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse is wrapped by every error Parse returns.
	ErrParse = errors.New("parse error")

	// ErrUnanchored indicates a regular expression that may match other than
	// at the start of the remaining input.
	ErrUnanchored = errors.New("regexp not anchored at start")
)

// ParseError describes the furthest point a failed parse reached.
type ParseError struct {
	Input    string   // Complete input
	Index    int      // Byte offset of the furthest failure
	Expected []string // What would have allowed the parse to continue there
}

func (e *ParseError) Error() string {
	at := "EOF"
	if e.Index < len(e.Input) {
		at = "'" + e.Input[e.Index:] + "'"
	}
	switch len(e.Expected) {
	case 0:
		return fmt.Sprintf("parse error at %s", at)
	case 1:
		return fmt.Sprintf("parse error: expected %s at %s", e.Expected[0], at)
	default:
		return fmt.Sprintf("parse error: expected one of %s at %s", strings.Join(e.Expected, ", "), at)
	}
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}
