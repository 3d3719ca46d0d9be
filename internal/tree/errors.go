package tree

import (
	"errors"
	"fmt"
)

// Structural consistency errors. They are raised by panicking with an
// *InvariantError that wraps one of these.
var (
	// ErrNotWellFormed indicates neighbor links that do not point back at each other.
	ErrNotWellFormed = errors.New("siblings not well formed")

	// ErrNoParent indicates a structural edit on a node that has no parent.
	ErrNoParent = errors.New("no parent")

	// ErrHalfEmpty indicates a fragment constructed with only one end.
	ErrHalfEmpty = errors.New("half-empty fragment")

	// ErrNotSiblings indicates fragment ends that do not share a parent.
	ErrNotSiblings = errors.New("fragment ends are not siblings")

	// ErrWrongDirection indicates fragment ends given in the wrong order.
	ErrWrongDirection = errors.New("fragment ends in wrong direction")
)

// InvariantError describes a violated structural invariant.
type InvariantError struct {
	Op   string // Operation that detected the violation (e.g., "adopt", "disown")
	Node NodeID // Node involved, zero if none
	Err  error  // Underlying sentinel error
}

func (e *InvariantError) Error() string {
	if e.Node != 0 {
		return fmt.Sprintf("tree: %s node %d: %v", e.Op, e.Node, e.Err)
	}
	return fmt.Sprintf("tree: %s: %v", e.Op, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// Violation panics with an *InvariantError. It is exported so packages layered
// on top of the tree report their own usage errors the same way.
func Violation(op string, n *Node, err error) {
	var id NodeID
	if n != nil {
		id = n.id
	}
	panic(&InvariantError{Op: op, Node: id, Err: err})
}
