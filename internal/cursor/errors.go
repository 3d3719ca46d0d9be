package cursor

import "errors"

// Selection usage errors. Like tree errors, they are raised by panicking
// with a *tree.InvariantError.
var (
	// ErrNoCommonAncestor indicates a selection between positions in different trees.
	ErrNoCommonAncestor = errors.New("no common ancestor")

	// ErrNoAnticursor indicates Select without a prior StartSelection.
	ErrNoAnticursor = errors.New("no selection in progress")
)
