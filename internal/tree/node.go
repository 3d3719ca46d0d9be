package tree

import (
	"fmt"
	"sync/atomic"
)

// NodeID uniquely identifies a node within the process.
type NodeID uint64

var lastNodeID atomic.Uint64

func nextNodeID() NodeID {
	return NodeID(lastNodeID.Add(1))
}

// Direction selects one side of a node or gap.
type Direction int

const (
	// Left is toward the start of a child sequence.
	Left Direction = iota

	// Right is toward the end of a child sequence.
	Right
)

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	return 1 - d
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Kind carries the node-kind specific behavior of a node.
// Hook interfaces (Finalizer, EditListener, Disposer, ChildrenSelector) are
// discovered on the Kind by type assertion. A nil Kind is allowed.
type Kind interface {
	// Name returns a short identifier for the kind, used in dumps and snapshots.
	Name() string
}

// Node is an element of an editable tree.
type Node struct {
	id     NodeID
	kind   Kind
	parent *Node
	sib    [2]*Node // indexed by Direction
	ends   [2]*Node // first and last child, indexed by Direction
}

// New creates a detached node of the given kind.
func New(kind Kind) *Node {
	return &Node{id: nextNodeID(), kind: kind}
}

// ID returns the node's identity.
func (n *Node) ID() NodeID {
	return n.id
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// Parent returns the parent node, or nil for a root or detached node.
// After Disown it still reports the parent the node was removed from.
func (n *Node) Parent() *Node {
	return n.parent
}

// Left returns the left sibling.
func (n *Node) Left() *Node {
	return n.sib[Left]
}

// Right returns the right sibling.
func (n *Node) Right() *Node {
	return n.sib[Right]
}

// Sibling returns the sibling in the given direction.
func (n *Node) Sibling(dir Direction) *Node {
	return n.sib[dir]
}

// End returns the first (Left) or last (Right) child.
func (n *Node) End(dir Direction) *Node {
	return n.ends[dir]
}

// IsEmpty reports whether the node has no children.
func (n *Node) IsEmpty() bool {
	return n.ends[Left] == nil && n.ends[Right] == nil
}

// Root returns the topmost ancestor.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth returns the number of ancestors above the node.
func (n *Node) Depth() int {
	d := 0
	for a := n.parent; a != nil; a = a.parent {
		d++
	}
	return d
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	for a := other.parent; a != nil; a = a.parent {
		if a == n {
			return true
		}
	}
	return false
}

// String returns a short description of the node.
func (n *Node) String() string {
	if n.kind == nil {
		return fmt.Sprintf("Node(%d)", n.id)
	}
	return fmt.Sprintf("Node(%d %s)", n.id, n.kind.Name())
}

// Adopt inserts n into parent's children between leftward and rightward,
// which must be adjacent (nil meaning the respective end). It returns n.
func (n *Node) Adopt(parent, leftward, rightward *Node) *Node {
	single(n).Adopt(parent, leftward, rightward)
	return n
}

// WithDirAdopt is Adopt with the neighbors named relative to dir: withDir is
// the neighbor on the dir side of n and oppDir the one on the other side.
func (n *Node) WithDirAdopt(dir Direction, parent, withDir, oppDir *Node) *Node {
	single(n).WithDirAdopt(dir, parent, withDir, oppDir)
	return n
}

// Disown unlinks n from its parent. The node's own parent and sibling links
// are left unchanged. Disowning a node twice, or a node whose recorded
// neighbors no longer match the tree, panics.
func (n *Node) Disown() *Node {
	single(n).Disown()
	return n
}

// Remove runs the dispose pass over n's subtree and then disowns n.
func (n *Node) Remove() *Node {
	n.PostOrder(OpDispose)
	return n.Disown()
}

// Children returns the fragment spanning all of n's children.
func (n *Node) Children() *Fragment {
	return &Fragment{ends: n.ends}
}

// EachChild calls fn for each child from left to right until fn returns false.
func (n *Node) EachChild(fn func(*Node) bool) *Node {
	n.Children().Each(fn)
	return n
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return n.Children().Len()
}

// FoldChildren folds fn over n's children from left to right.
func FoldChildren[T any](n *Node, seed T, fn func(T, *Node) T) T {
	return Fold(n.Children(), seed, fn)
}

// SelectChildren builds the fragment [leftEnd, rightEnd] of n's children and
// notifies n's kind through ChildrenSelector, if implemented.
func (n *Node) SelectChildren(leftEnd, rightEnd *Node) *Fragment {
	f := NewFragment(leftEnd, rightEnd, Left)
	if s, ok := n.kind.(ChildrenSelector); ok {
		s.ChildrenSelected(n, f)
	}
	return f
}

// wellFormed reports whether leftward and rightward are adjacent children of
// parent, nil meaning the respective end.
func wellFormed(parent, leftward, rightward *Node) bool {
	if leftward == nil {
		if parent.ends[Left] != rightward {
			return false
		}
	} else if leftward.sib[Right] != rightward || leftward.parent != parent {
		return false
	}
	if rightward == nil {
		return parent.ends[Right] == leftward
	}
	return rightward.sib[Left] == leftward && rightward.parent == parent
}

func mustWellFormed(op string, parent, leftward, rightward *Node) {
	if parent == nil {
		subject := leftward
		if subject == nil {
			subject = rightward
		}
		Violation(op, subject, ErrNoParent)
	}
	if !wellFormed(parent, leftward, rightward) {
		Violation(op, parent, ErrNotWellFormed)
	}
}
