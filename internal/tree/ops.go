package tree

// Op is one of the named operations that generic traversals dispatch to node kinds.
type Op int

const (
	// OpFinalize runs after a subtree has been built, children before parents.
	OpFinalize Op = iota

	// OpEdited propagates "content below changed" from an edited node to the root.
	OpEdited

	// OpDispose runs on every node of a subtree that is being removed.
	OpDispose
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpFinalize:
		return "finalize"
	case OpEdited:
		return "edited"
	case OpDispose:
		return "dispose"
	default:
		return "unknown"
	}
}

// Finalizer is implemented by kinds that handle OpFinalize.
type Finalizer interface {
	Finalize(n *Node)
}

// EditListener is implemented by kinds that handle OpEdited.
// Returning false stops the bubble at this node.
type EditListener interface {
	Edited(n *Node) bool
}

// Disposer is implemented by kinds that handle OpDispose.
type Disposer interface {
	Dispose(n *Node)
}

// ChildrenSelector is implemented by kinds that want to know when a run of
// their children becomes the selection.
type ChildrenSelector interface {
	ChildrenSelected(n *Node, f *Fragment)
}

// apply dispatches op to n's kind. It reports whether traversal should continue.
func (n *Node) apply(op Op) bool {
	switch op {
	case OpFinalize:
		if h, ok := n.kind.(Finalizer); ok {
			h.Finalize(n)
		}
	case OpEdited:
		if h, ok := n.kind.(EditListener); ok {
			return h.Edited(n)
		}
	case OpDispose:
		if h, ok := n.kind.(Disposer); ok {
			h.Dispose(n)
		}
	}
	return true
}

// PostOrder applies op to every node of n's subtree, each node's children
// (left to right) before the node itself.
func (n *Node) PostOrder(op Op) *Node {
	n.EachChild(func(c *Node) bool {
		c.PostOrder(op)
		return true
	})
	n.apply(op)
	return n
}

// Bubble applies op to n and then to each ancestor up to the root. It stops
// early, returning false, when a hook asks to stop.
func (n *Node) Bubble(op Op) bool {
	for a := n; a != nil; a = a.parent {
		if !a.apply(op) {
			return false
		}
	}
	return true
}
