package tree

// Fragment is an inclusive, contiguous run of siblings sharing one parent,
// or the empty run. It does not own the nodes it spans.
type Fragment struct {
	ends     [2]*Node
	disowned bool
}

// NewFragment returns the fragment whose dir end is withDir and whose other
// end is oppDir. Both ends must be given or neither; they must share a parent
// and be ordered as dir says, otherwise NewFragment panics.
func NewFragment(withDir, oppDir *Node, dir Direction) *Fragment {
	if (withDir == nil) != (oppDir == nil) {
		Violation("fragment", withDir, ErrHalfEmpty)
	}
	f := &Fragment{}
	if withDir == nil {
		return f
	}
	if withDir.parent != oppDir.parent {
		Violation("fragment", withDir, ErrNotSiblings)
	}
	f.ends[dir] = withDir
	f.ends[dir.Opposite()] = oppDir

	for n := f.ends[Left]; n != f.ends[Right]; {
		n = n.sib[Right]
		if n == nil {
			Violation("fragment", withDir, ErrWrongDirection)
		}
	}
	return f
}

// Span returns the fragment from leftEnd to rightEnd inclusive.
func Span(leftEnd, rightEnd *Node) *Fragment {
	return NewFragment(leftEnd, rightEnd, Left)
}

// EmptyFragment returns a fragment with no nodes.
func EmptyFragment() *Fragment {
	return &Fragment{}
}

// single wraps one node without order checks.
func single(n *Node) *Fragment {
	return &Fragment{ends: [2]*Node{n, n}}
}

// End returns the leftmost (Left) or rightmost (Right) node, nil when empty.
func (f *Fragment) End(dir Direction) *Node {
	return f.ends[dir]
}

// IsEmpty reports whether the fragment spans no nodes.
func (f *Fragment) IsEmpty() bool {
	return f.ends[Left] == nil
}

// Each calls fn on every node from left to right until fn returns false.
func (f *Fragment) Each(fn func(*Node) bool) *Fragment {
	n, last := f.ends[Left], f.ends[Right]
	for n != nil {
		next := n.sib[Right]
		if !fn(n) || n == last {
			break
		}
		n = next
	}
	return f
}

// Fold folds fn over the fragment's nodes from left to right.
func Fold[T any](f *Fragment, seed T, fn func(T, *Node) T) T {
	acc := seed
	f.Each(func(n *Node) bool {
		acc = fn(acc, n)
		return true
	})
	return acc
}

// Len returns the number of nodes spanned.
func (f *Fragment) Len() int {
	return Fold(f, 0, func(c int, _ *Node) int { return c + 1 })
}

// Nodes returns the spanned nodes in order.
func (f *Fragment) Nodes() []*Node {
	return Fold(f, []*Node(nil), func(acc []*Node, n *Node) []*Node { return append(acc, n) })
}

// Contains reports whether n is one of the spanned nodes.
func (f *Fragment) Contains(n *Node) bool {
	found := false
	f.Each(func(c *Node) bool {
		found = c == n
		return !found
	})
	return found
}

// Disown unlinks the whole run from its parent in O(1). The nodes keep their
// own links. Disowning an empty fragment, or the same fragment twice, does nothing.
func (f *Fragment) Disown() *Fragment {
	leftEnd := f.ends[Left]
	if leftEnd == nil || f.disowned {
		return f
	}
	rightEnd := f.ends[Right]
	parent := leftEnd.parent
	mustWellFormed("disown", parent, leftEnd.sib[Left], leftEnd)
	mustWellFormed("disown", parent, rightEnd, rightEnd.sib[Right])

	outerLeft, outerRight := leftEnd.sib[Left], rightEnd.sib[Right]
	if outerLeft != nil {
		outerLeft.sib[Right] = outerRight
	} else {
		parent.ends[Left] = outerRight
	}
	if outerRight != nil {
		outerRight.sib[Left] = outerLeft
	} else {
		parent.ends[Right] = outerLeft
	}
	f.disowned = true
	return f
}

// Adopt inserts the run into parent's children between leftward and
// rightward, which must be adjacent (nil meaning the respective end).
func (f *Fragment) Adopt(parent, leftward, rightward *Node) *Fragment {
	mustWellFormed("adopt", parent, leftward, rightward)
	f.disowned = false

	leftEnd := f.ends[Left]
	if leftEnd == nil {
		return f
	}
	rightEnd := f.ends[Right]

	if leftward == nil {
		parent.ends[Left] = leftEnd
	}
	if rightward != nil {
		rightward.sib[Left] = rightEnd
	} else {
		parent.ends[Right] = rightEnd
	}
	rightEnd.sib[Right] = rightward

	prev := leftward
	f.Each(func(n *Node) bool {
		n.sib[Left] = prev
		n.parent = parent
		if prev != nil {
			prev.sib[Right] = n
		}
		prev = n
		return true
	})
	return f
}

// WithDirAdopt is Adopt with the neighbors named relative to dir: withDir is
// the neighbor on the dir side of the run and oppDir the one on the other side.
func (f *Fragment) WithDirAdopt(dir Direction, parent, withDir, oppDir *Node) *Fragment {
	if dir == Left {
		return f.Adopt(parent, withDir, oppDir)
	}
	return f.Adopt(parent, oppDir, withDir)
}

// Remove runs the dispose pass over every spanned subtree and disowns the run.
func (f *Fragment) Remove() *Fragment {
	f.Each(func(n *Node) bool {
		n.PostOrder(OpDispose)
		return true
	})
	return f.Disown()
}
