package cursor

import (
	"fmt"

	"github.com/dshills/mathfield/internal/tree"
)

// Cursor is the live editing position in a tree plus selection state.
// It is mutable and, like the tree, assumes a single writer.
type Cursor struct {
	pos tree.Point

	selection  *tree.Fragment
	anticursor *Anticursor

	maxDepth    int
	depthFilter func(*tree.Node) bool
	onSelection func(*Cursor)
}

// Option configures a Cursor.
type Option func(*Cursor)

// WithMaxDepth limits how deep IsTooDeep lets content nest. Zero means unlimited.
func WithMaxDepth(depth int) Option {
	return func(c *Cursor) {
		if depth >= 0 {
			c.maxDepth = depth
		}
	}
}

// WithDepthFilter selects which ancestors count toward Depth.
// By default every ancestor counts.
func WithDepthFilter(fn func(*tree.Node) bool) Option {
	return func(c *Cursor) {
		c.depthFilter = fn
	}
}

// WithSelectionListener registers fn to run after every selection change.
func WithSelectionListener(fn func(*Cursor)) Option {
	return func(c *Cursor) {
		c.onSelection = fn
	}
}

// New creates a cursor at the right end of root's children.
func New(root *tree.Node, opts ...Option) *Cursor {
	c := &Cursor{}
	for _, opt := range opts {
		opt(c)
	}
	c.InsAtRightEnd(root)
	return c
}

// Point returns the cursor's current gap.
func (c *Cursor) Point() tree.Point {
	return c.pos
}

// Parent returns the node whose children the cursor sits among.
func (c *Cursor) Parent() *tree.Node {
	return c.pos.Parent
}

// Left returns the node immediately left of the cursor.
func (c *Cursor) Left() *tree.Node {
	return c.pos.Left
}

// Right returns the node immediately right of the cursor.
func (c *Cursor) Right() *tree.Node {
	return c.pos.Right
}

// Sibling returns the node on the given side of the cursor.
func (c *Cursor) Sibling(dir tree.Direction) *tree.Node {
	return c.pos.Sibling(dir)
}

// SetSibling changes the node on one side of the cursor without moving it to
// another parent. Node kinds use it when they edit around the cursor.
func (c *Cursor) SetSibling(dir tree.Direction, n *tree.Node) {
	c.pos.SetSibling(dir, n)
}

// Selection returns the current selection, or nil.
func (c *Cursor) Selection() *tree.Fragment {
	return c.selection
}

// Anticursor returns the frozen far end of an in-progress selection, or nil.
func (c *Cursor) Anticursor() *Anticursor {
	return c.anticursor
}

// String returns a short description of the cursor.
func (c *Cursor) String() string {
	return fmt.Sprintf("Cursor(%v)", c.pos)
}

// withDirInsertAt moves the cursor into parent with withDir on the dir side
// and oppDir on the other, firing blur and focus when the parent changes.
func (c *Cursor) withDirInsertAt(dir tree.Direction, parent, withDir, oppDir *tree.Node) {
	old := c.pos.Parent
	c.pos.Parent = parent
	c.pos.SetSibling(dir, withDir)
	c.pos.SetSibling(dir.Opposite(), oppDir)
	if old == parent {
		return
	}
	if old != nil {
		if b, ok := old.Kind().(Blurrer); ok {
			b.Blur(old, c)
		}
	}
	if f, ok := parent.Kind().(Focuser); ok {
		f.Focus(parent, c)
	}
}

// InsDirOf places the cursor immediately on the dir side of n.
func (c *Cursor) InsDirOf(dir tree.Direction, n *tree.Node) *Cursor {
	c.withDirInsertAt(dir, n.Parent(), n.Sibling(dir), n)
	return c
}

// InsLeftOf places the cursor immediately left of n.
func (c *Cursor) InsLeftOf(n *tree.Node) *Cursor {
	return c.InsDirOf(tree.Left, n)
}

// InsRightOf places the cursor immediately right of n.
func (c *Cursor) InsRightOf(n *tree.Node) *Cursor {
	return c.InsDirOf(tree.Right, n)
}

// InsAtDirEnd places the cursor at the dir end of n's children.
func (c *Cursor) InsAtDirEnd(dir tree.Direction, n *tree.Node) *Cursor {
	c.withDirInsertAt(dir, n, nil, n.End(dir))
	return c
}

// InsAtLeftEnd places the cursor before n's first child.
func (c *Cursor) InsAtLeftEnd(n *tree.Node) *Cursor {
	return c.InsAtDirEnd(tree.Left, n)
}

// InsAtRightEnd places the cursor after n's last child.
func (c *Cursor) InsAtRightEnd(n *tree.Node) *Cursor {
	return c.InsAtDirEnd(tree.Right, n)
}

// HopOver moves the cursor across n, which must be its dir sibling, staying
// in the same parent.
func (c *Cursor) HopOver(dir tree.Direction, n *tree.Node) *Cursor {
	c.pos.SetSibling(dir.Opposite(), n)
	c.pos.SetSibling(dir, n.Sibling(dir))
	return c
}

// RemoveTowards removes n, the cursor's dir sibling, keeping the cursor in
// the gap n leaves behind.
func (c *Cursor) RemoveTowards(dir tree.Direction, n *tree.Node) *Cursor {
	c.pos.SetSibling(dir, n.Remove().Sibling(dir))
	return c
}

// Depth counts the ancestors of the cursor, starting with its parent, that
// pass the depth filter.
func (c *Cursor) Depth() int {
	depth := 0
	for n := c.pos.Parent; n != nil; n = n.Parent() {
		if c.depthFilter == nil || c.depthFilter(n) {
			depth++
		}
	}
	return depth
}

// IsTooDeep reports whether content nesting offset more levels below the
// cursor would exceed the configured maximum depth.
func (c *Cursor) IsTooDeep(offset int) bool {
	if c.maxDepth == 0 {
		return false
	}
	return c.Depth()+offset > c.maxDepth
}
