package cursor

import (
	"github.com/dshills/mathfield/internal/tree"
)

// Node kinds customize navigation by implementing any of these interfaces.
// A kind that does not implement one gets the generic behavior described on
// the corresponding Cursor method.

// Mover is implemented by kinds that handle the cursor arriving at them
// from the opposite side of dir.
type Mover interface {
	MoveTowards(n *tree.Node, dir tree.Direction, c *Cursor)
}

// Exiter is implemented by kinds that handle the cursor leaving their
// children through the dir end.
type Exiter interface {
	MoveOutOf(n *tree.Node, dir tree.Direction, c *Cursor)
}

// Deleter is implemented by kinds that handle a delete towards them.
type Deleter interface {
	DeleteTowards(n *tree.Node, dir tree.Direction, c *Cursor)
}

// DeleteExiter is implemented by kinds that handle a delete at the dir end
// of their children.
type DeleteExiter interface {
	DeleteOutOf(n *tree.Node, dir tree.Direction, c *Cursor)
}

// SelectMover is implemented by kinds that handle the selection growing
// across them.
type SelectMover interface {
	SelectTowards(n *tree.Node, dir tree.Direction, c *Cursor)
}

// SelectExiter is implemented by kinds that handle the selection growing out
// through the dir end of their children.
type SelectExiter interface {
	SelectOutOf(n *tree.Node, dir tree.Direction, c *Cursor)
}

// Unselector is implemented by kinds that handle the selection shrinking
// back into them.
type Unselector interface {
	UnselectInto(n *tree.Node, dir tree.Direction, c *Cursor)
}

// Seeker is implemented by kinds that place the cursor for a hit at
// relative horizontal offset x in [0, 1] of the node.
type Seeker interface {
	Seek(n *tree.Node, x float64, c *Cursor)
}

// Focuser is notified when the cursor enters a node's children.
type Focuser interface {
	Focus(n *tree.Node, c *Cursor)
}

// Blurrer is notified when the cursor leaves a node's children.
type Blurrer interface {
	Blur(n *tree.Node, c *Cursor)
}

// Event classifies a cursor operation for Notify.
type Event int

const (
	// EventMove is a plain movement. It clears the selection.
	EventMove Event = iota

	// EventSelect grows or shrinks the selection. It keeps the anticursor.
	EventSelect

	// EventEdit changes the tree at the cursor. It deletes the selection.
	EventEdit
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventMove:
		return "move"
	case EventSelect:
		return "select"
	case EventEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Notify applies the selection bookkeeping that precedes an operation of
// the given class. Anything but a select ends the anticursor.
func (c *Cursor) Notify(e Event) *Cursor {
	switch e {
	case EventEdit:
		c.DeleteSelection()
	case EventMove:
		c.ClearSelection()
	}
	if e != EventSelect {
		c.EndSelection()
	}
	return c
}

// Move moves the cursor one step in dir. With a selection, the cursor
// collapses to the selection's dir edge. Otherwise a leaf is hopped over, a
// node with children is entered at its near end, and at the end of a
// sequence the cursor steps out of its parent.
func (c *Cursor) Move(dir tree.Direction) *Cursor {
	if c.selection != nil {
		c.InsDirOf(dir, c.selection.End(dir))
	} else if n := c.Sibling(dir); n != nil {
		c.moveTowards(dir, n)
	} else {
		c.moveOutOf(dir, c.pos.Parent)
	}
	return c.Notify(EventMove)
}

// SelectDir extends the selection one step in dir, starting a selection at
// the current position if none is in progress. Stepping back over the
// selection's far edge into the node holding the anticursor retracts it.
func (c *Cursor) SelectDir(dir tree.Direction) *Cursor {
	c.Notify(EventSelect)
	if c.anticursor == nil {
		c.StartSelection()
	}
	seln := c.selection
	if n := c.Sibling(dir); n != nil {
		if seln != nil && seln.End(dir) == n && c.anticursor.Sibling(dir.Opposite()) != n {
			c.unselectInto(dir, n)
		} else {
			c.selectTowards(dir, n)
		}
	} else {
		c.selectOutOf(dir, c.pos.Parent)
	}
	c.selection = nil
	if !c.Select() && seln != nil {
		c.selectionChanged()
	}
	return c
}

// SelectAll selects every child of root.
func (c *Cursor) SelectAll(root *tree.Node) *Cursor {
	c.Notify(EventMove)
	c.InsAtRightEnd(root)
	if root.IsEmpty() {
		return c
	}
	c.StartSelection()
	c.InsAtLeftEnd(root)
	c.Select()
	return c
}

// DeleteDir deletes in dir. A selection is deleted as a whole; otherwise the
// dir sibling is deleted, or the cursor's parent handles a delete at its end.
// It reports whether anything was a candidate for deletion.
func (c *Cursor) DeleteDir(dir tree.Direction) bool {
	hadSelection := c.selection != nil
	c.Notify(EventEdit)
	if hadSelection {
		return true
	}
	if n := c.Sibling(dir); n != nil {
		c.deleteTowards(dir, n)
		return true
	}
	return c.deleteOutOf(dir, c.pos.Parent)
}

// Seek places the cursor for a hit on target at relative offset x in
// [0, 1]. By default the cursor lands on whichever side of target is nearer.
func (c *Cursor) Seek(target *tree.Node, x float64) *Cursor {
	c.Notify(EventMove)
	if s, ok := target.Kind().(Seeker); ok {
		s.Seek(target, x, c)
		return c
	}
	switch {
	case target.Parent() == nil && x < 0.5:
		c.InsAtLeftEnd(target)
	case target.Parent() == nil:
		c.InsAtRightEnd(target)
	case x < 0.5:
		c.InsLeftOf(target)
	default:
		c.InsRightOf(target)
	}
	return c
}

// UnwrapGramp dissolves the cursor's grandparent: the children of each of its
// children move up into its place, in order, and the cursor stays next to
// the content it was beside.
func (c *Cursor) UnwrapGramp() *Cursor {
	gramp := c.pos.Parent.Parent()
	greatgramp := gramp.Parent()
	leftward, rightward := gramp.Left(), gramp.Right()

	gramp.Disown()
	gramp.EachChild(func(uncle *tree.Node) bool {
		if !uncle.IsEmpty() {
			uncle.Children().Adopt(greatgramp, leftward, rightward)
			leftward = uncle.End(tree.Right)
		}
		return true
	})

	right := c.pos.Right
	if right == nil {
		if c.pos.Left != nil {
			right = c.pos.Left.Right()
		} else {
			// Nothing in this block: land before the next block's content.
			for block := c.pos.Parent.Right(); ; block = block.Right() {
				if block == nil {
					right = rightward
					break
				}
				if right = block.End(tree.Left); right != nil {
					break
				}
			}
		}
	}
	if right != nil {
		c.InsLeftOf(right)
	} else {
		c.InsAtRightEnd(greatgramp)
	}
	return c
}

func (c *Cursor) moveTowards(dir tree.Direction, n *tree.Node) {
	if m, ok := n.Kind().(Mover); ok {
		m.MoveTowards(n, dir, c)
		return
	}
	if n.IsEmpty() {
		c.HopOver(dir, n)
		return
	}
	c.InsAtDirEnd(dir.Opposite(), n)
}

func (c *Cursor) moveOutOf(dir tree.Direction, parent *tree.Node) {
	if e, ok := parent.Kind().(Exiter); ok {
		e.MoveOutOf(parent, dir, c)
		return
	}
	if parent.Parent() != nil {
		c.InsDirOf(dir, parent)
	}
}

func (c *Cursor) selectTowards(dir tree.Direction, n *tree.Node) {
	if s, ok := n.Kind().(SelectMover); ok {
		s.SelectTowards(n, dir, c)
		return
	}
	c.HopOver(dir, n)
}

func (c *Cursor) selectOutOf(dir tree.Direction, parent *tree.Node) {
	if s, ok := parent.Kind().(SelectExiter); ok {
		s.SelectOutOf(parent, dir, c)
		return
	}
	if parent.Parent() != nil {
		c.InsDirOf(dir, parent)
	}
}

func (c *Cursor) unselectInto(dir tree.Direction, n *tree.Node) {
	if u, ok := n.Kind().(Unselector); ok {
		u.UnselectInto(n, dir, c)
		return
	}
	if through, _ := c.anticursor.Through(n); through != nil {
		c.InsAtDirEnd(dir.Opposite(), through)
		return
	}
	// The anticursor sits among n's own children.
	c.InsAtDirEnd(dir.Opposite(), n)
}

func (c *Cursor) deleteTowards(dir tree.Direction, n *tree.Node) {
	if d, ok := n.Kind().(Deleter); ok {
		d.DeleteTowards(n, dir, c)
		return
	}
	if n.IsEmpty() {
		c.RemoveTowards(dir, n)
		return
	}
	c.moveTowards(dir, n)
}

func (c *Cursor) deleteOutOf(dir tree.Direction, parent *tree.Node) bool {
	if d, ok := parent.Kind().(DeleteExiter); ok {
		d.DeleteOutOf(parent, dir, c)
		return true
	}
	gramp := parent.Parent()
	if gramp == nil || gramp.Parent() == nil {
		return false
	}
	c.UnwrapGramp()
	return true
}
