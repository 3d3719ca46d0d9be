package cursor

import (
	"github.com/dshills/mathfield/internal/tree"
)

// anchor is either a node or a gap. Walking up from a position starts at the
// gap itself and continues through nodes.
type anchor struct {
	node  *tree.Node
	point *tree.Point
}

func nodeAnchor(n *tree.Node) anchor {
	return anchor{node: n}
}

func pointAnchor(p tree.Point) anchor {
	return anchor{point: &p}
}

func (a anchor) isPoint() bool {
	return a.point != nil
}

func (a anchor) parent() *tree.Node {
	if a.point != nil {
		return a.point.Parent
	}
	return a.node.Parent()
}

func (a anchor) sibling(dir tree.Direction) *tree.Node {
	if a.point != nil {
		return a.point.Sibling(dir)
	}
	return a.node.Sibling(dir)
}

// Anticursor is the frozen far end of a selection in progress.
type Anticursor struct {
	tree.Point

	// ancestors maps every ancestor of the anticursor to the anchor directly
	// below it on the anticursor's path: the gap itself for its parent, and
	// a node for every higher ancestor.
	ancestors map[tree.NodeID]anchor
}

// Through returns the child of ancestor through which the anticursor's path
// descends. It returns nil, true when the anticursor sits directly among
// ancestor's children, and nil, false when ancestor is not an ancestor at all.
func (a *Anticursor) Through(ancestor *tree.Node) (*tree.Node, bool) {
	an, ok := a.ancestors[ancestor.ID()]
	if !ok {
		return nil, false
	}
	return an.node, true
}

// StartSelection freezes the current position as the anticursor and records
// its ancestor path.
func (c *Cursor) StartSelection() {
	anti := &Anticursor{Point: c.pos, ancestors: make(map[tree.NodeID]anchor)}
	for a := pointAnchor(anti.Point); a.parent() != nil; a = nodeAnchor(a.parent()) {
		anti.ancestors[a.parent().ID()] = a
	}
	c.anticursor = anti
}

// EndSelection drops the anticursor. The selection itself is kept.
func (c *Cursor) EndSelection() {
	c.anticursor = nil
}

// Select selects everything between the cursor and the anticursor, at the
// level of their lowest common ancestor. The cursor moves to the edge of the
// selection it came from. Select returns false, selecting nothing, when both
// are at the same position. It panics when no selection was started or when
// the two positions are in different trees.
func (c *Cursor) Select() bool {
	anti := c.anticursor
	if anti == nil {
		tree.Violation("select", c.pos.Parent, ErrNoAnticursor)
	}
	if c.pos.Left == anti.Left && c.pos.Parent == anti.Parent {
		return false
	}

	// Walk up from the cursor until a parent is on the anticursor's path.
	var lca *tree.Node
	ancestor := pointAnchor(c.pos)
	for ; ancestor.parent() != nil; ancestor = nodeAnchor(ancestor.parent()) {
		if _, ok := anti.ancestors[ancestor.parent().ID()]; ok {
			lca = ancestor.parent()
			break
		}
	}
	if lca == nil {
		tree.Violation("select", c.pos.Parent, ErrNoCommonAncestor)
	}
	antiAncestor := anti.ancestors[lca.ID()]

	// ancestor and antiAncestor now share lca as parent. Unless antiAncestor
	// is the node just left of ancestor, it lies to the right exactly when
	// walking right from ancestor reaches something whose right sibling is
	// antiAncestor's right sibling.
	dir := tree.Right
	if antiAncestor.isPoint() || ancestor.sibling(tree.Left) != antiAncestor.node {
		target := antiAncestor.sibling(tree.Right)
		if ancestor.sibling(tree.Right) == target {
			dir = tree.Left
		} else {
			for n := ancestor.sibling(tree.Right); n != nil; n = n.Right() {
				if n.Right() == target {
					dir = tree.Left
					break
				}
			}
		}
	}

	leftEnd, rightEnd := antiAncestor, ancestor
	if dir == tree.Left {
		leftEnd, rightEnd = ancestor, antiAncestor
	}

	// Only nodes are selected: a gap contributes its inner neighbor.
	l, r := leftEnd.node, rightEnd.node
	if leftEnd.isPoint() {
		l = leftEnd.point.Right
	}
	if rightEnd.isPoint() {
		r = rightEnd.point.Left
	}

	c.selection = lca.SelectChildren(l, r)
	c.InsDirOf(dir, c.selection.End(dir))
	c.selectionChanged()
	return true
}

// ClearSelection forgets the selection without touching the tree.
func (c *Cursor) ClearSelection() *Cursor {
	if c.selection != nil {
		c.selection = nil
		c.selectionChanged()
	}
	return c
}

// DeleteSelection removes the selected nodes from the tree, leaving the
// cursor in the gap they occupied.
func (c *Cursor) DeleteSelection() {
	sel := c.selection
	if sel == nil {
		return
	}
	leftEnd, rightEnd := sel.End(tree.Left), sel.End(tree.Right)
	c.withDirInsertAt(tree.Left, leftEnd.Parent(), leftEnd.Left(), rightEnd.Right())
	sel.Remove()
	c.selection = nil
	c.selectionChanged()
}

// ReplaceSelection detaches the selected nodes and returns them, leaving the
// cursor in the gap. It returns nil without a selection.
func (c *Cursor) ReplaceSelection() *tree.Fragment {
	sel := c.selection
	if sel == nil {
		return nil
	}
	leftEnd, rightEnd := sel.End(tree.Left), sel.End(tree.Right)
	c.withDirInsertAt(tree.Left, leftEnd.Parent(), leftEnd.Left(), rightEnd.Right())
	sel.Disown()
	c.selection = nil
	c.selectionChanged()
	return sel
}

func (c *Cursor) selectionChanged() {
	if c.onSelection != nil {
		c.onSelection(c)
	}
}
