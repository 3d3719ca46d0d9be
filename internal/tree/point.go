package tree

import "fmt"

// Point is a gap among a parent's children: immediately right of Left and
// immediately left of Right. A nil sibling means the respective end.
type Point struct {
	Parent *Node
	Left   *Node
	Right  *Node
}

// NewPoint creates a point in parent between leftward and rightward.
func NewPoint(parent, leftward, rightward *Node) Point {
	return Point{Parent: parent, Left: leftward, Right: rightward}
}

// Sibling returns the node on the given side of the gap.
func (p Point) Sibling(dir Direction) *Node {
	if dir == Left {
		return p.Left
	}
	return p.Right
}

// SetSibling sets the node on the given side of the gap.
func (p *Point) SetSibling(dir Direction, n *Node) {
	if dir == Left {
		p.Left = n
	} else {
		p.Right = n
	}
}

// Equal reports whether both points name the same gap.
func (p Point) Equal(other Point) bool {
	return p.Parent == other.Parent && p.Left == other.Left && p.Right == other.Right
}

// IsValid reports whether the point still names a gap of the live tree.
func (p Point) IsValid() bool {
	return p.Parent != nil && wellFormed(p.Parent, p.Left, p.Right)
}

// String returns a short description of the point.
func (p Point) String() string {
	id := func(n *Node) any {
		if n == nil {
			return "-"
		}
		return n.id
	}
	return fmt.Sprintf("Point(%v: %v|%v)", id(p.Parent), id(p.Left), id(p.Right))
}
