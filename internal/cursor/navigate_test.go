package cursor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/mathfield/internal/tree"
)

// flat builds root(a, g(g1, g2), b).
func flat() (root, a, g, g1, g2, b *tree.Node) {
	root = tree.New(nil)
	a = tree.New(nil).Adopt(root, nil, nil)
	g = tree.New(nil).Adopt(root, a, nil)
	b = tree.New(nil).Adopt(root, g, nil)
	g1 = tree.New(nil).Adopt(g, nil, nil)
	g2 = tree.New(nil).Adopt(g, g1, nil)
	return
}

func TestMoveWalksTree(t *testing.T) {
	root, a, g, g1, g2, b := flat()
	c := New(root)

	steps := []tree.Point{
		tree.NewPoint(root, g, b),
		tree.NewPoint(g, g2, nil),
		tree.NewPoint(g, g1, g2),
		tree.NewPoint(g, nil, g1),
		tree.NewPoint(root, a, g),
		tree.NewPoint(root, nil, a),
		tree.NewPoint(root, nil, a), // the root end stops the cursor
	}
	for i, want := range steps {
		c.Move(tree.Left)
		if got := c.Point(); !got.Equal(want) {
			t.Fatalf("after %d moves left: cursor at %v, want %v", i+1, got, want)
		}
	}

	steps = []tree.Point{
		tree.NewPoint(root, a, g),
		tree.NewPoint(g, nil, g1),
		tree.NewPoint(g, g1, g2),
		tree.NewPoint(g, g2, nil),
		tree.NewPoint(root, g, b),
		tree.NewPoint(root, b, nil),
	}
	for i, want := range steps {
		c.Move(tree.Right)
		if got := c.Point(); !got.Equal(want) {
			t.Fatalf("after %d moves right: cursor at %v, want %v", i+1, got, want)
		}
	}
}

func TestMoveCollapsesSelection(t *testing.T) {
	root, a, _, _, _, b := flat()
	c := New(root)
	c.SelectAll(root)

	c.Move(tree.Left)
	if got, want := c.Point(), tree.NewPoint(root, nil, a); !got.Equal(want) {
		t.Errorf("cursor at %v, want %v", got, want)
	}
	if c.Selection() != nil || c.Anticursor() != nil {
		t.Error("move should clear the selection and the anticursor")
	}

	c.SelectAll(root)
	c.Move(tree.Right)
	if got, want := c.Point(), tree.NewPoint(root, b, nil); !got.Equal(want) {
		t.Errorf("cursor at %v, want %v", got, want)
	}
}

func TestSelectDirGrowsAndShrinks(t *testing.T) {
	root, _, g, _, _, b := flat()
	notified := 0
	c := New(root, WithSelectionListener(func(*Cursor) { notified++ }))

	c.SelectDir(tree.Left)
	c.SelectDir(tree.Left)
	if diff := cmp.Diff([]tree.NodeID{g.ID(), b.ID()}, spanIDs(c.Selection())); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	c.SelectDir(tree.Right)
	if diff := cmp.Diff([]tree.NodeID{b.ID()}, spanIDs(c.Selection())); diff != "" {
		t.Errorf("selection after shrinking mismatch (-want +got):\n%s", diff)
	}

	c.SelectDir(tree.Right)
	if c.Selection() != nil {
		t.Error("selection should be empty back at the anticursor")
	}
	if notified != 4 {
		t.Errorf("listener called %d times, want 4", notified)
	}
}

func TestSelectDirOutOfAndBackInto(t *testing.T) {
	root, _, g, g1, g2, b := flat()
	c := New(root)
	place(c, tree.NewPoint(g, g1, g2))

	c.SelectDir(tree.Right)
	if diff := cmp.Diff([]tree.NodeID{g2.ID()}, spanIDs(c.Selection())); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	// Leaving g selects g as a whole.
	c.SelectDir(tree.Right)
	if diff := cmp.Diff([]tree.NodeID{g.ID()}, spanIDs(c.Selection())); diff != "" {
		t.Errorf("selection out of g mismatch (-want +got):\n%s", diff)
	}
	if got, want := c.Point(), tree.NewPoint(root, g, b); !got.Equal(want) {
		t.Errorf("cursor at %v, want %v", got, want)
	}

	// Stepping back retracts into g.
	c.SelectDir(tree.Left)
	if diff := cmp.Diff([]tree.NodeID{g2.ID()}, spanIDs(c.Selection())); diff != "" {
		t.Errorf("selection back in g mismatch (-want +got):\n%s", diff)
	}
	if c.Parent() != g {
		t.Errorf("cursor parent = %v, want %v", c.Parent(), g)
	}
}

func TestDeleteDir(t *testing.T) {
	root, a, g, _, _, _ := flat()
	c := New(root)

	if !c.DeleteDir(tree.Left) {
		t.Error("DeleteDir with a sibling should report a deletion")
	}
	if diff := cmp.Diff([]tree.NodeID{a.ID(), g.ID()}, spanIDs(root.Children())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	// g has children, so deleting towards it enters it instead.
	c.DeleteDir(tree.Left)
	if c.Parent() != g {
		t.Errorf("cursor parent = %v, want %v", c.Parent(), g)
	}

	c.InsAtLeftEnd(root)
	if c.DeleteDir(tree.Left) {
		t.Error("DeleteDir at the root's left end should do nothing")
	}
}

func TestDeleteDirRemovesSelection(t *testing.T) {
	root, _, _, _, _, _ := flat()
	c := New(root)
	c.SelectAll(root)

	if !c.DeleteDir(tree.Right) {
		t.Error("deleting a selection should report a deletion")
	}
	if !root.IsEmpty() {
		t.Error("root should be empty")
	}
	if c.Selection() != nil || c.Anticursor() != nil {
		t.Error("selection state should be cleared")
	}
}

// command builds root(a, cmd(blk1(...), blk2(...)), b) with the given
// number of leaves in each block.
func command(n1, n2 int) (root, a, cmd, blk1, blk2, b *tree.Node) {
	root = tree.New(nil)
	a = tree.New(nil).Adopt(root, nil, nil)
	cmd = tree.New(nil).Adopt(root, a, nil)
	b = tree.New(nil).Adopt(root, cmd, nil)
	blk1 = tree.New(nil).Adopt(cmd, nil, nil)
	blk2 = tree.New(nil).Adopt(cmd, blk1, nil)
	var prev *tree.Node
	for i := 0; i < n1; i++ {
		prev = tree.New(nil).Adopt(blk1, prev, nil)
	}
	prev = nil
	for i := 0; i < n2; i++ {
		prev = tree.New(nil).Adopt(blk2, prev, nil)
	}
	return
}

func TestUnwrapGramp(t *testing.T) {
	tests := []struct {
		name   string
		n1, n2 int
		at     func(blk1 *tree.Node) tree.Point
		dir    tree.Direction
		right  int // index of the root child right of the cursor afterwards
	}{
		{"start of first block", 2, 1, func(blk1 *tree.Node) tree.Point {
			return tree.NewPoint(blk1, nil, blk1.End(tree.Left))
		}, tree.Left, 1},
		{"end of first block", 2, 1, func(blk1 *tree.Node) tree.Point {
			return tree.NewPoint(blk1, blk1.End(tree.Right), nil)
		}, tree.Right, 3},
		{"empty first block", 0, 1, func(blk1 *tree.Node) tree.Point {
			return tree.NewPoint(blk1, nil, nil)
		}, tree.Left, 1},
		{"all blocks empty", 0, 0, func(blk1 *tree.Node) tree.Point {
			return tree.NewPoint(blk1, nil, nil)
		}, tree.Right, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, a, cmd, blk1, _, b := command(tt.n1, tt.n2)
			c := New(root)
			place(c, tt.at(blk1))

			if !c.DeleteDir(tt.dir) {
				t.Fatal("delete at a block end should unwrap the command")
			}
			kids := root.Children().Nodes()
			if len(kids) != 2+tt.n1+tt.n2 {
				t.Fatalf("root has %d children, want %d", len(kids), 2+tt.n1+tt.n2)
			}
			if kids[0] != a || kids[len(kids)-1] != b {
				t.Error("unwrapped content should replace the command in place")
			}
			for _, k := range kids {
				if k == cmd {
					t.Error("command should be gone")
				}
			}
			if got, want := c.Point(), tree.NewPoint(root, kids[tt.right-1], kids[tt.right]); !got.Equal(want) {
				t.Errorf("cursor at %v, want %v", got, want)
			}
		})
	}
}

func TestSeek(t *testing.T) {
	root := tree.New(nil)
	a := tree.New(nil).Adopt(root, nil, nil)
	b := tree.New(nil).Adopt(root, a, nil)
	c := New(root)

	tests := []struct {
		target *tree.Node
		x      float64
		want   tree.Point
	}{
		{b, 0.2, tree.NewPoint(root, a, b)},
		{b, 0.9, tree.NewPoint(root, b, nil)},
		{a, 0.4, tree.NewPoint(root, nil, a)},
		{root, 0.1, tree.NewPoint(root, nil, a)},
		{root, 0.7, tree.NewPoint(root, b, nil)},
	}
	for _, tt := range tests {
		c.Seek(tt.target, tt.x)
		if got := c.Point(); !got.Equal(tt.want) {
			t.Errorf("Seek(%v, %v) = %v, want %v", tt.target, tt.x, got, tt.want)
		}
	}
}

// watcher records focus and blur hooks.
type watcher struct {
	name    string
	journal *[]string
}

func (w *watcher) Name() string              { return w.name }
func (w *watcher) Focus(*tree.Node, *Cursor) { *w.journal = append(*w.journal, "focus:"+w.name) }
func (w *watcher) Blur(*tree.Node, *Cursor)  { *w.journal = append(*w.journal, "blur:"+w.name) }

func TestFocusAndBlur(t *testing.T) {
	var journal []string
	root := tree.New(&watcher{"root", &journal})
	g := tree.New(&watcher{"g", &journal}).Adopt(root, nil, nil)
	tree.New(nil).Adopt(g, nil, nil)

	c := New(root)
	c.Move(tree.Left) // into g
	c.Move(tree.Left) // across g's child
	c.Move(tree.Left) // out of g

	want := []string{"focus:root", "blur:root", "focus:g", "blur:g", "focus:root"}
	if diff := cmp.Diff(want, journal); diff != "" {
		t.Errorf("hook mismatch (-want +got):\n%s", diff)
	}
}

type named string

func (n named) Name() string { return string(n) }

func TestDepth(t *testing.T) {
	root := tree.New(named("block"))
	g := tree.New(nil).Adopt(root, nil, nil)
	blk := tree.New(named("block")).Adopt(g, nil, nil)

	isBlock := func(n *tree.Node) bool { return n.Kind() != nil && n.Kind().Name() == "block" }
	c := New(root, WithMaxDepth(2), WithDepthFilter(isBlock))
	if c.Depth() != 1 {
		t.Errorf("Depth() at root = %d, want 1", c.Depth())
	}

	c.InsAtLeftEnd(blk)
	if c.Depth() != 2 {
		t.Errorf("Depth() in nested block = %d, want 2", c.Depth())
	}
	if c.IsTooDeep(0) {
		t.Error("IsTooDeep(0) at the limit should be false")
	}
	if !c.IsTooDeep(1) {
		t.Error("IsTooDeep(1) past the limit should be true")
	}

	if New(root).IsTooDeep(100) {
		t.Error("without a maximum nothing is too deep")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		e    Event
		want string
	}{
		{EventMove, "move"},
		{EventSelect, "select"},
		{EventEdit, "edit"},
		{Event(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("Event(%d).String() = %q, want %q", tt.e, got, tt.want)
		}
	}
}
