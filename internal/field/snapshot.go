package field

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/dshills/mathfield/internal/notation"
	"github.com/dshills/mathfield/internal/tree"
)

// Snapshot exports the field as JSON for renderers:
//
//	{
//	  "id": "...", "latex": "...", "text": "...",
//	  "cursor": {"parent": 1, "left": 2, "right": null, "depth": 1},
//	  "selection": {"left": 2, "right": 2, "latex": "x"},
//	  "nodes": [{"id": 1, "kind": "block", "parent": null, "latex": "x"}, ...]
//	}
//
// Nodes are listed in document order, parents before children. selection
// is null without a selection.
func (f *Field) Snapshot() (string, error) {
	b := &snapshotBuilder{json: "{}"}
	b.set("id", f.id)
	b.set("latex", f.Latex())
	b.set("text", f.Text())

	c := f.cursor
	b.set("cursor.parent", nodeRef(c.Parent()))
	b.set("cursor.left", nodeRef(c.Left()))
	b.set("cursor.right", nodeRef(c.Right()))
	b.set("cursor.depth", c.Depth())

	if sel := c.Selection(); sel != nil {
		b.set("selection.left", nodeRef(sel.End(tree.Left)))
		b.set("selection.right", nodeRef(sel.End(tree.Right)))
		b.set("selection.latex", notation.LatexOf(sel))
	} else {
		b.set("selection", nil)
	}

	b.set("nodes", []any{})
	b.addNode(f.root)

	if b.err != nil {
		return "", fmt.Errorf("snapshot: %w", b.err)
	}
	return b.json, nil
}

type snapshotBuilder struct {
	json string
	err  error
}

func (b *snapshotBuilder) set(path string, value any) {
	if b.err != nil {
		return
	}
	b.json, b.err = sjson.Set(b.json, path, value)
}

func (b *snapshotBuilder) addNode(n *tree.Node) {
	b.set("nodes.-1", map[string]any{
		"id":     nodeRef(n),
		"kind":   n.Kind().Name(),
		"parent": nodeRef(n.Parent()),
		"latex":  notation.Latex(n),
	})
	n.EachChild(func(child *tree.Node) bool {
		b.addNode(child)
		return true
	})
}

// nodeRef is the JSON form of a node reference: its ID, or null.
func nodeRef(n *tree.Node) any {
	if n == nil {
		return nil
	}
	return uint64(n.ID())
}
