package notation

import (
	"github.com/dshills/mathfield/internal/cursor"
	"github.com/dshills/mathfield/internal/tree"
)

// Block is the kind of a sequence of notation: the document root and every
// command argument. It caches its serialized form until an edit below it.
type Block struct {
	latex string
	valid bool
}

// NewBlock creates an empty block node.
func NewBlock() *tree.Node {
	return tree.New(&Block{})
}

// IsBlock reports whether n is a block. Cursor depth counts only blocks.
func IsBlock(n *tree.Node) bool {
	_, ok := n.Kind().(*Block)
	return ok
}

func (b *Block) Name() string { return "block" }

// Edited drops the cached serialization.
func (b *Block) Edited(*tree.Node) bool {
	b.valid = false
	return true
}

// MoveOutOf enters the neighboring argument of the same command, or leaves
// the command when there is none. The root block keeps the cursor.
func (b *Block) MoveOutOf(n *tree.Node, dir tree.Direction, c *cursor.Cursor) {
	if sib := n.Sibling(dir); sib != nil {
		c.InsAtDirEnd(dir.Opposite(), sib)
		return
	}
	if n.Parent() != nil {
		c.InsDirOf(dir, n.Parent())
	}
}

// SelectOutOf grows the selection over the whole command holding the block.
// The root block keeps the cursor.
func (b *Block) SelectOutOf(n *tree.Node, dir tree.Direction, c *cursor.Cursor) {
	if p := n.Parent(); p != nil {
		c.InsDirOf(dir, p)
	}
}

// DeleteOutOf dissolves the command around the block, keeping the content
// of all its arguments.
func (b *Block) DeleteOutOf(n *tree.Node, _ tree.Direction, c *cursor.Cursor) {
	if n.Parent() == nil {
		return
	}
	c.UnwrapGramp()
}

// Letter is a single variable letter.
type Letter struct {
	Ch string
}

// NewLetter creates a letter node.
func NewLetter(ch string) *tree.Node {
	return tree.New(&Letter{Ch: ch})
}

func (l *Letter) Name() string { return "letter" }

// Symbol is a leaf written either literally (Ctrl empty) or as \Ctrl.
// Text is what it displays as.
type Symbol struct {
	Ctrl string
	Text string
}

// NewSymbol creates a symbol node.
func NewSymbol(ctrl, text string) *tree.Node {
	return tree.New(&Symbol{Ctrl: ctrl, Text: text})
}

func (s *Symbol) Name() string { return "symbol" }

// Command is a node with a fixed number of block children. Optional
// commands may carry one extra leading block, written in brackets.
type Command struct {
	Spec *CommandSpec

	// WithOptional reports whether the leading optional block is present.
	WithOptional bool

	blocks []*tree.Node
}

// NewCommand creates a command node with empty blocks. withOptional adds
// the optional leading block when spec allows one.
func NewCommand(spec *CommandSpec, withOptional bool) *tree.Node {
	n := tree.New(&Command{Spec: spec, WithOptional: withOptional && spec.Optional})
	count := spec.Arity
	if withOptional && spec.Optional {
		count++
	}
	for i := 0; i < count; i++ {
		NewBlock().Adopt(n, n.End(tree.Right), nil)
	}
	n.PostOrder(tree.OpFinalize)
	return n
}

func (k *Command) Name() string { return k.Spec.Ctrl }

// Blocks returns the command's argument blocks, in order, as of the last
// finalize pass.
func (k *Command) Blocks() []*tree.Node {
	return k.blocks
}

// Finalize records the argument blocks.
func (k *Command) Finalize(n *tree.Node) {
	k.blocks = n.Children().Nodes()
}

// Dispose forgets the argument blocks.
func (k *Command) Dispose(*tree.Node) {
	k.blocks = nil
}

// MoveTowards enters the nearest argument.
func (k *Command) MoveTowards(n *tree.Node, dir tree.Direction, c *cursor.Cursor) {
	end := n.End(dir.Opposite())
	if end == nil {
		c.HopOver(dir, n)
		return
	}
	c.InsAtDirEnd(dir.Opposite(), end)
}

// DeleteTowards removes the command when all its arguments are empty and
// otherwise moves into it.
func (k *Command) DeleteTowards(n *tree.Node, dir tree.Direction, c *cursor.Cursor) {
	empty := true
	n.EachChild(func(b *tree.Node) bool {
		empty = b.IsEmpty()
		return empty
	})
	if empty {
		c.RemoveTowards(dir, n)
		return
	}
	k.MoveTowards(n, dir, c)
}

// Seek places the cursor beside the command near its edges and otherwise
// at the end of the argument under x.
func (k *Command) Seek(n *tree.Node, x float64, c *cursor.Cursor) {
	blocks := n.Children().Nodes()
	switch {
	case len(blocks) == 0 || x < 0.1:
		if x < 0.5 {
			c.InsLeftOf(n)
		} else {
			c.InsRightOf(n)
		}
	case x > 0.9:
		c.InsRightOf(n)
	default:
		i := int((x - 0.1) / 0.8 * float64(len(blocks)))
		c.InsAtRightEnd(blocks[min(i, len(blocks)-1)])
	}
}

// PlaceCursor puts the cursor at the end of the first empty argument, or of
// the last argument when none is empty.
func (k *Command) PlaceCursor(n *tree.Node, c *cursor.Cursor) {
	target := tree.FoldChildren(n, (*tree.Node)(nil), func(acc, b *tree.Node) *tree.Node {
		if acc != nil && acc.IsEmpty() {
			return acc
		}
		return b
	})
	if target == nil {
		c.InsRightOf(n)
		return
	}
	c.InsAtRightEnd(target)
}
