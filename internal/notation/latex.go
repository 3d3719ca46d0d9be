package notation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dshills/mathfield/internal/tree"
)

var (
	trailingWord = regexp.MustCompile(`\\[a-zA-Z]+$`)
	leadingWord  = regexp.MustCompile(`^[a-zA-Z]`)
)

// Latex serializes the subtree at n. Parsing the result with a Grammar over
// the same registry yields an equivalent tree.
func Latex(n *tree.Node) string {
	switch k := n.Kind().(type) {
	case *Block:
		if !k.valid {
			k.latex, k.valid = joinLatex(n), true
		}
		return k.latex
	case *Letter:
		return k.Ch
	case *Symbol:
		if k.Ctrl == "" {
			return k.Text
		}
		return `\` + k.Ctrl
	case *Command:
		return commandLatex(n, k)
	default:
		return joinLatex(n)
	}
}

// LatexOf serializes the nodes of f as one sequence.
func LatexOf(f *tree.Fragment) string {
	var sb strings.Builder
	f.Each(func(n *tree.Node) bool {
		appendLatex(&sb, Latex(n))
		return true
	})
	return sb.String()
}

func joinLatex(n *tree.Node) string {
	var sb strings.Builder
	n.EachChild(func(c *tree.Node) bool {
		appendLatex(&sb, Latex(c))
		return true
	})
	return sb.String()
}

// appendLatex separates a control word from a following letter.
func appendLatex(sb *strings.Builder, s string) {
	if leadingWord.MatchString(s) && trailingWord.MatchString(sb.String()) {
		sb.WriteByte(' ')
	}
	sb.WriteString(s)
}

func commandLatex(n *tree.Node, k *Command) string {
	var sb strings.Builder
	if !k.Spec.Operator {
		sb.WriteByte('\\')
	}
	sb.WriteString(k.Spec.Ctrl)

	first := true
	n.EachChild(func(b *tree.Node) bool {
		arg := Latex(b)
		switch {
		case first && k.WithOptional:
			sb.WriteString("[" + arg + "]")
		case arg == "":
			sb.WriteString("{ }")
		case k.Spec.Operator && utf8.RuneCountInString(arg) == 1:
			sb.WriteString(arg)
		default:
			sb.WriteString("{" + arg + "}")
		}
		first = false
		return true
	})
	return sb.String()
}

// Text renders the subtree at n as display text, symbols by their glyphs.
func Text(n *tree.Node) string {
	switch k := n.Kind().(type) {
	case *Letter:
		return k.Ch
	case *Symbol:
		return k.Text
	}
	var sb strings.Builder
	n.EachChild(func(c *tree.Node) bool {
		sb.WriteString(Text(c))
		return true
	})
	return sb.String()
}

// NestedBlocks returns how many blocks deep the content below n nests.
func NestedBlocks(n *tree.Node) int {
	deepest := 0
	n.EachChild(func(c *tree.Node) bool {
		d := NestedBlocks(c)
		if IsBlock(c) {
			d++
		}
		deepest = max(deepest, d)
		return true
	})
	return deepest
}
