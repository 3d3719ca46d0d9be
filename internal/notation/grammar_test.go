package notation

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/mathfield/internal/parse"
	"github.com/dshills/mathfield/internal/tree"
)

// dump renders the tree shape, e.g. block(a frac(block(b) block(c))).
func dump(n *tree.Node) string {
	var label string
	switch k := n.Kind().(type) {
	case *Letter:
		return k.Ch
	case *Symbol:
		if k.Ctrl != "" {
			return `\` + k.Ctrl
		}
		return k.Text
	default:
		label = n.Kind().Name()
	}
	var parts []string
	n.EachChild(func(c *tree.Node) bool {
		parts = append(parts, dump(c))
		return true
	})
	return label + "(" + strings.Join(parts, " ") + ")"
}

func TestGrammarShapes(t *testing.T) {
	g := NewGrammar(DefaultRegistry())
	tests := []struct {
		input string
		want  string
	}{
		{"", "block()"},
		{"x", "block(x)"},
		{"x y", "block(x y)"},
		{"2+x", "block(2 + x)"},
		{`\frac{a}{b^2}`, "block(frac(block(a) block(b ^(block(2)))))"},
		{`\frac12`, "frac(block(1) block(2))"},
		{`x^{10}`, "block(x ^(block(1 0)))"},
		{`\sqrt{x}`, "block(sqrt(block(x)))"},
		{`\sqrt[3]{x}`, "block(sqrt(block(3) block(x)))"},
		{`\sqrt[]{x}`, "block(sqrt(block() block(x)))"},
		{`\alpha\beta`, `block(\alpha \beta)`},
		{`\{x\}`, `block(\{ x \})`},
		{`{ab}c`, "block(a b c)"},
		{`{}`, "block()"},
		{`π`, "block(π)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := g.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			want := tt.want
			if !strings.HasPrefix(want, "block(") {
				want = "block(" + want + ")"
			}
			if d := dump(got); d != want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, d, want)
			}
		})
	}
}

func TestGrammarErrors(t *testing.T) {
	g := NewGrammar(DefaultRegistry())
	for _, input := range []string{`\foo`, `\frac{a}`, `{x`, `}`, `x^`, `\frac{a}{b`} {
		t.Run(input, func(t *testing.T) {
			_, err := g.Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", input)
			}
			if !errors.Is(err, parse.ErrParse) {
				t.Errorf("Parse(%q) error %v does not wrap parse.ErrParse", input, err)
			}
		})
	}
}

func TestUnknownCommandMessage(t *testing.T) {
	_, err := NewGrammar(DefaultRegistry()).Parse(`x\foo`)
	var pe *parse.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *parse.ParseError", err)
	}
	if pe.Index != 1 {
		t.Errorf("Index = %d, want 1", pe.Index)
	}
	if !strings.Contains(err.Error(), "a known command") {
		t.Errorf("Error() = %q, want mention of a known command", err)
	}
}

func TestLatexRoundTrip(t *testing.T) {
	g := NewGrammar(DefaultRegistry())
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"x y", "xy"},
		{`\frac12`, `\frac{1}{2}`},
		{`\frac{}{}`, `\frac{ }{ }`},
		{`x^2`, `x^2`},
		{`x^{10}`, `x^{10}`},
		{`x_{i}`, `x_i`},
		{`x^{}`, `x^{ }`},
		{`\sqrt[3]{x}`, `\sqrt[3]{x}`},
		{`\sqrt[]{x}`, `\sqrt[]{x}`},
		{`\alpha b`, `\alpha b`},
		{`\alpha+1`, `\alpha+1`},
		{`\alpha\beta`, `\alpha\beta`},
		{`\pi r^2`, `\pi r^2`},
		{`\{x\}`, `\{x\}`},
		{`a\ b`, `a\ b`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := g.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			got := Latex(n)
			if got != tt.want {
				t.Errorf("Latex(Parse(%q)) = %q, want %q", tt.input, got, tt.want)
			}

			again, err := g.Parse(got)
			if err != nil {
				t.Fatalf("reparse of %q error = %v", got, err)
			}
			if dump(again) != dump(n) {
				t.Errorf("reparse of %q = %s, want %s", got, dump(again), dump(n))
			}
		})
	}
}

func TestParseFinalizesCommands(t *testing.T) {
	n, err := NewGrammar(DefaultRegistry()).Parse(`\frac{a}{b}`)
	if err != nil {
		t.Fatal(err)
	}
	cmd := n.End(tree.Left).Kind().(*Command)
	if len(cmd.Blocks()) != 2 {
		t.Errorf("Blocks() has %d entries, want 2", len(cmd.Blocks()))
	}
}

func TestGrammarSeesLaterRegistrations(t *testing.T) {
	reg := DefaultRegistry()
	g := NewGrammar(reg)
	if _, err := g.Parse(`\vec{v}`); err == nil {
		t.Fatal(`\vec should be unknown before registration`)
	}
	if err := reg.Register(&CommandSpec{Ctrl: "vec", Arity: 1}); err != nil {
		t.Fatal(err)
	}
	n, err := g.Parse(`\vec{v}`)
	if err != nil {
		t.Fatalf(`Parse(\vec{v}) error = %v`, err)
	}
	if got := Latex(n); got != `\vec{v}` {
		t.Errorf("Latex() = %q, want %q", got, `\vec{v}`)
	}
}

func TestLatexCacheInvalidatedByEdit(t *testing.T) {
	root, err := NewGrammar(DefaultRegistry()).Parse("ab")
	if err != nil {
		t.Fatal(err)
	}
	if Latex(root) != "ab" {
		t.Fatalf("Latex() = %q, want %q", Latex(root), "ab")
	}

	c := NewLetter("c").Adopt(root, root.End(tree.Right), nil)
	if Latex(root) != "ab" {
		t.Error("cached serialization should survive until the edit is reported")
	}
	c.Bubble(tree.OpEdited)
	if Latex(root) != "abc" {
		t.Errorf("Latex() after edit = %q, want %q", Latex(root), "abc")
	}
}

func TestTextAndNesting(t *testing.T) {
	g := NewGrammar(DefaultRegistry())
	tests := []struct {
		input string
		text  string
		depth int
	}{
		{`\alpha x`, "αx", 0},
		{`\frac{a}{b}`, "ab", 1},
		{`\frac{a}{b^2}`, "ab2", 2},
		{`\sqrt{\sqrt{\sqrt{x}}}`, "x", 3},
	}
	for _, tt := range tests {
		n, err := g.Parse(tt.input)
		if err != nil {
			t.Fatal(err)
		}
		if got := Text(n); got != tt.text {
			t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.text)
		}
		if got := NestedBlocks(n); got != tt.depth {
			t.Errorf("NestedBlocks(%q) = %d, want %d", tt.input, got, tt.depth)
		}
	}
}
