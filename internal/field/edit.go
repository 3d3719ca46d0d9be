package field

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/mathfield/internal/cursor"
	"github.com/dshills/mathfield/internal/notation"
	"github.com/dshills/mathfield/internal/tree"
)

// SetLatex replaces the field's content with the parsed latex and puts the
// cursor at the end. On error the field is unchanged.
func (f *Field) SetLatex(latex string) error {
	parsed, err := f.grammar.Parse(f.clean(latex))
	if err != nil {
		return fmt.Errorf("set latex: %w", err)
	}
	if f.maxDepth > 0 && 1+notation.NestedBlocks(parsed) > f.maxDepth {
		return fmt.Errorf("set latex: %w", ErrTooDeep)
	}

	before := f.begin()
	f.cursor.Notify(cursor.EventMove)
	f.cursor.InsAtRightEnd(f.root)
	f.root.Children().Remove()
	parsed.Children().Adopt(f.root, nil, nil)
	f.cursor.InsAtRightEnd(f.root)
	f.finish(before)
	return nil
}

// WriteLatex parses latex and inserts it at the cursor, replacing the
// selection. The cursor ends up after the inserted content. On error the
// field is unchanged.
func (f *Field) WriteLatex(latex string) error {
	parsed, err := f.grammar.Parse(f.clean(latex))
	if err != nil {
		return fmt.Errorf("write latex: %w", err)
	}
	if f.cursor.IsTooDeep(notation.NestedBlocks(parsed)) {
		return fmt.Errorf("write latex: %w", ErrTooDeep)
	}

	before := f.begin()
	f.cursor.Notify(cursor.EventEdit)
	content := parsed.Children()
	if !content.IsEmpty() {
		c := f.cursor
		content.Adopt(c.Parent(), c.Left(), c.Right())
		c.InsRightOf(content.End(tree.Right))
	}
	f.finish(before)
	return nil
}

// TypeText applies text as if typed key by key, one grapheme cluster at a
// time:
//
//   - letters insert variables, converting a trailing auto-command name;
//   - a backslash starts a control sequence, ended by a non-letter or a
//     space, which inserts the named command or symbol;
//   - operator commands such as ^ and _ take the selection as their first
//     argument and place the cursor inside;
//   - spaces are ignored and anything else inserts a literal symbol.
//
// Typing stops at the first error; what was typed before it stays.
func (f *Field) TypeText(text string) error {
	before := f.begin()
	defer f.finish(before)

	text = f.clean(text)
	for text != "" {
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
		text = rest

		var err error
		switch {
		case cluster == `\`:
			var name string
			name, text = controlName(text)
			err = f.typeControl(name)
		case cluster == " ":
		case isLetter(cluster):
			f.insert(notation.NewLetter(cluster))
			err = f.convertAutoCommand()
		case cluster == "$":
			err = fmt.Errorf("type %q: %w", cluster, ErrUnsupportedCharacter)
		default:
			err = f.typeOther(cluster)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// controlName splits the name of a control sequence off text, which starts
// right after the backslash. A terminating space is consumed.
func controlName(text string) (name, rest string) {
	end := strings.IndexFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z')
	})
	switch {
	case end < 0:
		return text, ""
	case end > 0:
		return text[:end], strings.TrimPrefix(text[end:], " ")
	}
	cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	return cluster, rest
}

func isLetter(s string) bool {
	return len(s) == 1 && ('a' <= s[0] && s[0] <= 'z' || 'A' <= s[0] && s[0] <= 'Z')
}

func (f *Field) typeControl(name string) error {
	spec, ok := f.reg.Lookup(name)
	if !ok {
		return fmt.Errorf("type \\%s: %w", name, ErrUnknownCommand)
	}
	return f.insertSpec(spec)
}

func (f *Field) typeOther(cluster string) error {
	if spec, ok := f.reg.Lookup(cluster); ok {
		if cmd, ok := spec.(*notation.CommandSpec); ok && cmd.Operator {
			return f.insertSpec(spec)
		}
	}
	switch cluster {
	case "{", "}":
		f.insert(notation.NewSymbol(cluster, cluster))
	default:
		f.insert(notation.NewSymbol("", cluster))
	}
	return nil
}

// insertSpec inserts a fresh node for spec. A command takes the selection
// as its first argument and receives the cursor.
func (f *Field) insertSpec(spec notation.Spec) error {
	switch s := spec.(type) {
	case *notation.SymbolSpec:
		f.insert(notation.NewSymbol(s.Ctrl, s.Text))
		return nil
	case *notation.CommandSpec:
		if s.Arity > 0 && f.cursor.IsTooDeep(1+f.selectionNesting()) {
			return fmt.Errorf("type %s: %w", s.Ctrl, ErrTooDeep)
		}
		n := notation.NewCommand(s, false)
		replaced := f.cursor.ReplaceSelection()
		f.cursor.EndSelection()
		f.insert(n)
		cmd := n.Kind().(*notation.Command)
		if replaced != nil && len(cmd.Blocks()) > 0 {
			first := cmd.Blocks()[0]
			replaced.Adopt(first, nil, nil)
			first.Bubble(tree.OpEdited)
		}
		cmd.PlaceCursor(n, f.cursor)
		return nil
	default:
		return fmt.Errorf("type %s: %w", spec.Name(), ErrUnknownCommand)
	}
}

func (f *Field) selectionNesting() int {
	sel := f.cursor.Selection()
	if sel == nil {
		return 0
	}
	return tree.Fold(sel, 0, func(deepest int, n *tree.Node) int {
		return max(deepest, notation.NestedBlocks(n))
	})
}

// insert replaces the selection with n and puts the cursor after it.
func (f *Field) insert(n *tree.Node) {
	c := f.cursor
	c.Notify(cursor.EventEdit)
	n.Adopt(c.Parent(), c.Left(), c.Right())
	n.PostOrder(tree.OpFinalize)
	c.InsRightOf(n)
	n.Bubble(tree.OpEdited)
}

// convertAutoCommand replaces the letters left of the cursor when they end
// with an auto-command name. The longest name wins.
func (f *Field) convertAutoCommand() error {
	if len(f.autoCommands) == 0 {
		return nil
	}

	var letters []*tree.Node
	var word string
	for n := f.cursor.Left(); n != nil; n = n.Left() {
		l, ok := n.Kind().(*notation.Letter)
		if !ok {
			break
		}
		letters = append(letters, n)
		word = l.Ch + word
	}

	for size := len(word); size > 1; size-- {
		name := word[len(word)-size:]
		if !f.autoCommands[name] {
			continue
		}
		spec, ok := f.reg.Lookup(name)
		if !ok {
			continue
		}
		if cmd, ok := spec.(*notation.CommandSpec); ok && cmd.Arity > 0 && f.cursor.IsTooDeep(1) {
			return fmt.Errorf("type %s: %w", name, ErrTooDeep)
		}

		first, last := letters[size-1], letters[0]
		parent, left := first.Parent(), first.Left()
		tree.Span(first, last).Remove()
		if left != nil {
			f.cursor.InsRightOf(left)
		} else {
			f.cursor.InsAtLeftEnd(parent)
		}
		f.logger.Debug("auto-command %s", name)
		return f.insertSpec(spec)
	}
	return nil
}
