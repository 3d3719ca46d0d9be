package notation

import (
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/dshills/mathfield/internal/parse"
	"github.com/dshills/mathfield/internal/tree"
)

// Spec describes a registered control sequence and produces the parser that
// reads its arguments once the control sequence itself has been read.
type Spec interface {
	// Name returns the control sequence without its backslash.
	Name() string

	// Parser returns a parser yielding the finished *tree.Node.
	Parser(g *Grammar) parse.Parser
}

// SymbolSpec registers a named symbol such as \alpha.
type SymbolSpec struct {
	Ctrl string
	Text string
}

func (s *SymbolSpec) Name() string { return s.Ctrl }

// Parser yields a fresh symbol node without consuming input.
func (s *SymbolSpec) Parser(*Grammar) parse.Parser {
	return parse.New(func(_ string, i int) parse.Result {
		return parse.Success(i, NewSymbol(s.Ctrl, s.Text))
	})
}

// CommandSpec registers a command with Arity argument blocks.
type CommandSpec struct {
	Ctrl  string
	Arity int

	// Optional allows one extra leading argument in brackets, as in \sqrt[3]{x}.
	Optional bool

	// Operator commands are written without a backslash, as ^ and _ are.
	Operator bool
}

func (s *CommandSpec) Name() string { return s.Ctrl }

// Parser reads the arguments and yields the command node with them adopted.
func (s *CommandSpec) Parser(g *Grammar) parse.Parser {
	blocks := g.Block().Times(s.Arity).Map(func(v any) any {
		return s.build(nil, v.([]any))
	})
	if !s.Optional {
		return blocks
	}
	withOpt := g.OptBlock().Chain(func(opt any) parse.Parser {
		return g.Block().Times(s.Arity).Map(func(v any) any {
			return s.build(opt.(*tree.Node), v.([]any))
		})
	})
	return withOpt.Or(blocks)
}

func (s *CommandSpec) build(opt *tree.Node, blocks []any) *tree.Node {
	n := tree.New(&Command{Spec: s, WithOptional: opt != nil})
	if opt != nil {
		opt.Adopt(n, nil, nil)
	}
	for _, b := range blocks {
		b.(*tree.Node).Adopt(n, n.End(tree.Right), nil)
	}
	return n
}

var (
	wordPattern     = regexp.MustCompile(`^[a-zA-Z]+$`)
	operatorPattern = regexp.MustCompile(`^[^a-zA-Z0-9\\{}\[\]\s]$`)
)

// Registry maps control sequences to their specs. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// DefaultRegistry creates a registry with the built-in commands and symbols.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, spec := range []Spec{
		&CommandSpec{Ctrl: "frac", Arity: 2},
		&CommandSpec{Ctrl: "sqrt", Arity: 1, Optional: true},
		&CommandSpec{Ctrl: "^", Arity: 1, Operator: true},
		&CommandSpec{Ctrl: "_", Arity: 1, Operator: true},
		&SymbolSpec{Ctrl: "alpha", Text: "α"},
		&SymbolSpec{Ctrl: "beta", Text: "β"},
		&SymbolSpec{Ctrl: "gamma", Text: "γ"},
		&SymbolSpec{Ctrl: "theta", Text: "θ"},
		&SymbolSpec{Ctrl: "pi", Text: "π"},
		&SymbolSpec{Ctrl: "infty", Text: "∞"},
		&SymbolSpec{Ctrl: "cdot", Text: "·"},
		&SymbolSpec{Ctrl: "times", Text: "×"},
		&SymbolSpec{Ctrl: "pm", Text: "±"},
		&SymbolSpec{Ctrl: "le", Text: "≤"},
		&SymbolSpec{Ctrl: "ge", Text: "≥"},
		&SymbolSpec{Ctrl: "{", Text: "{"},
		&SymbolSpec{Ctrl: "}", Text: "}"},
		&SymbolSpec{Ctrl: " ", Text: " "},
	} {
		r.specs[spec.Name()] = spec
	}
	return r
}

// Register adds spec. Word names must be letters only; other names must be
// a single character.
func (r *Registry) Register(spec Spec) error {
	name := spec.Name()
	if !wordPattern.MatchString(name) && !operatorPattern.MatchString(name) {
		return fmt.Errorf("register %q: %w", name, ErrInvalidName)
	}
	if cmd, ok := spec.(*CommandSpec); ok && cmd.Arity < 0 {
		return fmt.Errorf("register %q: %w: %d", name, ErrInvalidArity, cmd.Arity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.specs[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrAlreadyRegistered)
	}
	r.specs[name] = spec
	return nil
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[name]
	return spec, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Words returns the registered names of two or more letters, sorted. These
// are the names that typing can turn into commands.
func (r *Registry) Words() []string {
	var words []string
	for _, name := range r.Names() {
		if len(name) > 1 && wordPattern.MatchString(name) {
			words = append(words, name)
		}
	}
	return words
}
