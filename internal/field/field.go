package field

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/mathfield/internal/cursor"
	"github.com/dshills/mathfield/internal/event"
	"github.com/dshills/mathfield/internal/event/events"
	"github.com/dshills/mathfield/internal/event/topic"
	"github.com/dshills/mathfield/internal/notation"
	"github.com/dshills/mathfield/internal/tree"
)

// Logger is the logging the field needs. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// DefaultAutoCommands are the names typing converts to commands when no
// other list is configured.
var DefaultAutoCommands = []string{"alpha", "beta", "gamma", "theta", "pi", "infty", "sqrt"}

// Field holds one editable formula.
type Field struct {
	id           string
	reg          *notation.Registry
	grammar      *notation.Grammar
	root         *tree.Node
	cursor       *cursor.Cursor
	bus          *event.Bus
	logger       Logger
	maxDepth     int
	autoCommands map[string]bool
	normalize    bool

	selectionDirty bool
}

// Option configures a Field.
type Option func(*Field)

// WithID sets the field identifier. By default a random UUID is used.
func WithID(id string) Option {
	return func(f *Field) {
		if id != "" {
			f.id = id
		}
	}
}

// WithRegistry sets the command registry. By default the field uses
// notation.DefaultRegistry.
func WithRegistry(reg *notation.Registry) Option {
	return func(f *Field) {
		if reg != nil {
			f.reg = reg
		}
	}
}

// WithBus sets the bus the field publishes to.
func WithBus(bus *event.Bus) Option {
	return func(f *Field) {
		f.bus = bus
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithMaxDepth limits how many blocks may nest, the root block included.
// Zero means unlimited.
func WithMaxDepth(depth int) Option {
	return func(f *Field) {
		if depth >= 0 {
			f.maxDepth = depth
		}
	}
}

// WithAutoCommands sets the names that typing converts to commands as soon
// as their last letter is typed. No names disables conversion.
func WithAutoCommands(names ...string) Option {
	return func(f *Field) {
		f.autoCommands = make(map[string]bool, len(names))
		for _, name := range names {
			f.autoCommands[name] = true
		}
	}
}

// WithNormalize enables NFC normalization of all text entering the field.
func WithNormalize(enabled bool) Option {
	return func(f *Field) {
		f.normalize = enabled
	}
}

// New creates an empty field.
func New(opts ...Option) *Field {
	f := &Field{
		id:        uuid.NewString(),
		reg:       notation.DefaultRegistry(),
		logger:    nopLogger{},
		normalize: true,
	}
	WithAutoCommands(DefaultAutoCommands...)(f)
	for _, opt := range opts {
		opt(f)
	}

	f.grammar = notation.NewGrammar(f.reg)
	f.root = notation.NewBlock()
	f.cursor = cursor.New(f.root,
		cursor.WithDepthFilter(notation.IsBlock),
		cursor.WithMaxDepth(f.maxDepth),
		cursor.WithSelectionListener(func(*cursor.Cursor) { f.selectionDirty = true }),
	)
	return f
}

// ID returns the field identifier.
func (f *Field) ID() string {
	return f.id
}

// Root returns the root block.
func (f *Field) Root() *tree.Node {
	return f.root
}

// Cursor returns the field's cursor. Moving it directly bypasses event
// publication.
func (f *Field) Cursor() *cursor.Cursor {
	return f.cursor
}

// Registry returns the command registry.
func (f *Field) Registry() *notation.Registry {
	return f.reg
}

// Latex serializes the whole field.
func (f *Field) Latex() string {
	return notation.Latex(f.root)
}

// Text renders the whole field as display text.
func (f *Field) Text() string {
	return notation.Text(f.root)
}

// SelectedLatex serializes the selection, or returns "" without one.
func (f *Field) SelectedLatex() string {
	if sel := f.cursor.Selection(); sel != nil {
		return notation.LatexOf(sel)
	}
	return ""
}

// HasSelection reports whether anything is selected.
func (f *Field) HasSelection() bool {
	return f.cursor.Selection() != nil
}

func (f *Field) clean(s string) string {
	if f.normalize {
		return norm.NFC.String(s)
	}
	return s
}

// state is what an operation compares against to decide what to publish.
type state struct {
	latex string
	pos   tree.Point
}

func (f *Field) begin() state {
	return state{latex: f.Latex(), pos: f.cursor.Point()}
}

// finish invalidates serializations above the cursor and publishes what
// changed since before.
func (f *Field) finish(before state) {
	f.cursor.Parent().Bubble(tree.OpEdited)

	latex := f.Latex()
	switch {
	case latex != before.latex:
		f.logger.Debug("field %s edited: %q", f.id, latex)
		publish(f, events.TopicFieldEdited, events.FieldEdited{FieldID: f.id, Latex: latex})
	case !f.cursor.Point().Equal(before.pos):
		publish(f, events.TopicFieldCursorMoved, events.CursorMoved{FieldID: f.id, Depth: f.cursor.Depth()})
	}
	if f.selectionDirty {
		f.selectionDirty = false
		publish(f, events.TopicFieldSelectionChanged, events.SelectionChanged{FieldID: f.id, Latex: f.SelectedLatex()})
	}
}

func publish[T any](f *Field, t topic.Topic, payload T) {
	if f.bus == nil {
		return
	}
	if err := f.bus.Publish(context.Background(), event.NewEvent(t, payload, "field")); err != nil {
		f.logger.Warn("publish %s: %v", t, err)
	}
}
