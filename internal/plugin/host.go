package plugin

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/mathfield/internal/notation"
	plua "github.com/dshills/mathfield/internal/plugin/lua"
)

// Logger is the logging plugins need. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}

// Host runs a single plugin script against a registry.
type Host struct {
	mu sync.RWMutex

	name   string
	source string
	reg    *notation.Registry
	logger Logger

	executionTimeout time.Duration

	state        State
	err          error
	registered   []string
	autoCommands []string
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostExecutionTimeout bounds how long the script may run.
func WithHostExecutionTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		h.executionTimeout = d
	}
}

// WithHostLogger sets the logger that receives the script's print output.
func WithHostLogger(l Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithSource runs source instead of reading the file called name.
func WithSource(source string) HostOption {
	return func(h *Host) {
		h.source = source
	}
}

// NewHost creates a host for the script at path name.
func NewHost(name string, reg *notation.Registry, opts ...HostOption) *Host {
	h := &Host{
		name:             name,
		reg:              reg,
		logger:           nopLogger{},
		executionTimeout: plua.DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Load runs the script. A host runs at most once.
func (h *Host) Load(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != StateUnloaded {
		return ErrAlreadyLoaded
	}

	state := plua.NewState(
		plua.WithExecutionTimeout(h.executionTimeout),
		plua.WithPrint(func(line string) {
			h.logger.Info("%s: %s", h.name, line)
		}),
	)
	defer state.Close()
	h.installAPI(state)

	var err error
	if h.source != "" {
		err = state.DoString(ctx, h.source)
	} else {
		err = state.DoFile(ctx, h.name)
	}
	if err != nil {
		h.state = StateError
		h.err = &ScriptError{Name: h.name, Err: err}
		return h.err
	}

	h.state = StateLoaded
	h.logger.Debug("loaded plugin %s: %d registered, %d auto-commands",
		h.name, len(h.registered), len(h.autoCommands))
	return nil
}

// Name returns the script path or name.
func (h *Host) Name() string {
	return h.name
}

// State returns the lifecycle state.
func (h *Host) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Err returns the error that put the host in StateError.
func (h *Host) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Registered returns the names the script registered, in order.
func (h *Host) Registered() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.registered...)
}

// AutoCommands returns the names the script asked to convert while typing.
func (h *Host) AutoCommands() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.autoCommands...)
}
