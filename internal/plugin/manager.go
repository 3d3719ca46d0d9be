package plugin

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dshills/mathfield/internal/notation"
	plua "github.com/dshills/mathfield/internal/plugin/lua"
)

// Manager runs plugin scripts in order against a shared registry.
type Manager struct {
	mu sync.RWMutex

	reg              *notation.Registry
	logger           Logger
	executionTimeout time.Duration

	hosts []*Host
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger handed to every host.
func WithLogger(l Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithExecutionTimeout bounds how long each script may run.
func WithExecutionTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.executionTimeout = d
	}
}

// NewManager creates a manager registering into reg.
func NewManager(reg *notation.Registry, opts ...ManagerOption) *Manager {
	m := &Manager{
		reg:              reg,
		logger:           nopLogger{},
		executionTimeout: plua.DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load runs the script at path.
func (m *Manager) Load(ctx context.Context, path string) (*Host, error) {
	return m.load(ctx, path)
}

// LoadSource runs source under name.
func (m *Manager) LoadSource(ctx context.Context, name, source string) (*Host, error) {
	return m.load(ctx, name, WithSource(source))
}

func (m *Manager) load(ctx context.Context, name string, extra ...HostOption) (*Host, error) {
	opts := append([]HostOption{
		WithHostLogger(m.logger),
		WithHostExecutionTimeout(m.executionTimeout),
	}, extra...)
	h := NewHost(name, m.reg, opts...)

	m.mu.Lock()
	m.hosts = append(m.hosts, h)
	m.mu.Unlock()

	return h, h.Load(ctx)
}

// LoadAll runs every script in paths. A failing script does not stop the
// others; all failures are joined. A done context stops the run.
func (m *Manager) LoadAll(ctx context.Context, paths []string) error {
	var errs []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := m.Load(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// List returns the hosts in load order.
func (m *Manager) List() []*Host {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Host(nil), m.hosts...)
}

// Count returns the number of hosts.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hosts)
}

// Errors returns the failures by script name.
func (m *Manager) Errors() map[string]error {
	errs := make(map[string]error)
	for _, h := range m.List() {
		if err := h.Err(); err != nil {
			errs[h.Name()] = err
		}
	}
	return errs
}

// AutoCommands returns the auto-command names requested by loaded scripts,
// without duplicates, in load order.
func (m *Manager) AutoCommands() []string {
	var names []string
	for _, h := range m.List() {
		if h.State() != StateLoaded {
			continue
		}
		for _, name := range h.AutoCommands() {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	return names
}
