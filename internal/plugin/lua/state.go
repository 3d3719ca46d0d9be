package lua

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single DoString or DoFile call.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps gopher-lua for plugin execution.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	print            func(string)

	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the execution timeout for each call. Zero
// disables the timeout; the caller's context still applies.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d >= 0 {
			s.executionTimeout = d
		}
	}
}

// WithPrint redirects the Lua print function. By default printed output is
// discarded.
func WithPrint(fn func(line string)) StateOption {
	return func(s *State) {
		s.print = fn
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	state := &State{
		executionTimeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(state)
	}

	state.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(state.L)
	state.installSandbox()
	return state
}

// openSafeLibraries opens only safe Lua standard libraries. io, os, debug
// and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installSandbox removes the functions that load code and replaces print.
func (s *State) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		if s.print == nil {
			return 0
		}
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		s.print(strings.Join(parts, "\t"))
		return 0
	}))
}

// DoFile executes a Lua file.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.run(ctx, func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a chunk of Lua source.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.run(ctx, func() error {
		return s.L.DoString(code)
	})
}

func (s *State) run(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	err := doWithRecovery(fn)
	if err == nil {
		return nil
	}
	switch ctxErr := ctx.Err(); {
	case errors.Is(ctxErr, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	case ctxErr != nil:
		return ctxErr
	}
	return err
}

// doWithRecovery executes a function with panic recovery.
func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// RegisterModule installs a global table holding funcs and returns it so
// the caller can add fields.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) *lua.LTable {
	s.mu.Lock()
	defer s.mu.Unlock()

	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	if !s.closed {
		s.L.SetGlobal(name, mod)
	}
	return mod
}

// Close releases all resources associated with the Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
