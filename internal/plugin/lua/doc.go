// Package lua runs plugin scripts in a sandboxed gopher-lua state.
//
// A State opens only the base, table, string and math libraries and removes
// the functions that load code from disk or strings:
//
//	state := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	defer state.Close()
//
//	state.RegisterModule("mathfield", funcs)
//	if err := state.DoFile(ctx, "greek.lua"); err != nil {
//	    return err
//	}
//
// Execution stops when the context is done or the timeout passes.
//
// gopher-lua's LState is not goroutine-safe. State serializes calls with a
// mutex.
package lua
