package plugin

import (
	"slices"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mathfield/internal/notation"
	plua "github.com/dshills/mathfield/internal/plugin/lua"
)

// APIVersion is exposed to scripts as mathfield.version.
const APIVersion = "1.0"

// installAPI registers the mathfield table. The functions run while Load
// holds h.mu.
func (h *Host) installAPI(s *plua.State) {
	mod := s.RegisterModule("mathfield", map[string]lua.LGFunction{
		"symbol":      h.luaSymbol,
		"command":     h.luaCommand,
		"autocommand": h.luaAutoCommand,
		"registered":  h.luaRegistered,
		"names":       h.luaNames,
	})
	mod.RawSetString("version", lua.LString(APIVersion))
}

// mathfield.symbol(name[, text])
func (h *Host) luaSymbol(L *lua.LState) int {
	name := L.CheckString(1)
	text := L.OptString(2, name)
	h.register(L, &notation.SymbolSpec{Ctrl: name, Text: text})
	return 0
}

// mathfield.command(name, arity[, {optional=bool, operator=bool}])
func (h *Host) luaCommand(L *lua.LState) int {
	name := L.CheckString(1)
	arity := L.CheckInt(2)
	opts := L.OptTable(3, nil)

	spec := &notation.CommandSpec{Ctrl: name, Arity: arity}
	spec.Optional, _ = plua.TableBool(opts, "optional")
	spec.Operator, _ = plua.TableBool(opts, "operator")
	if spec.Operator && len([]rune(name)) != 1 {
		L.ArgError(1, "operator commands are single characters")
		return 0
	}
	h.register(L, spec)
	return 0
}

func (h *Host) register(L *lua.LState, spec notation.Spec) {
	if err := h.reg.Register(spec); err != nil {
		L.RaiseError("%s", err.Error())
		return
	}
	h.registered = append(h.registered, spec.Name())
	h.logger.Debug("plugin %s registered %q", h.name, spec.Name())
}

// mathfield.autocommand(name, ...)
func (h *Host) luaAutoCommand(L *lua.LState) int {
	words := h.reg.Words()
	for i := 1; i <= L.GetTop(); i++ {
		name := L.CheckString(i)
		if !slices.Contains(words, name) {
			L.ArgError(i, "not a registered command word: "+name)
			return 0
		}
		if !slices.Contains(h.autoCommands, name) {
			h.autoCommands = append(h.autoCommands, name)
		}
	}
	return 0
}

// mathfield.registered(name)
func (h *Host) luaRegistered(L *lua.LState) int {
	_, ok := h.reg.Lookup(L.CheckString(1))
	L.Push(lua.LBool(ok))
	return 1
}

// mathfield.names()
func (h *Host) luaNames(L *lua.LState) int {
	L.Push(plua.StringsToTable(L, h.reg.Names()))
	return 1
}
