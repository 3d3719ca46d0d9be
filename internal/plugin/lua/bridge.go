package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ToGoValue converts a Lua value to a Go value. Tables with keys 1..n become
// []any, other tables map[string]any. Functions and cycles become nil.
func ToGoValue(lv lua.LValue) any {
	return toGoValue(lv, make(map[*lua.LTable]bool))
}

func toGoValue(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGoValue(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = toGoValue(v, visited)
	})
	return m
}

// StringsToTable converts a string slice to a Lua array.
func StringsToTable(L *lua.LState, s []string) *lua.LTable {
	t := L.CreateTable(len(s), 0)
	for _, v := range s {
		t.Append(lua.LString(v))
	}
	return t
}

// TableBool reads a boolean field, reporting whether it was present.
func TableBool(t *lua.LTable, key string) (bool, bool) {
	if t == nil {
		return false, false
	}
	b, ok := t.RawGetString(key).(lua.LBool)
	return bool(b), ok
}

// TableStrings reads an array of strings. Other element types are skipped.
func TableStrings(t *lua.LTable) []string {
	var out []string
	for i := 1; i <= t.Len(); i++ {
		if s, ok := t.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}
