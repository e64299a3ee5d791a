package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	str "github.com/danclive/string"
)

// Runtime executes Lua edit scripts against one sequence.
//
// The interpreter is sandboxed: only the base, table, string, and math
// libraries are opened, and the code-loading builtins are removed, so a
// script can edit the bound sequence and nothing else. A Runtime drives
// a single lua.LState and must be used from one goroutine, like the
// sequence it edits.
type Runtime struct {
	L      *lua.LState
	seq    *str.String
	closed bool
}

// NewRuntime creates a sandboxed Lua runtime bound to seq. Scripts see
// the sequence as the global "seq" module; positions are zero-based.
func NewRuntime(seq *str.String) *Runtime {
	if seq == nil {
		panic("script: NewRuntime called with nil sequence")
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	rt := &Runtime{L: L, seq: seq}

	openSafeLibraries(L)
	hardenState(L)
	rt.registerSeqModule()

	return rt
}

// openSafeLibraries opens only side-effect-free Lua standard libraries.
// io, os, debug, and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// hardenState removes the base-library builtins that load code, which
// would otherwise let a script reach the file system.
func hardenState(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// registerSeqModule installs the "seq" global table backed by rt.seq.
func (rt *Runtime) registerSeqModule() {
	L := rt.L
	mod := L.NewTable()

	L.SetField(mod, "len", L.NewFunction(rt.seqLen))
	L.SetField(mod, "is_empty", L.NewFunction(rt.seqIsEmpty))
	L.SetField(mod, "get", L.NewFunction(rt.seqGet))
	L.SetField(mod, "set", L.NewFunction(rt.seqSet))
	L.SetField(mod, "push", L.NewFunction(rt.seqPush))
	L.SetField(mod, "push_text", L.NewFunction(rt.seqPushText))
	L.SetField(mod, "pop", L.NewFunction(rt.seqPop))
	L.SetField(mod, "insert", L.NewFunction(rt.seqInsert))
	L.SetField(mod, "insert_text", L.NewFunction(rt.seqInsertText))
	L.SetField(mod, "remove", L.NewFunction(rt.seqRemove))
	L.SetField(mod, "truncate", L.NewFunction(rt.seqTruncate))
	L.SetField(mod, "clear", L.NewFunction(rt.seqClear))
	L.SetField(mod, "text", L.NewFunction(rt.seqText))

	L.SetGlobal("seq", mod)
}

// RunFile executes a Lua script file. Execution is synchronous; Lua
// panics surface as errors rather than crashing the caller.
func (rt *Runtime) RunFile(path string) error {
	if rt.closed {
		return ErrRuntimeClosed
	}
	return rt.doWithRecovery(func() error {
		return rt.L.DoFile(path)
	})
}

// RunString executes Lua source held in a string.
func (rt *Runtime) RunString(code string) error {
	if rt.closed {
		return ErrRuntimeClosed
	}
	return rt.doWithRecovery(func() error {
		return rt.L.DoString(code)
	})
}

// doWithRecovery converts an interpreter panic into an error.
func (rt *Runtime) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the interpreter. Further Run calls report
// ErrRuntimeClosed.
func (rt *Runtime) Close() {
	if rt.closed {
		return
	}
	rt.L.Close()
	rt.closed = true
}

// seq.len() -> number
func (rt *Runtime) seqLen(L *lua.LState) int {
	L.Push(lua.LNumber(rt.seq.Len()))
	return 1
}

// seq.is_empty() -> boolean
func (rt *Runtime) seqIsEmpty(L *lua.LState) int {
	L.Push(lua.LBool(rt.seq.IsEmpty()))
	return 1
}

// seq.get(i) -> string
// Returns the rune at position i as a one-character string.
func (rt *Runtime) seqGet(L *lua.LState) int {
	i := L.CheckInt(1)
	r, ok := rt.seq.Get(i)
	if !ok {
		L.RaiseError("get: position %d out of range [0, %d)", i, rt.seq.Len())
		return 0
	}
	L.Push(lua.LString(string(r)))
	return 1
}

// seq.set(i, ch)
func (rt *Runtime) seqSet(L *lua.LState) int {
	i := L.CheckInt(1)
	r := rt.checkRune(L, 2)
	if !rt.seq.Set(i, r) {
		L.RaiseError("set: position %d out of range [0, %d)", i, rt.seq.Len())
		return 0
	}
	return 0
}

// seq.push(ch)
func (rt *Runtime) seqPush(L *lua.LState) int {
	rt.seq.Push(rt.checkRune(L, 1))
	return 0
}

// seq.push_text(text)
func (rt *Runtime) seqPushText(L *lua.LState) int {
	text := L.CheckString(1)
	if err := rt.seq.PushString(text); err != nil {
		L.RaiseError("push_text: %v", err)
		return 0
	}
	return 0
}

// seq.pop() -> string or nil
// Returns nil when the sequence is empty.
func (rt *Runtime) seqPop(L *lua.LState) int {
	r, ok := rt.seq.Pop()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(string(r)))
	return 1
}

// seq.insert(i, ch)
func (rt *Runtime) seqInsert(L *lua.LState) int {
	i := L.CheckInt(1)
	r := rt.checkRune(L, 2)
	if i < 0 || i > rt.seq.Len() {
		L.RaiseError("insert: position %d out of range [0, %d]", i, rt.seq.Len())
		return 0
	}
	rt.seq.Insert(i, r)
	return 0
}

// seq.insert_text(i, text)
func (rt *Runtime) seqInsertText(L *lua.LState) int {
	i := L.CheckInt(1)
	text := L.CheckString(2)
	if i < 0 || i > rt.seq.Len() {
		L.RaiseError("insert_text: position %d out of range [0, %d]", i, rt.seq.Len())
		return 0
	}
	if err := rt.seq.InsertString(i, text); err != nil {
		L.RaiseError("insert_text: %v", err)
		return 0
	}
	return 0
}

// seq.remove(i) -> string
// Removes and returns the rune at position i.
func (rt *Runtime) seqRemove(L *lua.LState) int {
	i := L.CheckInt(1)
	if i < 0 || i >= rt.seq.Len() {
		L.RaiseError("remove: position %d out of range [0, %d)", i, rt.seq.Len())
		return 0
	}
	L.Push(lua.LString(string(rt.seq.Remove(i))))
	return 1
}

// seq.truncate(n)
func (rt *Runtime) seqTruncate(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 0 {
		L.ArgError(1, "length must be non-negative")
		return 0
	}
	rt.seq.Truncate(n)
	return 0
}

// seq.clear()
func (rt *Runtime) seqClear(L *lua.LState) int {
	rt.seq.Clear()
	return 0
}

// seq.text() -> string
// Returns the whole sequence re-encoded as UTF-8.
func (rt *Runtime) seqText(L *lua.LState) int {
	L.Push(lua.LString(rt.seq.String()))
	return 1
}

// checkRune reads argument n as a string holding exactly one rune.
func (rt *Runtime) checkRune(L *lua.LState, n int) rune {
	s := L.CheckString(n)
	r, err := singleRune(s)
	if err != nil {
		L.ArgError(n, err.Error())
		return 0
	}
	return r
}
