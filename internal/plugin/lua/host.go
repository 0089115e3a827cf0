package lua

import (
	"context"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scrollstorm/internal/animate"
	"github.com/dshills/scrollstorm/internal/dom"
	"github.com/dshills/scrollstorm/internal/event"
)

// Host runs site scripts against a shared animation registry and event bus.
//
// The underlying interpreter is not goroutine-safe; the host serializes all
// script entry points, including bus callbacks into Lua, behind one mutex.
type Host struct {
	mu     sync.Mutex
	L      *lua.LState
	defs   *animate.Registry
	bus    *event.Bus
	logf   func(format string, args ...any)
	subs   []*event.Subscription
	closed bool
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogFunc routes scrollstorm.log output. The default discards it.
func WithLogFunc(fn func(format string, args ...any)) HostOption {
	return func(h *Host) { h.logf = fn }
}

// NewHost creates a sandboxed script host bound to the given registry and
// bus.
func NewHost(defs *animate.Registry, bus *event.Bus, opts ...HostOption) *Host {
	h := &Host{
		defs: defs,
		bus:  bus,
		logf: func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(h)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os, debug, and package stay closed; script loading primitives go
	// too, scripts are handed in by the host alone.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	h.L = L
	h.installAPI()
	return h
}

// installAPI publishes the scrollstorm global table.
func (h *Host) installAPI() {
	t := h.L.NewTable()
	h.L.SetFuncs(t, map[string]lua.LGFunction{
		"animation": h.luaAnimation,
		"override":  h.luaOverride,
		"on":        h.luaOn,
		"log":       h.luaLog,
	})
	h.L.SetGlobal("scrollstorm", t)
}

// luaAnimation implements scrollstorm.animation(name, def). Registering an
// existing name is a script error; use scrollstorm.override to replace.
func (h *Host) luaAnimation(L *lua.LState) int {
	name := L.CheckString(1)
	def := definitionFromTable(L, L.CheckTable(2))
	if err := h.defs.Register(name, def); err != nil {
		L.RaiseError("animation %q: %v", name, err)
	}
	return 0
}

// luaOverride implements scrollstorm.override(name, def).
func (h *Host) luaOverride(L *lua.LState) int {
	name := L.CheckString(1)
	h.defs.Override(name, definitionFromTable(L, L.CheckTable(2)))
	return 0
}

// luaOn implements scrollstorm.on(topic, fn): the function is called with
// the payload, converted to a table, each time the topic fires. A failing
// script callback surfaces through the bus error handler like any other
// listener failure.
func (h *Host) luaOn(L *lua.LState) int {
	topic := event.Topic(L.CheckString(1))
	fn := L.CheckFunction(2)

	sub, err := h.bus.SubscribeFunc(topic, func(_ context.Context, payload any) error {
		return h.callback(fn, payload)
	}, event.WithName("lua:"+string(topic)))
	if err != nil {
		L.RaiseError("on %q: %v", topic, err)
	}

	h.subs = append(h.subs, sub)
	return 0
}

// luaLog implements scrollstorm.log(...), joining arguments with spaces.
func (h *Host) luaLog(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]any, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.Get(i).String())
	}
	h.logf("%s", fmt.Sprintln(parts...))
	return 0
}

// callback invokes a stored Lua function with the payload. The host mutex
// is taken here, not in luaOn: bus dispatch happens outside any script run.
func (h *Host) callback(fn *lua.LFunction, payload any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	if err := h.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, toLuaValue(h.L, payload)); err != nil {
		return &ScriptError{Source: "callback", Err: err}
	}
	return nil
}

// definitionFromTable reads {initial=..., final=..., transition=...}.
func definitionFromTable(L *lua.LState, t *lua.LTable) animate.Definition {
	def := animate.Definition{}
	if v, ok := L.GetField(t, "initial").(*lua.LTable); ok {
		def.Initial = dom.Style(tableToStyle(v))
	}
	if v, ok := L.GetField(t, "final").(*lua.LTable); ok {
		def.Final = dom.Style(tableToStyle(v))
	}
	if v, ok := L.GetField(t, "transition").(lua.LString); ok {
		def.Transition = string(v)
	}
	return def
}

// DoString executes a script from memory. The name appears in errors.
func (h *Host) DoString(name, src string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	if err := h.L.DoString(src); err != nil {
		return &ScriptError{Source: name, Err: err}
	}
	return nil
}

// DoFile executes a script file.
func (h *Host) DoFile(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	if err := h.L.DoFile(path); err != nil {
		return &ScriptError{Source: path, Err: err}
	}
	return nil
}

// Close unsubscribes every script listener and shuts the interpreter down.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	h.closed = true

	for _, sub := range h.subs {
		_ = h.bus.Unsubscribe(sub)
	}
	h.subs = nil
	h.L.Close()
	return nil
}
