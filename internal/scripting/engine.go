package scripting

import (
	"context"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/solohouse/solo-os/internal/command"
)

// DefaultTimeout is the execution budget for one custom command call.
const DefaultTimeout = 2 * time.Second

// Engine compiles and runs user-authored Lua command bodies. Bodies are
// plain chunks that see two values: args (table of strings, 1-based) and
// context (table with user and session info). Each call runs in a fresh
// state with only the base, table, string and math libraries available, so
// a command body cannot touch the filesystem, the network or the host
// process.
type Engine struct {
	timeout time.Duration
}

// NewEngine creates an engine with the given per-call time budget.
// A zero or negative timeout falls back to DefaultTimeout.
func NewEngine(timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{timeout: timeout}
}

// Program is a compiled command body, ready to be invoked any number of
// times. Compilation never executes the body.
type Program struct {
	name  string
	proto *lua.FunctionProto
}

// CompileError reports a syntactically invalid command body.
type CompileError struct {
	Name string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %v", e.Name, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compile checks the source for well-formedness and produces an invocable
// Program. The body is wrapped so that args and context arrive as locals.
func (e *Engine) Compile(name, source string) (*Program, error) {
	wrapped := "local args, context = ...\n" + source

	chunk, err := parse.Parse(strings.NewReader(wrapped), name)
	if err != nil {
		return nil, &CompileError{Name: name, Err: err}
	}

	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, &CompileError{Name: name, Err: err}
	}

	return &Program{name: name, proto: proto}, nil
}

// Run invokes a compiled program with the call arguments and session and
// returns whatever the body returned, stringified. Runtime faults and
// exceeded time budgets come back as errors, never as panics.
func (e *Engine) Run(prog *Program, args []string, sess *command.Session) (string, error) {
	L := e.newState()
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	L.SetContext(ctx)

	fn := L.NewFunctionFromProto(prog.proto)

	err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, argsTable(L, args), contextTable(L, sess))
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("command '%s' timed out", prog.name)
		}
		return "", fmt.Errorf("run %s: %v", prog.name, err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	if ret == lua.LNil {
		return "", nil
	}
	return lua.LVAsString(ret), nil
}

// Handler adapts a compiled program to the registry handler shape.
func (e *Engine) Handler(prog *Program) command.Handler {
	return func(args []string, sess *command.Session) (string, error) {
		return e.Run(prog, args, sess)
	}
}

// newState builds a sandboxed Lua state: selected libraries only, and the
// load-from-outside escape hatches removed.
func (e *Engine) newState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:  true,
		CallStackSize: 120,
		RegistrySize:  120 * 20,
	})

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			panic(fmt.Sprintf("open lua lib %s: %v", lib.name, err))
		}
	}

	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring", "require", "package",
	} {
		L.SetGlobal(name, lua.LNil)
	}

	return L
}

// argsTable converts command arguments to a 1-based Lua table.
func argsTable(L *lua.LState, args []string) *lua.LTable {
	tbl := L.NewTable()
	for _, a := range args {
		tbl.Append(lua.LString(a))
	}
	return tbl
}

// contextTable exposes session info to the body: context.user (nil for
// anonymous callers, else a table with id, username and admin) and
// context.current_view.
func contextTable(L *lua.LState, sess *command.Session) *lua.LTable {
	tbl := L.NewTable()
	if sess != nil {
		tbl.RawSetString("current_view", lua.LString(sess.CurrentView))
		if sess.User != nil {
			u := L.NewTable()
			u.RawSetString("id", lua.LNumber(sess.User.ID))
			u.RawSetString("username", lua.LString(sess.User.Username))
			u.RawSetString("admin", lua.LBool(sess.User.IsAdmin))
			u.RawSetString("status", lua.LString(sess.User.Status))
			tbl.RawSetString("user", u)
		}
	}
	return tbl
}
