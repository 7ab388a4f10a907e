package scripting

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/user"
)

func TestCompileRejectsBadSyntax(t *testing.T) {
	eng := NewEngine(0)

	_, err := eng.Compile("custom_broken", `return "unclosed`)
	if err == nil {
		t.Fatalf("expected compile error")
	}
	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CompileError, got %T", err)
	}
	if cerr.Name != "custom_broken" {
		t.Fatalf("unexpected name in compile error: %q", cerr.Name)
	}
}

func TestCompileDoesNotExecute(t *testing.T) {
	eng := NewEngine(0)

	// A body with a side effect at the top level; compiling it must not
	// run it, so an endless loop here would hang if it did.
	prog, err := eng.Compile("custom_loop", `while true do end`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if prog == nil {
		t.Fatalf("expected a program")
	}
}

func TestRunReceivesArgs(t *testing.T) {
	eng := NewEngine(0)

	prog, err := eng.Compile("custom_greet", `return "hello " .. (args[1] or "world")`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	out, err := eng.Run(prog, []string{"world"}, command.NewSession())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", out)
	}

	out, err = eng.Run(prog, nil, command.NewSession())
	if err != nil {
		t.Fatalf("run without args failed: %v", err)
	}
	if out != "hello world" {
		t.Fatalf("expected default arg, got %q", out)
	}
}

func TestRunSeesSessionContext(t *testing.T) {
	eng := NewEngine(0)

	prog, err := eng.Compile("custom_whoami", `
		if context.user then
			return context.user.username
		end
		return "anonymous"
	`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	sess := command.NewSession()
	out, err := eng.Run(prog, nil, sess)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "anonymous" {
		t.Fatalf("expected anonymous, got %q", out)
	}

	sess.User = &user.User{ID: 7, Username: "alice", IsAdmin: true}
	out, err = eng.Run(prog, nil, sess)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "alice" {
		t.Fatalf("expected alice, got %q", out)
	}
}

func TestRunNilReturn(t *testing.T) {
	eng := NewEngine(0)

	prog, err := eng.Compile("custom_silent", `local x = 1 + 1`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	out, err := eng.Run(prog, nil, command.NewSession())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output for nil return, got %q", out)
	}
}

func TestRunRuntimeError(t *testing.T) {
	eng := NewEngine(0)

	prog, err := eng.Compile("custom_crash", `error("deliberate")`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	_, err = eng.Run(prog, nil, command.NewSession())
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	if !strings.Contains(err.Error(), "deliberate") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunTimeout(t *testing.T) {
	eng := NewEngine(50 * time.Millisecond)

	prog, err := eng.Compile("custom_spin", `while true do end`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	start := time.Now()
	_, err = eng.Run(prog, nil, command.NewSession())
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("timeout took too long: %v", elapsed)
	}
}

func TestSandboxBlocksEscapes(t *testing.T) {
	eng := NewEngine(0)

	for _, body := range []string{
		`return type(dofile)`,
		`return type(loadstring)`,
		`return type(require)`,
		`return type(package)`,
	} {
		prog, err := eng.Compile("custom_probe", body)
		if err != nil {
			t.Fatalf("compile failed for %q: %v", body, err)
		}
		out, err := eng.Run(prog, nil, command.NewSession())
		if err != nil {
			t.Fatalf("run failed for %q: %v", body, err)
		}
		if out != "nil" {
			t.Fatalf("expected %q to be removed from the sandbox, got type %q", body, out)
		}
	}

	// os and io were never opened.
	prog, err := eng.Compile("custom_probe_os", `return type(os) .. "/" .. type(io)`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	out, err := eng.Run(prog, nil, command.NewSession())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "nil/nil" {
		t.Fatalf("expected os and io to be absent, got %q", out)
	}
}

func TestRunMultiline(t *testing.T) {
	eng := NewEngine(0)

	prog, err := eng.Compile("custom_banner", `
		local lines = { "first", "second", "third" }
		return table.concat(lines, "\n")
	`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	out, err := eng.Run(prog, nil, command.NewSession())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "first\nsecond\nthird" {
		t.Fatalf("expected real newlines in output, got %q", out)
	}
}
