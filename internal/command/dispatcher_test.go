package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/solohouse/solo-os/internal/user"
)

func authedSession(admin bool) *Session {
	sess := NewSession()
	sess.User = &user.User{ID: 1, Username: "alice", IsAdmin: admin}
	return sess
}

func TestExecuteUnknownCommand(t *testing.T) {
	d := NewDispatcher(NewRegistry())

	res := d.Execute("bogus", nil, NewSession())
	if res.Success {
		t.Fatalf("expected failure for unknown command")
	}
	if res.Err != "Unknown command: bogus" {
		t.Fatalf("unexpected error message: %q", res.Err)
	}
}

func TestExecuteAuthGate(t *testing.T) {
	reg := NewRegistry()
	invoked := false
	err := reg.Register("post", &Descriptor{
		RequiresAuth: true,
		Handler: func(args []string, sess *Session) (string, error) {
			invoked = true
			return "posted", nil
		},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	d := NewDispatcher(reg)

	res := d.Execute("post", nil, NewSession())
	if res.Success {
		t.Fatalf("expected anonymous call to be rejected")
	}
	if !strings.Contains(res.Err, "requires authentication") {
		t.Fatalf("unexpected error message: %q", res.Err)
	}
	if invoked {
		t.Fatalf("handler must not run when the auth gate rejects")
	}

	res = d.Execute("post", nil, authedSession(false))
	if !res.Success || res.Output != "posted" {
		t.Fatalf("expected success after login, got %+v", res)
	}
}

func TestExecuteAdminGate(t *testing.T) {
	reg := NewRegistry()
	invoked := false
	err := reg.Register("admin", &Descriptor{
		RequiresAuth: true,
		AdminOnly:    true,
		Handler: func(args []string, sess *Session) (string, error) {
			invoked = true
			return "ok", nil
		},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	d := NewDispatcher(reg)

	res := d.Execute("admin", nil, authedSession(false))
	if res.Success || !strings.Contains(res.Err, "admin privileges") {
		t.Fatalf("expected admin gate rejection, got %+v", res)
	}
	if invoked {
		t.Fatalf("handler must not run for non-admins")
	}

	res = d.Execute("admin", nil, authedSession(true))
	if !res.Success {
		t.Fatalf("expected success for admin, got %+v", res)
	}
}

func TestExecuteHandlerError(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register("fail", &Descriptor{
		Handler: func(args []string, sess *Session) (string, error) {
			return "", errors.New("database is on fire")
		},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	d := NewDispatcher(reg)

	res := d.Execute("fail", nil, NewSession())
	if res.Success {
		t.Fatalf("expected failure envelope")
	}
	if res.Err != "database is on fire" {
		t.Fatalf("unexpected error message: %q", res.Err)
	}
	if res.Output != "" {
		t.Fatalf("expected empty output on failure, got %q", res.Output)
	}
}

func TestExecuteContainsPanic(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register("boom", &Descriptor{
		Handler: func(args []string, sess *Session) (string, error) {
			panic("nil map write")
		},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	d := NewDispatcher(reg)

	res := d.Execute("boom", nil, NewSession())
	if res.Success {
		t.Fatalf("expected failure envelope after panic")
	}
	if !strings.Contains(res.Err, "Command execution failed") {
		t.Fatalf("unexpected error message: %q", res.Err)
	}

	// The dispatcher must stay usable afterwards.
	res = d.Execute("boom", nil, NewSession())
	if res.Success {
		t.Fatalf("expected second call to fail the same way")
	}
}

func TestExecutePassesArgs(t *testing.T) {
	reg := NewRegistry()
	var got []string
	err := reg.Register("echo", &Descriptor{
		Handler: func(args []string, sess *Session) (string, error) {
			got = append([]string(nil), args...)
			return strings.Join(args, " "), nil
		},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	d := NewDispatcher(reg)

	res := d.Execute("echo", []string{"one", "two"}, NewSession())
	if !res.Success || res.Output != "one two" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("handler saw wrong args: %v", got)
	}
}
