package scripting

import (
	"testing"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/user"
)

func TestLoadOneRegistersNameAndAlias(t *testing.T) {
	reg := command.NewRegistry()
	loader := NewLoader(NewEngine(0), reg)

	rec := &Record{
		ID:          1,
		CreatorID:   7,
		Name:        "custom_greet",
		Description: "Greets the caller",
		Source:      `return "hi " .. (args[1] or "there")`,
	}
	if !loader.LoadOne(rec) {
		t.Fatalf("expected load to succeed")
	}

	d, ok := reg.Resolve("custom_greet")
	if !ok {
		t.Fatalf("expected custom_greet to resolve")
	}
	if !d.RequiresAuth {
		t.Fatalf("custom commands must require authentication")
	}
	if d.CreatorID != 7 {
		t.Fatalf("expected creator id carried, got %d", d.CreatorID)
	}
	if d.Usage != "greet" {
		t.Fatalf("expected unprefixed usage, got %q", d.Usage)
	}

	// The short form resolves to the same descriptor.
	short, ok := reg.Resolve("greet")
	if !ok || short != d {
		t.Fatalf("expected greet alias to resolve to custom_greet")
	}
}

func TestLoadOneAliasNeverShadowsBuiltin(t *testing.T) {
	reg := command.NewRegistry()
	builtin := &command.Descriptor{Description: "Show available commands"}
	if err := reg.Register("help", builtin); err != nil {
		t.Fatalf("register builtin failed: %v", err)
	}

	loader := NewLoader(NewEngine(0), reg)
	rec := &Record{
		ID:     2,
		Name:   "custom_help",
		Source: `return "fake help"`,
	}
	if !loader.LoadOne(rec) {
		t.Fatalf("expected custom_help to load under its namespaced name")
	}

	d, ok := reg.Resolve("help")
	if !ok || d != builtin {
		t.Fatalf("builtin help must win the short name")
	}
	if _, ok := reg.Resolve("custom_help"); !ok {
		t.Fatalf("expected custom_help to stay reachable under its full name")
	}
}

func TestLoadAllContainsBadRecords(t *testing.T) {
	reg := command.NewRegistry()
	loader := NewLoader(NewEngine(0), reg)

	records := []*Record{
		{ID: 1, Name: "custom_ok", Source: `return "ok"`},
		{ID: 2, Name: "custom_bad", Source: `return "unterminated`},
		{ID: 3, Name: "custom_also_ok", Source: `return "fine"`},
	}

	loaded := loader.LoadAll(records)
	if loaded != 2 {
		t.Fatalf("expected 2 loaded, got %d", loaded)
	}

	if _, ok := reg.Resolve("custom_ok"); !ok {
		t.Fatalf("expected custom_ok registered")
	}
	if _, ok := reg.Resolve("custom_also_ok"); !ok {
		t.Fatalf("expected custom_also_ok registered despite the bad record before it")
	}
	if _, ok := reg.Resolve("custom_bad"); ok {
		t.Fatalf("expected custom_bad to be skipped")
	}
}

func TestLoadedCommandExecutesThroughDispatcher(t *testing.T) {
	reg := command.NewRegistry()
	loader := NewLoader(NewEngine(0), reg)

	rec := &Record{
		ID:     1,
		Name:   "custom_shout",
		Source: `return string.upper(args[1] or "")`,
	}
	if !loader.LoadOne(rec) {
		t.Fatalf("load failed")
	}

	d := command.NewDispatcher(reg)

	res := d.Execute("shout", []string{"quiet"}, command.NewSession())
	if res.Success {
		t.Fatalf("expected auth rejection for anonymous caller")
	}

	sess := command.NewSession()
	sess.User = &user.User{ID: 1, Username: "alice"}
	res = d.Execute("shout", []string{"quiet"}, sess)
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Output != "QUIET" {
		t.Fatalf("expected QUIET, got %q", res.Output)
	}
}
