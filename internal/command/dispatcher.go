package command

import (
	"errors"
	"fmt"
	"log"
)

// ErrDuplicateCommand is returned when a name is registered twice.
var ErrDuplicateCommand = errors.New("command already registered")

// Dispatcher is the single entry point used by presentation layers.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher over a registry.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{registry: reg}
}

// Execute resolves a command name or alias, enforces the auth gates and
// invokes the handler. Every call yields an envelope; a handler fault never
// escapes to the caller.
func (d *Dispatcher) Execute(nameOrAlias string, args []string, sess *Session) (res Result) {
	cmd, ok := d.registry.Resolve(nameOrAlias)
	if !ok {
		return Result{Err: fmt.Sprintf("Unknown command: %s", nameOrAlias)}
	}

	if cmd.RequiresAuth && !sess.Authenticated() {
		return Result{Err: "This command requires authentication. Please login first."}
	}

	if cmd.AdminOnly && !sess.IsAdmin() {
		return Result{Err: "This command requires admin privileges."}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Command %s panicked: %v", cmd.Name, r)
			res = Result{Err: fmt.Sprintf("Command execution failed: %v", r)}
		}
	}()

	output, err := cmd.Handler(args, sess)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "Command execution failed"
		}
		return Result{Err: msg}
	}

	return Result{Success: true, Output: output}
}

// Registry returns the dispatcher's underlying registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}
