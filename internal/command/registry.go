package command

import (
	"fmt"
	"log"
	"sync"

	"github.com/solohouse/solo-os/internal/user"
)

// Registry maps command names and aliases to descriptors. Registration
// happens at startup (and when a custom command is created at runtime);
// lookups may run concurrently.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Descriptor
	aliases  map[string]string
	order    []string
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Descriptor),
		aliases:  make(map[string]string),
	}
}

// Register adds a command under a unique name. A duplicate name is a
// configuration error and fails; a duplicate alias is logged and skipped,
// first registration wins.
func (r *Registry) Register(name string, d *Descriptor) error {
	if name == "" {
		return fmt.Errorf("register command: empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("register command %s: %w", name, ErrDuplicateCommand)
	}

	if d == nil {
		d = &Descriptor{}
	}
	d.Name = name
	if d.Description == "" {
		d.Description = "No description provided"
	}
	if d.Usage == "" {
		d.Usage = name
	}
	if d.Handler == nil {
		d.Handler = func(args []string, sess *Session) (string, error) {
			return "", fmt.Errorf("command '%s' is not implemented yet", name)
		}
	}

	r.commands[name] = d
	r.order = append(r.order, name)

	for _, alias := range d.Aliases {
		if _, taken := r.commands[alias]; taken {
			log.Printf("Alias '%s' for command '%s' shadows a registered command, skipping", alias, name)
			continue
		}
		if owner, taken := r.aliases[alias]; taken {
			log.Printf("Alias '%s' for command '%s' is already used by '%s', skipping", alias, name, owner)
			continue
		}
		r.aliases[alias] = name
	}

	return nil
}

// Alias maps an extra alias to an already registered command. Conflicts are
// skipped with a warning, same as aliases given at registration time.
func (r *Registry) Alias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.commands[name]; !ok {
		log.Printf("Alias '%s' points at unregistered command '%s', skipping", alias, name)
		return
	}
	if _, taken := r.commands[alias]; taken {
		log.Printf("Alias '%s' shadows a registered command, skipping", alias)
		return
	}
	if owner, taken := r.aliases[alias]; taken {
		log.Printf("Alias '%s' is already used by '%s', skipping", alias, owner)
		return
	}
	r.aliases[alias] = name
}

// Resolve looks up a command by name, then by alias. Absence is a normal
// outcome, not an error.
func (r *Registry) Resolve(nameOrAlias string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if d, ok := r.commands[nameOrAlias]; ok {
		return d, true
	}
	if name, ok := r.aliases[nameOrAlias]; ok {
		if d, ok := r.commands[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// List returns summaries of registered commands in registration order.
// Admin-only commands are included only when includeAdmin is set and the
// caller is an admin.
func (r *Registry) List(includeAdmin bool, u *user.User) []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Summary
	for _, name := range r.order {
		d := r.commands[name]
		if d.AdminOnly && (!includeAdmin || u == nil || !u.IsAdmin) {
			continue
		}
		out = append(out, Summary{
			Name:        d.Name,
			Description: d.Description,
			Usage:       d.Usage,
			Aliases:     append([]string(nil), d.Aliases...),
			RequiresAuth: d.RequiresAuth,
			AdminOnly:   d.AdminOnly,
		})
	}
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
