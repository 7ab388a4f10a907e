package scripting

import (
	"log"

	"github.com/solohouse/solo-os/internal/command"
)

// Loader bridges stored custom commands into the command registry. Load
// failures are contained per record so one bad entry can neither abort
// startup nor disturb the rest of the registry.
type Loader struct {
	engine   *Engine
	registry *command.Registry
}

// NewLoader creates a loader that registers into the given registry.
func NewLoader(engine *Engine, registry *command.Registry) *Loader {
	return &Loader{engine: engine, registry: registry}
}

// LoadOne compiles a record and registers it under its namespaced name,
// with the unprefixed form added as an alias for ergonomic invocation.
// The alias is skipped silently when a built-in already owns that name.
// Returns false on compile or registration failure; never raises.
func (l *Loader) LoadOne(rec *Record) bool {
	prog, err := l.engine.Compile(rec.Name, rec.Source)
	if err != nil {
		log.Printf("Failed to load custom command %s: %v", rec.Name, err)
		return false
	}

	d := &command.Descriptor{
		Description: rec.Description,
		Usage:       rec.BaseName(),
		RequiresAuth: true,
		CreatorID:   rec.CreatorID,
		Handler:     l.engine.Handler(prog),
	}

	if err := l.registry.Register(rec.Name, d); err != nil {
		log.Printf("Failed to register custom command %s: %v", rec.Name, err)
		return false
	}

	l.registry.Alias(rec.BaseName(), rec.Name)
	return true
}

// LoadAll loads every record best-effort and returns how many registered.
func (l *Loader) LoadAll(records []*Record) int {
	loaded := 0
	for _, rec := range records {
		if l.LoadOne(rec) {
			loaded++
		}
	}
	log.Printf("Loaded %d of %d custom commands", loaded, len(records))
	return loaded
}
