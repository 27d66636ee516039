package substance

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a substance of a registered kind.
type Factory func(id string, opts ...Option) (*Substance, error)

// Registry maps substance kind names to factories. Like the signal
// registry, kinds self-register at startup so tooling can enumerate
// them without type introspection.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under a kind name.
func (r *Registry) Register(kind string, f Factory) error {
	if kind == "" {
		return fmt.Errorf("substance: empty kind name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("substance: kind already registered: %s", kind)
	}
	r.factories[kind] = f
	return nil
}

// Lookup returns the factory for a kind.
func (r *Registry) Lookup(kind string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[kind]
	return f, ok
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BaseKind is the plain substance with no extra handlers.
const BaseKind = "substance"

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide substance-kind registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// MustRegister registers in the default registry and panics on
// conflict. Intended for init-time self-registration.
func MustRegister(kind string, f Factory) {
	if err := defaultRegistry.Register(kind, f); err != nil {
		panic(err)
	}
}

func init() {
	MustRegister(BaseKind, New)
}
