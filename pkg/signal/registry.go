package signal

import (
	"fmt"
	"sort"
	"sync"
)

// Definition declares a signal kind: its name, optional parent kind,
// documentation and own field schema. The effective schema of a kind is
// resolved by the registry (see Registry.Merged).
type Definition struct {
	// Name uniquely identifies the kind.
	Name string
	// Parent is the name of the kind this one inherits fields from.
	// Empty for the taxonomy root.
	Parent string
	// Description documents the kind for registry tooling.
	Description string
	// Fields is the kind's own declarations. Inherited fields need not
	// be repeated; redeclaring one overrides the ancestor's entry.
	Fields Schema
}

// Registry holds the known signal kinds.
// Kinds register once at startup; lookups drive both construction and
// dispatch tables, so the set of kinds is explicit rather than
// discovered through type introspection.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Definition
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Definition),
	}
}

// Register adds a kind definition.
// Returns ErrDuplicateKind if the name is already taken.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("signal: definition has no name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.kinds[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, def.Name)
	}
	r.kinds[def.Name] = def
	return nil
}

// Lookup returns the definition for a kind name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.kinds[name]
	return def, ok
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merged resolves the effective schema of a kind: the union of its own
// fields and every ancestor's fields, with the most specific declaration
// winning. Returns ErrUnknownKind if the kind or any ancestor is missing.
func (r *Registry) Merged(name string) (Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	merged := Schema{}
	seen := map[string]bool{}
	for cur := name; cur != ""; {
		if seen[cur] {
			return nil, fmt.Errorf("signal: kind %s: inheritance cycle through %s", name, cur)
		}
		seen[cur] = true
		def, ok := r.kinds[cur]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKind, cur)
		}
		// Walking child -> ancestor, so existing (more specific)
		// entries must not be overwritten.
		for fname, f := range def.Fields {
			if _, exists := merged[fname]; !exists {
				merged[fname] = f
			}
		}
		cur = def.Parent
	}
	return merged, nil
}

// defaultRegistry backs the package-level registration done by builtin
// kinds and by applications at init time.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// MustRegister registers a kind in the default registry and panics on
// conflict. Intended for init-time self-registration.
func MustRegister(def Definition) {
	if err := defaultRegistry.Register(def); err != nil {
		panic(err)
	}
}
