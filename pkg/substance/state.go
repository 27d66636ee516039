package substance

import (
	"fmt"

	"github.com/aretw0/rhizome/pkg/signal"
)

// Get returns the stored value for key, or def when the key is absent.
// An absent key is not an error.
func (s *Substance) Get(key string, def any) any {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if v, ok := s.state[key]; ok {
		return v
	}
	return def
}

// Put writes state without mirroring. It serves setup code and
// externally forced overwrites applied on the owner's turn (see SigSet
// for the cross-thread path).
func (s *Substance) Put(key string, value any) error {
	if err := signal.CheckValue(value); err != nil {
		return fmt.Errorf("substance %s: put %q: %w", s.id, key, err)
	}
	s.write(key, value)
	return nil
}

// Mutate is the handler-side write. It behaves like Put and, when
// mirroring is enabled and a domain is attached, additionally emits
// SigMirror(src=dst=id, key, value) toward the domain.
func (s *Substance) Mutate(key string, value any) error {
	if err := signal.CheckValue(value); err != nil {
		return fmt.Errorf("substance %s: mutate %q: %w", s.id, key, err)
	}
	s.write(key, value)

	if !s.mirroring || s.domain == nil {
		return nil
	}
	sig, err := signal.Mirror(s.id, key, value)
	if err != nil {
		return fmt.Errorf("substance %s: mirror %q: %w", s.id, key, err)
	}
	return s.Emit(sig)
}

func (s *Substance) write(key string, value any) {
	s.stateMu.Lock()
	s.state[key] = value
	s.stateMu.Unlock()
}

// StateSnapshot returns a shallow copy of the state mapping. Safe to
// call from any goroutine; intended for introspection surfaces.
func (s *Substance) StateSnapshot() map[string]any {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make(map[string]any, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}
