// Package memory provides an in-memory MirrorStore, useful for tests
// and single-process demos.
package memory

import (
	"context"
	"sort"
	"sync"
)

// Store implements ports.MirrorStore in process memory.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]any),
	}
}

// Record stores one mirrored write for src, overwriting prior values of
// the same key.
func (s *Store) Record(_ context.Context, src, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.data[src]
	if !ok {
		m = make(map[string]any)
		s.data[src] = m
	}
	m[key] = value
	return nil
}

// Load returns a copy of the recorded state for src. A source that
// never mirrored yields an empty map.
func (s *Store) Load(_ context.Context, src string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.data[src]))
	for k, v := range s.data[src] {
		out[k] = v
	}
	return out, nil
}

// Sources lists the substance identifiers with recorded state, sorted.
func (s *Store) Sources(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.data))
	for src := range s.data {
		out = append(out, src)
	}
	sort.Strings(out)
	return out, nil
}
