package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/morphfst/pkg/domain"
)

// Store implements ports.AutomatonStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Automaton
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Automaton),
	}
}

// Save keeps a deep copy so later changes by the caller are not visible.
func (s *Store) Save(ctx context.Context, key string, a *domain.Automaton) error {
	copied := a.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load returns a copy of the stored automaton.
func (s *Store) Load(ctx context.Context, key string) (*domain.Automaton, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data[key]
	if !ok {
		return nil, domain.ErrAutomatonNotFound
	}
	return a.Clone(), nil
}

// Exists reports whether key is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok, nil
}

// Delete removes the automaton.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
