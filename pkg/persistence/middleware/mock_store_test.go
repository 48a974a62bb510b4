package middleware_test

import (
	"context"

	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/ports"
)

// MockStore is a simple map-based store that counts backend loads.
type MockStore struct {
	data  map[string]*domain.Automaton
	loads int
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Automaton),
	}
}

func (s *MockStore) Save(ctx context.Context, key string, a *domain.Automaton) error {
	s.data[key] = a.Clone()
	return nil
}

func (s *MockStore) Load(ctx context.Context, key string) (*domain.Automaton, error) {
	s.loads++
	a, ok := s.data[key]
	if !ok {
		return nil, domain.ErrAutomatonNotFound
	}
	return a.Clone(), nil
}

func (s *MockStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.data[key]
	return ok, nil
}

func (s *MockStore) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ ports.AutomatonStore = (*MockStore)(nil)

func chain(word string) *domain.Automaton {
	a := domain.NewAutomaton()
	cur := a.AddState()
	_ = a.SetStart(cur)
	for _, c := range word {
		next := a.AddState()
		_ = a.AddArc(cur, domain.Arc{ILabel: domain.Label(c), OLabel: domain.Label(c), NextState: next})
		cur = next
	}
	_ = a.SetFinal(cur, 0)
	return a
}
