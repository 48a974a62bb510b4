package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/ports"
)

// MockStore is a minimal AutomatonStore keeping clones in a map.
type MockStore struct {
	data map[string]*domain.Automaton
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]*domain.Automaton)}
}

func (m *MockStore) Save(ctx context.Context, key string, a *domain.Automaton) error {
	m.data[key] = a.Clone()
	return nil
}

func (m *MockStore) Load(ctx context.Context, key string) (*domain.Automaton, error) {
	a, ok := m.data[key]
	if !ok {
		return nil, domain.ErrAutomatonNotFound
	}
	return a.Clone(), nil
}

func (m *MockStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestAutomatonStore_Contract(t *testing.T) {
	// The mock is the reference implementation of the contract; adapters run
	// the same suite in their own packages.
	ports.RunAutomatonStoreContract(t, NewMockStore())
}
