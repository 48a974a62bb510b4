package middleware

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/ports"
)

// ErrListUnsupported is returned by List when the wrapped store cannot enumerate keys.
var ErrListUnsupported = errors.New("store does not support listing")

type cacheMiddleware struct {
	next ports.AutomatonStore

	mu      sync.RWMutex
	entries map[string]*domain.Automaton
}

// NewCacheMiddleware keeps loaded automata in memory.
// Automata are read-only once built, so a cached value stays valid until the
// key is saved or deleted through this store. Callers must not mutate loaded
// automata.
func NewCacheMiddleware() Middleware {
	return func(next ports.AutomatonStore) ports.AutomatonStore {
		return &cacheMiddleware{
			next:    next,
			entries: make(map[string]*domain.Automaton),
		}
	}
}

func (m *cacheMiddleware) Save(ctx context.Context, key string, a *domain.Automaton) error {
	m.forget(key)
	return m.next.Save(ctx, key, a)
}

func (m *cacheMiddleware) Load(ctx context.Context, key string) (*domain.Automaton, error) {
	m.mu.RLock()
	a, ok := m.entries[key]
	m.mu.RUnlock()
	if ok {
		return a, nil
	}

	a, err := m.next.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[key] = a
	m.mu.Unlock()
	return a, nil
}

func (m *cacheMiddleware) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	_, ok := m.entries[key]
	m.mu.RUnlock()
	if ok {
		return true, nil
	}
	return m.next.Exists(ctx, key)
}

func (m *cacheMiddleware) Delete(ctx context.Context, key string) error {
	m.forget(key)
	return m.next.Delete(ctx, key)
}

func (m *cacheMiddleware) List(ctx context.Context) ([]string, error) {
	l, ok := list(m.next)
	if !ok {
		return nil, ErrListUnsupported
	}
	return l.List(ctx)
}

func (m *cacheMiddleware) forget(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}
