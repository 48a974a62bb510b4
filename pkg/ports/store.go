package ports

import (
	"context"

	"github.com/aretw0/morphfst/pkg/domain"
)

// AutomatonStore defines the persistence boundary for compiled automata.
// The stored representation is owned by the implementation; a saved automaton
// must load back with the same start state, state table, arc order and
// finality.
type AutomatonStore interface {
	// Save persists the automaton under key, replacing any previous value.
	Save(ctx context.Context, key string, a *domain.Automaton) error

	// Load retrieves the automaton stored under key.
	// Returns domain.ErrAutomatonNotFound if nothing is stored.
	Load(ctx context.Context, key string) (*domain.Automaton, error)

	// Exists reports whether key holds an automaton.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Lister is implemented by stores able to enumerate their keys.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}
