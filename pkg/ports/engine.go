package ports

import (
	"context"

	"github.com/aretw0/morphfst/pkg/domain"
)

// QueryEngine is the read side of the engine, used by transport adapters.
type QueryEngine interface {
	// Realize answers a single word+TAG+... query.
	Realize(ctx context.Context, query string) (string, error)

	// Inspect returns the loaded automaton. Callers must not modify it.
	Inspect(ctx context.Context) (*domain.Automaton, error)
}
