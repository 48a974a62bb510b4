package middleware

import "github.com/aretw0/morphfst/pkg/ports"

// Middleware allows wrapping an AutomatonStore to add behavior.
type Middleware func(ports.AutomatonStore) ports.AutomatonStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.AutomatonStore, mws ...Middleware) ports.AutomatonStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

// list delegates to next when it can enumerate keys.
func list(next ports.AutomatonStore) (ports.Lister, bool) {
	l, ok := next.(ports.Lister)
	return l, ok
}
