package morphfst

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/morphfst/internal/adapters/file"
	"github.com/aretw0/morphfst/internal/logging"
	"github.com/aretw0/morphfst/pkg/builder"
	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/ports"
	"github.com/aretw0/morphfst/pkg/realizer"
)

// DefaultLockTTL bounds how long a build lock is held when none is given.
const DefaultLockTTL = 30 * time.Second

// Engine is the high-level entry point for the morphfst library.
// It ties the rule compiler, a store and the realizer together.
// An Engine is safe for concurrent use if its store is.
type Engine struct {
	store     ports.AutomatonStore
	locker    ports.DistributedLocker
	lockTTL   time.Duration
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	maxStates int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore sets where compiled automata are kept.
// The default is a file store rooted at the working directory.
func WithStore(store ports.AutomatonStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker serializes EnsureBuilt across processes sharing a store.
// A zero ttl means DefaultLockTTL.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = locker
		e.lockTTL = ttl
	}
}

// WithMaxStates caps the size of compiled automata. Zero means unbounded.
func WithMaxStates(n int) Option {
	return func(e *Engine) {
		e.maxStates = n
	}
}

// New initializes a new Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.maxStates < 0 {
		return nil, fmt.Errorf("max states must not be negative, got %d", eng.maxStates)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.store == nil {
		eng.store = file.New(".")
	}
	if eng.lockTTL <= 0 {
		eng.lockTTL = DefaultLockTTL
	}
	return eng, nil
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Store returns the store the engine reads and writes.
func (e *Engine) Store() ports.AutomatonStore {
	return e.store
}

// Generate compiles the rule file at rulesPath and saves the automaton under
// key, replacing any previous one. Nothing is saved if any line fails.
func (e *Engine) Generate(ctx context.Context, rulesPath, key string) (domain.Stats, error) {
	start := time.Now()
	logger := e.logger.With("component", "builder", "rules", rulesPath, "key", key)

	entries, stats, err := e.generate(ctx, rulesPath, key)

	if e.hooks.OnBuildDone != nil {
		e.hooks.OnBuildDone(ctx, &domain.BuildEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventBuildDone},
			Source:    rulesPath,
			Key:       key,
			Entries:   entries,
			Stats:     stats,
			Duration:  time.Since(start),
			Err:       err,
		})
	}
	if err != nil {
		logger.Error("build failed", "error", err)
		return domain.Stats{}, err
	}
	logger.Info("automaton saved", "entries", entries, "states", stats.States, "arcs", stats.Arcs, "duration", time.Since(start))
	return stats, nil
}

func (e *Engine) generate(ctx context.Context, rulesPath, key string) (int, domain.Stats, error) {
	f, err := os.Open(rulesPath)
	if err != nil {
		return 0, domain.Stats{}, &domain.StoreError{Op: "read rules", Key: rulesPath, Err: err}
	}
	defer f.Close()

	b := builder.New(
		builder.WithMaxStates(e.maxStates),
		builder.WithLifecycleHooks(e.hooks),
		builder.WithLogger(e.logger),
	)
	if err := b.AddFrom(ctx, f); err != nil {
		return b.Entries(), domain.Stats{}, fmt.Errorf("%s: %w", rulesPath, err)
	}

	fst := b.Build()
	if err := e.store.Save(ctx, key, fst); err != nil {
		return b.Entries(), domain.Stats{}, err
	}
	return b.Entries(), fst.Stats(), nil
}

// EnsureBuilt compiles rulesPath into key only when the store lacks key.
// It reports whether a build happened. With a locker configured, concurrent
// callers wait for the first build instead of repeating it.
func (e *Engine) EnsureBuilt(ctx context.Context, rulesPath, key string) (bool, error) {
	ok, err := e.store.Exists(ctx, key)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, key, e.lockTTL)
		if err != nil {
			return false, fmt.Errorf("failed to acquire build lock for %s: %w", key, err)
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				e.logger.Warn("failed to release build lock", "key", key, "error", err)
			}
		}()

		// Another holder may have finished the build while we waited.
		ok, err := e.store.Exists(ctx, key)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}

	e.logger.Info("automaton missing, building", "rules", rulesPath, "key", key)
	if _, err := e.Generate(ctx, rulesPath, key); err != nil {
		return false, err
	}
	return true, nil
}

// Realize loads the automaton under key and realizes query against it.
func (e *Engine) Realize(ctx context.Context, key, query string) (string, error) {
	tr, err := e.Trace(ctx, key, query)
	if err != nil {
		return "", err
	}
	return tr.Output, nil
}

// Trace is Realize returning the full walk record.
// Walk failures return the partial trace together with the error; store
// failures return a nil trace.
func (e *Engine) Trace(ctx context.Context, key, query string) (*realizer.Trace, error) {
	fst, err := e.store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	return e.walk(ctx, fst, query)
}

func (e *Engine) walk(ctx context.Context, fst *domain.Automaton, query string) (*realizer.Trace, error) {
	start := time.Now()
	tr, err := realizer.Walk(fst, query)

	if e.hooks.OnQueryDone != nil {
		e.hooks.OnQueryDone(ctx, &domain.QueryEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventQueryDone},
			Query:     query,
			Output:    tr.Output,
			Status:    tr.Status,
			Duration:  time.Since(start),
		})
	}
	if err != nil {
		e.logger.Debug("query failed", "query", query, "status", tr.Status, "error", err)
	}
	return tr, err
}

// Inspect returns the automaton stored under key. Callers must not modify it.
func (e *Engine) Inspect(ctx context.Context, key string) (*domain.Automaton, error) {
	return e.store.Load(ctx, key)
}

// Bind returns a QueryEngine answering every query against key.
// The returned value also has a Trace(ctx, query) method.
func (e *Engine) Bind(key string) ports.QueryEngine {
	return &boundEngine{engine: e, key: key}
}

type boundEngine struct {
	engine *Engine
	key    string
}

func (b *boundEngine) Realize(ctx context.Context, query string) (string, error) {
	return b.engine.Realize(ctx, b.key, query)
}

func (b *boundEngine) Inspect(ctx context.Context) (*domain.Automaton, error) {
	return b.engine.Inspect(ctx, b.key)
}

func (b *boundEngine) Trace(ctx context.Context, query string) (*realizer.Trace, error) {
	return b.engine.Trace(ctx, b.key, query)
}

// IsQueryError reports whether err is a realization failure caused by the
// query itself, as opposed to a store or configuration problem.
func IsQueryError(err error) bool {
	return errors.Is(err, domain.ErrEmptyQuery) ||
		errors.Is(err, domain.ErrNoPath) ||
		errors.Is(err, domain.ErrIncompleteMatch)
}
