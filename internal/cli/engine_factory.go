package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/morphfst"
	"github.com/aretw0/morphfst/internal/adapters/file"
	"github.com/aretw0/morphfst/internal/config"
	"github.com/aretw0/morphfst/pkg/adapters/memory"
	"github.com/aretw0/morphfst/pkg/adapters/redis"
	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/persistence/middleware"
	"github.com/aretw0/morphfst/pkg/ports"
)

// EngineOptions carries what the commands add on top of the config.
type EngineOptions struct {
	Config      *config.Config
	Logger      *slog.Logger
	Hooks       domain.LifecycleHooks
	Middlewares []middleware.Middleware
	// Cache forces the read cache on regardless of the config.
	// Long-running servers set it: they load the same key per request.
	Cache bool
}

// Engine is an engine plus the resources to release when done.
type Engine struct {
	*morphfst.Engine
	closers []func() error
}

// Close releases store connections.
func (e *Engine) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// CreateEngine initializes an engine with standard CLI conventions:
// the store named by the config, an optional read cache and a build lock
// (in-process for local stores, redis for the shared one).
func CreateEngine(opts EngineOptions) (*Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	out := &Engine{}
	engineOpts := []morphfst.Option{
		morphfst.WithLogger(logger),
		morphfst.WithMaxStates(cfg.MaxStates),
		morphfst.WithLifecycleHooks(opts.Hooks),
	}

	var store ports.AutomatonStore
	switch cfg.StoreDriver {
	case config.DriverFile:
		store = file.New(cfg.StoreDir)
		engineOpts = append(engineOpts, morphfst.WithLocker(memory.NewLocker(), cfg.LockTTL))
	case config.DriverMemory:
		store = memory.NewStore()
		engineOpts = append(engineOpts, morphfst.WithLocker(memory.NewLocker(), cfg.LockTTL))
	case config.DriverRedis:
		rs := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redis.WithPrefix(cfg.RedisPrefix),
			redis.WithTTL(cfg.RedisTTL),
		)
		out.closers = append(out.closers, rs.Close)
		store = rs
		engineOpts = append(engineOpts, morphfst.WithLocker(redis.NewLocker(rs.Client(), cfg.RedisPrefix), cfg.LockTTL))
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	cache := cfg.Cache || opts.Cache
	mws := append([]middleware.Middleware{}, opts.Middlewares...)
	if cache {
		mws = append(mws, middleware.NewCacheMiddleware())
	}
	store = middleware.Chain(store, mws...)
	engineOpts = append(engineOpts, morphfst.WithStore(store))

	eng, err := morphfst.New(engineOpts...)
	if err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	out.Engine = eng
	logger.Debug("engine ready", "store", cfg.StoreDriver, "cache", cache, "fst", cfg.FST)
	return out, nil
}
