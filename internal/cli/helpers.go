package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/morphfst/internal/config"
	"github.com/aretw0/morphfst/internal/logging"
	"github.com/aretw0/morphfst/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the application logger from the config.
// debug forces the debug level. Logs go to w (stderr in the commands) so
// that stdout carries only results.
func CreateLogger(w io.Writer, cfg *config.Config, debug bool) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(w, level, cfg.LogJSON), nil
}

// DebugHooks logs every lifecycle event at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEntryAdded: func(ctx context.Context, e *domain.EntryEvent) {
			logger.Debug("Entry Added", "lemma", e.Entry.Lemma, "tags", e.Entry.Tags, "word", e.Entry.Word, "states", e.States)
		},
		OnBuildDone: func(ctx context.Context, e *domain.BuildEvent) {
			logger.Debug("Build Done", "source", e.Source, "key", e.Key, "entries", e.Entries, "duration", e.Duration, "error", e.Err)
		},
		OnQueryDone: func(ctx context.Context, e *domain.QueryEvent) {
			logger.Debug("Query Done", "query", e.Query, "status", e.Status, "duration", e.Duration)
		},
	}
}
