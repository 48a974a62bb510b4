// Package builder compiles rule entries into a transducer.
//
// Every entry becomes its own linear chain hanging off the shared start state:
// one fresh state and one arc per character of lemma, tags and word, in that
// order, with the last state marked final. Input and output labels of each arc
// are the same character. Chains never share states other than the start, so
// the automaton grows with the total number of characters.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/morphfst/internal/logging"
	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/rules"
)

// ErrFrozen is returned when adding to a builder after Build.
var ErrFrozen = errors.New("builder already built")

// Builder owns the automaton under construction.
type Builder struct {
	fst       *domain.Automaton
	start     domain.StateID
	maxStates int
	entries   int
	frozen    bool
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option configures the Builder.
type Option func(*Builder)

// WithMaxStates bounds the number of states (start included).
// Zero means unbounded.
func WithMaxStates(n int) Option {
	return func(b *Builder) {
		b.maxStates = n
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

// WithLogger configures a logger for the Builder.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates a builder holding an automaton with a single start state.
func New(opts ...Option) *Builder {
	b := &Builder{
		fst:    domain.NewAutomaton(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.start = b.fst.AddState()
	// The start state was just allocated, so SetStart cannot fail.
	_ = b.fst.SetStart(b.start)
	return b
}

// Add appends the chain for one entry.
// On failure the automaton is left as it was before the call.
func (b *Builder) Add(ctx context.Context, e domain.Entry) error {
	if b.frozen {
		return ErrFrozen
	}
	seq := e.Sequence()
	if b.maxStates > 0 && b.fst.NumStates()+len(seq) > b.maxStates {
		return fmt.Errorf("entry %q/%q: %w (limit %d)", e.Lemma, e.Word, domain.ErrCapacity, b.maxStates)
	}

	mark := b.fst.NumStates()
	current := b.start
	for _, c := range seq {
		next := b.fst.AddState()
		arc := domain.Arc{
			ILabel:    domain.Label(c),
			OLabel:    domain.Label(c),
			Weight:    0,
			NextState: next,
		}
		if err := b.fst.AddArc(current, arc); err != nil {
			b.fst.Truncate(mark)
			return fmt.Errorf("entry %q/%q: %w", e.Lemma, e.Word, err)
		}
		current = next
	}
	if err := b.fst.SetFinal(current, 0); err != nil {
		b.fst.Truncate(mark)
		return fmt.Errorf("entry %q/%q: %w", e.Lemma, e.Word, err)
	}

	b.entries++
	if b.hooks.OnEntryAdded != nil {
		b.hooks.OnEntryAdded(ctx, &domain.EntryEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEntryAdded},
			Entry:     e,
			States:    len(seq),
		})
	}
	return nil
}

// AddLine parses one rule line and appends its entries.
func (b *Builder) AddLine(ctx context.Context, line string) error {
	entries, err := rules.ParseLine(line)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := b.Add(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// AddFrom appends every entry of a rule file read from r.
// It stops at the first malformed line.
func (b *Builder) AddFrom(ctx context.Context, r io.Reader) error {
	sc := rules.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, e := range sc.Entries() {
			if err := b.Add(ctx, e); err != nil {
				return fmt.Errorf("line %d: %w", sc.Line(), err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	b.logger.Debug("rules compiled", "lines", sc.Line(), "entries", b.entries, "states", b.fst.NumStates())
	return nil
}

// Entries returns how many entries have been appended.
func (b *Builder) Entries() int {
	return b.entries
}

// Build freezes the builder and returns the automaton.
func (b *Builder) Build() *domain.Automaton {
	b.frozen = true
	return b.fst
}
