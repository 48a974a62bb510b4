package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedEntry is returned when a rule line has no ':' separator.
var ErrMalformedEntry = errors.New("malformed entry")

// ErrEmptyQuery is returned when a query yields no tokens.
var ErrEmptyQuery = errors.New("query is empty or malformed")

// ErrNoPath is matched by every *NoPathError.
var ErrNoPath = errors.New("no valid path")

// ErrIncompleteMatch is returned when a query is consumed but the walk stops
// on a non-final state.
var ErrIncompleteMatch = errors.New("no valid path to a final state")

// ErrNoStartState is returned when walking an automaton without a start state.
var ErrNoStartState = errors.New("automaton has no start state")

// ErrCapacity is returned when the builder would exceed its state limit.
var ErrCapacity = errors.New("automaton state capacity exceeded")

// ErrAutomatonNotFound is returned when a store has nothing under a key.
var ErrAutomatonNotFound = errors.New("automaton not found")

// ErrIO is matched by every *StoreError.
var ErrIO = errors.New("i/o error")

// ErrCorrupt is returned when persisted bytes cannot be decoded.
var ErrCorrupt = errors.New("corrupt automaton data")

// EntryError locates a malformed rule line.
type EntryError struct {
	Line int
	Text string
}

func (e *EntryError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: missing ':' in %q", e.Line, ErrMalformedEntry, e.Text)
	}
	return fmt.Sprintf("%s: missing ':' in %q", ErrMalformedEntry, e.Text)
}

// Is lets errors.Is match ErrMalformedEntry.
func (e *EntryError) Is(target error) bool {
	return target == ErrMalformedEntry
}

// NoPathError reports the symbol that could not be consumed.
type NoPathError struct {
	Symbol   rune
	Position int
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("No valid path for symbol: %c", e.Symbol)
}

// Is lets errors.Is match ErrNoPath.
func (e *NoPathError) Is(target error) bool {
	return target == ErrNoPath
}

// StoreError wraps a persistence failure.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrIO.
func (e *StoreError) Is(target error) bool {
	return target == ErrIO
}

// InvalidStateError reports a reference to a state outside the table.
type InvalidStateError struct {
	State StateID
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %d", e.State)
}
