package domain

import "fmt"

// StateID addresses a state in the automaton's state table.
type StateID uint32

// NoState marks the absence of a state (e.g. an automaton without start).
const NoState StateID = ^StateID(0)

// Label is a Unicode code point used as an arc symbol.
type Label uint32

// Weight is the cost attached to arcs and final states.
// Every weight produced by this package is zero.
type Weight float32

// Arc is a single labeled transition between two states.
type Arc struct {
	ILabel    Label   `json:"ilabel" yaml:"ilabel"`
	OLabel    Label   `json:"olabel" yaml:"olabel"`
	Weight    Weight  `json:"weight" yaml:"weight"`
	NextState StateID `json:"next" yaml:"next"`
}

// State is one record of the arena.
// Arcs keep their insertion order; lookups rely on it.
type State struct {
	Final       bool   `json:"final,omitempty" yaml:"final,omitempty"`
	FinalWeight Weight `json:"final_weight,omitempty" yaml:"final_weight,omitempty"`
	Arcs        []Arc  `json:"arcs,omitempty" yaml:"arcs,omitempty"`
}

// Automaton is a directed labeled graph stored as an arena of states.
// It is not safe for concurrent mutation; once built it is only read.
type Automaton struct {
	start  StateID
	states []State
}

// NewAutomaton returns an empty automaton with no start state.
func NewAutomaton() *Automaton {
	return &Automaton{start: NoState}
}

// AddState appends a new non-final state and returns its ID.
func (a *Automaton) AddState() StateID {
	a.states = append(a.states, State{})
	return StateID(len(a.states) - 1)
}

// SetStart designates the start state.
func (a *Automaton) SetStart(s StateID) error {
	if !a.valid(s) {
		return fmt.Errorf("set start: %w", &InvalidStateError{State: s})
	}
	a.start = s
	return nil
}

// Start returns the start state and whether one is set.
func (a *Automaton) Start() (StateID, bool) {
	if a.start == NoState {
		return NoState, false
	}
	return a.start, true
}

// AddArc appends an arc to the outgoing list of from.
func (a *Automaton) AddArc(from StateID, arc Arc) error {
	if !a.valid(from) {
		return fmt.Errorf("add arc: %w", &InvalidStateError{State: from})
	}
	if !a.valid(arc.NextState) {
		return fmt.Errorf("add arc: %w", &InvalidStateError{State: arc.NextState})
	}
	a.states[from].Arcs = append(a.states[from].Arcs, arc)
	return nil
}

// SetFinal marks s as accepting with the given weight.
func (a *Automaton) SetFinal(s StateID, w Weight) error {
	if !a.valid(s) {
		return fmt.Errorf("set final: %w", &InvalidStateError{State: s})
	}
	a.states[s].Final = true
	a.states[s].FinalWeight = w
	return nil
}

// IsFinal reports whether s is an accepting state.
func (a *Automaton) IsFinal(s StateID) bool {
	return a.valid(s) && a.states[s].Final
}

// Arcs returns the outgoing arcs of s in insertion order.
// The returned slice must not be modified.
func (a *Automaton) Arcs(s StateID) []Arc {
	if !a.valid(s) {
		return nil
	}
	return a.states[s].Arcs
}

// NumStates returns the size of the state table.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// States returns the state table. The returned slice must not be modified.
func (a *Automaton) States() []State {
	return a.states
}

// Truncate drops every state with an ID >= n and every arc pointing at one.
// Only the builder uses it, to roll back a partially appended chain.
func (a *Automaton) Truncate(n int) {
	if n >= len(a.states) {
		return
	}
	a.states = a.states[:n]
	for i := range a.states {
		arcs := a.states[i].Arcs
		kept := arcs[:0]
		for _, arc := range arcs {
			if int(arc.NextState) < n {
				kept = append(kept, arc)
			}
		}
		a.states[i].Arcs = kept
	}
	if a.start != NoState && int(a.start) >= n {
		a.start = NoState
	}
}

// Clone returns a deep copy of the automaton.
func (a *Automaton) Clone() *Automaton {
	out := &Automaton{
		start:  a.start,
		states: make([]State, len(a.states)),
	}
	for i, st := range a.states {
		out.states[i] = State{
			Final:       st.Final,
			FinalWeight: st.FinalWeight,
			Arcs:        append([]Arc(nil), st.Arcs...),
		}
	}
	return out
}

// Restore rebuilds an automaton from a decoded start state and state table.
// It validates every arc target.
func Restore(start StateID, states []State) (*Automaton, error) {
	a := &Automaton{start: NoState, states: states}
	if start != NoState {
		if err := a.SetStart(start); err != nil {
			return nil, err
		}
	}
	for id, st := range states {
		for _, arc := range st.Arcs {
			if !a.valid(arc.NextState) {
				return nil, fmt.Errorf("state %d: %w", id, &InvalidStateError{State: arc.NextState})
			}
		}
	}
	return a, nil
}

func (a *Automaton) valid(s StateID) bool {
	return s != NoState && int(s) < len(a.states)
}
