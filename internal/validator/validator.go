// Package validator checks the structure of compiled automata.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/morphfst/pkg/domain"
)

// ValidateAutomaton crawls the automaton from its start state and reports
// broken arcs, unreachable states and any departure from the chain shape the
// builder produces: every state but the start has exactly one incoming arc,
// at most one outgoing arc, and is final exactly when it has none.
func ValidateAutomaton(a *domain.Automaton) error {
	start, ok := a.Start()
	if !ok {
		if a.NumStates() == 0 {
			return nil
		}
		return domain.ErrNoStartState
	}

	states := a.States()
	incoming := make([]int, len(states))
	visited := make([]bool, len(states))
	queue := []domain.StateID{start}

	var errors []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, arc := range states[current].Arcs {
			if int(arc.NextState) >= len(states) {
				errors = append(errors, fmt.Sprintf("Broken arc: state %d -> %d", current, arc.NextState))
				continue
			}
			incoming[arc.NextState]++
			queue = append(queue, arc.NextState)
		}
	}

	for id, st := range states {
		sid := domain.StateID(id)
		if !visited[id] {
			errors = append(errors, fmt.Sprintf("Unreachable state: %d", id))
			continue
		}
		if sid == start {
			if incoming[id] != 0 {
				errors = append(errors, fmt.Sprintf("Start state %d has %d incoming arcs", id, incoming[id]))
			}
			continue
		}
		if incoming[id] != 1 {
			errors = append(errors, fmt.Sprintf("State %d has %d incoming arcs, want 1", id, incoming[id]))
		}
		if len(st.Arcs) > 1 {
			errors = append(errors, fmt.Sprintf("State %d has %d outgoing arcs, want at most 1", id, len(st.Arcs)))
		}
		if st.Final != (len(st.Arcs) == 0) {
			errors = append(errors, fmt.Sprintf("State %d: final=%v with %d outgoing arcs", id, st.Final, len(st.Arcs)))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("automaton validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}
