package realizer

import (
	"strings"

	"github.com/aretw0/morphfst/pkg/domain"
)

// Symbols splits a query on '+' and concatenates the tokens, word first.
// Tag boundaries are not kept. An empty query is rejected.
func Symbols(query string) ([]rune, error) {
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	tokens := strings.Split(query, "+")
	if len(tokens) == 0 {
		return nil, domain.ErrEmptyQuery
	}
	word, tags := tokens[0], tokens[1:]

	symbols := []rune(word)
	for _, tag := range tags {
		symbols = append(symbols, []rune(tag)...)
	}
	return symbols, nil
}

// Step records one consumed symbol.
type Step struct {
	From   domain.StateID `json:"from"`
	Symbol rune           `json:"symbol"`
	Output rune           `json:"output"`
	To     domain.StateID `json:"to"`
}

// Trace is the full record of one walk.
type Trace struct {
	Query  string            `json:"query"`
	Steps  []Step            `json:"steps"`
	Status domain.WalkStatus `json:"status"`
	Output string            `json:"output,omitempty"`
}

// Realize walks the automaton for query and returns the collected output.
func Realize(a *domain.Automaton, query string) (string, error) {
	tr, err := Walk(a, query)
	if err != nil {
		return "", err
	}
	return tr.Output, nil
}

// Walk runs the realization and returns the trace alongside the result.
// The trace is returned even on failure, with Status set to the terminal
// state reached.
func Walk(a *domain.Automaton, query string) (*Trace, error) {
	tr := &Trace{Query: query, Status: domain.WalkRejected}

	symbols, err := Symbols(query)
	if err != nil {
		return tr, err
	}
	state, ok := a.Start()
	if !ok {
		return tr, domain.ErrNoStartState
	}

	tr.Status = domain.WalkWalking
	var out strings.Builder
	for pos, sym := range symbols {
		arc, found := firstMatch(a.Arcs(state), domain.Label(sym))
		if !found {
			tr.Status = domain.WalkFailedNoPath
			return tr, &domain.NoPathError{Symbol: sym, Position: pos}
		}
		o := rune(arc.OLabel)
		out.WriteRune(o)
		tr.Steps = append(tr.Steps, Step{From: state, Symbol: sym, Output: o, To: arc.NextState})
		state = arc.NextState
	}

	if !a.IsFinal(state) {
		tr.Status = domain.WalkFailedIncomplete
		return tr, domain.ErrIncompleteMatch
	}
	tr.Status = domain.WalkSucceeded
	tr.Output = out.String()
	return tr, nil
}

// firstMatch returns the first arc, in stored order, with the given input label.
func firstMatch(arcs []domain.Arc, label domain.Label) (domain.Arc, bool) {
	for _, arc := range arcs {
		if arc.ILabel == label {
			return arc, true
		}
	}
	return domain.Arc{}, false
}
