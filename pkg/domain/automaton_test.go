package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomaton_AddStateAndArcs(t *testing.T) {
	a := domain.NewAutomaton()
	_, ok := a.Start()
	assert.False(t, ok, "new automaton should have no start")

	s0 := a.AddState()
	s1 := a.AddState()
	require.NoError(t, a.SetStart(s0))
	require.NoError(t, a.AddArc(s0, domain.Arc{ILabel: 'a', OLabel: 'a', NextState: s1}))
	require.NoError(t, a.SetFinal(s1, 0))

	start, ok := a.Start()
	assert.True(t, ok)
	assert.Equal(t, s0, start)
	assert.Len(t, a.Arcs(s0), 1)
	assert.True(t, a.IsFinal(s1))
	assert.False(t, a.IsFinal(s0))
	assert.Equal(t, domain.Stats{States: 2, Arcs: 1, Finals: 1, MaxOutDegree: 1}, a.Stats())
}

func TestAutomaton_InvalidState(t *testing.T) {
	a := domain.NewAutomaton()
	s0 := a.AddState()

	err := a.AddArc(s0, domain.Arc{NextState: 7})
	var invalid *domain.InvalidStateError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, domain.StateID(7), invalid.State)

	assert.Error(t, a.SetStart(3))
	assert.Error(t, a.SetFinal(domain.NoState, 0))
	assert.Nil(t, a.Arcs(42))
}

func TestAutomaton_ArcOrderIsPreserved(t *testing.T) {
	a := domain.NewAutomaton()
	s0 := a.AddState()
	s1 := a.AddState()
	s2 := a.AddState()
	require.NoError(t, a.AddArc(s0, domain.Arc{ILabel: 'x', OLabel: 'x', NextState: s1}))
	require.NoError(t, a.AddArc(s0, domain.Arc{ILabel: 'x', OLabel: 'x', NextState: s2}))

	arcs := a.Arcs(s0)
	require.Len(t, arcs, 2)
	assert.Equal(t, s1, arcs[0].NextState)
	assert.Equal(t, s2, arcs[1].NextState)
}

func TestAutomaton_CloneIsDeep(t *testing.T) {
	a := domain.NewAutomaton()
	s0 := a.AddState()
	s1 := a.AddState()
	require.NoError(t, a.SetStart(s0))
	require.NoError(t, a.AddArc(s0, domain.Arc{ILabel: 'a', OLabel: 'a', NextState: s1}))

	c := a.Clone()
	s2 := c.AddState()
	require.NoError(t, c.AddArc(s0, domain.Arc{ILabel: 'b', OLabel: 'b', NextState: s2}))

	assert.Equal(t, 2, a.NumStates())
	assert.Len(t, a.Arcs(s0), 1)
	assert.Len(t, c.Arcs(s0), 2)
}

func TestAutomaton_Truncate(t *testing.T) {
	a := domain.NewAutomaton()
	s0 := a.AddState()
	require.NoError(t, a.SetStart(s0))
	s1 := a.AddState()
	require.NoError(t, a.AddArc(s0, domain.Arc{ILabel: 'a', OLabel: 'a', NextState: s1}))
	s2 := a.AddState()
	require.NoError(t, a.AddArc(s0, domain.Arc{ILabel: 'b', OLabel: 'b', NextState: s2}))

	a.Truncate(2)

	assert.Equal(t, 2, a.NumStates())
	assert.Len(t, a.Arcs(s0), 1)
	assert.Equal(t, domain.Label('a'), a.Arcs(s0)[0].ILabel)
}

func TestRestore(t *testing.T) {
	states := []domain.State{
		{Arcs: []domain.Arc{{ILabel: 'a', OLabel: 'a', NextState: 1}}},
		{Final: true},
	}
	a, err := domain.Restore(0, states)
	require.NoError(t, err)
	assert.True(t, a.IsFinal(1))

	_, err = domain.Restore(0, []domain.State{{Arcs: []domain.Arc{{NextState: 9}}}})
	assert.Error(t, err)
}

func TestEntry_Sequence(t *testing.T) {
	e := domain.Entry{Lemma: "estar", Tags: "PLU+IND", Word: "estamos"}
	assert.Equal(t, "estarPLU+INDestamos", string(e.Sequence()))

	unicode := domain.Entry{Lemma: "ñu", Tags: "PL", Word: "ñus"}
	assert.Len(t, unicode.Sequence(), 7)
}

func TestErrorKinds(t *testing.T) {
	assert.ErrorIs(t, &domain.EntryError{Line: 3, Text: "foo"}, domain.ErrMalformedEntry)
	assert.ErrorIs(t, &domain.NoPathError{Symbol: 'z'}, domain.ErrNoPath)

	storeErr := &domain.StoreError{Op: "load", Key: "morph.fst", Err: errors.New("disk")}
	assert.ErrorIs(t, storeErr, domain.ErrIO)
	assert.Contains(t, storeErr.Error(), "morph.fst")

	assert.Equal(t, "No valid path for symbol: z", (&domain.NoPathError{Symbol: 'z'}).Error())
	assert.Contains(t, (&domain.EntryError{Line: 3, Text: "foo"}).Error(), "line 3")
}

func TestWalkStatus_Terminal(t *testing.T) {
	assert.False(t, domain.WalkWalking.Terminal())
	assert.True(t, domain.WalkSucceeded.Terminal())
	assert.True(t, domain.WalkFailedNoPath.Terminal())
	assert.True(t, domain.WalkFailedIncomplete.Terminal())
}
