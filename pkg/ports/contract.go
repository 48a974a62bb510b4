package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contractAutomaton builds two chains sharing a first label, so arc order matters.
func contractAutomaton(t *testing.T) *domain.Automaton {
	t.Helper()
	a := domain.NewAutomaton()
	start := a.AddState()
	require.NoError(t, a.SetStart(start))
	for _, word := range []string{"ab", "ac"} {
		cur := start
		for _, c := range word {
			next := a.AddState()
			require.NoError(t, a.AddArc(cur, domain.Arc{ILabel: domain.Label(c), OLabel: domain.Label(c), NextState: next}))
			cur = next
		}
		require.NoError(t, a.SetFinal(cur, 0))
	}
	return a
}

// RunAutomatonStoreContract runs a suite of tests to verify that an
// AutomatonStore implementation adheres to the defined interface contract.
func RunAutomatonStoreContract(t *testing.T, store AutomatonStore) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		a := contractAutomaton(t)

		err := store.Save(ctx, key, a)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")

		wantStart, _ := a.Start()
		gotStart, ok := loaded.Start()
		require.True(t, ok, "loaded automaton must keep its start state")
		assert.Equal(t, wantStart, gotStart)
		assert.Equal(t, a.States(), loaded.States(), "state table and arc order must survive")
	})

	t.Run("Exists", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, contractAutomaton(t)))

		ok, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Exists(ctx, "missing-"+key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, contractAutomaton(t)))

		small := domain.NewAutomaton()
		s := small.AddState()
		require.NoError(t, small.SetStart(s))
		require.NoError(t, store.Save(ctx, key, small))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.NumStates())
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, contractAutomaton(t)))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound, "Load after Delete should return ErrAutomatonNotFound")

		assert.NoError(t, store.Delete(ctx, key), "deleting twice is not an error")
	})

	if lister, ok := store.(Lister); ok {
		t.Run("List", func(t *testing.T) {
			k1, k2 := key+"-1", key+"-2"
			require.NoError(t, store.Save(ctx, k1, contractAutomaton(t)))
			require.NoError(t, store.Save(ctx, k2, contractAutomaton(t)))
			defer func() {
				_ = store.Delete(ctx, k1)
				_ = store.Delete(ctx, k2)
			}()

			keys, err := lister.List(ctx)
			require.NoError(t, err)
			assert.Contains(t, keys, k1)
			assert.Contains(t, keys, k2)
		})
	}
}
