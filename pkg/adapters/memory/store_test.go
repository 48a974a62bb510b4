package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/morphfst/pkg/adapters/memory"
	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunAutomatonStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	a := domain.NewAutomaton()
	require.NoError(t, a.SetStart(a.AddState()))
	require.NoError(t, store.Save(ctx, "k", a))

	// Mutating the original after Save must not leak into the store.
	a.AddState()

	loaded, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.NumStates())

	// Nor may mutating a loaded copy.
	loaded.AddState()
	again, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, again.NumStates())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	a := domain.NewAutomaton()
	require.NoError(t, a.SetStart(a.AddState()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, "shared", a)
			_, _ = store.Load(ctx, "shared")
		}()
	}
	wg.Wait()

	ok, err := store.Exists(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, ok)
}
