package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/morphfst/pkg/adapters/redis"
	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func sample(t *testing.T) *domain.Automaton {
	t.Helper()
	a := domain.NewAutomaton()
	s0 := a.AddState()
	require.NoError(t, a.SetStart(s0))
	s1 := a.AddState()
	require.NoError(t, a.AddArc(s0, domain.Arc{ILabel: 'a', OLabel: 'a', NextState: s1}))
	require.NoError(t, a.SetFinal(s1, 0))
	return a
}

// Ensure Store implements AutomatonStore
var _ ports.AutomatonStore = (*redis.Store)(nil)

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunAutomatonStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "morph", sample(t)))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "morph")

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "morph")
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	ok, err := store.Exists(ctx, "morph")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "morph", sample(t)))

	assert.True(t, mr.Exists("custom:app:fst:morph"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"fst:bad", "garbage"))

	_, err := store.Load(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrCorrupt)
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	mr.Close()

	_, err := store.Load(context.Background(), "morph")
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestRedisStore_ReservedKeyNames(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	locker := redis.NewLocker(client, redis.DefaultPrefix)
	ctx := context.Background()

	for _, key := range []string{"index", "lock:morph", "fst:morph"} {
		require.NoError(t, store.Save(ctx, key, sample(t)), key)
	}
	require.NoError(t, store.Save(ctx, "morph", sample(t)))

	unlock, err := locker.Lock(ctx, "morph", time.Second)
	require.NoError(t, err)
	defer func() { _ = unlock(ctx) }()

	for _, key := range []string{"index", "lock:morph", "fst:morph", "morph"} {
		a, err := store.Load(ctx, key)
		require.NoError(t, err, key)
		assert.Equal(t, 2, a.NumStates(), key)
	}

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"index", "lock:morph", "fst:morph", "morph"}, keys)
}
