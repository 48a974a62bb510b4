package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	require.NoError(t, m.Register(prometheus.NewRegistry()))
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnEntryAdded(ctx, &domain.EntryEvent{})
	hooks.OnEntryAdded(ctx, &domain.EntryEvent{})
	hooks.OnBuildDone(ctx, &domain.BuildEvent{Stats: domain.Stats{States: 42}, Duration: time.Millisecond})
	hooks.OnBuildDone(ctx, &domain.BuildEvent{Err: errors.New("boom")})
	hooks.OnQueryDone(ctx, &domain.QueryEvent{Status: domain.WalkSucceeded})
	hooks.OnQueryDone(ctx, &domain.QueryEvent{Status: domain.WalkFailedNoPath})
	hooks.OnQueryDone(ctx, &domain.QueryEvent{Status: domain.WalkFailedNoPath})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntriesAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Builds.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Builds.WithLabelValues("error")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.States))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Queries.WithLabelValues("succeeded")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Queries.WithLabelValues("failed_no_path")))
}

func TestMetrics_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics()
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg))
}

func TestMerge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnQueryDone: func(context.Context, *domain.QueryEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnQueryDone: func(context.Context, *domain.QueryEvent) { calls = append(calls, "b") },
		OnBuildDone: func(context.Context, *domain.BuildEvent) { calls = append(calls, "build") },
	}

	merged := observability.Merge(a, domain.LifecycleHooks{}, b)
	require.Nil(t, merged.OnEntryAdded)

	merged.OnQueryDone(context.Background(), &domain.QueryEvent{})
	merged.OnBuildDone(context.Background(), &domain.BuildEvent{})
	assert.Equal(t, []string{"a", "b", "build"}, calls)
}
