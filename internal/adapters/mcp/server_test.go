package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/morphfst/internal/testutils"
	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/realizer"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	fst *domain.Automaton
}

func (f *fakeEngine) Realize(ctx context.Context, query string) (string, error) {
	return realizer.Realize(f.fst, query)
}

func (f *fakeEngine) Inspect(ctx context.Context) (*domain.Automaton, error) {
	if f.fst == nil {
		return nil, domain.ErrAutomatonNotFound
	}
	return f.fst, nil
}

type tracingEngine struct {
	fakeEngine
}

func (t *tracingEngine) Trace(ctx context.Context, query string) (*realizer.Trace, error) {
	return realizer.Walk(t.fst, query)
}

func sampleFST(t *testing.T) *domain.Automaton {
	return testutils.BuildFST(t, "ser : soy+1S")
}

func TestHandleRealize(t *testing.T) {
	s := NewServer(&fakeEngine{fst: sampleFST(t)}, "test", nil)
	ctx := context.Background()

	resp, err := s.handleRealize(ctx, mcp.CallToolRequest{}, map[string]interface{}{"query": "ser+1S+soy"})
	require.NoError(t, err)
	assert.Equal(t, "ser1Ssoy", resp.Output)
	assert.Equal(t, domain.WalkSucceeded, resp.Status)

	_, err = s.handleRealize(ctx, mcp.CallToolRequest{}, map[string]interface{}{"query": "sez"})
	assert.ErrorIs(t, err, domain.ErrNoPath)

	_, err = s.handleRealize(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestHandleRealize_Trace(t *testing.T) {
	s := NewServer(&tracingEngine{fakeEngine{fst: sampleFST(t)}}, "test", nil)

	resp, err := s.handleRealize(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"query": "ser"})
	assert.ErrorIs(t, err, domain.ErrIncompleteMatch)
	assert.Equal(t, domain.WalkFailedIncomplete, resp.Status)
	assert.Len(t, resp.Steps, 3)
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(&fakeEngine{fst: sampleFST(t)}, "test", nil)

	res, err := s.handleInspect(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var stats domain.Stats
	require.NoError(t, json.Unmarshal([]byte(text.Text), &stats))
	assert.Equal(t, 9, stats.States)
	assert.Equal(t, 1, stats.Finals)
}

func TestHandleInspect_NotBuilt(t *testing.T) {
	s := NewServer(&fakeEngine{}, "test", nil)

	res, err := s.handleInspect(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
