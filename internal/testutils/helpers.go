package testutils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/morphfst/pkg/builder"
	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/stretchr/testify/require"
)

// WriteRules writes lines as a rule file in a temporary directory and
// returns its path. It fails the test immediately on error.
func WriteRules(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "morph.txt")
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write rules file")
	return path
}

// BuildFST compiles rule lines into an automaton.
func BuildFST(t *testing.T, lines ...string) *domain.Automaton {
	t.Helper()

	b := builder.New()
	for _, line := range lines {
		require.NoError(t, b.AddLine(context.Background(), line), "Failed to add rule %q", line)
	}
	return b.Build()
}
