package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/morphfst/internal/adapters/file"
	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements AutomatonStore
var _ ports.AutomatonStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunAutomatonStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_Path(t *testing.T) {
	s := file.New("/data")
	assert.Equal(t, filepath.Join("/data", "morph.fst"), s.Path("morph"))
	assert.Equal(t, filepath.Join("/data", "morph.fst"), s.Path("morph.fst"))
	assert.Equal(t, filepath.Join("/data", "out.bin"), s.Path("out.bin"))

	abs := filepath.Join(t.TempDir(), "x.fst")
	assert.Equal(t, abs, s.Path(abs))
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.fst"), []byte("not an fst"), 0644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.ErrorIs(t, err, domain.ErrCorrupt)
}

func TestFileStore_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	s := file.New(dir)
	a := domain.NewAutomaton()
	require.NoError(t, a.SetStart(a.AddState()))
	require.NoError(t, s.Save(context.Background(), "morph", a))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "morph.fst", entries[0].Name())
}

func TestFileStore_EmptyKey(t *testing.T) {
	s := file.New(t.TempDir())
	assert.Error(t, s.Save(context.Background(), "", domain.NewAutomaton()))
	_, err := s.Load(context.Background(), "")
	assert.Error(t, err)
}
