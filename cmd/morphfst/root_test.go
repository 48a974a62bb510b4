package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/morphfst/internal/config"
	"github.com/aretw0/morphfst/internal/testutils"
	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every persistent flag to its default after the test.
func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
}

func TestLoadConfig_Precedence(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())
	t.Setenv("MORPHFST_RULES", "env.txt")
	t.Setenv("MORPHFST_STORE_DRIVER", "redis")

	require.NoError(t, inspectCmd.ParseFlags([]string{"--store", "memory", "--fst", "es.fst", "--max-states", "9"}))

	cfg, err := loadConfig(inspectCmd)
	require.NoError(t, err)
	assert.Equal(t, "env.txt", cfg.Rules, "environment applies when no flag is set")
	assert.Equal(t, config.DriverMemory, cfg.StoreDriver, "flags win over the environment")
	assert.Equal(t, "es.fst", cfg.FST)
	assert.Equal(t, 9, cfg.MaxStates)
}

func TestRootCommand_Registration(t *testing.T) {
	for _, name := range []string{"realize", "generate", "inspect", "graph", "serve", "mcp", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

// execute runs the root command with args against a file store in dir.
// Every persistent flag is set so that no earlier test leaks into the run.
func execute(t *testing.T, dir, rules string, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	full := append(args,
		"--store", config.DriverFile,
		"--store-dir", dir,
		"--fst", "morph.fst",
		"--rules", rules,
		"--max-states", "0",
	)
	rootCmd.SetArgs(full)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRealize_BuildsOnFirstUse(t *testing.T) {
	dir := t.TempDir()
	rules := testutils.WriteRules(t, "ser : soy+1S , eres+2S")

	out, err := execute(t, dir, rules, "realize", "ser+1S+soy")
	require.NoError(t, err)
	assert.Equal(t, "FST file not found. Generating from input file...\nFST saved to morph.fst\nOutput: ser1Ssoy\n", out)
	assert.FileExists(t, filepath.Join(dir, "morph.fst"))

	out, err = execute(t, dir, rules, "ser+1S+soy")
	require.NoError(t, err)
	assert.Equal(t, "Output: ser1Ssoy\n", out, "an existing transducer is reused")
}

func TestRealize_ErrorsAreReturned(t *testing.T) {
	dir := t.TempDir()
	rules := testutils.WriteRules(t, "ser : soy+1S")

	_, err := execute(t, dir, rules, "realize", "ser+9")
	assert.ErrorIs(t, err, domain.ErrNoPath)

	_, err = execute(t, t.TempDir(), filepath.Join(dir, "missing.txt"), "realize", "ser+1S")
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("no path for symbol '9'"))
	assert.Equal(t, "Error: no path for symbol '9'\n", buf.String())
}

func TestGenerate_PrintsDestination(t *testing.T) {
	dir := t.TempDir()
	rules := testutils.WriteRules(t, "ser : soy+1S")
	dest := filepath.Join(dir, "out.fst")

	out, err := execute(t, dir, rules, "generate", rules, dest)
	require.NoError(t, err)
	assert.Equal(t, "FST saved to "+dest+"\n", out)

	_, err = os.Stat(dest)
	assert.NoError(t, err)
}
