package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tabsFile = "../../pkg/scenario/testdata/tabs.yaml"

func execute(t *testing.T, args ...string) error {
	t.Helper()
	// Flag values survive between executions of the shared command tree.
	require.NoError(t, rootCmd.PersistentFlags().Set("log-level", "warn"))
	require.NoError(t, graphCmd.Flags().Set("step", "-1"))
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestReplayCommand(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{"text", "markdown", "json"} {
		assert.NoError(t, execute(t, "replay", tabsFile, "--dir", dir, "--format", format), format)
	}
	assert.Error(t, execute(t, "replay", tabsFile, "--dir", dir, "--format", "xml"))
	assert.Error(t, execute(t, "replay", tabsFile, "--dir", dir, "--format", "text", "--log-level", "loud"))
}

func TestReplayCommand_MismatchFails(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "wrong.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
name: wrong
initial:
  routes: [{key: a}]
expect:
  - root:willFocus(b)
`), 0644))

	err := execute(t, "replay", file, "--dir", dir, "--format", "text", "--log-level", "error")
	assert.ErrorIs(t, err, errExpectations)
}

func TestListAndGraphCommands(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "single.md"), []byte("---\ntitle: Single\n---\ninitial:\n  routes: [{key: a}]\n"), 0644))

	assert.NoError(t, execute(t, "list", "--dir", dir))
	assert.NoError(t, execute(t, "graph", "single", "--dir", dir))
	assert.NoError(t, execute(t, "graph", tabsFile, "--dir", dir, "--step", "1"))
	assert.Error(t, execute(t, "graph", "missing", "--dir", dir))
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "single.md"), []byte("---\ntitle: Single\n---\ninitial:\n  routes: [{key: a}]\nexpect: [\"root:willFocus(a)\"]\n"), 0644))
	assert.NoError(t, execute(t, "validate", "--dir", dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte("---\ntitle: Bad\n---\ninitial:\n  routes: [{key: a}]\nexpect: [\"root:willFocus(b)\"]\n"), 0644))
	assert.Error(t, execute(t, "validate", "--dir", dir))
}
