package navfocus_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/navfocus"
	"github.com/aretw0/navfocus/pkg/adapters/memory"
	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const single = "initial:\n  routes: [{key: only}]\n"

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(navfocus.Version))
}

func TestWorkspace_LoadsFilesAndIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-file\n"+single), 0644))

	trace := observability.NewTrace()
	ws, err := navfocus.Open("",
		navfocus.WithSource(memory.NewSource(map[string]string{"mem": single})),
		navfocus.WithObserver(trace),
	)
	require.NoError(t, err)

	res, err := ws.Replay(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", res.Name)

	res, err = ws.Replay(context.Background(), "mem")
	require.NoError(t, err)
	assert.Equal(t, "mem", res.Name)
	assert.Equal(t, []string{"only"}, res.Focus)

	assert.Equal(t, map[string]string{"root": "only"}, trace.Focused())
	assert.Equal(t, domain.EventWillFocus, trace.Events()[0].Type)
}

func TestWorkspace_WithoutSource(t *testing.T) {
	ws, err := navfocus.Open("")
	require.NoError(t, err)

	_, err = ws.List(context.Background())
	assert.ErrorIs(t, err, navfocus.ErrNoSource)

	_, err = ws.Replay(context.Background(), "anything")
	assert.ErrorIs(t, err, navfocus.ErrNoSource)
}

func TestOpen_LoamDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "single.md"), []byte("---\ntitle: Single\n---\n"+single), 0644))

	ws, err := navfocus.Open(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), ws.Name)

	list, err := ws.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "single", list[0].ID)

	res, err := ws.Replay(context.Background(), "single")
	require.NoError(t, err)
	assert.Equal(t, "Single", res.Name)
}

func TestExampleScenariosPass(t *testing.T) {
	ws, err := navfocus.Open("examples/scenarios")
	require.NoError(t, err)

	ctx := context.Background()
	list, err := ws.List(ctx)
	require.NoError(t, err)

	var ids []string
	for _, m := range list {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"animated", "auth", "tabs"}, ids)

	for _, id := range ids {
		res, err := ws.Replay(ctx, id)
		require.NoError(t, err, id)
		assert.True(t, res.Passed(), id)
	}
}
