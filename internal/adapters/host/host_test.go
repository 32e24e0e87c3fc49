package host_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/host"
	"go.trai.ch/kiln/internal/core/domain"
)

func writeEntry(t *testing.T, root string) string {
	t.Helper()
	entryPath := filepath.Join(root, domain.DefaultEntryPath())
	require.NoError(t, os.MkdirAll(filepath.Dir(entryPath), 0o750))
	require.NoError(t, os.WriteFile(entryPath, []byte("export { default } from \"/app.wasm?init\";\n"), 0o644))
	return entryPath
}

func TestNotifier_Reload(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	entryPath := writeEntry(t, root)

	// Age the entry so the bump is observable.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(entryPath, past, past))

	n := host.NewNotifier(root)
	require.NoError(t, n.Reload(context.Background()))

	info, err := os.Stat(entryPath)
	require.NoError(t, err)
	assert.Greater(t, info.ModTime().Unix(), past.Unix())
}

func TestNotifier_ReloadPreservesContent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	entryPath := writeEntry(t, root)
	before, err := os.ReadFile(entryPath)
	require.NoError(t, err)

	n := host.NewNotifier(root)
	require.NoError(t, n.Reload(context.Background()))

	after, err := os.ReadFile(entryPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestNotifier_ReloadMissingEntry(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	n := host.NewNotifier(root)

	err := n.Reload(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrReloadSignalFailed.Error())
}

func TestNotifier_EntryPath(t *testing.T) {
	t.Parallel()

	n := host.NewNotifier("/work/project")
	assert.Equal(t, filepath.Join("/work/project", ".kiln", "entry.js"), n.EntryPath())
}
