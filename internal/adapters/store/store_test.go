package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/store"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	s, err := store.NewStore()
	require.NoError(t, err)

	// UTC and whole seconds so the JSON round-trip compares equal.
	completedAt := time.Now().UTC().Truncate(time.Second)
	record := domain.BuildRecord{
		ConfigHash:   "a1b2c3d4e5f60718",
		Product:      "App",
		ArtifactPath: ".build/release/App.wasm",
		ArtifactHash: "deadbeefcafef00d",
		Duration:     1500 * time.Millisecond,
		Success:      true,
		CompletedAt:  completedAt,
	}

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()
		err := s.Put(tmpDir, record)
		require.NoError(t, err)

		got, err := s.Get(tmpDir, "a1b2c3d4e5f60718")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, record, *got)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		got, err := s.Get(tmpDir, "0000000000000000")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("put overwrites", func(t *testing.T) {
		t.Parallel()
		first := domain.BuildRecord{ConfigHash: "ffff000011112222", Success: false}
		second := domain.BuildRecord{ConfigHash: "ffff000011112222", Product: "App", Success: true}

		require.NoError(t, s.Put(tmpDir, first))
		require.NoError(t, s.Put(tmpDir, second))

		got, err := s.Get(tmpDir, "ffff000011112222")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Success)
		assert.Equal(t, "App", got.Product)
	})

	t.Run("roots are independent", func(t *testing.T) {
		t.Parallel()
		otherRoot := t.TempDir()
		got, err := s.Get(otherRoot, record.ConfigHash)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("get corrupt", func(t *testing.T) {
		t.Parallel()

		// Use a separate root for the corruption test to avoid side effects
		tmpDir2 := t.TempDir()
		record2 := domain.BuildRecord{ConfigHash: "1111222233334444"}
		require.NoError(t, s.Put(tmpDir2, record2))

		storeDir := filepath.Join(tmpDir2, domain.DefaultStorePath())
		entries, err := os.ReadDir(storeDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		filename := filepath.Join(storeDir, entries[0].Name())
		err = os.WriteFile(filename, []byte("{ invalid json"), 0o600)
		require.NoError(t, err)

		_, err = s.Get(tmpDir2, "1111222233334444")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
	})
}
