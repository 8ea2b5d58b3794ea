package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	t.Run("Should round-trip values", func(t *testing.T) {
		storage, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, storage.Set(KeyToken, "tok-123"))
		value, ok, err := storage.Get(KeyToken)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "tok-123", value)
	})

	t.Run("Should report absent keys without error", func(t *testing.T) {
		storage, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)

		_, ok, err := storage.Get(KeyUser)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should write token files owner-only", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewFileStorage(dir)
		require.NoError(t, err)
		require.NoError(t, storage.Set(KeyToken, "secret"))

		info, err := os.Stat(filepath.Join(dir, KeyToken))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("Should tolerate deleting an absent key", func(t *testing.T) {
		storage, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)
		assert.NoError(t, storage.Delete(KeyToken))
	})

	t.Run("Should create the state directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "state")
		_, err := NewFileStorage(dir)
		require.NoError(t, err)
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
