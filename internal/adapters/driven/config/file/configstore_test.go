package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_SetGetSave(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, ok := store.Get(KeyAIBaseURL)
	assert.False(t, ok)

	require.NoError(t, store.Set(KeyAIBaseURL, "http://localhost:8080"))
	require.NoError(t, store.Set(KeyAIModel, "pd-large"))

	val, ok := store.Get(KeyAIBaseURL)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:8080", val)

	require.NoError(t, store.Save())

	// A fresh store reads the persisted values back.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	val, ok = reloaded.Get(KeyAIBaseURL)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:8080", val)

	val, ok = reloaded.Get(KeyAIModel)
	assert.True(t, ok)
	assert.Equal(t, "pd-large", val)
}

func TestConfigStore_SaveFilePermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyAIAPIKey, "secret"))
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyDataDir, "/tmp/a"))
	require.NoError(t, store.Set(KeyDataDir, "/tmp/b"))

	val, _ := store.Get(KeyDataDir)
	assert.Equal(t, "/tmp/b", val)
}
