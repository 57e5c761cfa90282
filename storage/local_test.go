package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreUpload(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads")

	url, err := store.Upload([]byte("image-bytes"), "certificates", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/certificates/abc123.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "certificates", "abc123.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestLocalStoreDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads")

	_, err := store.Upload([]byte("image-bytes"), "certificates", "abc123")
	require.NoError(t, err)

	require.NoError(t, store.Delete("certificates", "abc123"))
	_, err = os.Stat(filepath.Join(dir, "certificates", "abc123.png"))
	assert.True(t, os.IsNotExist(err))

	// Deleting an already-removed blob is not an error
	assert.NoError(t, store.Delete("certificates", "abc123"))
}
