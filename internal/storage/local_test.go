package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "uploads"), "/static/uploads/")
	require.NoError(t, err)

	url, err := store.Save("user_1.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	require.Equal(t, "/static/uploads/user_1.png", url)

	content, err := os.ReadFile(filepath.Join(store.BaseDir(), "user_1.png"))
	require.NoError(t, err)
	require.Equal(t, "image-bytes", string(content))

	// a second save with the same name replaces the file
	_, err = store.Save("user_1.png", strings.NewReader("newer"))
	require.NoError(t, err)
	content, err = os.ReadFile(filepath.Join(store.BaseDir(), "user_1.png"))
	require.NoError(t, err)
	require.Equal(t, "newer", string(content))
}

func TestLocalStoreStripsPathComponents(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/static/uploads")
	require.NoError(t, err)

	url, err := store.Save("../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	require.Equal(t, "/static/uploads/passwd", url)

	_, err = os.Stat(filepath.Join(store.BaseDir(), "passwd"))
	require.NoError(t, err)
}
