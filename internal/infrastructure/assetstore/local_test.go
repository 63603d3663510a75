package assetstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "http://localhost:8000/")
	ctx := context.Background()

	url, err := s.Save(ctx, strings.NewReader("fake-png-bytes"), "photo.PNG", "image/png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8000/uploads/"), url)
	require.True(t, strings.HasSuffix(url, ".png"), url)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	b, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	require.Equal(t, "fake-png-bytes", string(b))

	require.NoError(t, s.Delete(ctx, url))

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	// second delete: content is gone
	require.ErrorIs(t, s.Delete(ctx, url), ErrNotFound)
}

func TestLocalStoreDeleteUnknownReference(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "http://localhost:8000")
	ctx := context.Background()

	require.ErrorIs(t, s.Delete(ctx, "http://localhost:8000/uploads/nope.png"), ErrNotFound)
	// references outside /uploads never resolve, the placeholder included
	require.ErrorIs(t, s.Delete(ctx, "http://localhost:8000/assets/placeholder.png"), ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, "://bad-url"), ErrNotFound)
}

func TestLocalStoreDeleteStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "..", "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	s := NewLocalStore(dir, "http://localhost:8000")
	_ = s.Delete(context.Background(), "http://localhost:8000/uploads/../victim.txt")

	_, err := os.Stat(outside)
	require.NoError(t, err)
}
