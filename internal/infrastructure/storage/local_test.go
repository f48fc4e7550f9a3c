package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/internal/domain"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "/uploads/")
	require.NoError(t, err)
	return store
}

func TestLocalStore_SaveYDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	url, err := store.Save(ctx, []byte("%PDF-1.7"), "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"), "la URL usa el prefijo público sin doble barra, fue %q", url)
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(store.dir, name))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))

	removed, err := store.Delete(ctx, url)
	require.NoError(t, err)
	assert.True(t, removed)

	// Segundo borrado: el archivo ya no está, sin error.
	removed, err = store.Delete(ctx, url)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLocalStore_ExtensionPorContentType(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cases := map[string]string{
		"application/pdf": ".pdf",
		"image/png":       ".png",
		"image/jpeg":      ".jpg",
		"image/webp":      ".webp",
	}
	for contentType, ext := range cases {
		url, err := store.Save(ctx, []byte("x"), contentType)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(url, ext), "%s debe guardarse como %s, fue %q", contentType, ext, url)
	}

	_, err := store.Save(ctx, []byte("x"), "application/zip")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLocalStore_DeleteIgnoraURLsAjenas(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, url := range []string{
		"https://otro-bucket/archivo.pdf",
		"/uploads/",
		"/uploads/../../etc/passwd",
		"/uploads/sub/archivo.pdf",
	} {
		removed, err := store.Delete(ctx, url)
		require.NoError(t, err, "url %q", url)
		assert.False(t, removed, "url %q no pertenece al almacén", url)
	}
}
