package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStorage(t.TempDir(), "/uploads")

	url, err := s.Save(ctx, "needy/2025/01/doc.pdf", strings.NewReader("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/needy/2025/01/doc.pdf", url)

	key, ok := s.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "needy/2025/01/doc.pdf", key)

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4", string(b))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorage_KeyCannotEscapeBaseDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewLocalStorage(dir, "/uploads")

	url, err := s.Save(ctx, "../../etc/evil.pdf", strings.NewReader("x"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/etc/evil.pdf", url)

	rc, err := s.Open(ctx, "etc/evil.pdf")
	require.NoError(t, err)
	_ = rc.Close()
}

func TestLocalStorage_KeyFromURL_ForeignPrefix(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/uploads/")
	_, ok := s.KeyFromURL("/static/a.pdf")
	assert.False(t, ok)
	_, ok = s.KeyFromURL("/uploads/")
	assert.False(t, ok)
}

func TestDocumentKey(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	key := DocumentKey("needy", ".pdf", now)
	assert.True(t, strings.HasPrefix(key, "needy/2025/03/"), key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), key)
	assert.NotEqual(t, key, DocumentKey("needy", ".pdf", now))
}
