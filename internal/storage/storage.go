package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open when no object exists for a key.
var ErrNotFound = errors.New("storage: not found")

// Storage abstracts where uploaded documents live. Keys are slash separated
// relative paths such as "needy/2025/01/<uuid>.pdf".
type Storage interface {
	// Save writes data under key and returns the public URL it is served at.
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Open returns a reader for the object stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object under key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// KeyFromURL reverses Save's URL mapping.
	KeyFromURL(url string) (string, bool)
}
