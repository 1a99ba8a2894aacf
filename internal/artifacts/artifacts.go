// Package artifacts stores uploaded lecture files until the pipeline has
// consumed them.
package artifacts

import (
	"context"
	"errors"
	"io"
)

var ErrArtifactNotFound = errors.New("artifact not found")

// Store is the persistence contract for uploaded artifacts, keyed by an
// opaque object name chosen by the caller.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
