package port

import (
	"context"
	"io"
)

type BlobStore interface {
	// Put stores the content under key and returns its public URL.
	Put(ctx context.Context, key string, r io.Reader) (string, error)

	// Delete removes the object stored under key. A missing key is not an error.
	Delete(ctx context.Context, key string) error
}
