package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the bucket operations used to mirror galleries.
type ObjectStorage interface {
	// Upload writes an object, replacing any existing one
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// List returns every key under prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// GetURL returns the public URL for an object
	GetURL(key string) string

	// Delete removes an object
	Delete(ctx context.Context, key string) error
}
