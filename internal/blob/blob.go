package blob

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("object not found")
	ErrAccessDenied = errors.New("access denied")
	ErrTransient    = errors.New("transient blob store failure")
)

// Object describes a stored blob without its payload.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
	ETag         string
}

// Store exposes the object storage operations the service needs.
// An S3-compatible backend implements it in production; tests inject
// a mock. Implementations report failures through the package
// sentinels so callers can distinguish not-found from access-denied
// from retryable errors.
type Store interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	List(ctx context.Context, prefix string) ([]Object, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte, contentType string) error
	EnsureBucket(ctx context.Context) error
}
