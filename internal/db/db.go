package db

import (
	"context"
	"time"
)

// Object is a stored blob together with its metadata. UploadedAt is set by
// the store on every Put and drives cache invalidation upstream.
type Object struct {
	Body        []byte
	ContentType string
	UploadedAt  time.Time
}

// BlobStore is key-addressed blob storage with upload-timestamp metadata.
type BlobStore interface {
	Pinger
	// Put stores body under key, overwriting any previous version and
	// stamping it with the current time.
	Put(ctx context.Context, key string, body []byte, contentType string) error
	// Get returns the blob and its metadata, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (Object, error)
	// Stat returns the upload timestamp without fetching the body, or
	// ErrKeyNotFound.
	Stat(ctx context.Context, key string) (time.Time, error)
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
