package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// Object is a document to store under Key.
type Object struct {
	Key          string
	ContentType  string
	CacheControl string
	Body         io.Reader
}

// Uploader stores generated documents in a public bucket.
type Uploader interface {
	Upload(ctx context.Context, obj Object) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
