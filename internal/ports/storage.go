package ports

import "context"

// PutObjectInput groups parameters for ObjectStore.Put.
type PutObjectInput struct {
	Key         string
	Content     []byte
	ContentType string
}

// ObjectStore persists uploaded files (product images) in a bucket-style store.
type ObjectStore interface {
	// Put stores content under key and returns the public URL.
	Put(ctx context.Context, in PutObjectInput) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
