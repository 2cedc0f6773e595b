package catalog

import (
	"context"
	"time"
)

// ObjectStorage abstracts the object store holding product images
type ObjectStorage interface {
	// GenerateUploadURL returns a presigned URL for a direct client upload
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// GenerateDownloadURL returns a presigned URL for reading an object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	// DeleteObjects removes a batch of objects and returns the keys it
	// could not delete; deleting a missing object succeeds
	DeleteObjects(ctx context.Context, storageKeys []string) ([]string, error)
	// ObjectExists reports whether an object is present
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// EmbeddingGenerator turns product text into an embedding vector
type EmbeddingGenerator interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
