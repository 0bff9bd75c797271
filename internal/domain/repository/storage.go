package repository

import (
	"context"
	"io"
)

// ObjectStorage defines the interface for preview artifact storage.
// Implementations should be provided by the infrastructure layer (e.g., MinIO, S3).
// Previews for audio and video live in separate buckets, so every operation
// takes the bucket explicitly.
type ObjectStorage interface {
	// Upload stores an object and returns its public URL.
	// key is the object path within the bucket
	// (e.g., "mix/{music_id}-preview-22s.wav").
	Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) (string, error)

	// Exists checks if an object exists in the storage.
	Exists(ctx context.Context, bucket, key string) (bool, error)

	// Delete removes an object from the storage.
	Delete(ctx context.Context, bucket, key string) error
}
