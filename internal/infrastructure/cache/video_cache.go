package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
)

// VideoCache caches video catalog records keyed by ID. Implementations
// handle serialization transparently; callers only see model.Video.
type VideoCache interface {
	// Get retrieves a cached video. A miss returns nil, nil.
	Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error)

	// Set stores a video with the given TTL.
	Set(ctx context.Context, video *model.Video, ttl time.Duration) error

	// Delete evicts a video. Evicting an absent key is not an error.
	Delete(ctx context.Context, videoID uuid.UUID) error
}
