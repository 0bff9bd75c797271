package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
)

// MusicRepository defines the interface for music item persistence.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
type MusicRepository interface {
	// GetByID retrieves a music item by its unique identifier.
	// Returns nil and ErrMusicNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.MusicItem, error)

	// List retrieves all music items ordered by creation time, newest first.
	List(ctx context.Context) ([]*model.MusicItem, error)

	// UpdatePreviewStatus updates only the preview status field.
	// Returns ErrMusicNotFound if the item does not exist.
	UpdatePreviewStatus(ctx context.Context, id uuid.UUID, status model.PreviewStatus) error

	// SetPreviewReady stores the generated preview URL and marks the item ready
	// in a single write.
	// Returns ErrMusicNotFound if the item does not exist.
	SetPreviewReady(ctx context.Context, id uuid.UUID, previewURL string) error
}

// VideoRepository defines the interface for video persistence.
type VideoRepository interface {
	// GetByID retrieves a video by its unique identifier.
	// Returns nil and ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// List retrieves all videos ordered by creation time, newest first.
	List(ctx context.Context) ([]*model.Video, error)

	// UpdatePreviewStatus updates only the preview status field.
	// Returns ErrVideoNotFound if the video does not exist.
	UpdatePreviewStatus(ctx context.Context, id uuid.UUID, status model.PreviewStatus) error

	// SetPreviewReady stores the sampled frame URL and timestamp and marks the
	// video ready. blurred selects the preview_blurred_url column; it must be
	// true for nsfw-rated videos.
	// Returns ErrVideoNotFound if the video does not exist.
	SetPreviewReady(ctx context.Context, id uuid.UUID, previewURL string, blurred bool, timestamp float64) error
}
