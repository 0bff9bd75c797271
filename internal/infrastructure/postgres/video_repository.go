package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
)

// VideoRepository implements repository.VideoRepository using PostgreSQL.
type VideoRepository struct {
	db DBTX
}

var _ repository.VideoRepository = (*VideoRepository)(nil)

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID retrieves a video by its unique identifier.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	const query = `
		SELECT id, title, content_rating, file_url, preview_url, preview_blurred_url,
		       preview_ts, preview_status, created_at, updated_at
		FROM videos
		WHERE id = $1
	`

	video, err := scanVideo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}

	return video, nil
}

// List retrieves all videos, newest first.
func (r *VideoRepository) List(ctx context.Context) ([]*model.Video, error) {
	const query = `
		SELECT id, title, content_rating, file_url, preview_url, preview_blurred_url,
		       preview_ts, preview_status, created_at, updated_at
		FROM videos
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []*model.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}

	return videos, nil
}

// UpdatePreviewStatus updates only the preview status field.
func (r *VideoRepository) UpdatePreviewStatus(ctx context.Context, id uuid.UUID, status model.PreviewStatus) error {
	const query = `
		UPDATE videos
		SET preview_status = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, nullString(status.String()), time.Now())
	if err != nil {
		return fmt.Errorf("failed to update video preview status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// SetPreviewReady stores the generated preview URL, its source timestamp, and
// marks the video ready. NSFW previews land in preview_blurred_url.
func (r *VideoRepository) SetPreviewReady(ctx context.Context, id uuid.UUID, previewURL string, blurred bool, timestamp float64) error {
	column := "preview_url"
	if blurred {
		column = "preview_blurred_url"
	}

	query := fmt.Sprintf(`
		UPDATE videos
		SET %s = $2, preview_ts = $3, preview_status = $4, updated_at = $5
		WHERE id = $1
	`, column)

	tag, err := r.db.Exec(ctx, query, id, previewURL, timestamp, model.PreviewStatusReady.String(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to set video preview ready: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// scanVideo scans a single row into a Video model.
func scanVideo(row pgx.Row) (*model.Video, error) {
	var (
		video      model.Video
		rating     string
		fileURL    *string
		previewURL *string
		blurredURL *string
		previewTS  *float64
		status     *string
	)

	err := row.Scan(
		&video.ID,
		&video.Title,
		&rating,
		&fileURL,
		&previewURL,
		&blurredURL,
		&previewTS,
		&status,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	video.ContentRating = model.ContentRating(rating)
	if fileURL != nil {
		video.FileURL = *fileURL
	}
	if previewURL != nil {
		video.PreviewURL = *previewURL
	}
	if blurredURL != nil {
		video.PreviewBlurredURL = *blurredURL
	}
	if previewTS != nil {
		video.PreviewTimestamp = *previewTS
	}
	if status != nil {
		video.PreviewStatus = model.PreviewStatus(*status)
	}

	return &video, nil
}
