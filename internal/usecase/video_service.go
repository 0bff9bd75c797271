package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
)

// VideoService defines the interface for video catalog operations.
type VideoService interface {
	// GetVideo retrieves a video by ID.
	GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error)

	// ListVideos retrieves all videos, newest first.
	ListVideos(ctx context.Context) ([]*model.Video, error)

	// TriggerPreview initiates async preview generation for a video.
	// Returns ErrPreviewInProgress if a run is already pending.
	TriggerPreview(ctx context.Context, videoID uuid.UUID) error
}

type videoService struct {
	repo  repository.VideoRepository
	queue repository.MessageQueue
}

// NewVideoService creates a new VideoService instance.
func NewVideoService(repo repository.VideoRepository, queue repository.MessageQueue) VideoService {
	return &videoService{
		repo:  repo,
		queue: queue,
	}
}

// GetVideo retrieves a video by ID.
func (s *videoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	return s.repo.GetByID(ctx, videoID)
}

// ListVideos retrieves all videos.
func (s *videoService) ListVideos(ctx context.Context) ([]*model.Video, error) {
	return s.repo.List(ctx)
}

// TriggerPreview marks the video pending and enqueues a preview task. The
// pending status doubles as a lock against concurrent runs for the same video.
func (s *videoService) TriggerPreview(ctx context.Context, videoID uuid.UUID) error {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}

	if video.PreviewStatus == model.PreviewStatusPending {
		return ErrPreviewInProgress
	}

	if err := video.StartPreview(); err != nil {
		return err
	}

	if err := s.repo.UpdatePreviewStatus(ctx, videoID, model.PreviewStatusPending); err != nil {
		return fmt.Errorf("update preview status: %w", err)
	}

	task := repository.PreviewTask{
		Kind:   repository.TaskKindVideo,
		ItemID: videoID,
	}

	if err := s.queue.PublishPreviewTask(ctx, task); err != nil {
		return fmt.Errorf("publish preview task: %w", err)
	}

	return nil
}
