package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
)

// MusicService defines the interface for music catalog operations.
type MusicService interface {
	// GetMusic retrieves a music item by ID.
	GetMusic(ctx context.Context, musicID uuid.UUID) (*model.MusicItem, error)

	// ListMusic retrieves all music items, newest first.
	ListMusic(ctx context.Context) ([]*model.MusicItem, error)

	// TriggerPreview initiates async preview generation for a music item.
	// Returns ErrPreviewInProgress if a run is already pending.
	TriggerPreview(ctx context.Context, musicID uuid.UUID) error
}

type musicService struct {
	repo  repository.MusicRepository
	queue repository.MessageQueue
}

// NewMusicService creates a new MusicService instance.
func NewMusicService(repo repository.MusicRepository, queue repository.MessageQueue) MusicService {
	return &musicService{
		repo:  repo,
		queue: queue,
	}
}

// GetMusic retrieves a music item by ID.
func (s *musicService) GetMusic(ctx context.Context, musicID uuid.UUID) (*model.MusicItem, error) {
	return s.repo.GetByID(ctx, musicID)
}

// ListMusic retrieves all music items.
func (s *musicService) ListMusic(ctx context.Context) ([]*model.MusicItem, error) {
	return s.repo.List(ctx)
}

// TriggerPreview marks the item pending and enqueues a preview task. The
// pending status doubles as a lock: a second trigger while a run is in
// flight is rejected rather than queued twice.
func (s *musicService) TriggerPreview(ctx context.Context, musicID uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, musicID)
	if err != nil {
		return err
	}

	if item.PreviewStatus == model.PreviewStatusPending {
		return ErrPreviewInProgress
	}

	if err := item.StartPreview(); err != nil {
		return err
	}

	if err := s.repo.UpdatePreviewStatus(ctx, musicID, model.PreviewStatusPending); err != nil {
		return fmt.Errorf("update preview status: %w", err)
	}

	task := repository.PreviewTask{
		Kind:   repository.TaskKindAudio,
		ItemID: musicID,
	}

	if err := s.queue.PublishPreviewTask(ctx, task); err != nil {
		return fmt.Errorf("publish preview task: %w", err)
	}

	return nil
}
