package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
	"github.com/briiitelord/midnightLaundry/internal/infrastructure/cache"
	"github.com/briiitelord/midnightLaundry/internal/infrastructure/metrics"
)

const (
	// DefaultMaxRetries is the default maximum number of retry attempts
	// before marking an item as failed.
	DefaultMaxRetries = 3

	// DefaultTaskTimeout bounds a single preview run end to end.
	DefaultTaskTimeout = 5 * time.Minute
)

// PreviewTaskServiceConfig holds configuration for PreviewTaskService.
type PreviewTaskServiceConfig struct {
	// MaxRetries is the maximum number of attempts before marking the item failed.
	MaxRetries int
	// TaskTimeout bounds a single run; the deadline covers fetch through upload.
	TaskTimeout time.Duration
}

// DefaultPreviewTaskServiceConfig returns the default configuration.
func DefaultPreviewTaskServiceConfig() PreviewTaskServiceConfig {
	return PreviewTaskServiceConfig{
		MaxRetries:  DefaultMaxRetries,
		TaskTimeout: DefaultTaskTimeout,
	}
}

// PreviewTaskService handles preview generation tasks from the message queue.
type PreviewTaskService interface {
	// ProcessTask runs the preview pipeline for a queued task.
	// Returns nil on success or permanent failure (max retries exceeded).
	// Returns error for transient failures that should trigger a retry;
	// each retry re-runs the full pipeline from fetch.
	ProcessTask(ctx context.Context, task repository.PreviewTask) error
}

type previewTaskService struct {
	musicRepo    repository.MusicRepository
	videoRepo    repository.VideoRepository
	audioPreview AudioPreviewService
	videoPreview VideoPreviewService
	videoCache   cache.VideoCache

	maxRetries  int
	taskTimeout time.Duration
}

// NewPreviewTaskService creates a new PreviewTaskService instance.
func NewPreviewTaskService(
	musicRepo repository.MusicRepository,
	videoRepo repository.VideoRepository,
	audioPreview AudioPreviewService,
	videoPreview VideoPreviewService,
	videoCache cache.VideoCache,
	cfg PreviewTaskServiceConfig,
) PreviewTaskService {
	return &previewTaskService{
		musicRepo:    musicRepo,
		videoRepo:    videoRepo,
		audioPreview: audioPreview,
		videoPreview: videoPreview,
		videoCache:   videoCache,
		maxRetries:   cfg.MaxRetries,
		taskTimeout:  cfg.TaskTimeout,
	}
}

// ProcessTask dispatches a queued task to the matching pipeline.
func (s *previewTaskService) ProcessTask(ctx context.Context, task repository.PreviewTask) error {
	// Max retries exceeded - mark as failed and ack the message
	if task.RetryCount >= s.maxRetries {
		if err := s.markFailed(ctx, task); err != nil {
			slog.Error("failed to mark item as failed",
				"kind", task.Kind,
				"item_id", task.ItemID,
				"retry_count", task.RetryCount,
				"error", err,
			)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.taskTimeout)
	defer cancel()

	var (
		kind string
		err  error
	)
	switch task.Kind {
	case repository.TaskKindAudio:
		kind = metrics.PreviewKindAudio
		err = s.processAudioTask(ctx, task.ItemID)
	case repository.TaskKindVideo:
		kind = metrics.PreviewKindVideo
		err = s.processVideoTask(ctx, task.ItemID)
	default:
		// Unknown kind is malformed, not transient - ack and drop
		slog.Error("unknown preview task kind", "kind", task.Kind, "item_id", task.ItemID)
		return nil
	}

	if err != nil {
		metrics.PreviewsGeneratedTotal.WithLabelValues(kind, metrics.OutcomeFailure).Inc()
		return err
	}

	metrics.PreviewsGeneratedTotal.WithLabelValues(kind, metrics.OutcomeSuccess).Inc()
	return nil
}

// processAudioTask runs the audio pipeline for one music item.
func (s *previewTaskService) processAudioTask(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.musicRepo.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("get music item: %w", err)
	}

	// Only pending items are processed; anything else means the task is
	// stale (regenerated, manually resolved) and is dropped.
	if item.PreviewStatus != model.PreviewStatusPending {
		slog.Info("skipping audio preview task for non-pending item",
			"music_id", itemID,
			"status", item.PreviewStatus,
		)
		return nil
	}

	result, err := s.audioPreview.Generate(ctx, item.FileURL, item.Category, item.ID, 0)
	if err != nil {
		return fmt.Errorf("generate audio preview: %w", err)
	}

	if err := s.musicRepo.SetPreviewReady(ctx, itemID, result.PreviewURL); err != nil {
		return fmt.Errorf("set preview ready: %w", err)
	}

	return nil
}

// processVideoTask runs the video pipeline for one video.
func (s *previewTaskService) processVideoTask(ctx context.Context, itemID uuid.UUID) error {
	video, err := s.videoRepo.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("get video: %w", err)
	}

	if video.PreviewStatus != model.PreviewStatusPending {
		slog.Info("skipping video preview task for non-pending video",
			"video_id", itemID,
			"status", video.PreviewStatus,
		)
		return nil
	}

	result, err := s.videoPreview.Generate(ctx, video.FileURL, video.ContentRating, video.ID)
	if err != nil {
		return fmt.Errorf("generate video preview: %w", err)
	}

	if err := s.videoRepo.SetPreviewReady(ctx, itemID, result.PreviewURL, video.IsNSFW(), result.PreviewTimestamp); err != nil {
		return fmt.Errorf("set preview ready: %w", err)
	}

	s.invalidateVideoCache(ctx, itemID)
	return nil
}

// markFailed transitions the item to failed after retries are exhausted.
func (s *previewTaskService) markFailed(ctx context.Context, task repository.PreviewTask) error {
	switch task.Kind {
	case repository.TaskKindAudio:
		item, err := s.musicRepo.GetByID(ctx, task.ItemID)
		if err != nil {
			return err
		}
		if item.PreviewStatus != model.PreviewStatusPending {
			return nil
		}
		return s.musicRepo.UpdatePreviewStatus(ctx, task.ItemID, model.PreviewStatusFailed)
	case repository.TaskKindVideo:
		video, err := s.videoRepo.GetByID(ctx, task.ItemID)
		if err != nil {
			return err
		}
		if video.PreviewStatus != model.PreviewStatusPending {
			return nil
		}
		if err := s.videoRepo.UpdatePreviewStatus(ctx, task.ItemID, model.PreviewStatusFailed); err != nil {
			return err
		}
		s.invalidateVideoCache(ctx, task.ItemID)
		return nil
	default:
		return nil
	}
}

// invalidateVideoCache drops the cached video record after a status change.
func (s *previewTaskService) invalidateVideoCache(ctx context.Context, videoID uuid.UUID) {
	if s.videoCache == nil {
		return
	}
	if err := s.videoCache.Delete(ctx, videoID); err != nil {
		slog.Warn("failed to invalidate video cache",
			"video_id", videoID,
			"error", err,
		)
	}
}
