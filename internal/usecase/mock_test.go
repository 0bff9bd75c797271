package usecase

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
	"github.com/briiitelord/midnightLaundry/internal/videoframe"
)

// mockMusicRepository provides a configurable mock for MusicRepository.
type mockMusicRepository struct {
	getByIDFn             func(ctx context.Context, id uuid.UUID) (*model.MusicItem, error)
	listFn                func(ctx context.Context) ([]*model.MusicItem, error)
	updatePreviewStatusFn func(ctx context.Context, id uuid.UUID, status model.PreviewStatus) error
	setPreviewReadyFn     func(ctx context.Context, id uuid.UUID, previewURL string) error
}

func (m *mockMusicRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MusicItem, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockMusicRepository) List(ctx context.Context) ([]*model.MusicItem, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockMusicRepository) UpdatePreviewStatus(ctx context.Context, id uuid.UUID, status model.PreviewStatus) error {
	if m.updatePreviewStatusFn != nil {
		return m.updatePreviewStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockMusicRepository) SetPreviewReady(ctx context.Context, id uuid.UUID, previewURL string) error {
	if m.setPreviewReadyFn != nil {
		return m.setPreviewReadyFn(ctx, id, previewURL)
	}
	return nil
}

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	getByIDFn             func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	listFn                func(ctx context.Context) ([]*model.Video, error)
	updatePreviewStatusFn func(ctx context.Context, id uuid.UUID, status model.PreviewStatus) error
	setPreviewReadyFn     func(ctx context.Context, id uuid.UUID, previewURL string, blurred bool, timestamp float64) error
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockVideoRepository) List(ctx context.Context) ([]*model.Video, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockVideoRepository) UpdatePreviewStatus(ctx context.Context, id uuid.UUID, status model.PreviewStatus) error {
	if m.updatePreviewStatusFn != nil {
		return m.updatePreviewStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockVideoRepository) SetPreviewReady(ctx context.Context, id uuid.UUID, previewURL string, blurred bool, timestamp float64) error {
	if m.setPreviewReadyFn != nil {
		return m.setPreviewReadyFn(ctx, id, previewURL, blurred, timestamp)
	}
	return nil
}

// mockObjectStorage provides a configurable mock for ObjectStorage.
type mockObjectStorage struct {
	uploadFn func(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) (string, error)
	existsFn func(ctx context.Context, bucket, key string) (bool, error)
	deleteFn func(ctx context.Context, bucket, key string) error
}

func (m *mockObjectStorage) Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) (string, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, bucket, key, reader, size, contentType)
	}
	return "http://storage.local/" + bucket + "/" + key, nil
}

func (m *mockObjectStorage) Exists(ctx context.Context, bucket, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, bucket, key)
	}
	return false, nil
}

func (m *mockObjectStorage) Delete(ctx context.Context, bucket, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, bucket, key)
	}
	return nil
}

// mockMessageQueue provides a configurable mock for MessageQueue.
type mockMessageQueue struct {
	publishPreviewTaskFn  func(ctx context.Context, task repository.PreviewTask) error
	consumePreviewTasksFn func(ctx context.Context, handler func(task repository.PreviewTask) error) error
}

func (m *mockMessageQueue) PublishPreviewTask(ctx context.Context, task repository.PreviewTask) error {
	if m.publishPreviewTaskFn != nil {
		return m.publishPreviewTaskFn(ctx, task)
	}
	return nil
}

func (m *mockMessageQueue) ConsumePreviewTasks(ctx context.Context, handler func(task repository.PreviewTask) error) error {
	if m.consumePreviewTasksFn != nil {
		return m.consumePreviewTasksFn(ctx, handler)
	}
	return nil
}

func (m *mockMessageQueue) Close() error {
	return nil
}

// mockFetcher provides a configurable mock for fetch.Fetcher.
type mockFetcher struct {
	fetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, url)
	}
	return nil, nil
}

// mockSampler provides a configurable mock for videoframe.Sampler.
type mockSampler struct {
	probeFn func(ctx context.Context, url string) (*videoframe.Metadata, error)
	grabFn  func(ctx context.Context, url string, timestamp float64) (image.Image, error)
}

func (m *mockSampler) Probe(ctx context.Context, url string) (*videoframe.Metadata, error) {
	if m.probeFn != nil {
		return m.probeFn(ctx, url)
	}
	return &videoframe.Metadata{Duration: 60, Width: 1280, Height: 720}, nil
}

func (m *mockSampler) Grab(ctx context.Context, url string, timestamp float64) (image.Image, error) {
	if m.grabFn != nil {
		return m.grabFn(ctx, url, timestamp)
	}
	return image.NewNRGBA(image.Rect(0, 0, 1280, 720)), nil
}

// mockVideoCache provides a configurable mock for cache.VideoCache.
type mockVideoCache struct {
	getFn    func(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	setFn    func(ctx context.Context, video *model.Video, ttl time.Duration) error
	deleteFn func(ctx context.Context, videoID uuid.UUID) error
}

func (m *mockVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if m.getFn != nil {
		return m.getFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockVideoCache) Set(ctx context.Context, video *model.Video, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, video, ttl)
	}
	return nil
}

func (m *mockVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, videoID)
	}
	return nil
}

// mockAudioPreviewService provides a configurable mock for AudioPreviewService.
type mockAudioPreviewService struct {
	generateFn func(ctx context.Context, sourceURL, category string, itemID uuid.UUID, durationSeconds float64) (*AudioPreviewResult, error)
}

func (m *mockAudioPreviewService) Generate(ctx context.Context, sourceURL, category string, itemID uuid.UUID, durationSeconds float64) (*AudioPreviewResult, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, sourceURL, category, itemID, durationSeconds)
	}
	return &AudioPreviewResult{PreviewURL: "http://storage.local/preview.wav"}, nil
}

// mockVideoPreviewService provides a configurable mock for VideoPreviewService.
type mockVideoPreviewService struct {
	generateFn func(ctx context.Context, sourceURL string, rating model.ContentRating, itemID uuid.UUID) (*VideoPreviewResult, error)
}

func (m *mockVideoPreviewService) Generate(ctx context.Context, sourceURL string, rating model.ContentRating, itemID uuid.UUID) (*VideoPreviewResult, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, sourceURL, rating, itemID)
	}
	return &VideoPreviewResult{PreviewURL: "http://storage.local/preview.jpg", PreviewTimestamp: 12.0}, nil
}
