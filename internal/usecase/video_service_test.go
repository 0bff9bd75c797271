package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
)

func TestVideoService_TriggerPreview(t *testing.T) {
	videoID := uuid.New()

	tests := []struct {
		name        string
		repo        *mockVideoRepository
		wantErr     error
		wantPublish bool
	}{
		{
			name: "successful trigger",
			repo: &mockVideoRepository{
				getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
					return &model.Video{
						ID:            videoID,
						ContentRating: model.RatingSFW,
						FileURL:       "http://cdn.local/clip.mp4",
					}, nil
				},
			},
			wantPublish: true,
		},
		{
			name: "regenerate over a ready preview",
			repo: &mockVideoRepository{
				getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
					return &model.Video{
						ID:            videoID,
						ContentRating: model.RatingNSFW,
						FileURL:       "http://cdn.local/clip.mp4",
						PreviewStatus: model.PreviewStatusReady,
					}, nil
				},
			},
			wantPublish: true,
		},
		{
			name: "pending run blocks a second trigger",
			repo: &mockVideoRepository{
				getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
					return &model.Video{
						ID:            videoID,
						ContentRating: model.RatingSFW,
						FileURL:       "http://cdn.local/clip.mp4",
						PreviewStatus: model.PreviewStatusPending,
					}, nil
				},
			},
			wantErr: ErrPreviewInProgress,
		},
		{
			name: "missing source file",
			repo: &mockVideoRepository{
				getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
					return &model.Video{ID: videoID, ContentRating: model.RatingSFW}, nil
				},
			},
			wantErr: model.ErrMissingSourceFile,
		},
		{
			name: "video not found",
			repo: &mockVideoRepository{
				getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
					return nil, repository.ErrVideoNotFound
				},
			},
			wantErr: repository.ErrVideoNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var published *repository.PreviewTask
			queue := &mockMessageQueue{
				publishPreviewTaskFn: func(ctx context.Context, task repository.PreviewTask) error {
					published = &task
					return nil
				},
			}

			svc := NewVideoService(tt.repo, queue)
			err := svc.TriggerPreview(context.Background(), videoID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("TriggerPreview() error = %v, wantErr %v", err, tt.wantErr)
				}
				if published != nil {
					t.Error("no task should be published on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("TriggerPreview() unexpected error = %v", err)
			}

			if tt.wantPublish {
				if published == nil {
					t.Fatal("expected task to be published")
				}
				if published.Kind != repository.TaskKindVideo {
					t.Errorf("task kind = %v, want %v", published.Kind, repository.TaskKindVideo)
				}
				if published.ItemID != videoID {
					t.Errorf("task item ID = %v, want %v", published.ItemID, videoID)
				}
			}
		})
	}
}

func TestCachedVideoService_GetVideo_CacheHit(t *testing.T) {
	videoID := uuid.New()
	cached := &model.Video{ID: videoID, Title: "Cached Clip", ContentRating: model.RatingSFW}

	delegateCalls := 0
	repo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			delegateCalls++
			return &model.Video{ID: videoID, Title: "DB Clip"}, nil
		},
	}
	videoCache := &mockVideoCache{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return cached, nil
		},
	}

	svc := NewCachedVideoService(NewVideoService(repo, &mockMessageQueue{}), videoCache, DefaultCachedVideoServiceConfig())

	got, err := svc.GetVideo(context.Background(), videoID)
	if err != nil {
		t.Fatalf("GetVideo() unexpected error = %v", err)
	}
	if got.Title != "Cached Clip" {
		t.Errorf("Title = %q, want Cached Clip", got.Title)
	}
	if delegateCalls != 0 {
		t.Errorf("delegate called %d times on cache hit, want 0", delegateCalls)
	}
}

func TestCachedVideoService_GetVideo_CacheMissPopulatesCache(t *testing.T) {
	videoID := uuid.New()

	var cachedVideo *model.Video
	repo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return &model.Video{ID: videoID, Title: "DB Clip"}, nil
		},
	}
	videoCache := &mockVideoCache{
		setFn: func(ctx context.Context, video *model.Video, ttl time.Duration) error {
			cachedVideo = video
			return nil
		},
	}

	svc := NewCachedVideoService(NewVideoService(repo, &mockMessageQueue{}), videoCache, DefaultCachedVideoServiceConfig())

	got, err := svc.GetVideo(context.Background(), videoID)
	if err != nil {
		t.Fatalf("GetVideo() unexpected error = %v", err)
	}
	if got.Title != "DB Clip" {
		t.Errorf("Title = %q, want DB Clip", got.Title)
	}
	if cachedVideo == nil || cachedVideo.ID != videoID {
		t.Error("expected video to be written to cache after miss")
	}
}

func TestCachedVideoService_TriggerPreview_InvalidatesCache(t *testing.T) {
	videoID := uuid.New()

	deleted := false
	repo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return &model.Video{
				ID:            videoID,
				ContentRating: model.RatingSFW,
				FileURL:       "http://cdn.local/clip.mp4",
			}, nil
		},
	}
	videoCache := &mockVideoCache{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	svc := NewCachedVideoService(NewVideoService(repo, &mockMessageQueue{}), videoCache, DefaultCachedVideoServiceConfig())

	if err := svc.TriggerPreview(context.Background(), videoID); err != nil {
		t.Fatalf("TriggerPreview() unexpected error = %v", err)
	}
	if !deleted {
		t.Error("expected cache entry to be invalidated before trigger")
	}
}
