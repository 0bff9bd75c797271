package usecase

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
	"github.com/briiitelord/midnightLaundry/internal/infrastructure/metrics"
	"github.com/briiitelord/midnightLaundry/internal/videoframe"
)

const (
	// DefaultMaxFrameWidth bounds the preview image width in pixels.
	DefaultMaxFrameWidth = 640

	// DefaultJPEGQuality is the JPEG encoding quality for preview frames.
	DefaultJPEGQuality = 82

	// VideoPreviewBucket is the object storage bucket for video previews.
	VideoPreviewBucket = "video_previews"
)

// VideoPreviewResult is the terminal output of a successful video preview run.
type VideoPreviewResult struct {
	PreviewURL       string
	PreviewTimestamp float64
}

// VideoPreviewService synthesizes a still-frame JPEG preview from a video
// source: probe, bounded random timestamp, seek and rasterize, downscale,
// mandatory pixelation for nsfw material, encode, upload.
type VideoPreviewService interface {
	Generate(ctx context.Context, sourceURL string, rating model.ContentRating, itemID uuid.UUID) (*VideoPreviewResult, error)
}

// VideoPreviewServiceConfig holds configuration for VideoPreviewService.
type VideoPreviewServiceConfig struct {
	// MaxFrameWidth bounds the rendered preview width. Frames narrower than
	// this are never upscaled.
	MaxFrameWidth int
	// JPEGQuality is the encoding quality in [1, 100].
	JPEGQuality int
	// Bucket is the destination bucket for preview artifacts.
	Bucket string
	// Rand supplies values in [0, 1) for timestamp sampling. Nil selects the
	// process-wide PRNG; tests inject a seeded source.
	Rand func() float64
}

// DefaultVideoPreviewServiceConfig returns the default configuration.
func DefaultVideoPreviewServiceConfig() VideoPreviewServiceConfig {
	return VideoPreviewServiceConfig{
		MaxFrameWidth: DefaultMaxFrameWidth,
		JPEGQuality:   DefaultJPEGQuality,
		Bucket:        VideoPreviewBucket,
	}
}

type videoPreviewService struct {
	sampler videoframe.Sampler
	storage repository.ObjectStorage

	maxFrameWidth int
	jpegQuality   int
	bucket        string
	random        func() float64
}

// NewVideoPreviewService creates a new VideoPreviewService instance.
func NewVideoPreviewService(
	sampler videoframe.Sampler,
	storage repository.ObjectStorage,
	cfg VideoPreviewServiceConfig,
) VideoPreviewService {
	random := cfg.Rand
	if random == nil {
		random = rand.Float64
	}
	return &videoPreviewService{
		sampler:       sampler,
		storage:       storage,
		maxFrameWidth: cfg.MaxFrameWidth,
		jpegQuality:   cfg.JPEGQuality,
		bucket:        cfg.Bucket,
		random:        random,
	}
}

// Generate probes the source, samples a bounded random timestamp, grabs and
// renders the frame, and uploads the encoded JPEG.
//
// Pixelation for nsfw sources is a decency safeguard, not a cosmetic effect:
// it is applied unconditionally for that rating and there is no configuration
// to weaken it.
func (s *videoPreviewService) Generate(ctx context.Context, sourceURL string, rating model.ContentRating, itemID uuid.UUID) (*VideoPreviewResult, error) {
	if !rating.IsValid() {
		return nil, model.ErrInvalidContentRating
	}

	start := time.Now()
	meta, err := s.sampler.Probe(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetadataLoad, err)
	}
	observeStage(metrics.PreviewKindVideo, metrics.StageProbe, start)

	timestamp := previewTimestamp(meta.Duration, s.random)

	start = time.Now()
	frame, err := s.sampler.Grab(ctx, sourceURL, timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSeek, err)
	}
	observeStage(metrics.PreviewKindVideo, metrics.StageGrab, start)

	start = time.Now()
	rendered := videoframe.RenderPreview(frame, s.maxFrameWidth, rating == model.RatingNSFW)
	encoded, err := videoframe.EncodeJPEG(rendered, s.jpegQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	observeStage(metrics.PreviewKindVideo, metrics.StageRender, start)

	key := videoPreviewKey(rating, itemID, timestamp)

	start = time.Now()
	url, err := s.storage.Upload(ctx, s.bucket, key, bytes.NewReader(encoded), int64(len(encoded)), "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	if url == "" {
		return nil, fmt.Errorf("%w: storage returned no URL", ErrUpload)
	}
	observeStage(metrics.PreviewKindVideo, metrics.StageUpload, start)

	return &VideoPreviewResult{
		PreviewURL:       url,
		PreviewTimestamp: timestamp,
	}, nil
}

// previewTimestamp picks a sample position inside the middle of the asset.
// The first 10% of the video (capped at 2 seconds) and the last 10% are
// excluded so previews don't land on black intro frames or credits. A source
// with no usable duration samples frame zero.
func previewTimestamp(duration float64, random func() float64) float64 {
	if duration <= 0 || math.IsInf(duration, 0) || math.IsNaN(duration) {
		return 0
	}

	safeStart := math.Min(2.0, duration*0.1)
	safeEnd := math.Max(safeStart+0.1, duration*0.9)
	return safeStart + random()*(safeEnd-safeStart)
}

// videoPreviewKey builds the object path for a video preview.
// Format: {contentRating}/{itemId}-{floor(timestamp*1000)}.jpg
func videoPreviewKey(rating model.ContentRating, itemID uuid.UUID, timestamp float64) string {
	return fmt.Sprintf("%s/%s-%d.jpg", rating, itemID, int64(math.Floor(timestamp*1000)))
}
