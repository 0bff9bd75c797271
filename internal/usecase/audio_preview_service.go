package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/briiitelord/midnightLaundry/internal/audio"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
	"github.com/briiitelord/midnightLaundry/internal/fetch"
	"github.com/briiitelord/midnightLaundry/internal/infrastructure/metrics"
)

const (
	// DefaultAudioPreviewSeconds is the preview length used when the caller
	// does not specify one.
	DefaultAudioPreviewSeconds = 22.0

	// MusicPreviewBucket is the object storage bucket for audio previews.
	MusicPreviewBucket = "music_previews"
)

// AudioPreviewResult is the terminal output of a successful audio preview run.
type AudioPreviewResult struct {
	PreviewURL string
}

// AudioPreviewService synthesizes a short WAV preview from a full-length
// audio source: fetch, decode, prefix extraction, PCM encode, upload.
type AudioPreviewService interface {
	// Generate runs the full pipeline. durationSeconds <= 0 selects the default.
	Generate(ctx context.Context, sourceURL, category string, itemID uuid.UUID, durationSeconds float64) (*AudioPreviewResult, error)
}

// AudioPreviewServiceConfig holds configuration for AudioPreviewService.
type AudioPreviewServiceConfig struct {
	// DurationSeconds is the default preview length.
	DurationSeconds float64
	// Bucket is the destination bucket for preview artifacts.
	Bucket string
}

// DefaultAudioPreviewServiceConfig returns the default configuration.
func DefaultAudioPreviewServiceConfig() AudioPreviewServiceConfig {
	return AudioPreviewServiceConfig{
		DurationSeconds: DefaultAudioPreviewSeconds,
		Bucket:          MusicPreviewBucket,
	}
}

type audioPreviewService struct {
	fetcher fetch.Fetcher
	decoder audio.Decoder
	storage repository.ObjectStorage

	durationSeconds float64
	bucket          string
}

// NewAudioPreviewService creates a new AudioPreviewService instance.
func NewAudioPreviewService(
	fetcher fetch.Fetcher,
	decoder audio.Decoder,
	storage repository.ObjectStorage,
	cfg AudioPreviewServiceConfig,
) AudioPreviewService {
	return &audioPreviewService{
		fetcher:         fetcher,
		decoder:         decoder,
		storage:         storage,
		durationSeconds: cfg.DurationSeconds,
		bucket:          cfg.Bucket,
	}
}

// Generate fetches the source, decodes it, extracts a deterministic prefix
// and uploads the re-encoded WAV. The prefix is always the start of the
// track: consistent previews of a track's intro are preferred over random
// sampling for music.
func (s *audioPreviewService) Generate(ctx context.Context, sourceURL, category string, itemID uuid.UUID, durationSeconds float64) (*AudioPreviewResult, error) {
	if durationSeconds <= 0 {
		durationSeconds = s.durationSeconds
	}

	start := time.Now()
	data, err := s.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	observeStage(metrics.PreviewKindAudio, metrics.StageFetch, start)

	start = time.Now()
	decoded, err := s.decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	observeStage(metrics.PreviewKindAudio, metrics.StageDecode, start)

	segment := decoded.Prefix(durationSeconds)

	start = time.Now()
	encoded, err := audio.EncodeWAV(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	observeStage(metrics.PreviewKindAudio, metrics.StageEncode, start)

	key := audioPreviewKey(category, itemID, durationSeconds)

	start = time.Now()
	url, err := s.storage.Upload(ctx, s.bucket, key, bytes.NewReader(encoded), int64(len(encoded)), "audio/wav")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	if url == "" {
		return nil, fmt.Errorf("%w: storage returned no URL", ErrUpload)
	}
	observeStage(metrics.PreviewKindAudio, metrics.StageUpload, start)

	return &AudioPreviewResult{PreviewURL: url}, nil
}

// audioPreviewKey builds the object path for an audio preview. The path is a
// pure function of its inputs so repeated runs overwrite the same object.
// Format: {category}/{itemId}-preview-{durationSeconds}s.wav
func audioPreviewKey(category string, itemID uuid.UUID, durationSeconds float64) string {
	seconds := strconv.FormatFloat(durationSeconds, 'f', -1, 64)
	return fmt.Sprintf("%s/%s-preview-%ss.wav", category, itemID, seconds)
}

// observeStage records how long a pipeline stage took.
func observeStage(kind, stage string, start time.Time) {
	metrics.PreviewStageDuration.WithLabelValues(kind, stage).Observe(time.Since(start).Seconds())
}
