package videoframe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"strconv"
)

// FFmpegConfig holds configuration for the FFmpeg-based sampler.
type FFmpegConfig struct {
	// FFmpegPath is the path to the ffmpeg binary.
	// If empty, "ffmpeg" will be used (assumes it's in PATH).
	FFmpegPath string

	// FFprobePath is the path to the ffprobe binary.
	// If empty, "ffprobe" will be used.
	FFprobePath string
}

// DefaultFFmpegConfig returns an FFmpegConfig that expects the binaries on PATH.
func DefaultFFmpegConfig() FFmpegConfig {
	return FFmpegConfig{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
	}
}

// FFmpegSampler implements Sampler by shelling out to ffprobe/ffmpeg.
type FFmpegSampler struct {
	config FFmpegConfig
	runner commandRunner
}

// Compile-time verification that FFmpegSampler implements Sampler.
var _ Sampler = (*FFmpegSampler)(nil)

// NewFFmpegSampler creates a new FFmpeg-based frame sampler.
func NewFFmpegSampler(cfg FFmpegConfig) *FFmpegSampler {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = "ffprobe"
	}
	return &FFmpegSampler{
		config: cfg,
		runner: execRunner{},
	}
}

// probeOutput matches the subset of ffprobe's JSON output we read.
type probeOutput struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe runs ffprobe against the source URL and parses duration and
// dimensions. A missing or unparseable duration maps to 0, which downstream
// treats as "sample at the start".
func (s *FFmpegSampler) Probe(ctx context.Context, url string) (*Metadata, error) {
	out, err := s.runner.run(ctx, s.config.FFprobePath, s.buildProbeArgs(url)...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("probe cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("ffprobe execution failed: %w", err)
	}

	return parseProbeOutput(out)
}

// Grab seeks the source and decodes exactly one frame to an in-memory image.
// The PNG intermediate keeps the frame lossless until the render step decides
// the final JPEG quality.
func (s *FFmpegSampler) Grab(ctx context.Context, url string, timestamp float64) (image.Image, error) {
	out, err := s.runner.run(ctx, s.config.FFmpegPath, s.buildGrabArgs(url, timestamp)...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("frame grab cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("ffmpeg execution failed: %w", err)
	}

	frame, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("decode grabbed frame: %w", err)
	}

	return frame, nil
}

// buildProbeArgs constructs the ffprobe command arguments.
func (s *FFmpegSampler) buildProbeArgs(url string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-show_entries", "format=duration",
		"-of", "json",
		url,
	}
}

// buildGrabArgs constructs the ffmpeg command arguments for a single-frame
// extraction. -ss before -i uses keyframe seeking, which is what makes
// grabbing from a remote URL cheap.
func (s *FFmpegSampler) buildGrabArgs(url string, timestamp float64) []string {
	return []string{
		"-v", "error",
		"-ss", strconv.FormatFloat(timestamp, 'f', 3, 64),
		"-i", url,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"pipe:1",
	}
}

// parseProbeOutput decodes ffprobe's JSON report into Metadata.
func parseProbeOutput(out []byte) (*Metadata, error) {
	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(probe.Streams) == 0 {
		return nil, fmt.Errorf("source has no video stream")
	}

	meta := &Metadata{
		Width:  probe.Streams[0].Width,
		Height: probe.Streams[0].Height,
	}

	if probe.Format.Duration != "" {
		// Live or endless sources report "N/A"; treat anything unparseable
		// as an unknown duration rather than failing the probe.
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil && d > 0 {
			meta.Duration = d
		}
	}

	return meta, nil
}
