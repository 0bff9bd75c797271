// Package videoframe extracts and renders single representative frames from
// video sources for preview thumbnails.
package videoframe

import (
	"context"
	"image"
)

// Metadata describes a video source as reported by the probe step.
type Metadata struct {
	// Duration is the source length in seconds. Zero when the source does not
	// report one (live streams, broken containers).
	Duration float64
	// Width and Height are the dimensions of the first video stream in pixels.
	Width  int
	Height int
}

// Sampler defines the platform binding for video frame access. The pipeline
// logic (timestamp bounds, naming, pixelation) is independent of how frames
// are actually produced.
type Sampler interface {
	// Probe loads the source's metadata without downloading the full asset.
	Probe(ctx context.Context, url string) (*Metadata, error)

	// Grab seeks the source to the given timestamp in seconds and rasterizes
	// the frame at that position.
	Grab(ctx context.Context, url string, timestamp float64) (image.Image, error)
}
