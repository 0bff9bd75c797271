package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ContentRating classifies a video for audience gating.
type ContentRating string

const (
	RatingSFW  ContentRating = "sfw"
	RatingNSFW ContentRating = "nsfw"
)

func (r ContentRating) IsValid() bool {
	return r == RatingSFW || r == RatingNSFW
}

func (r ContentRating) String() string {
	return string(r)
}

var ErrInvalidContentRating = errors.New("content rating must be sfw or nsfw")

// Video represents a video entry in the portfolio catalog.
type Video struct {
	ID                uuid.UUID
	Title             string
	ContentRating     ContentRating
	FileURL           string
	PreviewURL        string
	PreviewBlurredURL string
	PreviewTimestamp  float64
	PreviewStatus     PreviewStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsNSFW reports whether previews for this video must be pixelated.
func (v *Video) IsNSFW() bool {
	return v.ContentRating == RatingNSFW
}

// StartPreview transitions the video into pending preview generation.
func (v *Video) StartPreview() error {
	if v.FileURL == "" {
		return ErrMissingSourceFile
	}
	if !v.ContentRating.IsValid() {
		return ErrInvalidContentRating
	}
	if !v.PreviewStatus.CanTransitionTo(PreviewStatusPending) {
		return ErrInvalidPreviewTransition
	}
	v.PreviewStatus = PreviewStatusPending
	v.UpdatedAt = time.Now()
	return nil
}

// FinishPreview records the sampled frame for the video and marks it ready.
// NSFW previews are stored on the blurred slot only, so a UI reading
// PreviewURL can never surface an unpixelated frame for restricted content.
func (v *Video) FinishPreview(previewURL string, timestamp float64) error {
	if !v.PreviewStatus.CanTransitionTo(PreviewStatusReady) {
		return ErrInvalidPreviewTransition
	}
	if v.IsNSFW() {
		v.PreviewBlurredURL = previewURL
	} else {
		v.PreviewURL = previewURL
	}
	v.PreviewTimestamp = timestamp
	v.PreviewStatus = PreviewStatusReady
	v.UpdatedAt = time.Now()
	return nil
}

// FailPreview marks the pending run as failed, keeping any prior preview.
func (v *Video) FailPreview() error {
	if !v.PreviewStatus.CanTransitionTo(PreviewStatusFailed) {
		return ErrInvalidPreviewTransition
	}
	v.PreviewStatus = PreviewStatusFailed
	v.UpdatedAt = time.Now()
	return nil
}
