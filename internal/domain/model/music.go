package model

import (
	"time"

	"github.com/google/uuid"
)

// MusicItem represents a track in the portfolio catalog.
// Only the preview-related fields are mutated by this service; the rest of
// the record is owned by the admin CRUD surface.
type MusicItem struct {
	ID            uuid.UUID
	Title         string
	Category      string
	FileURL       string
	PreviewURL    string
	PreviewStatus PreviewStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StartPreview transitions the item into pending preview generation.
// Requires an uploaded source file; a pending item cannot be re-entered,
// which is what guards against two concurrent runs racing on the same
// storage path.
func (m *MusicItem) StartPreview() error {
	if m.FileURL == "" {
		return ErrMissingSourceFile
	}
	if !m.PreviewStatus.CanTransitionTo(PreviewStatusPending) {
		return ErrInvalidPreviewTransition
	}
	m.PreviewStatus = PreviewStatusPending
	m.UpdatedAt = time.Now()
	return nil
}

// FinishPreview records a generated preview URL and marks the item ready.
func (m *MusicItem) FinishPreview(previewURL string) error {
	if !m.PreviewStatus.CanTransitionTo(PreviewStatusReady) {
		return ErrInvalidPreviewTransition
	}
	m.PreviewURL = previewURL
	m.PreviewStatus = PreviewStatusReady
	m.UpdatedAt = time.Now()
	return nil
}

// FailPreview marks the pending run as failed. The previous preview URL, if
// any, is left untouched so a stale-but-valid preview keeps serving.
func (m *MusicItem) FailPreview() error {
	if !m.PreviewStatus.CanTransitionTo(PreviewStatusFailed) {
		return ErrInvalidPreviewTransition
	}
	m.PreviewStatus = PreviewStatusFailed
	m.UpdatedAt = time.Now()
	return nil
}
