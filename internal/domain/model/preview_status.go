package model

import "errors"

// PreviewStatus represents the lifecycle state of a media item's preview artifact.
type PreviewStatus string

const (
	// PreviewStatusNone means no preview generation has been requested yet.
	PreviewStatusNone    PreviewStatus = ""
	PreviewStatusPending PreviewStatus = "pending"
	PreviewStatusReady   PreviewStatus = "ready"
	PreviewStatusFailed  PreviewStatus = "failed"
)

// Valid status transitions:
// none -> pending -> ready
//                \-> failed
// ready and failed both allow pending again (regenerate / retry from scratch).
var validPreviewTransitions = map[PreviewStatus][]PreviewStatus{
	PreviewStatusNone:    {PreviewStatusPending},
	PreviewStatusPending: {PreviewStatusReady, PreviewStatusFailed},
	PreviewStatusReady:   {PreviewStatusPending},
	PreviewStatusFailed:  {PreviewStatusPending},
}

func (s PreviewStatus) IsValid() bool {
	switch s {
	case PreviewStatusNone, PreviewStatusPending, PreviewStatusReady, PreviewStatusFailed:
		return true
	default:
		return false
	}
}

func (s PreviewStatus) CanTransitionTo(next PreviewStatus) bool {
	allowed, exists := validPreviewTransitions[s]
	if !exists {
		return false
	}
	for _, status := range allowed {
		if status == next {
			return true
		}
	}
	return false
}

func (s PreviewStatus) String() string {
	return string(s)
}

var (
	ErrInvalidPreviewTransition = errors.New("invalid preview status transition")
	ErrMissingSourceFile        = errors.New("item has no source file")
)
