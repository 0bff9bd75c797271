package usecase

import "errors"

// Pipeline error taxonomy. Every preview run surfaces exactly one of these,
// wrapping the underlying cause; the run stops at the first failed stage and
// nothing inside the pipeline retries.
var (
	// ErrFetch indicates the media source was unreachable or answered non-2xx.
	ErrFetch = errors.New("source fetch failed")

	// ErrDecode indicates the fetched bytes are not a valid or supported media format.
	ErrDecode = errors.New("audio decode failed")

	// ErrEncode indicates the preview artifact could not be serialized.
	ErrEncode = errors.New("preview encode failed")

	// ErrUpload indicates the storage adapter did not return a URL.
	ErrUpload = errors.New("preview upload failed")

	// ErrMetadataLoad indicates the video source's duration and dimensions
	// could not be resolved.
	ErrMetadataLoad = errors.New("video metadata load failed")

	// ErrSeek indicates the video source could not be positioned at the
	// sampled timestamp.
	ErrSeek = errors.New("video seek failed")
)

// ErrPreviewInProgress is returned when a preview is requested for an item
// whose previous preview run has not finished yet.
var ErrPreviewInProgress = errors.New("preview generation already in progress")
