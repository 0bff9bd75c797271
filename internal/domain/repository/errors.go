package repository

import "errors"

var (
	// ErrMusicNotFound is returned when a music item cannot be found.
	ErrMusicNotFound = errors.New("music item not found")

	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrBucketNotFound is returned when a configured storage bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
)
