// Package audio implements the in-memory sample buffer, the preview segment
// extraction and the uncompressed PCM/WAV codec used by the audio preview
// pipeline.
package audio

import "math"

// Buffer is a decoded multi-channel audio buffer. Samples are planar (one
// slice per channel), float64 in [-1, 1], all channels the same length.
type Buffer struct {
	SampleRate int
	Channels   [][]float64
}

// NewBuffer allocates a silent buffer with the given shape.
func NewBuffer(sampleRate, channelCount, frameCount int) *Buffer {
	channels := make([][]float64, channelCount)
	for i := range channels {
		channels[i] = make([]float64, frameCount)
	}
	return &Buffer{SampleRate: sampleRate, Channels: channels}
}

// ChannelCount returns the number of channels.
func (b *Buffer) ChannelCount() int {
	return len(b.Channels)
}

// FrameCount returns the number of sample frames per channel.
func (b *Buffer) FrameCount() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.FrameCount()) / float64(b.SampleRate)
}

// Prefix copies the first durationSeconds of audio into a new buffer with the
// same sample rate and channel count. The copy is verbatim: no fade, no
// resampling. Previews deliberately sample the start of a track so the hook
// or intro is what listeners hear.
//
// The extracted frame count is min(floor(sampleRate*durationSeconds),
// FrameCount()); a request longer than the source clamps rather than pads.
func (b *Buffer) Prefix(durationSeconds float64) *Buffer {
	targetFrames := int(math.Floor(float64(b.SampleRate) * durationSeconds))
	if targetFrames < 0 {
		targetFrames = 0
	}
	actualFrames := min(targetFrames, b.FrameCount())

	out := NewBuffer(b.SampleRate, b.ChannelCount(), actualFrames)
	for ch := range b.Channels {
		copy(out.Channels[ch], b.Channels[ch][:actualFrames])
	}
	return out
}
