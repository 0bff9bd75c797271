package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	wavHeaderSize    = 44
	wavFormatPCM     = 1
	wavBitsPerSample = 16
)

var (
	ErrNotWAV            = errors.New("data is not a RIFF/WAVE stream")
	ErrUnsupportedWAV    = errors.New("unsupported WAV encoding")
	ErrTruncatedWAV      = errors.New("truncated WAV data")
	ErrEmptyBuffer       = errors.New("buffer has no channels")
	ErrInvalidSampleRate = errors.New("buffer has no sample rate")
)

// EncodeWAV serializes the buffer as an uncompressed 16-bit little-endian PCM
// WAV file. Channels are interleaved frame by frame; each float sample is
// clamped to [-1, 1] and scaled asymmetrically (negative x32768, non-negative
// x32767) so +1.0 cannot overflow int16.
//
// Output length is always 44 + frameCount * channelCount * 2 bytes.
func EncodeWAV(b *Buffer) ([]byte, error) {
	channelCount := b.ChannelCount()
	if channelCount == 0 {
		return nil, ErrEmptyBuffer
	}
	if b.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	frameCount := b.FrameCount()
	blockAlign := channelCount * wavBitsPerSample / 8
	dataLength := frameCount * blockAlign
	out := make([]byte, wavHeaderSize+dataLength)

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+dataLength))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(out[22:24], uint16(channelCount))
	binary.LittleEndian.PutUint32(out[24:28], uint32(b.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(b.SampleRate*blockAlign))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], wavBitsPerSample)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataLength))

	offset := wavHeaderSize
	for frame := 0; frame < frameCount; frame++ {
		for ch := 0; ch < channelCount; ch++ {
			sample := b.Channels[ch][frame]
			if sample < -1 {
				sample = -1
			} else if sample > 1 {
				sample = 1
			}
			var quantized int16
			if sample < 0 {
				quantized = int16(sample * 0x8000)
			} else {
				quantized = int16(sample * 0x7fff)
			}
			binary.LittleEndian.PutUint16(out[offset:offset+2], uint16(quantized))
			offset += 2
		}
	}

	return out, nil
}

// DecodeWAV parses an uncompressed 16-bit PCM WAV stream back into planar
// float samples, inverting the asymmetric scaling used by EncodeWAV. Only
// integer PCM at 16 bits per sample is supported; that is the only layout
// this service ever produces.
func DecodeWAV(data []byte) (*Buffer, error) {
	if len(data) < wavHeaderSize {
		return nil, ErrTruncatedWAV
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	var (
		channelCount int
		sampleRate   int
		sampleBytes  []byte
		haveFmt      bool
	)

	// Walk the chunk list. Real-world WAV files may carry LIST/INFO chunks
	// between fmt and data.
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if body+chunkSize > len(data) {
			return nil, ErrTruncatedWAV
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, ErrTruncatedWAV
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			channelCount = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits := binary.LittleEndian.Uint16(data[body+14 : body+16])
			if format != wavFormatPCM || bits != wavBitsPerSample {
				return nil, fmt.Errorf("%w: format=%d bits=%d", ErrUnsupportedWAV, format, bits)
			}
			haveFmt = true
		case "data":
			sampleBytes = data[body : body+chunkSize]
		}

		// Chunks are word-aligned.
		offset = body + chunkSize + chunkSize%2
	}

	if !haveFmt || sampleBytes == nil {
		return nil, ErrTruncatedWAV
	}
	if channelCount <= 0 || sampleRate <= 0 {
		return nil, ErrUnsupportedWAV
	}

	frameCount := len(sampleBytes) / (channelCount * 2)
	buf := NewBuffer(sampleRate, channelCount, frameCount)

	pos := 0
	for frame := 0; frame < frameCount; frame++ {
		for ch := 0; ch < channelCount; ch++ {
			raw := int16(binary.LittleEndian.Uint16(sampleBytes[pos : pos+2]))
			pos += 2
			if raw < 0 {
				buf.Channels[ch][frame] = float64(raw) / 0x8000
			} else {
				buf.Channels[ch][frame] = float64(raw) / 0x7fff
			}
		}
	}

	return buf, nil
}
