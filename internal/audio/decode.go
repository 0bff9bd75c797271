package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// ErrUnsupportedFormat is returned when the fetched bytes are not a decodable
// audio format.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decoder turns raw fetched bytes into an in-memory sample buffer. It stands
// in for the browser-style "decode whatever the platform supports" primitive;
// swapping in a richer codec binding only means implementing this interface.
type Decoder interface {
	Decode(data []byte) (*Buffer, error)
}

// FormatDecoder sniffs the container magic and dispatches to the matching
// codec. WAV is decoded by this package, MP3 by go-mp3.
type FormatDecoder struct{}

// NewFormatDecoder creates the default sniffing decoder.
func NewFormatDecoder() *FormatDecoder {
	return &FormatDecoder{}
}

func (d *FormatDecoder) Decode(data []byte) (*Buffer, error) {
	switch {
	case isWAV(data):
		return DecodeWAV(data)
	case isMP3(data):
		return decodeMP3(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func isWAV(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE"))
}

func isMP3(data []byte) bool {
	if len(data) >= 3 && bytes.Equal(data[0:3], []byte("ID3")) {
		return true
	}
	// Bare MPEG frame sync: 11 set bits.
	return len(data) >= 2 && data[0] == 0xff && data[1]&0xe0 == 0xe0
}

// decodeMP3 decompresses an MP3 stream into planar float samples. go-mp3
// always emits 16-bit little-endian stereo at the source sample rate.
func decodeMP3(data []byte) (*Buffer, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode mp3 stream: %w", err)
	}

	const channelCount = 2
	frameCount := len(pcm) / (channelCount * 2)
	buf := NewBuffer(dec.SampleRate(), channelCount, frameCount)

	pos := 0
	for frame := 0; frame < frameCount; frame++ {
		for ch := 0; ch < channelCount; ch++ {
			raw := int16(binary.LittleEndian.Uint16(pcm[pos : pos+2]))
			pos += 2
			buf.Channels[ch][frame] = float64(raw) / 0x8000
		}
	}

	return buf, nil
}
