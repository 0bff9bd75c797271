package videoframe

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

const (
	// minPixelBlock is the smallest pixelation block edge in pixels.
	minPixelBlock = 8
	// pixelBlockDivisor derives the block size from the frame width.
	pixelBlockDivisor = 64
)

// RenderPreview scales a grabbed frame to the preview size and, when pixelate
// is set, degrades it into a blocky non-identifying mosaic. The frame is
// downscaled to at most maxWidth, never upscaled; height preserves the source
// aspect ratio.
//
// Pixelation is a privacy safeguard for restricted content, not a cosmetic
// effect: the frame is downsampled to a tiny intermediate and blown back up
// with nearest-neighbor interpolation, so no fine detail survives.
func RenderPreview(frame image.Image, maxWidth int, pixelate bool) *image.NRGBA {
	srcW := frame.Bounds().Dx()
	srcH := frame.Bounds().Dy()
	if srcW <= 0 || srcH <= 0 {
		srcW, srcH = 640, 360
	}

	width := min(maxWidth, srcW)
	height := (width*srcH + srcW/2) / srcW
	if height < 1 {
		height = 1
	}

	base := imaging.Resize(frame, width, height, imaging.Linear)
	if !pixelate {
		return base
	}

	pixelSize := max(minPixelBlock, width/pixelBlockDivisor)
	smallWidth := max(1, width/pixelSize)
	smallHeight := max(1, height/pixelSize)

	small := imaging.Resize(base, smallWidth, smallHeight, imaging.Linear)
	return imaging.Resize(small, width, height, imaging.NearestNeighbor)
}

// EncodeJPEG serializes the rendered preview at the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
