package rescale

import (
	intImage "github.com/gogpu/rescale/internal/image"
)

// PixelBuffer is a public alias for the internal image buffer.
// It owns a contiguous row-major byte slice of width*height pixels with 1, 3
// or 4 interleaved 8-bit channels. Element (x, y, c) is at
// (y*Width()+x)*Channels()+c.
type PixelBuffer = intImage.Buffer

// Format describes the channel layout of a PixelBuffer.
type Format = intImage.Format

// Pixel formats.
const (
	// FormatGray8 is 8-bit grayscale (1 channel).
	FormatGray8 = intImage.FormatGray8

	// FormatRGB8 is 24-bit RGB (3 channels).
	FormatRGB8 = intImage.FormatRGB8

	// FormatRGBA8 is 32-bit RGBA (4 channels).
	FormatRGBA8 = intImage.FormatRGBA8
)

// NewPixelBuffer allocates a zeroed buffer.
//
// Returns ErrInvalidDimensions if width or height is not positive and
// ErrInvalidShape if channels is not 1, 3 or 4.
func NewPixelBuffer(width, height, channels int) (*PixelBuffer, error) {
	return intImage.NewBuffer(width, height, channels)
}

// PixelBufferFromBytes wraps data as a buffer without copying.
// len(data) must equal width*height*channels, otherwise ErrInvalidInput is
// returned.
func PixelBufferFromBytes(data []byte, width, height, channels int) (*PixelBuffer, error) {
	return intImage.FromBytes(data, width, height, channels)
}

// SameShape reports whether a and b have identical width, height and channels.
func SameShape(a, b *PixelBuffer) bool {
	return intImage.SameShape(a, b)
}
