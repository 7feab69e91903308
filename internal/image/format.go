// Package image provides the pixel buffer and resampling kernels for rescale.
//
// Buffers are tightly packed: rows follow each other without padding and
// channels are interleaved, so element (x, y, c) lives at
// (y*width+x)*channels + c.
package image

import "fmt"

// Format describes how many 8-bit channels a pixel carries.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8

	// FormatRGBA8 is 32-bit RGBA, straight alpha (4 bytes per pixel).
	FormatRGBA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Channels is the number of interleaved 8-bit channels per pixel.
	Channels int

	// HasAlpha indicates if the last channel is alpha.
	HasAlpha bool

	// IsGrayscale indicates if this is a single-channel format.
	IsGrayscale bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {Channels: 1, IsGrayscale: true},
	FormatRGB8:  {Channels: 3},
	FormatRGBA8: {Channels: 4, HasAlpha: true},
}

// FormatForChannels returns the format with the given channel count.
// Only 1, 3 and 4 are valid; anything else yields ErrInvalidShape.
func FormatForChannels(channels int) (Format, error) {
	switch channels {
	case 1:
		return FormatGray8, nil
	case 3:
		return FormatRGB8, nil
	case 4:
		return FormatRGBA8, nil
	default:
		return 0, fmt.Errorf("%w: channels=%d (want 1, 3 or 4)", ErrInvalidShape, channels)
	}
}

// ValidChannels reports whether c is a supported channel count.
func ValidChannels(c int) bool {
	return c == 1 || c == 3 || c == 4
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Channels returns the number of channels (and bytes) per pixel.
func (f Format) Channels() int {
	return f.Info().Channels
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsGrayscale returns true if this is a grayscale format.
func (f Format) IsGrayscale() bool {
	return f.Info().IsGrayscale
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.Channels()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}
