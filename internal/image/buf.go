package image

import (
	"errors"
	"fmt"
)

// Common errors for buffer construction and access.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidShape is returned for channel counts other than 1, 3 or 4.
	ErrInvalidShape = errors.New("image: invalid shape")

	// ErrInvalidInput is returned for nil, empty or malformed buffers.
	ErrInvalidInput = errors.New("image: invalid input")

	// ErrShapeMismatch is returned when two buffers must share geometry but do not.
	ErrShapeMismatch = errors.New("image: shape mismatch")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// Buffer owns a contiguous row-major byte slice for width*height pixels of
// 1, 3 or 4 interleaved channels.
//
// The invariant len(data) == width*height*channels holds for every Buffer
// produced by this package. The zero Buffer is empty and is rejected as input
// by every operation.
//
// Thread safety: Buffer is safe for concurrent reads. Writes to disjoint rows
// from different goroutines are safe; anything else needs external
// synchronization.
type Buffer struct {
	data     []byte
	width    int
	height   int
	channels int
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !ValidChannels(channels) {
		return nil, fmt.Errorf("%w: channels=%d (want 1, 3 or 4)", ErrInvalidShape, channels)
	}
	return &Buffer{
		data:     make([]byte, width*height*channels),
		width:    width,
		height:   height,
		channels: channels,
	}, nil
}

// FromBytes wraps existing data without copying. The caller must not modify
// data while the buffer is in use.
func FromBytes(data []byte, width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !ValidChannels(channels) {
		return nil, fmt.Errorf("%w: channels=%d (want 1, 3 or 4)", ErrInvalidShape, channels)
	}
	if want := width * height * channels; len(data) != want {
		return nil, fmt.Errorf("%w: data length %d, want %d for %dx%dx%d",
			ErrInvalidInput, len(data), want, width, height, channels)
	}
	return &Buffer{
		data:     data,
		width:    width,
		height:   height,
		channels: channels,
	}, nil
}

// Validate reports whether b satisfies the buffer invariants. op names the
// calling operation in the returned error.
func Validate(op string, b *Buffer) error {
	if b == nil {
		return fmt.Errorf("%s: %w: nil buffer", op, ErrInvalidInput)
	}
	if b.IsEmpty() {
		return fmt.Errorf("%s: %w: empty buffer", op, ErrInvalidInput)
	}
	if !ValidChannels(b.channels) {
		return fmt.Errorf("%s: %w: channels=%d", op, ErrInvalidShape, b.channels)
	}
	if want := b.width * b.height * b.channels; len(b.data) != want {
		return fmt.Errorf("%s: %w: data length %d, want %d", op, ErrInvalidInput, len(b.data), want)
	}
	return nil
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	newData := make([]byte, len(b.data))
	copy(newData, b.data)

	return &Buffer{
		data:     newData,
		width:    b.width,
		height:   b.height,
		channels: b.channels,
	}
}

// Width returns the image width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Channels returns the number of channels per pixel.
func (b *Buffer) Channels() int {
	return b.channels
}

// Format returns the pixel format matching the channel count.
func (b *Buffer) Format() Format {
	f, _ := FormatForChannels(b.channels)
	return f
}

// Stride returns the number of bytes per row.
func (b *Buffer) Stride() int {
	return b.width * b.channels
}

// Bounds returns the image dimensions as (width, height).
func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice.
func (b *Buffer) Data() []byte {
	return b.data
}

// Row returns the bytes of row y, or nil if y is out of bounds.
func (b *Buffer) Row(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	stride := b.Stride()
	start := y * stride
	return b.data[start : start+stride]
}

// Offset returns the byte offset of element (x, y, c).
// Returns -1 if any coordinate is out of bounds.
func (b *Buffer) Offset(x, y, c int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || c < 0 || c >= b.channels {
		return -1
	}
	return (y*b.width+x)*b.channels + c
}

// At returns element (x, y, c), or 0 if the coordinates are out of bounds.
func (b *Buffer) At(x, y, c int) uint8 {
	off := b.Offset(x, y, c)
	if off < 0 {
		return 0
	}
	return b.data[off]
}

// Set stores v at element (x, y, c).
// Returns ErrOutOfBounds if the coordinates are outside the buffer.
func (b *Buffer) Set(x, y, c int, v uint8) error {
	off := b.Offset(x, y, c)
	if off < 0 {
		return fmt.Errorf("%w: (%d,%d,%d) in %dx%dx%d", ErrOutOfBounds, x, y, c, b.width, b.height, b.channels)
	}
	b.data[off] = v
	return nil
}

// PixelBytes returns the channel bytes of pixel (x, y).
// Returns nil if coordinates are out of bounds.
func (b *Buffer) PixelBytes(x, y int) []byte {
	off := b.Offset(x, y, 0)
	if off < 0 {
		return nil
	}
	return b.data[off : off+b.channels]
}

// SetPixelBytes copies pixel into (x, y). Extra bytes are ignored.
func (b *Buffer) SetPixelBytes(x, y int, pixel []byte) error {
	dst := b.PixelBytes(x, y)
	if dst == nil {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	copy(dst, pixel)
	return nil
}

// Fill sets every pixel to the given channel values.
func (b *Buffer) Fill(pixel ...uint8) {
	if len(pixel) == 0 {
		clear(b.data)
		return
	}
	for i := 0; i < len(b.data); i += b.channels {
		copy(b.data[i:i+b.channels], pixel)
	}
}

// SameShape reports whether a and b have identical width, height and channels.
func SameShape(a, b *Buffer) bool {
	return a.width == b.width && a.height == b.height && a.channels == b.channels
}

// ByteSize returns the total size of the image data in bytes.
func (b *Buffer) ByteSize() int {
	return len(b.data)
}

// IsEmpty returns true if the buffer has no pixels.
func (b *Buffer) IsEmpty() bool {
	return b.width <= 0 || b.height <= 0 || b.channels <= 0 || len(b.data) == 0
}
