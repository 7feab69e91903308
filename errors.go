package rescale

import (
	"errors"

	intImage "github.com/gogpu/rescale/internal/image"
)

// Errors returned by rescale and its sub-packages. All of them are
// precondition violations: they are detected before any computation starts,
// are deterministic for the same arguments, and are never retried.
// Use errors.Is to test for them.
var (
	// ErrInvalidShape is returned for channel counts other than 1, 3 or 4.
	ErrInvalidShape = intImage.ErrInvalidShape

	// ErrInvalidDimensions is returned for non-positive widths or heights.
	ErrInvalidDimensions = intImage.ErrInvalidDimensions

	// ErrInvalidInput is returned for nil, empty or malformed buffers.
	ErrInvalidInput = intImage.ErrInvalidInput

	// ErrShapeMismatch is returned when two buffers must share geometry but do not.
	ErrShapeMismatch = intImage.ErrShapeMismatch

	// ErrOutOfBounds is returned by PixelBuffer.Set for coordinates outside the buffer.
	ErrOutOfBounds = intImage.ErrOutOfBounds

	// ErrInvalidParameters is returned for bad run counts, unknown method or
	// backend tags, and similar caller errors.
	ErrInvalidParameters = errors.New("rescale: invalid parameters")

	// ErrBackendUnavailable is returned when a requested backend is not
	// registered and no fallback was allowed.
	ErrBackendUnavailable = errors.New("rescale: backend not available")
)
