package rescale

import (
	"fmt"
	"strings"

	intImage "github.com/gogpu/rescale/internal/image"
)

// Method selects the resampling kernel.
type Method = intImage.InterpolationMode

// Resampling methods.
const (
	// Nearest copies the source pixel whose center is closest, rounding
	// half away from zero.
	Nearest = intImage.InterpNearest

	// Bilinear blends the four surrounding source pixels.
	Bilinear = intImage.InterpBilinear
)

// ParseMethod parses a method name. Accepted names are "nearest", "nn",
// "bilinear" and "bl", case-insensitive.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest", "nn":
		return Nearest, nil
	case "bilinear", "bl", "linear":
		return Bilinear, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidParameters, s)
	}
}

// Backend selects how the output rows of a resize are scheduled.
type Backend uint8

const (
	// Sequential computes every row on the calling goroutine.
	Sequential Backend = iota

	// RowParallel splits rows into contiguous blocks across a worker pool.
	RowParallel

	backendCount
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case Sequential:
		return "Sequential"
	case RowParallel:
		return "RowParallel"
	default:
		return "Unknown"
	}
}

// Tag returns the short lowercase identifier used in reports ("seq", "par").
func (b Backend) Tag() string {
	switch b {
	case Sequential:
		return "seq"
	case RowParallel:
		return "par"
	default:
		return "unknown"
	}
}

// IsValid returns true for known backends.
func (b Backend) IsValid() bool {
	return b < backendCount
}

// ParseBackend parses a backend name. Accepted names are "seq",
// "sequential", "par", "parallel" and "rowparallel", case-insensitive.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seq", "sequential":
		return Sequential, nil
	case "par", "parallel", "rowparallel":
		return RowParallel, nil
	default:
		return 0, fmt.Errorf("%w: unknown backend %q", ErrInvalidParameters, s)
	}
}
