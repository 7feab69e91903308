// Package measure compares pixel buffers and quantifies resampling loss.
package measure

import (
	"fmt"

	"github.com/gogpu/rescale"
)

// DiffStats summarizes the element-wise difference of two buffers.
type DiffStats struct {
	// DifferentValues counts channel values that differ.
	DifferentValues uint64

	// MaxAbsDiff is the largest absolute channel difference, in [0, 255].
	MaxAbsDiff int
}

// Equal reports whether the compared buffers were byte-identical.
func (d DiffStats) Equal() bool {
	return d.DifferentValues == 0
}

// Compare walks a and b once and counts differing channel values.
// Both must be valid buffers of identical width, height and channels.
func Compare(a, b *rescale.PixelBuffer) (DiffStats, error) {
	if err := checkPair("compare", a, b); err != nil {
		return DiffStats{}, err
	}

	var d DiffStats
	bd := b.Data()
	for i, va := range a.Data() {
		diff := absDiff(va, bd[i])
		if diff != 0 {
			d.DifferentValues++
			d.MaxAbsDiff = max(d.MaxAbsDiff, diff)
		}
	}
	return d, nil
}

func checkPair(op string, a, b *rescale.PixelBuffer) error {
	for _, p := range []*rescale.PixelBuffer{a, b} {
		if p == nil || p.IsEmpty() {
			return fmt.Errorf("measure: %s: %w: empty buffer", op, rescale.ErrInvalidInput)
		}
	}
	if !rescale.SameShape(a, b) {
		return fmt.Errorf("measure: %s: %w: %dx%dx%d vs %dx%dx%d", op, rescale.ErrShapeMismatch,
			a.Width(), a.Height(), a.Channels(), b.Width(), b.Height(), b.Channels())
	}
	return nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
