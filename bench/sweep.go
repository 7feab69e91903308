package bench

import (
	"fmt"
	"math"

	"github.com/gogpu/rescale"
)

// Size is an output resolution.
type Size struct {
	W, H int
}

// String returns "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Sizes returns steps geometrically growing sizes starting at base. Each size
// is the previous one times scale, rounded half away from zero.
//
// base must be positive, steps positive and scale greater than 1.
func Sizes(base Size, steps int, scale float64) ([]Size, error) {
	switch {
	case base.W <= 0 || base.H <= 0:
		return nil, fmt.Errorf("bench: %w: base size %s", rescale.ErrInvalidParameters, base)
	case steps <= 0:
		return nil, fmt.Errorf("bench: %w: steps=%d must be positive", rescale.ErrInvalidParameters, steps)
	case !(scale > 1) || math.IsInf(scale, 0):
		return nil, fmt.Errorf("bench: %w: scale=%g must be > 1", rescale.ErrInvalidParameters, scale)
	}

	sizes := make([]Size, steps)
	cur := base
	for i := range sizes {
		sizes[i] = cur
		cur = Size{
			W: int(math.Round(float64(cur.W) * scale)),
			H: int(math.Round(float64(cur.H) * scale)),
		}
	}
	return sizes, nil
}

// SweepResult is one step of a sweep.
type SweepResult struct {
	Size   Size
	Result Result
}

// Sweep benchmarks c at every size in sizes, in order. c.OutW and c.OutH are
// ignored. onStep, if non-nil, is called after each step, e.g. to append a
// CSV row.
func Sweep(src *rescale.PixelBuffer, c Config, sizes []Size, onStep func(SweepResult) error) ([]SweepResult, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("bench: %w: no sizes", rescale.ErrInvalidParameters)
	}

	out := make([]SweepResult, 0, len(sizes))
	for i, s := range sizes {
		c.OutW, c.OutH = s.W, s.H
		r, err := Run(src, c)
		if err != nil {
			return out, fmt.Errorf("bench: step %d (%s): %w", i+1, s, err)
		}
		sr := SweepResult{Size: s, Result: r}
		out = append(out, sr)
		if onStep != nil {
			if err := onStep(sr); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}
