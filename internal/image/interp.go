package image

import "math"

// InterpolationMode selects the resampling kernel.
type InterpolationMode uint8

const (
	// InterpNearest copies the source pixel whose center is closest.
	InterpNearest InterpolationMode = iota

	// InterpBilinear blends the 4 neighboring source pixels.
	InterpBilinear
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// IsValid returns true for known interpolation modes.
func (m InterpolationMode) IsValid() bool {
	return m <= InterpBilinear
}

// RowsFunc resamples src into dst for output rows [y0, y1).
// Implementations only write to those rows of dst and only read src, so
// disjoint row ranges may run concurrently.
type RowsFunc func(src, dst *Buffer, y0, y1 int)

// Rows returns the row kernel for mode, or nil for an unknown mode.
func Rows(mode InterpolationMode) RowsFunc {
	switch mode {
	case InterpNearest:
		return NearestRows
	case InterpBilinear:
		return BilinearRows
	default:
		return nil
	}
}

// MapCoord maps output index out to a fractional source coordinate using
// pixel-center alignment: (out + 0.5) * (inSize / outSize) - 0.5.
//
// The computation is single precision. Explicit conversions round every
// intermediate so the compiler cannot fuse the multiply-add; results are
// therefore identical on every architecture.
func MapCoord(out, inSize, outSize int) float32 {
	scale := float32(inSize) / float32(outSize)
	return float32((float32(out)+0.5)*scale) - 0.5
}

// NearestRows is the nearest-neighbor kernel.
// Source indices round half away from zero and are clamped to the image.
func NearestRows(src, dst *Buffer, y0, y1 int) {
	ch := src.channels
	cols := nearestColumns(src.width, dst.width)

	for y := y0; y < y1; y++ {
		iy := clamp(roundHalfAway(MapCoord(y, src.height, dst.height)), 0, src.height-1)
		srcRow := src.Row(iy)
		dstRow := dst.Row(y)

		for x, ix := range cols {
			s := ix * ch
			copy(dstRow[x*ch:x*ch+ch], srcRow[s:s+ch])
		}
	}
}

// axisWeight holds the two source taps and the weight of the second tap
// along one axis.
type axisWeight struct {
	i0, i1 int
	w      float32
}

// bilinearAxis derives taps for output index out. The weight is measured from
// the clamped i0, so pixels before the first source center extrapolate and
// rely on the final clamp to [0, 255].
func bilinearAxis(out, inSize, outSize int) axisWeight {
	s := MapCoord(out, inSize, outSize)
	i0 := clamp(int(math.Floor(float64(s))), 0, inSize-1)
	i1 := clamp(i0+1, 0, inSize-1)
	return axisWeight{i0: i0, i1: i1, w: s - float32(i0)}
}

// BilinearRows is the bilinear kernel. Edge taps are clamped to the last
// valid row/column, replicating the border rather than wrapping.
func BilinearRows(src, dst *Buffer, y0, y1 int) {
	ch := src.channels

	cols := bilinearColumns(src.width, dst.width)

	for y := y0; y < y1; y++ {
		ay := bilinearAxis(y, src.height, dst.height)
		row0 := src.Row(ay.i0)
		row1 := src.Row(ay.i1)
		dstRow := dst.Row(y)

		for x, ax := range cols {
			p00 := row0[ax.i0*ch:]
			p10 := row0[ax.i1*ch:]
			p01 := row1[ax.i0*ch:]
			p11 := row1[ax.i1*ch:]
			out := dstRow[x*ch : x*ch+ch]

			for c := range out {
				out[c] = blend(p00[c], p10[c], p01[c], p11[c], ax.w, ay.w)
			}
		}
	}
}

// blend evaluates lerp(lerp(p00,p10,wx), lerp(p01,p11,wx), wy) and rounds
// the result into a byte.
func blend(p00, p10, p01, p11 uint8, wx, wy float32) uint8 {
	v00 := float32(p00)
	v10 := float32(p10)
	v01 := float32(p01)
	v11 := float32(p11)

	v0 := v00 + float32(wx*(v10-v00))
	v1 := v01 + float32(wx*(v11-v01))
	v := v0 + float32(wy*(v1-v0))

	return clampU8(roundHalfAway(v))
}

// roundHalfAway rounds to the nearest integer, ties away from zero.
func roundHalfAway(v float32) int {
	return int(math.Round(float64(v)))
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampU8 clamps v to [0, 255].
func clampU8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
