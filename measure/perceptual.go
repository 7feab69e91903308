package measure

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/rescale"
)

// ColorDistance summarizes per-pixel CIEDE2000 differences.
type ColorDistance struct {
	// MeanDeltaE is the average ΔE00 over all pixels.
	MeanDeltaE float64

	// MaxDeltaE is the largest ΔE00 of any pixel.
	MaxDeltaE float64
}

// Perceptual compares a and b pixel by pixel in CIELAB using ΔE00.
// Channel bytes are read as sRGB; gray buffers are treated as R=G=B and alpha
// is ignored.
func Perceptual(a, b *rescale.PixelBuffer) (ColorDistance, error) {
	if err := checkPair("perceptual", a, b); err != nil {
		return ColorDistance{}, err
	}

	var sum, peak float64
	w, h := a.Width(), a.Height()
	for y := range h {
		for x := range w {
			d := toColor(a.PixelBytes(x, y)).DistanceCIEDE2000(toColor(b.PixelBytes(x, y)))
			sum += d
			peak = math.Max(peak, d)
		}
	}
	return ColorDistance{MeanDeltaE: sum / float64(w*h), MaxDeltaE: peak}, nil
}

func toColor(px []byte) colorful.Color {
	if len(px) == 1 {
		v := float64(px[0]) / 255
		return colorful.Color{R: v, G: v, B: v}
	}
	return colorful.Color{
		R: float64(px[0]) / 255,
		G: float64(px[1]) / 255,
		B: float64(px[2]) / 255,
	}
}
