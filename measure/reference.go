package measure

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/rescale"
	intImage "github.com/gogpu/rescale/internal/image"
)

// ReferenceScale resizes src with the golang.org/x/image/draw scaler that
// corresponds to method. The result is meant for informational comparison:
// those scalers use their own sampling and rounding, so a non-zero
// difference against rescale.Resize is expected.
func ReferenceScale(src *rescale.PixelBuffer, outW, outH int, method rescale.Method) (*rescale.PixelBuffer, error) {
	if err := intImage.Validate("measure: reference", src); err != nil {
		return nil, err
	}
	if outW <= 0 || outH <= 0 {
		return nil, fmt.Errorf("measure: reference: %w: output %dx%d", rescale.ErrInvalidDimensions, outW, outH)
	}

	var scaler draw.Scaler
	switch method {
	case rescale.Nearest:
		scaler = draw.NearestNeighbor
	case rescale.Bilinear:
		scaler = draw.ApproxBiLinear
	default:
		return nil, fmt.Errorf("measure: reference: %w: unknown method %d", rescale.ErrInvalidParameters, method)
	}

	in := src.ToStdImage()
	rect := image.Rect(0, 0, outW, outH)
	var dst draw.Image
	if src.Channels() == 1 {
		dst = image.NewGray(rect)
	} else {
		dst = image.NewNRGBA(rect)
	}
	scaler.Scale(dst, rect, in, in.Bounds(), draw.Src, nil)

	return intImage.FromStdImage(dst, src.Channels())
}

// Reference resizes src with both rescale.Resize and ReferenceScale and
// compares the two outputs.
func Reference(src *rescale.PixelBuffer, outW, outH int, method rescale.Method, opts ...rescale.Option) (DiffStats, error) {
	ours, err := rescale.Resize(src, outW, outH, method, rescale.Sequential, opts...)
	if err != nil {
		return DiffStats{}, err
	}
	ref, err := ReferenceScale(src, outW, outH, method)
	if err != nil {
		return DiffStats{}, err
	}
	return Compare(ours, ref)
}
