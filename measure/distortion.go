package measure

import (
	"fmt"
	"math"

	"github.com/gogpu/rescale"
)

// AttackMetrics quantifies the difference between an image and its
// reconstruction.
type AttackMetrics struct {
	// MAE is the mean absolute error per channel value.
	MAE float64

	// RMSE is the square root of the mean squared error.
	RMSE float64

	// PSNR is the peak signal-to-noise ratio in dB for peak 255.
	// It is +Inf when the images are identical.
	PSNR float64

	// MaxAbs is the largest absolute channel difference.
	MaxAbs int
}

// Identical reports whether the metrics describe a lossless reconstruction.
func (m AttackMetrics) Identical() bool {
	return m.MaxAbs == 0
}

// Metrics computes MAE, RMSE, PSNR and MaxAbs between a and b.
func Metrics(a, b *rescale.PixelBuffer) (AttackMetrics, error) {
	if err := checkPair("metrics", a, b); err != nil {
		return AttackMetrics{}, err
	}

	var sumAbs, sumSq float64
	maxAbs := 0
	bd := b.Data()
	for i, va := range a.Data() {
		d := int(va) - int(bd[i])
		ad := d
		if ad < 0 {
			ad = -ad
		}
		sumAbs += float64(ad)
		sumSq += float64(d) * float64(d)
		maxAbs = max(maxAbs, ad)
	}

	n := float64(len(a.Data()))
	mse := sumSq / n
	m := AttackMetrics{
		MAE:    sumAbs / n,
		RMSE:   math.Sqrt(mse),
		MaxAbs: maxAbs,
		PSNR:   math.Inf(1),
	}
	if mse != 0 {
		m.PSNR = 20*math.Log10(255) - 10*math.Log10(mse)
	}
	return m, nil
}

// DownUp resizes src to downW x downH with downMethod, back to the size of
// src with upMethod, and measures the reconstruction against src.
//
// Returns ErrInvalidInput for an empty src or a non-positive down size.
func DownUp(src *rescale.PixelBuffer, downW, downH int, downMethod, upMethod rescale.Method,
	backend rescale.Backend, opts ...rescale.Option) (AttackMetrics, error) {
	if src == nil || src.IsEmpty() {
		return AttackMetrics{}, fmt.Errorf("measure: down-up: %w: empty source", rescale.ErrInvalidInput)
	}
	if downW <= 0 || downH <= 0 {
		return AttackMetrics{}, fmt.Errorf("measure: down-up: %w: down size %dx%d",
			rescale.ErrInvalidInput, downW, downH)
	}

	down, err := rescale.Resize(src, downW, downH, downMethod, backend, opts...)
	if err != nil {
		return AttackMetrics{}, fmt.Errorf("measure: down-up: %w", err)
	}
	up, err := rescale.Resize(down, src.Width(), src.Height(), upMethod, backend, opts...)
	if err != nil {
		return AttackMetrics{}, fmt.Errorf("measure: down-up: %w", err)
	}

	m, err := Metrics(src, up)
	if err != nil {
		return AttackMetrics{}, err
	}
	rescale.Logger().Debug("measure: down-up",
		"down", fmt.Sprintf("%dx%d", downW, downH),
		"mae", m.MAE, "rmse", m.RMSE, "psnr", m.PSNR, "max_abs", m.MaxAbs)
	return m, nil
}
