package bench

import "math"

// Accumulator keeps running timing statistics with Welford's algorithm.
// The zero value is ready to use.
type Accumulator struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
}

// Add records one sample.
func (a *Accumulator) Add(x float64) {
	a.n++
	if a.n == 1 {
		a.min, a.max = x, x
	} else {
		a.min = math.Min(a.min, x)
		a.max = math.Max(a.max, x)
	}

	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (x - a.mean)
}

// Count returns the number of samples added.
func (a *Accumulator) Count() int { return a.n }

// Mean returns the arithmetic mean, or 0 with no samples.
func (a *Accumulator) Mean() float64 { return a.mean }

// Stddev returns the sample standard deviation (n-1 denominator).
// It is 0 for fewer than two samples.
func (a *Accumulator) Stddev() float64 {
	if a.n < 2 {
		return 0
	}
	return math.Sqrt(a.m2 / float64(a.n-1))
}

// Min returns the smallest sample, or 0 with no samples.
func (a *Accumulator) Min() float64 { return a.min }

// Max returns the largest sample, or 0 with no samples.
func (a *Accumulator) Max() float64 { return a.max }

// Reset clears all samples.
func (a *Accumulator) Reset() { *a = Accumulator{} }

// Summary reduces samples to mean, sample stddev, min and max.
func Summary(samples []float64) (mean, stddev, lo, hi float64) {
	var a Accumulator
	for _, s := range samples {
		a.Add(s)
	}
	return a.Mean(), a.Stddev(), a.Min(), a.Max()
}
