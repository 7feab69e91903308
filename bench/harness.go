// Package bench times resize calls.
//
// A benchmark runs Warmup untimed invocations followed by Runs timed ones and
// reduces the per-run wall times (milliseconds, monotonic clock) to mean,
// sample standard deviation, min and max.
//
// With InnerReps > 1 every timed run performs InnerReps back-to-back
// invocations and records their average. Those samples are batch means:
// Result.Mode is SampleBatchMean and StddevMs understates the spread of
// individual invocations.
package bench

import (
	"fmt"
	"time"

	"github.com/gogpu/rescale"
)

// SampleMode tells how a timing sample relates to single invocations.
type SampleMode uint8

const (
	// SampleIndependent means each sample times exactly one invocation.
	SampleIndependent SampleMode = iota

	// SampleBatchMean means each sample is the mean over InnerReps
	// consecutive invocations.
	SampleBatchMean
)

// String returns the mode name.
func (m SampleMode) String() string {
	switch m {
	case SampleIndependent:
		return "independent"
	case SampleBatchMean:
		return "batch-mean"
	default:
		return "unknown"
	}
}

// Result summarizes a benchmark.
type Result struct {
	// Runs is the number of timed samples.
	Runs int

	// InnerReps is the number of invocations per sample (1 when unused).
	InnerReps int

	// Mode labels what a sample measures.
	Mode SampleMode

	// Backend is the backend that actually ran, after any fallback.
	Backend rescale.Backend

	// Samples are the per-run times in milliseconds, in run order.
	Samples []float64

	MeanMs   float64
	StddevMs float64
	MinMs    float64
	MaxMs    float64
}

// Harness runs an invocation Warmup + Runs times and collects statistics.
type Harness struct {
	Warmup    int
	Runs      int
	InnerReps int
}

// Validate checks the harness parameters.
func (h Harness) Validate() error {
	switch {
	case h.Runs <= 0:
		return fmt.Errorf("bench: %w: runs=%d must be positive", rescale.ErrInvalidParameters, h.Runs)
	case h.Warmup < 0:
		return fmt.Errorf("bench: %w: warmup=%d must not be negative", rescale.ErrInvalidParameters, h.Warmup)
	case h.InnerReps < 0:
		return fmt.Errorf("bench: %w: inner reps=%d must not be negative", rescale.ErrInvalidParameters, h.InnerReps)
	}
	return nil
}

// Measure times fn. Every value fn returns is retained so the invocation
// cannot be optimized away. The first error from fn aborts the benchmark.
func (h Harness) Measure(fn func() (any, error)) (Result, error) {
	if err := h.Validate(); err != nil {
		return Result{}, err
	}
	reps := max(h.InnerReps, 1)

	log := rescale.Logger()
	log.Debug("bench: warmup", "iterations", h.Warmup, "inner_reps", reps)
	for range h.Warmup {
		for range reps {
			out, err := fn()
			if err != nil {
				return Result{}, fmt.Errorf("bench: warmup: %w", err)
			}
			keep(out)
		}
	}

	samples := make([]float64, 0, h.Runs)
	var acc Accumulator
	for i := range h.Runs {
		start := time.Now()
		for range reps {
			out, err := fn()
			if err != nil {
				return Result{}, fmt.Errorf("bench: run %d: %w", i, err)
			}
			keep(out)
		}
		ms := float64(time.Since(start).Nanoseconds()) / 1e6 / float64(reps)
		samples = append(samples, ms)
		acc.Add(ms)
	}

	mode := SampleIndependent
	if reps > 1 {
		mode = SampleBatchMean
	}
	r := Result{
		Runs:      h.Runs,
		InnerReps: reps,
		Mode:      mode,
		Samples:   samples,
		MeanMs:    acc.Mean(),
		StddevMs:  acc.Stddev(),
		MinMs:     acc.Min(),
		MaxMs:     acc.Max(),
	}
	log.Debug("bench: measured",
		"runs", r.Runs, "mode", r.Mode.String(),
		"mean_ms", r.MeanMs, "stddev_ms", r.StddevMs)
	return r, nil
}

// Config describes a resize benchmark.
type Config struct {
	OutW, OutH int
	Method     rescale.Method
	Backend    rescale.Backend
	Threads    int

	// Fallback decides what happens when Backend is unavailable.
	Fallback rescale.FallbackPolicy

	Warmup    int
	Runs      int
	InnerReps int
}

// Harness returns the timing parameters of c.
func (c Config) Harness() Harness {
	return Harness{Warmup: c.Warmup, Runs: c.Runs, InnerReps: c.InnerReps}
}

// Run benchmarks rescale.Resize(src, c.OutW, c.OutH, c.Method, c.Backend).
// All parameters are checked before the first invocation.
func Run(src *rescale.PixelBuffer, c Config) (Result, error) {
	if err := c.Harness().Validate(); err != nil {
		return Result{}, err
	}
	if src == nil || src.IsEmpty() {
		return Result{}, fmt.Errorf("bench: %w: empty source", rescale.ErrInvalidInput)
	}
	if c.OutW <= 0 || c.OutH <= 0 {
		return Result{}, fmt.Errorf("bench: %w: target %dx%d", rescale.ErrInvalidParameters, c.OutW, c.OutH)
	}
	if !c.Method.IsValid() {
		return Result{}, fmt.Errorf("bench: %w: unknown method %d", rescale.ErrInvalidParameters, c.Method)
	}

	res, err := rescale.Resolve(c.Backend, c.Fallback)
	if err != nil {
		return Result{}, fmt.Errorf("bench: %w", err)
	}

	rescale.Logger().Info("bench: start",
		"method", c.Method.String(),
		"backend", res.Selected.String(),
		"threads", c.Threads,
		"target", fmt.Sprintf("%dx%d", c.OutW, c.OutH))

	r, err := c.Harness().Measure(func() (any, error) {
		return rescale.Resize(src, c.OutW, c.OutH, c.Method, res.Selected, rescale.WithThreads(c.Threads))
	})
	if err != nil {
		return Result{}, err
	}
	r.Backend = res.Selected
	return r, nil
}
