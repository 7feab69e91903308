package rescale

import (
	"fmt"
	"runtime"

	intImage "github.com/gogpu/rescale/internal/image"
	"github.com/gogpu/rescale/internal/parallel"
)

type rowsFunc = intImage.RowsFunc

// strategy is a resolved (method, backend) pair ready to run.
type strategy struct {
	method  Method
	backend Backend
	rows    rowsFunc
	exec    executor
}

// strategyFor maps a method and an available backend to the function pair
// that performs the resize. It has no side effects.
func strategyFor(m Method, b Backend) (strategy, error) {
	rows := intImage.Rows(m)
	if rows == nil {
		return strategy{}, fmt.Errorf("%w: unknown method %d", ErrInvalidParameters, m)
	}
	exec, ok := lookupExecutor(b)
	if !ok {
		return strategy{}, fmt.Errorf("%w: %s", ErrBackendUnavailable, b)
	}
	return strategy{method: m, backend: b, rows: rows, exec: exec}, nil
}

// Resize returns a new buffer of outW x outH with the channel count of src.
//
// All arguments are checked before any work starts:
//   - src nil or empty: ErrInvalidInput
//   - src with 2 or more than 4 channels: ErrInvalidShape
//   - outW or outH not positive: ErrInvalidDimensions
//   - unknown method or backend: ErrInvalidParameters
//   - unavailable backend under FallbackStrict: ErrBackendUnavailable
//
// src is never modified. Sequential and RowParallel return identical bytes.
func Resize(src *PixelBuffer, outW, outH int, method Method, backend Backend, opts ...Option) (*PixelBuffer, error) {
	dst, _, err := ResizeResolved(src, outW, outH, method, backend, opts...)
	return dst, err
}

// ResizeResolved is Resize that also reports which backend actually ran.
func ResizeResolved(src *PixelBuffer, outW, outH int, method Method, backend Backend, opts ...Option) (*PixelBuffer, Resolution, error) {
	o := applyOptions(opts)

	if err := intImage.Validate("rescale: resize", src); err != nil {
		return nil, Resolution{}, err
	}
	if outW <= 0 || outH <= 0 {
		return nil, Resolution{}, fmt.Errorf("rescale: resize: %w: output %dx%d",
			ErrInvalidDimensions, outW, outH)
	}
	if !method.IsValid() {
		return nil, Resolution{}, fmt.Errorf("rescale: resize: %w: unknown method %d",
			ErrInvalidParameters, method)
	}

	res, err := Resolve(backend, o.fallback)
	if err != nil {
		return nil, Resolution{}, fmt.Errorf("rescale: resize: %w", err)
	}
	st, err := strategyFor(method, res.Selected)
	if err != nil {
		return nil, Resolution{}, fmt.Errorf("rescale: resize: %w", err)
	}

	dst, err := intImage.NewBuffer(outW, outH, src.Channels())
	if err != nil {
		return nil, Resolution{}, err
	}

	st.exec(st.rows, src, dst, o.threads)
	return dst, res, nil
}

// runSequential computes all rows on the calling goroutine.
func runSequential(rows rowsFunc, src, dst *PixelBuffer, _ int) {
	rows(src, dst, 0, dst.Height())
}

// runRowParallel computes contiguous row blocks on a pool that lives only for
// this call. threads <= 0 selects GOMAXPROCS; the pool never has more
// workers than rows.
func runRowParallel(rows rowsFunc, src, dst *PixelBuffer, threads int) {
	workers := EffectiveThreads(threads)
	workers = min(workers, dst.Height())

	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()

	Logger().Debug("rescale: row-parallel resize",
		"workers", workers,
		"rows", dst.Height(),
		"src", fmt.Sprintf("%dx%dx%d", src.Width(), src.Height(), src.Channels()),
		"dst", fmt.Sprintf("%dx%d", dst.Width(), dst.Height()))

	pool.ParallelFor(dst.Height(), func(y0, y1 int) {
		rows(src, dst, y0, y1)
	})
}

// EffectiveThreads returns the worker count RowParallel uses for a requested
// thread count: n itself when positive, GOMAXPROCS otherwise.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}
