// Package rescale resizes 8-bit raster images and measures how fast and how
// faithfully it does so.
//
// # Overview
//
// A [PixelBuffer] holds a tightly packed grayscale, RGB or RGBA image.
// [Resize] maps it to new dimensions with one of two kernels:
//
//   - [Nearest] copies the source pixel whose center is closest.
//   - [Bilinear] blends the four surrounding source pixels.
//
// Output pixel (x, y) is sampled at source coordinate
// ((x+0.5)*inW/outW - 0.5, (y+0.5)*inH/outH - 0.5), so pixel centers line up
// at every scale.
//
// # Quick Start
//
//	src, _ := rescale.NewPixelBuffer(640, 480, 3)
//	dst, err := rescale.Resize(src, 320, 240, rescale.Bilinear, rescale.RowParallel,
//	    rescale.WithThreads(4))
//	if err != nil {
//	    return err
//	}
//
// # Backends
//
// [Sequential] computes every output row on the calling goroutine.
// [RowParallel] splits the output rows into contiguous blocks and hands one
// block to each worker of a pool created for the call. Both backends produce
// byte-identical output for the same inputs, whatever the thread count.
//
// A backend that is not registered is either rejected with
// [ErrBackendUnavailable] or, with [WithFallback]([FallbackSequential]),
// replaced by Sequential. The substitution is logged and reported by
// [Resolve].
//
// # Sub-packages
//
//   - bench: warmup-and-measure timing harness with mean, stddev, min and max
//   - measure: buffer comparison and down-up distortion metrics (MAE, RMSE, PSNR)
//   - cmd/rescale: command-line driver for resizing, benchmarking and validation
package rescale

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
