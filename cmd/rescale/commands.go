package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/rescale"
	"github.com/gogpu/rescale/bench"
	intImage "github.com/gogpu/rescale/internal/image"
	"github.com/gogpu/rescale/internal/report"
	"github.com/gogpu/rescale/measure"
)

func parseInt(s, name string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, usageError{fmt.Errorf("invalid number for %s: %q", name, s)}
	}
	return v, nil
}

func parseFloat(s, name string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, usageError{fmt.Errorf("invalid number for %s: %q", name, s)}
	}
	return v, nil
}

func parseSize(w, h string) (int, int, error) {
	outW, err := parseInt(w, "out_w")
	if err != nil {
		return 0, 0, err
	}
	outH, err := parseInt(h, "out_h")
	if err != nil {
		return 0, 0, err
	}
	return outW, outH, nil
}

func parseMethodBackend(m, b string) (rescale.Method, rescale.Backend, error) {
	method, err := rescale.ParseMethod(m)
	if err != nil {
		return 0, 0, usageError{err}
	}
	backend, err := rescale.ParseBackend(b)
	if err != nil {
		return 0, 0, usageError{err}
	}
	return method, backend, nil
}

// timingFlags are the benchmark options shared by bench and benchset.
type timingFlags struct {
	threads   int
	warmup    int
	runs      int
	innerReps int
	csvPath   string
}

func (f *timingFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.threads, "threads", "t", defaultThreads, "worker count for the row-parallel backend (0 = all cores)")
	fl.IntVar(&f.warmup, "warmup", defaultWarmup, "untimed warmup runs")
	fl.IntVar(&f.runs, "runs", defaultRuns, "timed runs")
	fl.IntVar(&f.innerReps, "inner-reps", defaultInnerReps, "resizes per timed run; values above 1 record batch means")
	fl.StringVar(&f.csvPath, "csv", defaultCSVPath, "CSV file to append results to (empty to skip)")
}

func (f *timingFlags) config(outW, outH int, m rescale.Method, b rescale.Backend, p rescale.FallbackPolicy) bench.Config {
	return bench.Config{
		OutW:      outW,
		OutH:      outH,
		Method:    m,
		Backend:   b,
		Threads:   f.threads,
		Fallback:  p,
		Warmup:    f.warmup,
		Runs:      f.runs,
		InnerReps: f.innerReps,
	}
}

func newRunCmd(g *globalFlags) *cobra.Command {
	var threads int
	cmd := &cobra.Command{
		Use:   "run <input> <output> <out_w> <out_h> <nearest|bilinear> <seq|par>",
		Short: "Resize one image and write the result",
		Args:  usageArgs(cobra.ExactArgs(6)),
		RunE: func(cmd *cobra.Command, args []string) error {
			outW, outH, err := parseSize(args[2], args[3])
			if err != nil {
				return err
			}
			method, backend, err := parseMethodBackend(args[4], args[5])
			if err != nil {
				return err
			}
			src, err := loadInput(args[0])
			if err != nil {
				return err
			}
			out, res, err := rescale.ResizeResolved(src, outW, outH, method, backend,
				rescale.WithThreads(threads), rescale.WithFallback(g.policy()))
			if err != nil {
				return err
			}
			if err := intImage.Save(out, args[1], saveOptions()); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if res.Substituted {
				fmt.Fprintf(w, "NOTE: %s unavailable, ran %s\n", res.Requested, res.Selected)
			}
			fmt.Fprintf(w, "OK: wrote %s (%dx%dx%d)\n", args[1], out.Width(), out.Height(), out.Channels())
			return nil
		},
	}
	cmd.Flags().IntVarP(&threads, "threads", "t", defaultThreads, "worker count for the row-parallel backend (0 = all cores)")
	return cmd
}

func newBenchCmd(g *globalFlags) *cobra.Command {
	var tf timingFlags
	cmd := &cobra.Command{
		Use:   "bench <input> <out_w> <out_h> <nearest|bilinear> <seq|par>",
		Short: "Time repeated resizes of one image",
		Args:  usageArgs(cobra.ExactArgs(5)),
		RunE: func(cmd *cobra.Command, args []string) error {
			outW, outH, err := parseSize(args[1], args[2])
			if err != nil {
				return err
			}
			method, backend, err := parseMethodBackend(args[3], args[4])
			if err != nil {
				return err
			}
			src, err := loadInput(args[0])
			if err != nil {
				return err
			}
			r, err := bench.Run(src, tf.config(outW, outH, method, backend, g.policy()))
			if err != nil {
				return err
			}
			printBench(cmd.OutOrStdout(), r)
			if tf.csvPath == "" {
				return nil
			}
			return report.AppendBench(tf.csvPath, report.BenchRecord{
				Method:   lower(method.String()),
				Threads:  tf.threads,
				OutW:     outW,
				OutH:     outH,
				Channels: src.Channels(),
				Result:   r,
			})
		},
	}
	tf.register(cmd)
	return cmd
}

func printBench(w io.Writer, r bench.Result) {
	fmt.Fprintln(w, "Benchmark results:")
	printer.Fprintf(w, "  backend = %s\n", r.Backend)
	printer.Fprintf(w, "  runs    = %d\n", r.Runs)
	if r.Mode == bench.SampleBatchMean {
		printer.Fprintf(w, "  samples = mean of %d resizes each\n", r.InnerReps)
	}
	printer.Fprintf(w, "  mean    = %.3f ms\n", r.MeanMs)
	printer.Fprintf(w, "  stddev  = %.3f ms\n", r.StddevMs)
	printer.Fprintf(w, "  min     = %.3f ms\n", r.MinMs)
	printer.Fprintf(w, "  max     = %.3f ms\n", r.MaxMs)
}

func newValidateCmd(g *globalFlags) *cobra.Command {
	var threads []int
	cmd := &cobra.Command{
		Use:   "validate <input> <out_w> <out_h> <nearest|bilinear>",
		Short: "Check that the row-parallel backend matches the sequential one",
		Args:  usageArgs(cobra.ExactArgs(4)),
		RunE: func(cmd *cobra.Command, args []string) error {
			outW, outH, err := parseSize(args[1], args[2])
			if err != nil {
				return err
			}
			method, err := rescale.ParseMethod(args[3])
			if err != nil {
				return usageError{err}
			}
			src, err := loadInput(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "VALIDATE")
			fmt.Fprintf(w, "  input  = %s\n", args[0])
			fmt.Fprintf(w, "  size   = %dx%d\n", outW, outH)
			fmt.Fprintf(w, "  method = %s\n", lower(method.String()))
			return validate(w, src, outW, outH, method, threads, g.policy())
		},
	}
	cmd.Flags().IntSliceVarP(&threads, "threads", "t", []int{defaultThreads}, "row-parallel worker counts to check")
	return cmd
}

// validate compares RowParallel at each thread count against Sequential.
// The thread counts are checked concurrently.
func validate(w io.Writer, src *rescale.PixelBuffer, outW, outH int, method rescale.Method,
	threads []int, policy rescale.FallbackPolicy) error {
	ref, err := rescale.Resize(src, outW, outH, method, rescale.Sequential)
	if err != nil {
		return err
	}

	diffs := make([]measure.DiffStats, len(threads))
	var eg errgroup.Group
	for i, n := range threads {
		eg.Go(func() error {
			out, err := rescale.Resize(src, outW, outH, method, rescale.RowParallel,
				rescale.WithThreads(n), rescale.WithFallback(policy))
			if err != nil {
				return err
			}
			diffs[i], err = measure.Compare(ref, out)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	failed := false
	for i, n := range threads {
		d := diffs[i]
		printer.Fprintf(w, "  threads=%-3d different_values=%d max_abs_diff=%d\n",
			rescale.EffectiveThreads(n), d.DifferentValues, d.MaxAbsDiff)
		failed = failed || !d.Equal()
	}
	if failed {
		return errMismatch
	}
	fmt.Fprintln(w, "VALIDATION PASSED")
	return nil
}

func newBenchSetCmd(g *globalFlags) *cobra.Command {
	var tf timingFlags
	cmd := &cobra.Command{
		Use:   "benchset <input> <base_w> <base_h> <steps> <scale> <nearest|bilinear> <seq|par>",
		Short: "Benchmark a geometric sweep of output sizes",
		Args:  usageArgs(cobra.ExactArgs(7)),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseW, baseH, err := parseSize(args[1], args[2])
			if err != nil {
				return err
			}
			steps, err := parseInt(args[3], "steps")
			if err != nil {
				return err
			}
			scale, err := parseFloat(args[4], "scale")
			if err != nil {
				return err
			}
			method, backend, err := parseMethodBackend(args[5], args[6])
			if err != nil {
				return err
			}
			sizes, err := bench.Sizes(bench.Size{W: baseW, H: baseH}, steps, scale)
			if err != nil {
				return err
			}
			src, err := loadInput(args[0])
			if err != nil {
				return err
			}
			return sweep(cmd.OutOrStdout(), src, tf.config(0, 0, method, backend, g.policy()), sizes, tf.csvPath)
		},
	}
	tf.register(cmd)
	return cmd
}

// sweep runs bench.Sweep, printing and optionally recording every step.
func sweep(w io.Writer, src *rescale.PixelBuffer, c bench.Config, sizes []bench.Size, csvPath string) error {
	step := 0
	_, err := bench.Sweep(src, c, sizes, func(s bench.SweepResult) error {
		step++
		printer.Fprintf(w, "[STEP %d/%d] size = %s  %s: mean = %.3f ms\n",
			step, len(sizes), s.Size, s.Result.Backend.Tag(), s.Result.MeanMs)
		if csvPath == "" {
			return nil
		}
		return report.AppendBench(csvPath, report.BenchRecord{
			Method:   lower(c.Method.String()),
			Threads:  c.Threads,
			OutW:     s.Size.W,
			OutH:     s.Size.H,
			Channels: src.Channels(),
			Result:   s.Result,
		})
	})
	return err
}

func newAttackCmd(g *globalFlags) *cobra.Command {
	var (
		downName, upName, backendName string
		threads                       int
		perceptual                    bool
	)
	cmd := &cobra.Command{
		Use:   "attack <input> <down_w> <down_h>",
		Short: "Measure the loss of a downscale-then-upscale round trip",
		Args:  usageArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			downW, downH, err := parseSize(args[1], args[2])
			if err != nil {
				return err
			}
			down, backend, err := parseMethodBackend(downName, backendName)
			if err != nil {
				return err
			}
			up, err := rescale.ParseMethod(upName)
			if err != nil {
				return usageError{err}
			}
			src, err := loadInput(args[0])
			if err != nil {
				return err
			}

			opts := []rescale.Option{rescale.WithThreads(threads), rescale.WithFallback(g.policy())}
			m, err := measure.DownUp(src, downW, downH, down, up, backend, opts...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "DOWN-UP")
			printer.Fprintf(w, "  source  = %dx%dx%d\n", src.Width(), src.Height(), src.Channels())
			printer.Fprintf(w, "  down    = %dx%d (%s), up = %s\n", downW, downH, lower(down.String()), lower(up.String()))
			printer.Fprintf(w, "  mae     = %.4f\n", m.MAE)
			printer.Fprintf(w, "  rmse    = %.4f\n", m.RMSE)
			printer.Fprintf(w, "  psnr    = %.2f dB\n", m.PSNR)
			printer.Fprintf(w, "  max_abs = %d\n", m.MaxAbs)

			if !perceptual || src.Channels() == 1 {
				return nil
			}
			small, err := rescale.Resize(src, downW, downH, down, backend, opts...)
			if err != nil {
				return err
			}
			back, err := rescale.Resize(small, src.Width(), src.Height(), up, backend, opts...)
			if err != nil {
				return err
			}
			cd, err := measure.Perceptual(src, back)
			if err != nil {
				return err
			}
			printer.Fprintf(w, "  deltaE  = %.4f mean, %.4f max\n", cd.MeanDeltaE, cd.MaxDeltaE)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&downName, "down", "nearest", "downscale method")
	fl.StringVar(&upName, "up", "bilinear", "upscale method")
	fl.StringVar(&backendName, "backend", "par", "backend for both resizes")
	fl.IntVarP(&threads, "threads", "t", defaultThreads, "worker count for the row-parallel backend (0 = all cores)")
	fl.BoolVar(&perceptual, "perceptual", false, "also report CIEDE2000 color distance")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print host and backend information",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			printInfo(cmd.OutOrStdout())
			return nil
		},
	}
}

func printInfo(w io.Writer) {
	h := rescale.Host()
	fmt.Fprintf(w, "rescale %s\n", rescale.Version)
	fmt.Fprintf(w, "  platform   = %s/%s\n", h.GOOS, h.GOARCH)
	printer.Fprintf(w, "  cpus       = %d (GOMAXPROCS %d)\n", h.NumCPU, h.GOMAXPROCS)
	fmt.Fprintf(w, "  features   = %v\n", h.Features)
	fmt.Fprintf(w, "  backends   = %v\n", rescale.Available())
}
