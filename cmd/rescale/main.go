// Command rescale resizes images and benchmarks and validates the resize
// backends.
//
// Usage:
//
//	rescale                     run the fixed validation + benchmark protocol
//	rescale run <in> <out> <w> <h> <nearest|bilinear> <seq|par> [--threads N]
//	rescale bench <in> <w> <h> <nearest|bilinear> <seq|par> [--runs N] [--csv file]
//	rescale validate <in> <w> <h> <nearest|bilinear> [--threads 1,2,8]
//	rescale benchset <in> <base_w> <base_h> <steps> <scale> <nearest|bilinear> <seq|par>
//	rescale attack <in> <down_w> <down_h> [--down nearest] [--up bilinear]
//	rescale info
//
// Exit status is 1 for usage errors, 2 for runtime errors and 3 when
// validation finds a difference between backends.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/rescale"
	intImage "github.com/gogpu/rescale/internal/image"
)

// usageError marks errors caused by bad command-line input.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// errMismatch is returned when backends disagree.
var errMismatch = errors.New("validation failed: backends differ")

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose  bool
	fallback bool
	noPar    bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line args and returns the exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errMismatch):
		fmt.Fprintln(stderr, "VALIDATION FAILED")
		return exitMismatch
	case isUsage(err):
		fmt.Fprintf(stderr, "ERROR: %v\n\n%s", err, root.UsageString())
		return exitUsage
	default:
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitError
	}
}

func isUsage(err error) bool {
	var u usageError
	return errors.As(err, &u) || errors.Is(err, rescale.ErrInvalidParameters)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "rescale",
		Short:         "Resize images and benchmark the sequential and row-parallel backends",
		Version:       rescale.Version,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			configureLogging(stderr, g.verbose)
			if g.noPar {
				rescale.DisableBackend(rescale.RowParallel)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProtocol(cmd.OutOrStdout(), g, protocolInput)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log debug output to stderr")
	pf.BoolVar(&g.fallback, "fallback", false, "substitute the sequential backend when the requested one is unavailable")
	pf.BoolVar(&g.noPar, "no-parallel", false, "mark the row-parallel backend unavailable")

	root.AddCommand(
		newRunCmd(g),
		newBenchCmd(g),
		newValidateCmd(g),
		newBenchSetCmd(g),
		newAttackCmd(g),
		newInfoCmd(),
		newProtocolCmd(g),
	)
	return root
}

// usageArgs tags positional-argument errors as usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func configureLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	rescale.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func (g *globalFlags) policy() rescale.FallbackPolicy {
	if g.fallback {
		return rescale.FallbackSequential
	}
	return rescale.FallbackStrict
}

// printer formats numbers with digit grouping.
var printer = message.NewPrinter(language.English)

func loadInput(path string) (*rescale.PixelBuffer, error) {
	return intImage.Load(path, 0)
}

func saveOptions() intImage.SaveOptions {
	return intImage.SaveOptions{
		JPEGQuality:    defaultJPEGQuality,
		PNGCompression: intImage.PNGLevel(defaultPNGCompression),
	}
}
