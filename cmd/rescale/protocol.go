package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/rescale"
	"github.com/gogpu/rescale/bench"
)

var lowerCaser = cases.Lower(language.Und)

func lower(s string) string { return lowerCaser.String(s) }

func newProtocolCmd(g *globalFlags) *cobra.Command {
	var input, outDir string
	cmd := &cobra.Command{
		Use:   "protocol",
		Short: "Run the fixed validation and benchmark sweep (default with no arguments)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProtocolIn(cmd.OutOrStdout(), g, input, outDir)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", protocolInput, "input image")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory for the per-backend CSV files")
	return cmd
}

func runProtocol(w io.Writer, g *globalFlags, input string) error {
	return runProtocolIn(w, g, input, ".")
}

// runProtocolIn validates RowParallel against Sequential at a fixed size, then
// benchmarks both backends over a geometric size sweep, writing one CSV file
// per backend into outDir.
func runProtocolIn(w io.Writer, g *globalFlags, input, outDir string) error {
	if _, err := os.Stat(input); errors.Is(err, os.ErrNotExist) {
		abs, _ := filepath.Abs(input)
		return fmt.Errorf("default test image not found, expected %s", abs)
	}
	src, err := loadInput(input)
	if err != nil {
		return err
	}
	method := rescale.Bilinear

	fmt.Fprintln(w, "\n=== VALIDATION TEST ===")
	err = validate(w, src, protocolValidateW, protocolValidateH, method,
		[]int{protocolThreads}, g.policy())
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\n=== BENCHMARK SWEEP ===")
	sizes, err := bench.Sizes(bench.Size{W: protocolBaseW, H: protocolBaseH}, protocolSteps, protocolScale)
	if err != nil {
		return err
	}

	var files []string
	for _, b := range []rescale.Backend{rescale.Sequential, rescale.RowParallel} {
		threads := protocolThreads
		if b == rescale.Sequential {
			threads = 0
		}
		c := bench.Config{
			Method:    method,
			Backend:   b,
			Threads:   threads,
			Fallback:  g.policy(),
			Warmup:    protocolWarmup,
			Runs:      protocolRuns,
			InnerReps: protocolInnerReps,
		}
		path := filepath.Join(outDir, fmt.Sprintf(protocolCSVTemplate, b.Tag()))
		if err := sweep(w, src, c, sizes, path); err != nil {
			return err
		}
		files = append(files, path)
	}

	fmt.Fprintln(w, "\nEXPERIMENT COMPLETED")
	fmt.Fprintf(w, "CSV files generated: %v\n", files)
	return nil
}
