// Package report persists benchmark records as CSV.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gogpu/rescale/bench"
)

// BenchHeader is the column set written by AppendBench.
var BenchHeader = []string{
	"backend", "method", "threads", "out_w", "out_h", "channels",
	"inner_reps", "mode", "runs", "mean_ms", "stddev_ms", "min_ms", "max_ms",
}

// BenchRecord identifies one benchmark configuration.
type BenchRecord struct {
	Method   string
	Threads  int
	OutW     int
	OutH     int
	Channels int
	Result   bench.Result
}

// Row renders r in BenchHeader column order.
func (r BenchRecord) Row() []string {
	ms := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return []string{
		r.Result.Backend.Tag(),
		r.Method,
		strconv.Itoa(r.Threads),
		strconv.Itoa(r.OutW),
		strconv.Itoa(r.OutH),
		strconv.Itoa(r.Channels),
		strconv.Itoa(r.Result.InnerReps),
		r.Result.Mode.String(),
		strconv.Itoa(r.Result.Runs),
		ms(r.Result.MeanMs),
		ms(r.Result.StddevMs),
		ms(r.Result.MinMs),
		ms(r.Result.MaxMs),
	}
}

// AppendBench appends r to the CSV file at path.
func AppendBench(path string, r BenchRecord) error {
	return AppendCSV(path, BenchHeader, r.Row())
}

// AppendCSV appends row to the CSV file at path, creating it if needed.
// header is written first when the file is new or empty.
func AppendCSV(path string, header, row []string) error {
	if len(header) > 0 && len(row) != len(header) {
		return fmt.Errorf("report: row has %d fields, header has %d", len(row), len(header))
	}

	path = filepath.Clean(path)
	needHeader := false
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		needHeader = true
	case err != nil:
		return fmt.Errorf("report: stat %s: %w", path, err)
	default:
		needHeader = info.Size() == 0
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("report: open %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if needHeader && len(header) > 0 {
		if err := w.Write(header); err != nil {
			_ = f.Close()
			return fmt.Errorf("report: write header: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		_ = f.Close()
		return fmt.Errorf("report: write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("report: flush %s: %w", path, err)
	}
	return f.Close()
}
