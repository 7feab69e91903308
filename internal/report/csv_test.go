package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gogpu/rescale"
	"github.com/gogpu/rescale/bench"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return rows
}

func TestAppendCSVWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	header := []string{"a", "b"}

	for _, row := range [][]string{{"1", "2"}, {"3", "4"}} {
		if err := AppendCSV(path, header, row); err != nil {
			t.Fatalf("AppendCSV: %v", err)
		}
	}

	got := readAll(t, path)
	want := [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAppendCSVEmptyFileGetsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := AppendCSV(path, []string{"x"}, []string{"1"}); err != nil {
		t.Fatalf("AppendCSV: %v", err)
	}
	if got := readAll(t, path); len(got) != 2 || got[0][0] != "x" {
		t.Errorf("rows = %v, want header then row", got)
	}
}

func TestAppendCSVFieldCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := AppendCSV(path, []string{"a", "b"}, []string{"1"}); err == nil {
		t.Error("AppendCSV with mismatched row should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should not be created for a rejected row")
	}
}

func TestAppendBench(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.csv")
	rec := BenchRecord{
		Method: "bilinear", Threads: 4, OutW: 640, OutH: 480, Channels: 3,
		Result: bench.Result{
			Runs:      5,
			InnerReps: 10,
			Mode:      bench.SampleBatchMean,
			Backend:   rescale.RowParallel,
			MeanMs:    1.5,
			StddevMs:  0.25,
			MinMs:     1.25,
			MaxMs:     2,
		},
	}
	if err := AppendBench(path, rec); err != nil {
		t.Fatalf("AppendBench: %v", err)
	}

	rows := readAll(t, path)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if !slices.Equal(rows[0], BenchHeader) {
		t.Errorf("header = %v, want %v", rows[0], BenchHeader)
	}
	want := []string{"par", "bilinear", "4", "640", "480", "3", "10", "batch-mean", "5",
		"1.500000", "0.250000", "1.250000", "2.000000"}
	if !slices.Equal(rows[1], want) {
		t.Errorf("row = %v, want %v", rows[1], want)
	}
}
