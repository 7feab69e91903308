package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/rescale"
	intImage "github.com/gogpu/rescale/internal/image"
)

func writeTestImage(t *testing.T, channels int) string {
	t.Helper()
	buf, err := intImage.NewBuffer(40, 30, channels)
	if err != nil {
		t.Fatal(err)
	}
	for i := range buf.Data() {
		buf.Data()[i] = uint8(i * 31)
	}
	path := filepath.Join(t.TempDir(), "in.png")
	if err := intImage.Save(buf, path, intImage.DefaultSaveOptions()); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	orig := rescale.Logger()
	t.Cleanup(func() {
		rescale.SetLogger(orig)
		rescale.EnableBackend(rescale.RowParallel)
	})
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestInfo(t *testing.T) {
	code, out, _ := run(t, "info")
	if code != exitOK {
		t.Fatalf("exit = %d, want %d", code, exitOK)
	}
	for _, want := range []string{"platform", "backends", "RowParallel"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestUsageErrors(t *testing.T) {
	in := writeTestImage(t, 3)
	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"resize-all"}},
		{"missing args", []string{"run", in}},
		{"bad method", []string{"validate", in, "10", "10", "bicubic"}},
		{"bad backend", []string{"bench", in, "10", "10", "nearest", "gpu"}},
		{"bad number", []string{"bench", in, "ten", "10", "nearest", "seq"}},
		{"bad flag", []string{"info", "--frobnicate"}},
		{"bad runs", []string{"bench", in, "10", "10", "nearest", "seq", "--runs", "0", "--csv", ""}},
		{"bad scale", []string{"benchset", in, "8", "8", "2", "1.0", "nearest", "seq", "--csv", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := run(t, tt.args...)
			if code != exitUsage {
				t.Errorf("exit = %d, want %d; stderr:\n%s", code, exitUsage, errOut)
			}
		})
	}
}

func TestRunWritesOutput(t *testing.T) {
	in := writeTestImage(t, 3)
	out := filepath.Join(t.TempDir(), "out.png")

	code, stdout, stderr := run(t, "run", in, out, "20", "15", "bilinear", "par", "--threads", "2")
	if code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "OK: wrote") || !strings.Contains(stdout, "20x15x3") {
		t.Errorf("unexpected output: %s", stdout)
	}
	got, err := intImage.Load(out, 3)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Width() != 20 || got.Height() != 15 {
		t.Errorf("written size = %dx%d, want 20x15", got.Width(), got.Height())
	}
}

func TestRunMissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	code, _, _ := run(t, "run", "does-not-exist.png", out, "20", "15", "nearest", "seq")
	if code != exitError {
		t.Errorf("exit = %d, want %d", code, exitError)
	}
}

func TestValidate(t *testing.T) {
	in := writeTestImage(t, 4)
	code, out, stderr := run(t, "validate", in, "57", "23", "bilinear", "--threads", "1,2,8")
	if code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(out, "VALIDATION PASSED") {
		t.Errorf("missing pass line:\n%s", out)
	}
	if n := strings.Count(out, "different_values=0"); n != 3 {
		t.Errorf("found %d zero-diff lines, want 3:\n%s", n, out)
	}
}

func TestNoParallelFallback(t *testing.T) {
	in := writeTestImage(t, 1)
	out := filepath.Join(t.TempDir(), "out.png")

	code, _, _ := run(t, "--no-parallel", "run", in, out, "10", "10", "nearest", "par")
	if code != exitError {
		t.Errorf("strict exit = %d, want %d", code, exitError)
	}

	code, stdout, stderr := run(t, "--no-parallel", "--fallback", "run", in, out, "10", "10", "nearest", "par")
	if code != exitOK {
		t.Fatalf("fallback exit = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "ran Sequential") {
		t.Errorf("substitution not reported:\n%s", stdout)
	}
	if !strings.Contains(stderr, "substituting Sequential") {
		t.Errorf("substitution not logged:\n%s", stderr)
	}
}

func TestBenchWritesCSV(t *testing.T) {
	in := writeTestImage(t, 3)
	csvPath := filepath.Join(t.TempDir(), "bench.csv")

	code, out, stderr := run(t, "bench", in, "16", "16", "nearest", "par",
		"--runs", "3", "--warmup", "0", "--inner-reps", "2", "--csv", csvPath)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(out, "runs    = 3") || !strings.Contains(out, "mean of 2 resizes") {
		t.Errorf("unexpected output:\n%s", out)
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "par,nearest,") {
		t.Errorf("csv = %q", data)
	}
}

func TestBenchSet(t *testing.T) {
	in := writeTestImage(t, 3)
	csvPath := filepath.Join(t.TempDir(), "sweep.csv")

	code, out, stderr := run(t, "benchset", in, "8", "8", "3", "1.5", "bilinear", "seq",
		"--runs", "2", "--warmup", "0", "--csv", csvPath)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr)
	}
	if strings.Count(out, "[STEP") != 3 {
		t.Errorf("want 3 steps:\n%s", out)
	}
	data, _ := os.ReadFile(csvPath)
	if n := strings.Count(string(data), "\n"); n != 4 {
		t.Errorf("csv has %d lines, want header + 3", n)
	}
}

func TestAttack(t *testing.T) {
	in := writeTestImage(t, 3)
	code, out, stderr := run(t, "attack", in, "10", "8", "--perceptual")
	if code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr)
	}
	for _, want := range []string{"mae", "rmse", "psnr", "max_abs", "deltaE"} {
		if !strings.Contains(out, want) {
			t.Errorf("attack output missing %q:\n%s", want, out)
		}
	}

	code, _, _ = run(t, "attack", in, "0", "8")
	if code != exitError {
		t.Errorf("zero down size exit = %d, want %d", code, exitError)
	}
}

func TestProtocolMissingInput(t *testing.T) {
	code, _, stderr := run(t, "protocol", "--input", filepath.Join(t.TempDir(), "nope.png"))
	if code != exitError {
		t.Errorf("exit = %d, want %d", code, exitError)
	}
	if !strings.Contains(stderr, "not found") {
		t.Errorf("stderr = %q", stderr)
	}
}
