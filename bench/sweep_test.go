package bench

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/rescale"
)

func TestSizes(t *testing.T) {
	got, err := Sizes(Size{512, 512}, 6, 1.5)
	if err != nil {
		t.Fatalf("Sizes: %v", err)
	}
	want := []Size{{512, 512}, {768, 768}, {1152, 1152}, {1728, 1728}, {2592, 2592}, {3888, 3888}}
	if !slices.Equal(got, want) {
		t.Errorf("Sizes() = %v, want %v", got, want)
	}
}

func TestSizesRounding(t *testing.T) {
	got, err := Sizes(Size{3, 5}, 3, 1.25)
	if err != nil {
		t.Fatalf("Sizes: %v", err)
	}
	// 3*1.25 = 3.75 -> 4, 5*1.25 = 6.25 -> 6; 4*1.25 = 5, 6*1.25 = 7.5 -> 8
	want := []Size{{3, 5}, {4, 6}, {5, 8}}
	if !slices.Equal(got, want) {
		t.Errorf("Sizes() = %v, want %v", got, want)
	}
}

func TestSizesInvalid(t *testing.T) {
	tests := []struct {
		name  string
		base  Size
		steps int
		scale float64
	}{
		{"zero base", Size{0, 10}, 3, 1.5},
		{"zero steps", Size{10, 10}, 0, 1.5},
		{"scale one", Size{10, 10}, 3, 1.0},
		{"scale below one", Size{10, 10}, 3, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Sizes(tt.base, tt.steps, tt.scale); !errors.Is(err, rescale.ErrInvalidParameters) {
				t.Errorf("Sizes() error = %v, want ErrInvalidParameters", err)
			}
		})
	}
}

func TestSweep(t *testing.T) {
	sizes := []Size{{8, 8}, {12, 12}, {18, 18}}
	var steps []Size
	results, err := Sweep(testSource(t), Config{
		Method:  rescale.Bilinear,
		Backend: rescale.RowParallel,
		Threads: 2,
		Runs:    2,
	}, sizes, func(r SweepResult) error {
		steps = append(steps, r.Size)
		return nil
	})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(results) != len(sizes) || !slices.Equal(steps, sizes) {
		t.Errorf("Sweep visited %v, want %v", steps, sizes)
	}
	last, _ := Retained().(*rescale.PixelBuffer)
	if last == nil || last.Width() != 18 {
		t.Error("last retained output should be the 18x18 resize")
	}
}

func TestSweepCallbackError(t *testing.T) {
	stop := errors.New("stop")
	results, err := Sweep(testSource(t), Config{Runs: 1}, []Size{{4, 4}, {6, 6}}, func(SweepResult) error {
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("Sweep() error = %v, want stop", err)
	}
	if len(results) != 1 {
		t.Errorf("len(results) = %d, want 1", len(results))
	}
}
