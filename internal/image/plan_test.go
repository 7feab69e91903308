package image

import (
	"slices"
	"testing"
)

func TestNearestColumnsShared(t *testing.T) {
	a := nearestColumns(4, 2)
	if want := []int{1, 3}; !slices.Equal(a, want) {
		t.Errorf("nearestColumns(4, 2) = %v, want %v", a, want)
	}

	before, _ := PlanStats()
	b := nearestColumns(4, 2)
	after, _ := PlanStats()
	if &a[0] != &b[0] {
		t.Error("second lookup did not reuse the cached table")
	}
	if after.Hits != before.Hits+1 {
		t.Errorf("hits = %d, want %d", after.Hits, before.Hits+1)
	}
}

func TestBilinearColumns(t *testing.T) {
	cols := bilinearColumns(2, 4)
	want := []axisWeight{
		{i0: 0, i1: 1, w: -0.25},
		{i0: 0, i1: 1, w: 0.25},
		{i0: 0, i1: 1, w: 0.75},
		{i0: 1, i1: 1, w: 0.25},
	}
	if !slices.Equal(cols, want) {
		t.Errorf("bilinearColumns(2, 4) = %+v, want %+v", cols, want)
	}
}
