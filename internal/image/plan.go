package image

import "github.com/gogpu/rescale/internal/cache"

// planKey identifies a per-axis sampling table.
type planKey struct {
	inSize, outSize int
}

// Column tables depend only on the source and output widths, so they are
// shared by every row block and every call with the same geometry.
var (
	nearestPlans  = cache.New[planKey, []int](64)
	bilinearPlans = cache.New[planKey, []axisWeight](64)
)

// nearestColumns returns the source column for every output column.
// The returned slice is shared and must not be modified.
func nearestColumns(inW, outW int) []int {
	return nearestPlans.GetOrCreate(planKey{inW, outW}, func() []int {
		cols := make([]int, outW)
		for x := range cols {
			cols[x] = clamp(roundHalfAway(MapCoord(x, inW, outW)), 0, inW-1)
		}
		return cols
	})
}

// bilinearColumns returns the taps and weight for every output column.
// The returned slice is shared and must not be modified.
func bilinearColumns(inW, outW int) []axisWeight {
	return bilinearPlans.GetOrCreate(planKey{inW, outW}, func() []axisWeight {
		cols := make([]axisWeight, outW)
		for x := range cols {
			cols[x] = bilinearAxis(x, inW, outW)
		}
		return cols
	})
}

// PlanStats reports hits and misses of the column table caches.
func PlanStats() (nearest, bilinear cache.Stats) {
	return nearestPlans.Stats(), bilinearPlans.Stats()
}
