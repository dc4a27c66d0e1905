// Package buffer negotiates analysis buffer sizes and holds the most recent
// samples of each channel between analysis ticks.
package buffer

// SelectSize snaps a requested sample count to the nearest supported
// processing size. Ties resolve to the smaller size. Any input is valid;
// the result is always one of the sizes in [MinSize, MaxSize].
func SelectSize(requested int) int {
	best := sizes[0]
	bestDist := distance(best, requested)
	for _, s := range sizes[1:] {
		if d := distance(s, requested); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

// Sizes returns a copy of the supported processing sizes in ascending order.
func Sizes() []int {
	out := make([]int, len(sizes))
	copy(out, sizes[:])
	return out
}

// distance is |a-b| computed in uint64 so extreme requests cannot overflow.
func distance(a, b int) uint64 {
	if a > b {
		return uint64(a) - uint64(b)
	}
	return uint64(b) - uint64(a)
}
