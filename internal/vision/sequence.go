package vision

import "sort"

// SortByXCenter returns a copy of targets ordered left to right by x-center.
// Targets with equal x-centers keep their input order.
func SortByXCenter(targets []*OrientedTarget) []*OrientedTarget {
	sorted := make([]*OrientedTarget, len(targets))
	copy(sorted, targets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].XCenter() < sorted[j].XCenter()
	})
	return sorted
}

// TrimEdges returns the half-open window [lo, hi) of sorted that remains after
// dropping partial targets at the frame edges.
//
// The leftmost target is dropped when it sits in the left half and leans LEFT,
// since its partner would be off-frame. Then, on what is left, the rightmost
// target is dropped when it sits in the right half and leans RIGHT.
func TrimEdges(sorted []*OrientedTarget, horizontalRes float64) (lo, hi int) {
	lo, hi = 0, len(sorted)
	mid := horizontalRes / 2
	if hi-lo > 0 {
		first := sorted[lo]
		if first.XCenter() < mid && first.Direction() == Left {
			lo++
		}
	}
	if hi-lo > 0 {
		last := sorted[hi-1]
		if last.XCenter() > mid && last.Direction() == Right {
			hi--
		}
	}
	return lo, hi
}

// Sequence sorts targets by x-center and trims the frame edges. The result has an
// even length; an odd count after trimming returns an *UnpairableError. The input
// slice is never modified.
func Sequence(targets []*OrientedTarget, horizontalRes float64) ([]*OrientedTarget, error) {
	sorted := SortByXCenter(targets)
	lo, hi := TrimEdges(sorted, horizontalRes)
	trimmed := sorted[lo:hi:hi]
	if len(trimmed)%2 != 0 {
		xs := make([]float64, len(trimmed))
		for i, t := range trimmed {
			xs[i] = t.XCenter()
		}
		return nil, &UnpairableError{XCenters: xs}
	}
	return trimmed, nil
}
