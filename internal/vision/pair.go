package vision

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ironsheep/tapevision/internal/geometry"
)

// TargetPair is two adjacent targets treated as one vision target.
type TargetPair struct {
	Left  *OrientedTarget
	Right *OrientedTarget
}

// Area is the combined contour area of both targets.
func (p TargetPair) Area() float64 {
	return p.Left.Area() + p.Right.Area()
}

// Center is the midpoint of the two rectangle centers.
func (p TargetPair) Center() r2.Vec {
	return geometry.Midpoint(p.Left.Center(), p.Right.Center())
}

// CenterOffset is the horizontal distance of the pair's center from the middle of
// a frame horizontalRes pixels wide. Negative means left of center.
func (p TargetPair) CenterOffset(horizontalRes float64) float64 {
	return p.Center().X - horizontalRes/2.0
}

// AdjacentPairs groups a sequenced list into (0,1), (2,3), ... An odd trailing
// target is ignored.
func AdjacentPairs(seq []*OrientedTarget) []TargetPair {
	pairs := make([]TargetPair, 0, len(seq)/2)
	for i := 0; i+1 < len(seq); i += 2 {
		pairs = append(pairs, TargetPair{Left: seq[i], Right: seq[i+1]})
	}
	return pairs
}

// Selector picks the index of the best pair out of a non-empty candidate list.
type Selector func(pairs []TargetPair) int

// SelectLargest picks the pair with the greatest combined area. The earliest pair
// wins ties.
func SelectLargest(pairs []TargetPair) int {
	best := 0
	for i := 1; i < len(pairs); i++ {
		if pairs[i].Area() > pairs[best].Area() {
			best = i
		}
	}
	return best
}

// SelectClosestToCenter returns a selector that picks the pair whose center lies
// nearest the middle of the frame. The earliest pair wins ties.
func SelectClosestToCenter(horizontalRes float64) Selector {
	return func(pairs []TargetPair) int {
		best := 0
		bestOff := math.Abs(pairs[0].CenterOffset(horizontalRes))
		for i := 1; i < len(pairs); i++ {
			if off := math.Abs(pairs[i].CenterOffset(horizontalRes)); off < bestOff {
				best, bestOff = i, off
			}
		}
		return best
	}
}

// Pair selects the largest adjacent pair from a sequenced list.
func Pair(seq []*OrientedTarget) (*TargetPair, error) {
	return PairWith(seq, SelectLargest)
}

// PairWith selects an adjacent pair from a sequenced list using sel.
func PairWith(seq []*OrientedTarget, sel Selector) (*TargetPair, error) {
	pairs := AdjacentPairs(seq)
	if len(pairs) == 0 {
		return nil, errors.Wrapf(ErrInsufficientTargets, "%d targets after trimming", len(seq))
	}
	p := pairs[sel(pairs)]
	return &p, nil
}
