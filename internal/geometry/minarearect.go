package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MinAreaRect returns the minimum-area rectangle enclosing the contour.
//
// The search uses rotating calipers over the edges of the convex hull: for every
// hull edge the points are projected onto the edge direction and its normal, and the
// smallest resulting box wins (first one on ties). The result is expressed in the
// classic OpenCV convention: Angle in [-90, 0), Size.X measured along the edge at
// Angle and Size.Y along its normal.
//
// A single point yields a zero-size rectangle at that point with Angle -90.
func MinAreaRect(c Contour) RotatedRect {
	hull := ConvexHull(c).Vecs()
	switch len(hull) {
	case 0:
		return RotatedRect{Angle: -90}
	case 1:
		return RotatedRect{Center: hull[0], Angle: -90}
	}

	best := RotatedRect{}
	bestArea := math.Inf(1)
	for i := range hull {
		edge := r2.Sub(hull[(i+1)%len(hull)], hull[i])
		length := r2.Norm(edge)
		if length == 0 {
			continue
		}
		u := r2.Scale(1/length, edge)
		v := r2.Vec{X: -u.Y, Y: u.X}

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			pu := r2.Dot(p, u)
			pv := r2.Dot(p, v)
			minU = math.Min(minU, pu)
			maxU = math.Max(maxU, pu)
			minV = math.Min(minV, pv)
			maxV = math.Max(maxV, pv)
		}

		w, h := maxU-minU, maxV-minV
		if area := w * h; area < bestArea {
			bestArea = area
			center := r2.Add(r2.Scale((minU+maxU)/2, u), r2.Scale((minV+maxV)/2, v))
			best = RotatedRect{
				Center: center,
				Size:   r2.Vec{X: w, Y: h},
				Angle:  math.Atan2(u.Y, u.X) * 180 / math.Pi,
			}
		}
	}
	return Canonical(best)
}

// Canonical rotates the reference edge by quarter turns, swapping width and
// height each time, until the angle lies in [-90, 0). The rectangle itself is unchanged.
func Canonical(r RotatedRect) RotatedRect {
	for r.Angle >= 0 {
		r.Angle -= 90
		r.Size.X, r.Size.Y = r.Size.Y, r.Size.X
	}
	for r.Angle < -90 {
		r.Angle += 90
		r.Size.X, r.Size.Y = r.Size.Y, r.Size.X
	}
	return r
}
