// Package geometry provides the polygon primitives the target pipeline is built on:
// bounding rectangles, minimum-area rectangles, convex hulls, arc length and area.
//
// Coordinates follow the image convention: origin at the top-left, X grows to the
// right and Y grows downward. Angles are in degrees and, because Y points down, a
// positive angle is a clockwise rotation on screen.
package geometry

import (
	"image"

	"gonum.org/v1/gonum/spatial/r2"
)

// Contour is an ordered, closed polygon boundary in pixel coordinates.
// Contours are treated as immutable once produced.
type Contour []image.Point

// Vecs returns the contour vertices as float vectors.
func (c Contour) Vecs() []r2.Vec {
	out := make([]r2.Vec, len(c))
	for i, p := range c {
		out[i] = ToVec(p)
	}
	return out
}

// ToVec converts an integer pixel coordinate to a vector.
func ToVec(p image.Point) r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}

// RotatedRect is a rectangle of arbitrary orientation.
//
// Size.X is the width and Size.Y the height. Angle is the rotation of the width edge
// relative to the X axis. MinAreaRect reports angles in [-90, 0).
type RotatedRect struct {
	Center r2.Vec  `json:"center"`
	Size   r2.Vec  `json:"size"`
	Angle  float64 `json:"angle"`
}

// Area returns width times height.
func (r RotatedRect) Area() float64 {
	return r.Size.X * r.Size.Y
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Midpoint returns the per-axis mean of two points.
func Midpoint(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}
