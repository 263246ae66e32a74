package vision

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ironsheep/tapevision/internal/geometry"
)

// NormalizedRect is a minimum-area rectangle whose angle has been folded into
// [-45, 45] by swapping width and height in quarter turns.
type NormalizedRect struct {
	Center r2.Vec  `json:"center"`
	Size   r2.Vec  `json:"size"` // X is width, Y is height
	Angle  float64 `json:"angle"`
}

// Direction is Right when the angle is strictly positive, Left otherwise.
func (n NormalizedRect) Direction() Direction {
	return directionOf(n.Angle)
}

// NormalizeRect folds a rotated rectangle's angle into [-45, 45]. Each +-90 degree
// step swaps width and height so the rectangle itself is unchanged.
func NormalizeRect(r geometry.RotatedRect) NormalizedRect {
	n := NormalizedRect{Center: r.Center, Size: r.Size, Angle: r.Angle}
	if math.Abs(n.Angle) >= 360 {
		// Half turns leave both the size and the angle class untouched.
		n.Angle = math.Mod(n.Angle, 180)
	}
	for n.Angle < -45 {
		n.Size.X, n.Size.Y = n.Size.Y, n.Size.X
		n.Angle += 90
	}
	for n.Angle > 45 {
		n.Size.X, n.Size.Y = n.Size.Y, n.Size.X
		n.Angle -= 90
	}
	return n
}

// DeriveOrientation computes the normalized minimum-area rectangle of a contour.
func DeriveOrientation(g Geometry, c geometry.Contour) NormalizedRect {
	return NormalizeRect(g.MinAreaRect(c))
}

// OrientedTarget is one accepted contour plus its lazily derived orientation.
//
// The orientation and area are computed on first use and then reused; nothing is
// ever recomputed. The contour must not be modified after construction. A target
// lives for a single frame and is not safe for concurrent use.
type OrientedTarget struct {
	contour geometry.Contour
	region  image.Rectangle
	geom    Geometry

	orient struct {
		resolved bool
		rect     NormalizedRect
	}
	area struct {
		resolved bool
		value    float64
	}
}

// NewOrientedTarget wraps a contour. Region is the contour's source rectangle in
// frame coordinates, used to map the target back onto the frame.
func NewOrientedTarget(c geometry.Contour, region image.Rectangle, g Geometry) *OrientedTarget {
	return &OrientedTarget{contour: c, region: region, geom: g}
}

// Contour returns the wrapped contour.
func (t *OrientedTarget) Contour() geometry.Contour { return t.contour }

// Region returns the source rectangle the target was tagged with.
func (t *OrientedTarget) Region() image.Rectangle { return t.region }

// Rect returns the normalized minimum-area rectangle.
func (t *OrientedTarget) Rect() NormalizedRect {
	if !t.orient.resolved {
		t.orient.rect = DeriveOrientation(t.geom, t.contour)
		t.orient.resolved = true
	}
	return t.orient.rect
}

// Center returns the center of the normalized rectangle.
func (t *OrientedTarget) Center() r2.Vec { return t.Rect().Center }

// XCenter returns the horizontal center coordinate.
func (t *OrientedTarget) XCenter() float64 { return t.Rect().Center.X }

// Angle returns the normalized angle in degrees.
func (t *OrientedTarget) Angle() float64 { return t.Rect().Angle }

// Direction returns which way the tape leans.
func (t *OrientedTarget) Direction() Direction { return t.Rect().Direction() }

// Area returns the area of the raw contour, not of its rectangle.
func (t *OrientedTarget) Area() float64 {
	if !t.area.resolved {
		t.area.value = t.geom.ContourArea(t.contour)
		t.area.resolved = true
	}
	return t.area.value
}
