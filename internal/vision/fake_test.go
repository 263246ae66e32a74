package vision

import (
	"image"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ironsheep/tapevision/internal/geometry"
	"github.com/ironsheep/tapevision/internal/segment"
)

// shape is what fakeGeom answers for a contour, keyed by the contour's first point.
type shape struct {
	box  image.Rectangle
	rect geometry.RotatedRect
	area float64
}

// fakeGeom returns canned geometry so tests can place targets exactly.
type fakeGeom struct {
	shapes   map[image.Point]shape
	minRects int
}

func newFakeGeom() *fakeGeom {
	return &fakeGeom{shapes: make(map[image.Point]shape)}
}

// add registers a target centered at (x, y) with the given raw angle and area,
// and returns its one-point contour.
func (f *fakeGeom) add(x, y, angle, area float64) geometry.Contour {
	key := image.Pt(len(f.shapes), -1)
	f.shapes[key] = shape{
		box: image.Rect(int(x)-5, int(y)-10, int(x)+5, int(y)+10),
		rect: geometry.RotatedRect{
			Center: r2.Vec{X: x, Y: y},
			Size:   r2.Vec{X: 10, Y: 20},
			Angle:  angle,
		},
		area: area,
	}
	return geometry.Contour{key}
}

func (f *fakeGeom) get(c geometry.Contour) shape {
	if len(c) == 0 {
		return shape{}
	}
	return f.shapes[c[0]]
}

func (f *fakeGeom) BoundingRect(c geometry.Contour) image.Rectangle { return f.get(c).box }

func (f *fakeGeom) MinAreaRect(c geometry.Contour) geometry.RotatedRect {
	f.minRects++
	return f.get(c).rect
}

func (f *fakeGeom) ConvexHull(c geometry.Contour) geometry.Contour { return c }

func (f *fakeGeom) ContourArea(c geometry.Contour) float64 { return f.get(c).area }

func (f *fakeGeom) ArcLength(c geometry.Contour, closed bool) float64 { return 60 }

func (f *fakeGeom) Threshold(img image.Image, r segment.HSVRange) *image.Gray {
	return image.NewGray(img.Bounds())
}

func (f *fakeGeom) FindContours(mask *image.Gray, externalOnly bool) []geometry.Contour {
	return nil
}

// leanLeft and leanRight are raw angles that normalize to each direction.
const (
	leanLeft  = -20.0
	leanRight = -70.0 // normalizes to +20
)

func lean(d Direction) float64 {
	if d == Right {
		return leanRight
	}
	return leanLeft
}

// targets builds one target per x-center with the given directions and areas.
func (f *fakeGeom) targets(xs []float64, dirs []Direction, areas []float64) []*OrientedTarget {
	out := make([]*OrientedTarget, len(xs))
	for i, x := range xs {
		area := 100.0
		if areas != nil {
			area = areas[i]
		}
		c := f.add(x, 100, lean(dirs[i]), area)
		out[i] = NewOrientedTarget(c, f.BoundingRect(c), f)
	}
	return out
}

func xCenters(ts []*OrientedTarget) []float64 {
	xs := make([]float64, len(ts))
	for i, t := range ts {
		xs[i] = t.XCenter()
	}
	return xs
}
