package vision

import (
	"image"

	"github.com/ironsheep/tapevision/internal/geometry"
	"github.com/ironsheep/tapevision/internal/segment"
)

// Geometry answers the polygon queries the filter and the targets rely on.
type Geometry interface {
	BoundingRect(c geometry.Contour) image.Rectangle
	MinAreaRect(c geometry.Contour) geometry.RotatedRect
	ConvexHull(c geometry.Contour) geometry.Contour
	ContourArea(c geometry.Contour) float64
	ArcLength(c geometry.Contour, closed bool) float64
}

// Primitives is the full image-processing backend used by a Pipeline.
type Primitives interface {
	Geometry
	Threshold(img image.Image, r segment.HSVRange) *image.Gray
	FindContours(mask *image.Gray, externalOnly bool) []geometry.Contour
}

type native struct{}

// Native returns the pure Go backend built on the geometry and segment packages.
func Native() Primitives {
	return native{}
}

func (native) BoundingRect(c geometry.Contour) image.Rectangle { return geometry.BoundingRect(c) }

func (native) MinAreaRect(c geometry.Contour) geometry.RotatedRect { return geometry.MinAreaRect(c) }

func (native) ConvexHull(c geometry.Contour) geometry.Contour { return geometry.ConvexHull(c) }

func (native) ContourArea(c geometry.Contour) float64 { return geometry.ContourArea(c) }

func (native) ArcLength(c geometry.Contour, closed bool) float64 {
	return geometry.ArcLength(c, closed)
}

func (native) Threshold(img image.Image, r segment.HSVRange) *image.Gray {
	return segment.HSVThreshold(img, r)
}

func (native) FindContours(mask *image.Gray, externalOnly bool) []geometry.Contour {
	return segment.FindContours(mask, externalOnly)
}
