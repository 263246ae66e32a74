//go:build gocv

package opencv

import (
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ironsheep/tapevision/internal/geometry"
	"github.com/ironsheep/tapevision/internal/segment"
	"github.com/ironsheep/tapevision/internal/vision"
)

// Available reports whether the OpenCV backend was compiled in.
const Available = true

type backend struct{}

// New returns the OpenCV backend.
func New() (vision.Primitives, error) {
	return backend{}, nil
}

func withPoints[T any](c geometry.Contour, fn func(gocv.PointVector) T) T {
	pv := gocv.NewPointVectorFromPoints(c)
	defer pv.Close()
	return fn(pv)
}

func (backend) BoundingRect(c geometry.Contour) image.Rectangle {
	if len(c) == 0 {
		return image.Rectangle{}
	}
	return withPoints(c, gocv.BoundingRect)
}

func (backend) MinAreaRect(c geometry.Contour) geometry.RotatedRect {
	if len(c) == 0 {
		return geometry.RotatedRect{Angle: -90}
	}
	r := withPoints(c, gocv.MinAreaRect)
	return geometry.Canonical(geometry.RotatedRect{
		Center: geometry.ToVec(r.Center),
		Size:   r2.Vec{X: float64(r.Width), Y: float64(r.Height)},
		Angle:  r.Angle,
	})
}

func (backend) ConvexHull(c geometry.Contour) geometry.Contour {
	if len(c) < 3 {
		return append(geometry.Contour(nil), c...)
	}
	return withPoints(c, func(pv gocv.PointVector) geometry.Contour {
		hull := gocv.NewMat()
		defer hull.Close()
		gocv.ConvexHull(pv, &hull, false, true)
		out := gocv.NewPointVectorFromMat(hull)
		defer out.Close()
		return out.ToPoints()
	})
}

func (backend) ContourArea(c geometry.Contour) float64 {
	if len(c) < 3 {
		return 0
	}
	return withPoints(c, gocv.ContourArea)
}

func (backend) ArcLength(c geometry.Contour, closed bool) float64 {
	if len(c) < 2 {
		return 0
	}
	return withPoints(c, func(pv gocv.PointVector) float64 {
		return gocv.ArcLength(pv, closed)
	})
}

// Threshold converts the frame to HSV and keeps pixels inside r, like
// segment.HSVThreshold but in OpenCV.
func (backend) Threshold(img image.Image, r segment.HSVRange) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(bounds)

	bgr, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return out
	}
	defer bgr.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(r.Hue[0], r.Saturation[0], r.Value[0], 0),
		gocv.NewScalar(r.Hue[1], r.Saturation[1], r.Value[1], 0),
		&mask)

	m, err := mask.ToImage()
	if err != nil {
		return out
	}
	gray, ok := m.(*image.Gray)
	if !ok {
		return out
	}
	// InRange produces a zero-origin mask; move it back onto the frame bounds.
	copy(out.Pix, gray.Pix)
	return out
}

// FindContours extracts contours with chain-approx-simple compression, external
// boundaries only or every boundary as a flat list.
func (backend) FindContours(mask *image.Gray, externalOnly bool) []geometry.Contour {
	origin := mask.Rect.Min
	zeroed := &image.Gray{Pix: mask.Pix, Stride: mask.Stride, Rect: mask.Rect.Sub(origin)}
	mat, err := gocv.ImageGrayToMatGray(zeroed)
	if err != nil {
		return nil
	}
	defer mat.Close()

	mode := gocv.RetrievalList
	if externalOnly {
		mode = gocv.RetrievalExternal
	}
	pvs := gocv.FindContours(mat, mode, gocv.ChainApproxSimple)
	defer pvs.Close()

	out := make([]geometry.Contour, 0, pvs.Size())
	for _, pts := range pvs.ToPoints() {
		c := make(geometry.Contour, len(pts))
		for i, p := range pts {
			c[i] = p.Add(origin)
		}
		out = append(out, c)
	}
	return out
}
