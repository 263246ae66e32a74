package imaging

import (
	"fmt"
	"image"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/tapevision/internal/segment"
)

// LabeledPoint is a pixel coordinate with an optional label such as "tape" or
// "wall".
type LabeledPoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// HSVSample is the color of one pixel, on the scale the threshold stage uses.
type HSVSample struct {
	Label string  `json:"label,omitempty"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Hex   string  `json:"hex"`
	H     float64 `json:"h"` // 0-180
	S     float64 `json:"s"` // 0-255
	V     float64 `json:"v"` // 0-255
	// InRange reports whether the threshold range accepts this pixel.
	InRange bool `json:"in_range"`
}

// SampleHSV reads the pixels at points and reports them against r. Results keep
// the input order. Any point outside the image fails the whole call.
func SampleHSV(img image.Image, points []LabeledPoint, r segment.HSVRange) ([]HSVSample, error) {
	bounds := img.Bounds()
	samples := make([]HSVSample, 0, len(points))
	for _, p := range points {
		if !image.Pt(p.X, p.Y).In(bounds) {
			return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %v", p.X, p.Y, bounds)
		}
		c := img.At(p.X, p.Y)
		h, s, v := segment.OpenCVHSV(c)
		cf, _ := colorful.MakeColor(c)
		samples = append(samples, HSVSample{
			Label:   p.Label,
			X:       p.X,
			Y:       p.Y,
			Hex:     cf.Hex(),
			H:       h,
			S:       s,
			V:       v,
			InRange: r.Contains(h, s, v),
		})
	}
	return samples, nil
}

// HSVStats summarizes the HSV values of every pixel in a region, useful for
// widening or narrowing the threshold around a known piece of tape.
type HSVStats struct {
	Region  image.Rectangle `json:"region"`
	Pixels  int             `json:"pixels"`
	Min     [3]float64      `json:"min"`
	Max     [3]float64      `json:"max"`
	Median  [3]float64      `json:"median"`
	InRange float64         `json:"in_range_percent"`
}

// RegionHSV computes HSVStats over region, clamped to the image.
func RegionHSV(img image.Image, region image.Rectangle, r segment.HSVRange) (*HSVStats, error) {
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return nil, fmt.Errorf("region does not overlap image bounds %v", img.Bounds())
	}

	n := region.Dx() * region.Dy()
	channels := [3][]float64{make([]float64, 0, n), make([]float64, 0, n), make([]float64, 0, n)}
	accepted := 0
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			h, s, v := segment.OpenCVHSV(img.At(x, y))
			channels[0] = append(channels[0], h)
			channels[1] = append(channels[1], s)
			channels[2] = append(channels[2], v)
			if r.Contains(h, s, v) {
				accepted++
			}
		}
	}

	stats := &HSVStats{Region: region, Pixels: n, InRange: 100 * float64(accepted) / float64(n)}
	for i, vals := range channels {
		sort.Float64s(vals)
		stats.Min[i] = vals[0]
		stats.Max[i] = vals[len(vals)-1]
		stats.Median[i] = vals[len(vals)/2]
	}
	return stats, nil
}
