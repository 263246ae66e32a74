package segment

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSVRange is an inclusive HSV acceptance box in OpenCV 8-bit scale.
type HSVRange struct {
	Hue        [2]float64 `json:"hue"`        // 0-180
	Saturation [2]float64 `json:"saturation"` // 0-255
	Value      [2]float64 `json:"value"`      // 0-255
}

// DefaultHSVRange returns the range tuned for green-lit retro-reflective tape.
func DefaultHSVRange() HSVRange {
	return HSVRange{
		Hue:        [2]float64{15.9558030341169, 137.8198178573477},
		Saturation: [2]float64{65.519019296701, 255.0},
		Value:      [2]float64{69.45015658363164, 255.0},
	}
}

// Contains reports whether an OpenCV-scale HSV triple is inside the range.
func (r HSVRange) Contains(h, s, v float64) bool {
	return h >= r.Hue[0] && h <= r.Hue[1] &&
		s >= r.Saturation[0] && s <= r.Saturation[1] &&
		v >= r.Value[0] && v <= r.Value[1]
}

// OpenCVHSV converts a color to HSV on the OpenCV 8-bit scale (H 0-180, S and V
// 0-255), rounded to whole units the way an 8-bit HSV image stores them.
// Fully transparent pixels convert to black.
func OpenCVHSV(c color.Color) (h, s, v float64) {
	cf, _ := colorful.MakeColor(c)
	hue, sat, val := cf.Hsv()
	h = math.Round(hue / 2)
	if h >= 180 {
		h = 0
	}
	return h, math.Round(sat * 255), math.Round(val * 255)
}

// HSVThreshold segments an image by HSV range.
//
// Parameters:
//   - img: Source frame. Any color model is accepted; alpha is ignored.
//   - r: Inclusive acceptance range in OpenCV scale.
//
// Returns a mask with the same bounds as img where accepted pixels are 255.
func HSVThreshold(img image.Image, r HSVRange) *image.Gray {
	bounds := img.Bounds()
	mask := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if r.Contains(OpenCVHSV(img.At(x, y))) {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return mask
}
