package segment

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// Blur applies a Gaussian blur of the given radius. A radius of zero or less returns
// the input unchanged.
func Blur(img image.Image, radius float64) image.Image {
	if radius <= 0 {
		return img
	}
	return blur.Gaussian(img, radius)
}

// Open performs a morphological opening (erode, then dilate) on a binary mask,
// removing foreground specks smaller than the radius. A radius of zero or less
// returns the mask unchanged.
func Open(mask *image.Gray, radius float64) *image.Gray {
	if radius <= 0 {
		return mask
	}
	eroded := effect.Erode(mask, radius)
	dilated := effect.Dilate(eroded, radius)
	return binarize(dilated, mask.Bounds())
}

// binarize maps any pixel with red intensity above half scale to 255. bild returns
// RGBA images whose origin is always (0, 0), so the result is shifted back onto the
// original mask bounds.
func binarize(img *image.RGBA, bounds image.Rectangle) *image.Gray {
	out := image.NewGray(bounds)
	src := img.Bounds()
	for y := 0; y < src.Dy() && y < bounds.Dy(); y++ {
		for x := 0; x < src.Dx() && x < bounds.Dx(); x++ {
			if img.RGBAAt(src.Min.X+x, src.Min.Y+y).R > 127 {
				out.SetGray(bounds.Min.X+x, bounds.Min.Y+y, color.Gray{Y: 255})
			}
		}
	}
	return out
}
