package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// PyrDown halves the frame in each dimension after a Gaussian low-pass, the
// same reduction an image pyramid applies per level. Odd sizes round up.
func PyrDown(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := pyramidSize(b.Dx(), b.Dy())
	if w == 0 || h == 0 {
		return image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	return imaging.Resize(img, w, h, imaging.Gaussian)
}

func pyramidSize(w, h int) (int, int) {
	return (w + 1) / 2, (h + 1) / 2
}

// CropResult is a crop of one tape target.
type CropResult struct {
	// Region is the requested region clamped to the frame, in frame coordinates.
	Region image.Rectangle `json:"region"`
	EncodedImage
}

// CropTarget cuts a target's source region out of the frame.
//
// Parameters:
//   - img: The frame the region was measured on.
//   - region: Target region in frame coordinates. It may extend past the frame
//     edges (the crop buffer often does); it is clamped first.
//   - scale: Optional resize factor for the crop. Values <= 0 or 1 keep the size.
//
// Returns:
//   - *CropResult: The clamped region and the crop as base64 PNG.
//   - error: Non-nil if the region does not overlap the frame.
func CropTarget(img image.Image, region image.Rectangle, scale float64) (*CropResult, error) {
	clamped := region.Intersect(img.Bounds())
	if clamped.Empty() {
		return nil, fmt.Errorf("region %v does not overlap frame %v", region, img.Bounds())
	}

	cropped := imaging.Crop(img, clamped)
	if scale > 0 && scale != 1.0 {
		w := int(float64(cropped.Bounds().Dx()) * scale)
		h := int(float64(cropped.Bounds().Dy()) * scale)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}

	enc, err := EncodePNG(cropped)
	if err != nil {
		return nil, err
	}
	return &CropResult{Region: clamped, EncodedImage: *enc}, nil
}
