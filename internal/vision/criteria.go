package vision

import (
	"fmt"
	"image"

	"github.com/pkg/errors"

	"github.com/ironsheep/tapevision/internal/geometry"
)

// AcceptanceCriteria bounds the shape of contours worth treating as tape.
// All bounds are inclusive. A set where some min exceeds its max is allowed and
// simply accepts nothing.
type AcceptanceCriteria struct {
	MinArea        float64    `json:"min_area"`
	MinPerimeter   float64    `json:"min_perimeter"`
	MinWidth       float64    `json:"min_width"`
	MaxWidth       float64    `json:"max_width"`
	MinHeight      float64    `json:"min_height"`
	MaxHeight      float64    `json:"max_height"`
	Solidity       [2]float64 `json:"solidity"` // percent, min and max
	MinVertexCount float64    `json:"min_vertex_count"`
	MaxVertexCount float64    `json:"max_vertex_count"`
	MinRatio       float64    `json:"min_ratio"` // width / height
	MaxRatio       float64    `json:"max_ratio"`
}

// DefaultCriteria returns the production tuning.
func DefaultCriteria() AcceptanceCriteria {
	return AcceptanceCriteria{
		MinArea:        10,
		MinPerimeter:   0,
		MinWidth:       0,
		MaxWidth:       1000,
		MinHeight:      0,
		MaxHeight:      1000,
		Solidity:       [2]float64{0, 100},
		MinVertexCount: 0,
		MaxVertexCount: 1000000,
		MinRatio:       0,
		MaxRatio:       20,
	}
}

// Rejection records why the contour at Index failed the criteria.
type Rejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Check evaluates one contour. It returns "" when every check passes, otherwise a
// short description of the first failing check.
func (c AcceptanceCriteria) Check(g Geometry, contour geometry.Contour) string {
	box := g.BoundingRect(contour)
	w, h := float64(box.Dx()), float64(box.Dy())
	if w < c.MinWidth || w > c.MaxWidth {
		return fmt.Sprintf("width %.0f outside [%g, %g]", w, c.MinWidth, c.MaxWidth)
	}
	if h < c.MinHeight || h > c.MaxHeight {
		return fmt.Sprintf("height %.0f outside [%g, %g]", h, c.MinHeight, c.MaxHeight)
	}

	area := g.ContourArea(contour)
	if area < c.MinArea {
		return fmt.Sprintf("area %.1f below %g", area, c.MinArea)
	}
	if perim := g.ArcLength(contour, true); perim < c.MinPerimeter {
		return fmt.Sprintf("perimeter %.1f below %g", perim, c.MinPerimeter)
	}

	solid, err := solidity(g, contour, area)
	if err != nil {
		return err.Error()
	}
	if solid < c.Solidity[0] || solid > c.Solidity[1] {
		return fmt.Sprintf("solidity %.1f outside [%g, %g]", solid, c.Solidity[0], c.Solidity[1])
	}

	if n := float64(len(contour)); n < c.MinVertexCount || n > c.MaxVertexCount {
		return fmt.Sprintf("vertex count %.0f outside [%g, %g]", n, c.MinVertexCount, c.MaxVertexCount)
	}

	ratio, err := aspectRatio(box)
	if err != nil {
		return err.Error()
	}
	if ratio < c.MinRatio || ratio > c.MaxRatio {
		return fmt.Sprintf("ratio %.2f outside [%g, %g]", ratio, c.MinRatio, c.MaxRatio)
	}
	return ""
}

// Filter returns the contours passing every check, in input order. The input is
// not modified.
func Filter(g Geometry, contours []geometry.Contour, c AcceptanceCriteria) []geometry.Contour {
	kept, _ := FilterWithRejections(g, contours, c)
	return kept
}

// FilterWithRejections is Filter that also reports why each dropped contour failed.
func FilterWithRejections(g Geometry, contours []geometry.Contour, c AcceptanceCriteria) ([]geometry.Contour, []Rejection) {
	kept := make([]geometry.Contour, 0, len(contours))
	var rejected []Rejection
	for i, contour := range contours {
		if reason := c.Check(g, contour); reason != "" {
			rejected = append(rejected, Rejection{Index: i, Reason: reason})
			continue
		}
		kept = append(kept, contour)
	}
	return kept, rejected
}

// solidity is 100 * area / hull area.
func solidity(g Geometry, contour geometry.Contour, area float64) (float64, error) {
	hullArea := g.ContourArea(g.ConvexHull(contour))
	if hullArea == 0 {
		return 0, errors.Wrap(ErrDegenerateGeometry, "zero hull area")
	}
	return 100 * area / hullArea, nil
}

// aspectRatio is width / height of the bounding box. Zero height is degenerate and
// always fails the filter rather than dividing by zero.
func aspectRatio(box image.Rectangle) (float64, error) {
	if box.Dy() == 0 {
		return 0, errors.Wrapf(ErrDegenerateGeometry, "zero height (width %d)", box.Dx())
	}
	return float64(box.Dx()) / float64(box.Dy()), nil
}
