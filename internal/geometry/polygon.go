package geometry

import (
	"image"
	"math"
	"sort"
)

// BoundingRect returns the axis-aligned bounding rectangle of a contour.
//
// Widths are pixel-inclusive: a contour spanning x=2..5 has Dx() == 4. An empty
// contour yields the zero rectangle.
func BoundingRect(c Contour) image.Rectangle {
	if len(c) == 0 {
		return image.Rectangle{}
	}
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := c[0].X, c[0].Y
	for _, p := range c[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// ContourArea returns the unsigned polygon area using the shoelace formula.
// Contours with fewer than three vertices have zero area.
func ContourArea(c Contour) float64 {
	if len(c) < 3 {
		return 0
	}
	var sum float64
	prev := c[len(c)-1]
	for _, p := range c {
		sum += float64(prev.X)*float64(p.Y) - float64(p.X)*float64(prev.Y)
		prev = p
	}
	return math.Abs(sum) / 2
}

// ArcLength returns the perimeter of the polygon. When closed is true the segment
// from the last vertex back to the first is included.
func ArcLength(c Contour, closed bool) float64 {
	if len(c) < 2 {
		return 0
	}
	var length float64
	for i := 1; i < len(c); i++ {
		length += Distance(ToVec(c[i-1]), ToVec(c[i]))
	}
	if closed {
		length += Distance(ToVec(c[len(c)-1]), ToVec(c[0]))
	}
	return length
}

// ConvexHull returns the convex hull of the contour's vertices using Andrew's
// monotone chain. Collinear points are dropped. The input is not modified.
func ConvexHull(c Contour) Contour {
	pts := make([]image.Point, 0, len(c))
	seen := make(map[image.Point]struct{}, len(c))
	for _, p := range c {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		pts = append(pts, p)
	}
	if len(pts) < 3 {
		return Contour(pts)
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	hull := make([]image.Point, 0, 2*len(pts))
	// Lower chain
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// Upper chain
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return Contour(hull[:len(hull)-1])
}

// cross computes the z component of (a-o) x (b-o).
func cross(o, a, b image.Point) float64 {
	return float64(a.X-o.X)*float64(b.Y-o.Y) - float64(a.Y-o.Y)*float64(b.X-o.X)
}
