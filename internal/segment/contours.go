package segment

import (
	"image"

	"github.com/ironsheep/tapevision/internal/geometry"
)

// Moore neighbourhood, clockwise on screen starting east: E, SE, S, SW, W, NW, N, NE.
var (
	ndx = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	ndy = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

// grid is a labelled view of a mask. Labels > 0 are foreground components,
// holeBase+n marks pixels of hole n, 0 is background connected to the border.
type grid struct {
	w, h   int
	origin image.Point
	labels []int
}

const unlabelled = -1

// FindContours extracts polygon boundaries from a binary mask.
//
// Parameters:
//   - mask: Binary mask; any non-zero pixel is foreground.
//   - externalOnly: When true only the outer boundary of each 8-connected component
//     is returned. When false, boundaries around holes are appended as well.
//
// Returns contours in mask coordinates. Outer boundaries come first, ordered by the
// raster position of their top-left pixel, followed by hole boundaries in the same
// order. A component made of a single pixel yields a one-point contour.
func FindContours(mask *image.Gray, externalOnly bool) []geometry.Contour {
	g := labelComponents(mask)
	contours := make([]geometry.Contour, 0)

	starts := make(map[int]image.Point)
	order := make([]int, 0)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			l := g.labels[y*g.w+x]
			if l > 0 {
				if _, ok := starts[l]; !ok {
					starts[l] = image.Point{X: x, Y: y}
					order = append(order, l)
				}
			}
		}
	}

	for _, l := range order {
		s := starts[l]
		// The west neighbour of the top-left pixel is never part of the component.
		contours = append(contours, g.trace(l, s, image.Point{X: s.X - 1, Y: s.Y}))
	}

	if externalOnly {
		return contours
	}

	for _, hole := range g.holeStarts() {
		// The pixel directly above a hole's first raster pixel is foreground.
		s := image.Point{X: hole.X, Y: hole.Y - 1}
		l := g.labels[s.Y*g.w+s.X]
		contours = append(contours, g.trace(l, s, hole))
	}
	return contours
}

// labelComponents assigns a label to every 8-connected foreground component using an
// iterative flood fill. Background pixels keep label 0.
func labelComponents(mask *image.Gray) *grid {
	b := mask.Bounds()
	g := &grid{w: b.Dx(), h: b.Dy(), origin: b.Min, labels: make([]int, b.Dx()*b.Dy())}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y != 0 {
				g.labels[y*g.w+x] = unlabelled
			}
		}
	}

	next := 1
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if g.labels[y*g.w+x] == unlabelled {
				g.fill(x, y, next)
				next++
			}
		}
	}
	return g
}

// fill labels every unlabelled foreground pixel 8-connected to (x, y).
func (g *grid) fill(x, y, label int) {
	stack := []image.Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !g.in(p.X, p.Y) || g.labels[p.Y*g.w+p.X] != unlabelled {
			continue
		}
		g.labels[p.Y*g.w+p.X] = label
		for i := 0; i < 8; i++ {
			stack = append(stack, image.Point{X: p.X + ndx[i], Y: p.Y + ndy[i]})
		}
	}
}

// holeStarts returns the first raster pixel of every background region that is
// 4-connected and does not reach the mask border.
func (g *grid) holeStarts() []image.Point {
	outside := make([]bool, len(g.labels))
	stack := make([]image.Point, 0)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if (x == 0 || y == 0 || x == g.w-1 || y == g.h-1) && g.labels[y*g.w+x] == 0 {
				stack = append(stack, image.Point{X: x, Y: y})
			}
		}
	}
	g.flood4(stack, outside)

	starts := make([]image.Point, 0)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			if g.labels[i] == 0 && !outside[i] {
				starts = append(starts, image.Point{X: x, Y: y})
				g.flood4([]image.Point{{X: x, Y: y}}, outside)
			}
		}
	}
	return starts
}

// flood4 marks background pixels 4-connected to the seeds.
func (g *grid) flood4(stack []image.Point, marked []bool) {
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !g.in(p.X, p.Y) {
			continue
		}
		i := p.Y*g.w + p.X
		if marked[i] || g.labels[i] != 0 {
			continue
		}
		marked[i] = true
		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y}, image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1}, image.Point{X: p.X, Y: p.Y - 1})
	}
}

func (g *grid) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

func (g *grid) is(label, x, y int) bool {
	return g.in(x, y) && g.labels[y*g.w+x] == label
}

// trace follows the boundary of a component with Moore-neighbour tracing, starting
// at s with the given background backtrack pixel. Tracing stops when the walk is
// back at s about to repeat its first step.
func (g *grid) trace(label int, s, back image.Point) geometry.Contour {
	pts := []image.Point{s}
	c, b := s, back
	var first image.Point
	maxSteps := 4*g.w*g.h + 8

	for step := 0; step < maxSteps; step++ {
		d := dirIndex(b.X-c.X, b.Y-c.Y)
		found := false
		var n image.Point
		for k := 1; k <= 8; k++ {
			i := (d + k) % 8
			tx, ty := c.X+ndx[i], c.Y+ndy[i]
			if g.is(label, tx, ty) {
				prev := (i + 7) % 8
				b = image.Point{X: c.X + ndx[prev], Y: c.Y + ndy[prev]}
				n = image.Point{X: tx, Y: ty}
				found = true
				break
			}
		}
		if !found {
			// Isolated pixel.
			break
		}
		if step == 0 {
			first = n
		} else if c == s && n == first {
			break
		}
		c = n
		pts = append(pts, c)
	}

	// The walk ends on s again; drop the closing duplicate.
	if len(pts) > 1 && pts[len(pts)-1] == s {
		pts = pts[:len(pts)-1]
	}
	return g.shift(approxSimple(pts))
}

// shift translates grid coordinates back to mask coordinates.
func (g *grid) shift(pts []image.Point) geometry.Contour {
	out := make(geometry.Contour, len(pts))
	for i, p := range pts {
		out[i] = p.Add(g.origin)
	}
	return out
}

// approxSimple drops every vertex whose incoming and outgoing steps point the same
// way, treating the polygon as closed.
func approxSimple(pts []image.Point) []image.Point {
	n := len(pts)
	if n <= 2 {
		return pts
	}
	out := make([]image.Point, 0, n)
	for i, p := range pts {
		in := p.Sub(pts[(i+n-1)%n])
		outStep := pts[(i+1)%n].Sub(p)
		if in != outStep {
			out = append(out, p)
		}
	}
	return out
}

func dirIndex(dx, dy int) int {
	for i := 0; i < 8; i++ {
		if ndx[i] == dx && ndy[i] == dy {
			return i
		}
	}
	return 0
}
