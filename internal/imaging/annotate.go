package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
)

// Default overlay colors: blue target rings, a red ring on the pair center and a
// cyan line joining the pair.
var (
	DefaultTargetColor = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	DefaultPairColor   = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	DefaultLineColor   = color.NRGBA{R: 0, G: 255, B: 255, A: 255}
)

const ringRadius = 3

// Overlay describes what to draw on a frame.
type Overlay struct {
	// Targets gets one ring per target center.
	Targets []image.Point
	// Pair, when set, is the left and right member centers of the chosen pair.
	Pair *[2]image.Point
	// Label numbers each target ring in order.
	Label bool

	// Optional "#RRGGBB" or "#RRGGBBAA" overrides; invalid values fall back to
	// the defaults.
	TargetColor string
	PairColor   string
	LineColor   string
}

// Annotate draws the overlay on a copy of img. The input is not modified.
func Annotate(img image.Image, o Overlay) *image.NRGBA {
	out := imaging.Clone(img)
	offset := img.Bounds().Min

	targetColor := colorOr(o.TargetColor, DefaultTargetColor)
	pairColor := colorOr(o.PairColor, DefaultPairColor)
	lineColor := colorOr(o.LineColor, DefaultLineColor)

	if o.Pair != nil {
		a, b := o.Pair[0].Sub(offset), o.Pair[1].Sub(offset)
		drawLine(out, a, b, lineColor)
		mid := image.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
		drawRing(out, mid, ringRadius, pairColor)
	}
	for i, p := range o.Targets {
		p = p.Sub(offset)
		drawRing(out, p, ringRadius, targetColor)
		if o.Label {
			drawLabel(out, p.X+ringRadius+2, p.Y-ringRadius, strconv.Itoa(i),
				color.NRGBA{R: 255, G: 255, B: 255, A: 255}, color.NRGBA{A: 180})
		}
	}
	return out
}

func colorOr(hex string, def color.NRGBA) color.NRGBA {
	if hex == "" {
		return def
	}
	c, err := parseHexColor(hex)
	if err != nil {
		return def
	}
	return c
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080".
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, err
	}
	switch len(hex) {
	case 6:
		return color.NRGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	case 8:
		return color.NRGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}
}

func setClipped(img *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}

// drawRing draws a one pixel wide circle outline.
func drawRing(img *image.NRGBA, center image.Point, r int, c color.NRGBA) {
	for dy := -r - 1; dy <= r+1; dy++ {
		for dx := -r - 1; dx <= r+1; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			if math.Abs(d-float64(r)) < 0.5 {
				setClipped(img, center.X+dx, center.Y+dy, c)
			}
		}
	}
}

// drawLine draws a Bresenham line from a to b inclusive.
func drawLine(img *image.NRGBA, a, b image.Point, c color.NRGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	x, y := a.X, a.Y
	for {
		setClipped(img, x, y, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// drawLabel draws digits with a 3x5 pixel font on a filled background.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	const charWidth, labelHeight = 4, 7
	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < len(text)*charWidth; dx++ {
			setClipped(img, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				if pixel == '1' {
					setClipped(img, cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
