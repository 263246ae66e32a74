// Package diagplot renders a detection result as a scatter plot of target
// centers, for tuning the detector offline.
package diagplot

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ironsheep/tapevision/internal/vision"
)

var (
	leftColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	rightColor  = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	pairColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	centerColor = color.RGBA{R: 127, G: 127, B: 127, A: 255}
)

// Size of saved plots.
const (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

// Build plots every target of res in frame coordinates (y grows downward), split
// by direction, with the selected pair's center and the frame's vertical
// midline. Sequenced targets are used when available, otherwise all accepted ones.
func Build(res *vision.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Targets - frame %s", res.FrameID)
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"
	p.Y.Scale = plot.InvertedScale{Normalizer: p.Y.Scale}
	p.Add(plotter.NewGrid())

	if res.FrameSize.X > 0 && res.FrameSize.Y > 0 {
		p.X.Min, p.X.Max = 0, float64(res.FrameSize.X)
		p.Y.Min, p.Y.Max = 0, float64(res.FrameSize.Y)
	}

	targets := res.Sorted
	if targets == nil {
		targets = res.Targets
	}
	var left, right plotter.XYs
	for _, t := range targets {
		c := t.Center()
		if t.Direction() == vision.Right {
			right = append(right, plotter.XY{X: c.X, Y: c.Y})
		} else {
			left = append(left, plotter.XY{X: c.X, Y: c.Y})
		}
	}

	if err := addScatter(p, "LEFT", left, leftColor, draw.TriangleGlyph{}); err != nil {
		return nil, err
	}
	if err := addScatter(p, "RIGHT", right, rightColor, draw.CircleGlyph{}); err != nil {
		return nil, err
	}
	if res.Pair != nil {
		c := res.Pair.Center()
		if err := addScatter(p, "pair", plotter.XYs{{X: c.X, Y: c.Y}}, pairColor, draw.CrossGlyph{}); err != nil {
			return nil, err
		}
	}

	if res.HorizontalRes > 0 {
		mid := res.HorizontalRes / 2
		top := float64(res.FrameSize.Y)
		if top <= 0 {
			top = 1
		}
		line, err := plotter.NewLine(plotter.XYs{{X: mid, Y: 0}, {X: mid, Y: top}})
		if err != nil {
			return nil, err
		}
		line.Color = centerColor
		line.Width = vg.Points(1)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(line)
		p.Legend.Add("midline", line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

func addScatter(p *plot.Plot, name string, pts plotter.XYs, c color.Color, shape draw.GlyphDrawer) error {
	if len(pts) == 0 {
		return nil
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("%s scatter: %w", name, err)
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Radius = vg.Points(4)
	p.Add(s)
	p.Legend.Add(name, s)
	return nil
}

// SaveCenters writes the plot of res to path. The format follows the file
// extension (png, svg, pdf, ...).
func SaveCenters(res *vision.Result, path string) error {
	p, err := Build(res)
	if err != nil {
		return err
	}
	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// RenderPNG returns the plot of res as PNG bytes.
func RenderPNG(res *vision.Result) ([]byte, error) {
	p, err := Build(res)
	if err != nil {
		return nil, err
	}
	w, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to render plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render plot: %w", err)
	}
	return buf.Bytes(), nil
}
