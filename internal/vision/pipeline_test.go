package vision

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/tapevision/internal/geometry"
)

var tapeGreen = color.NRGBA{R: 0, G: 255, B: 0, A: 255}

// frame returns a black w x h image with each rect filled in tape green.
func frame(w, h int, rects ...image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
	for _, r := range rects {
		draw.Draw(img, r, &image.Uniform{C: tapeGreen}, image.Point{}, draw.Src)
	}
	return img
}

func rawConfig() Config {
	cfg := DefaultConfig()
	cfg.Downsample = false
	return cfg
}

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"hue above scale", func(c *Config) { c.HSV.Hue[1] = 181 }, false},
		{"negative saturation", func(c *Config) { c.HSV.Saturation[0] = -1 }, false},
		{"value above scale", func(c *Config) { c.HSV.Value[1] = 256 }, false},
		{"negative buffer", func(c *Config) { c.CropBuffer = -1 }, false},
		{"negative blur", func(c *Config) { c.BlurRadius = -0.5 }, false},
		{"zero resolution", func(c *Config) { c.HorizontalRes = 0 }, false},
		{"unknown selection", func(c *Config) { c.Selection = "nearest" }, false},
		{"center selection", func(c *Config) { c.Selection = SelectionCenter }, true},
		{"inverted criteria allowed", func(c *Config) { c.Criteria.MinArea, c.Criteria.MaxWidth = 1e9, 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			if tt.ok {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}
}

func TestProcess_TwoUprightTapes(t *testing.T) {
	img := frame(320, 240, image.Rect(190, 100, 210, 160), image.Rect(250, 100, 270, 160))
	p := NewPipeline(rawConfig(), nil)

	res, err := p.Process(img, 320)
	require.NoError(t, err)
	require.NotNil(t, res.Pair)

	assert.Len(t, res.Contours, 2)
	assert.Len(t, res.Accepted, 2)
	assert.Len(t, res.Sorted, 2)
	assert.Equal(t, image.Pt(320, 240), res.FrameSize)

	c := res.Pair.Center()
	assert.InDelta(t, 229.5, c.X, 1e-6)
	assert.InDelta(t, 129.5, c.Y, 1e-6)
	assert.InDelta(t, 69.5, res.Pair.CenterOffset(320), 1e-6)
	assert.Equal(t, Left, res.Pair.Left.Direction())

	// bounding box (190,100)-(210,160) is 20x60; shifted by 3 and grown by 7
	assert.Equal(t, image.Rect(187, 97, 214, 164), res.Pair.Left.Region())
}

func TestProcess_Downsample(t *testing.T) {
	img := frame(640, 480, image.Rect(380, 200, 420, 320), image.Rect(500, 200, 540, 320))
	cfg := DefaultConfig()
	p := NewPipeline(cfg, nil)

	res, err := p.Process(img, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(320, 240), res.FrameSize)
	assert.InDelta(t, 320, res.HorizontalRes, 1e-9)
	require.NotNil(t, res.Pair)
	assert.InDelta(t, 230, res.Pair.Center().X, 2)
}

func TestProcess_EmptyFrame(t *testing.T) {
	p := NewPipeline(rawConfig(), nil)
	res, err := p.Process(frame(100, 100), 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoContoursDetected))
	assert.True(t, IsFrameSkippable(err))
	require.NotNil(t, res)
	assert.NotNil(t, res.Mask)
}

func TestProcess_SingleTape(t *testing.T) {
	p := NewPipeline(rawConfig(), nil)
	res, err := p.Process(frame(320, 240, image.Rect(100, 100, 120, 160)), 320)
	assert.True(t, errors.Is(err, ErrInsufficientTargets))
	assert.Len(t, res.Accepted, 1)
	assert.Nil(t, res.Pair)
}

func TestDetect_OddAfterTrim(t *testing.T) {
	f := newFakeGeom()
	contours := []geometry.Contour{
		f.add(100, 50, leanRight, 100),
		f.add(150, 50, leanLeft, 100),
		f.add(200, 50, leanLeft, 100),
	}
	p := NewPipeline(rawConfig(), f)
	res, err := p.Detect(contours, 320)

	var ue *UnpairableError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, []float64{100, 150, 200}, ue.XCenters)
	assert.Len(t, res.Targets, 3)
	assert.Nil(t, res.Sorted)
}

func TestDetect_SelectionStrategy(t *testing.T) {
	f := newFakeGeom()
	contours := []geometry.Contour{
		f.add(0, 50, leanRight, 500),
		f.add(20, 50, leanLeft, 500),
		f.add(150, 50, leanRight, 20),
		f.add(180, 50, leanLeft, 20),
	}

	largest, err := NewPipeline(rawConfig(), f).Detect(contours, 320)
	require.NoError(t, err)
	assert.InDelta(t, 10, largest.Pair.Center().X, 1e-9)
	assert.Len(t, largest.Pairs, 2)

	cfg := rawConfig()
	cfg.Selection = SelectionCenter
	centered, err := NewPipeline(cfg, f).Detect(contours, 320)
	require.NoError(t, err)
	assert.InDelta(t, 165, centered.Pair.Center().X, 1e-9)
}

func TestDetect_LogsWhenEnabled(t *testing.T) {
	f := newFakeGeom()
	contours := []geometry.Contour{f.add(60, 50, leanRight, 100), f.add(200, 50, leanLeft, 100)}

	var buf bytes.Buffer
	p := NewPipeline(rawConfig(), f)
	p.SetLogger(log.New(&buf, "", 0))
	_, err := p.Detect(contours, 320)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2 raw contours")
	assert.Contains(t, buf.String(), "dir=RIGHT")
	assert.Contains(t, buf.String(), "selected pair")

	buf.Reset()
	p.SetLogger(nil)
	_, err = p.Detect(contours, 320)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestResult_Report(t *testing.T) {
	img := frame(320, 240, image.Rect(190, 100, 210, 160), image.Rect(250, 100, 270, 160))
	res, err := NewPipeline(rawConfig(), nil).Process(img, 320)
	require.NoError(t, err)

	rep := res.Report(nil)
	assert.Equal(t, res.FrameID.String(), rep.FrameID)
	assert.Equal(t, 2, rep.ContourCount)
	require.Len(t, rep.Targets, 2)
	assert.Less(t, rep.Targets[0].XCenter, rep.Targets[1].XCenter)
	require.NotNil(t, rep.Pair)
	assert.InDelta(t, 69.5, rep.Pair.CenterOffset, 1e-6)

	data, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"direction":"LEFT"`)
	assert.NotContains(t, string(data), `"error"`)
}

func TestResult_ReportOnFailure(t *testing.T) {
	res, err := NewPipeline(rawConfig(), nil).Process(frame(320, 240, image.Rect(100, 100, 120, 160)), 320)
	require.Error(t, err)
	rep := res.Report(err)
	assert.Nil(t, rep.Pair)
	assert.Len(t, rep.Targets, 1)
	assert.Contains(t, rep.Error, "insufficient targets")
}
