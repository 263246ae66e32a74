package vision

import (
	"fmt"
	"image"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ironsheep/tapevision/internal/geometry"
	"github.com/ironsheep/tapevision/internal/imaging"
	"github.com/ironsheep/tapevision/internal/segment"
)

// Pair selection strategies accepted by Config.Selection.
const (
	SelectionArea   = "area"
	SelectionCenter = "center"
)

// Config holds every tunable of the pipeline.
type Config struct {
	HSV           segment.HSVRange   `json:"hsv"`
	ExternalOnly  bool               `json:"external_only"`
	Criteria      AcceptanceCriteria `json:"criteria"`
	CropBuffer    int                `json:"crop_buffer"`
	Downsample    bool               `json:"downsample"`
	HorizontalRes float64            `json:"horizontal_res"`
	BlurRadius    float64            `json:"blur_radius"`
	MorphRadius   float64            `json:"morph_radius"`
	Selection     string             `json:"selection"`
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		HSV:           segment.DefaultHSVRange(),
		ExternalOnly:  false,
		Criteria:      DefaultCriteria(),
		CropBuffer:    7,
		Downsample:    true,
		HorizontalRes: 320,
		Selection:     SelectionArea,
	}
}

// Validate checks ranges that would make the pipeline meaningless. Criteria with
// min above max are not an error; they only match nothing.
func (c Config) Validate() error {
	bounds := []struct {
		name  string
		r     [2]float64
		limit float64
	}{
		{"hsv.hue", c.HSV.Hue, 180},
		{"hsv.saturation", c.HSV.Saturation, 255},
		{"hsv.value", c.HSV.Value, 255},
	}
	for _, b := range bounds {
		for _, v := range b.r {
			if v < 0 || v > b.limit {
				return fmt.Errorf("%s bound %g outside [0, %g]", b.name, v, b.limit)
			}
		}
	}
	if c.CropBuffer < 0 {
		return fmt.Errorf("crop_buffer must be >= 0, got %d", c.CropBuffer)
	}
	if c.BlurRadius < 0 || c.MorphRadius < 0 {
		return fmt.Errorf("blur_radius and morph_radius must be >= 0")
	}
	if c.HorizontalRes <= 0 {
		return fmt.Errorf("horizontal_res must be > 0, got %g", c.HorizontalRes)
	}
	switch c.Selection {
	case "", SelectionArea, SelectionCenter:
	default:
		return fmt.Errorf("unknown selection %q (want %q or %q)", c.Selection, SelectionArea, SelectionCenter)
	}
	return nil
}

// Result is everything one Process call produced. On failure the fields filled
// in before the failing stage are still set, for diagnostics.
type Result struct {
	FrameID       uuid.UUID
	Frame         image.Image // the prepared frame all coordinates refer to
	FrameSize     image.Point
	HorizontalRes float64
	Mask          *image.Gray
	Contours      []geometry.Contour
	Rejections    []Rejection
	Accepted      []geometry.Contour
	Targets       []*OrientedTarget // one per accepted contour, in contour order
	Sorted        []*OrientedTarget // sequenced and trimmed
	Pairs         []TargetPair
	Pair          *TargetPair
}

// Pipeline runs segmentation, extraction, filtering, sequencing and pairing over
// single frames. A Pipeline holds no per-frame state and may be reused, but it is
// not meant to be shared between goroutines while SetLogger is being called.
type Pipeline struct {
	cfg    Config
	prims  Primitives
	logger *log.Logger
}

// NewPipeline creates a pipeline. A nil prims selects the pure Go backend.
func NewPipeline(cfg Config, prims Primitives) *Pipeline {
	if prims == nil {
		prims = Native()
	}
	return &Pipeline{
		cfg:    cfg,
		prims:  prims,
		logger: log.New(io.Discard, "", 0),
	}
}

// SetLogger enables debug output. Nil silences the pipeline again.
func (p *Pipeline) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	p.logger = l
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Prepare applies the optional downsample and blur steps to a raw frame.
func (p *Pipeline) Prepare(img image.Image) image.Image {
	if p.cfg.Downsample {
		img = imaging.PyrDown(img)
	}
	if p.cfg.BlurRadius > 0 {
		img = segment.Blur(img, p.cfg.BlurRadius)
	}
	return img
}

// Mask segments a prepared frame into a binary tape mask.
func (p *Pipeline) Mask(img image.Image) *image.Gray {
	mask := p.prims.Threshold(img, p.cfg.HSV)
	if p.cfg.MorphRadius > 0 {
		mask = segment.Open(mask, p.cfg.MorphRadius)
	}
	return mask
}

// Process finds the best tape pair in a frame. A horizontalRes <= 0 uses the
// width of the prepared frame.
func (p *Pipeline) Process(img image.Image, horizontalRes float64) (*Result, error) {
	frame := p.Prepare(img)
	mask := p.Mask(frame)
	contours := p.prims.FindContours(mask, p.cfg.ExternalOnly)
	if horizontalRes <= 0 {
		horizontalRes = float64(frame.Bounds().Dx())
	}

	res, err := p.Detect(contours, horizontalRes)
	res.Frame = frame
	res.FrameSize = frame.Bounds().Size()
	res.Mask = mask
	return res, err
}

// Detect runs the contour stages of the pipeline on already extracted contours.
// The returned Result is never nil.
func (p *Pipeline) Detect(contours []geometry.Contour, horizontalRes float64) (*Result, error) {
	res := &Result{
		FrameID:       uuid.New(),
		HorizontalRes: horizontalRes,
		Contours:      contours,
	}
	p.logger.Printf("frame %s: %d raw contours", res.FrameID, len(contours))
	if len(contours) == 0 {
		return res, ErrNoContoursDetected
	}

	res.Accepted, res.Rejections = FilterWithRejections(p.prims, contours, p.cfg.Criteria)
	for _, r := range res.Rejections {
		p.logger.Printf("contour %d rejected: %s", r.Index, r.Reason)
	}
	p.logger.Printf("%d contours accepted", len(res.Accepted))

	res.Targets = make([]*OrientedTarget, len(res.Accepted))
	for i, c := range res.Accepted {
		res.Targets[i] = NewOrientedTarget(c, p.region(c), p.prims)
	}
	if len(res.Targets) < 2 {
		return res, errors.Wrapf(ErrInsufficientTargets, "%d contours accepted", len(res.Accepted))
	}

	seq, err := Sequence(res.Targets, horizontalRes)
	if err != nil {
		return res, err
	}
	res.Sorted = seq
	for i, t := range seq {
		p.logger.Printf("target %d: x=%.1f angle=%.1f dir=%s", i, t.XCenter(), t.Angle(), t.Direction())
	}
	if dropped := len(res.Targets) - len(seq); dropped > 0 {
		p.logger.Printf("trimmed %d edge targets", dropped)
	}

	res.Pairs = AdjacentPairs(seq)
	pair, err := PairWith(seq, p.selector(horizontalRes))
	if err != nil {
		return res, err
	}
	res.Pair = pair
	c := pair.Center()
	p.logger.Printf("selected pair at (%.1f, %.1f) area=%.1f", c.X, c.Y, pair.Area())
	return res, nil
}

func (p *Pipeline) selector(horizontalRes float64) Selector {
	if p.cfg.Selection == SelectionCenter {
		return SelectClosestToCenter(horizontalRes)
	}
	return SelectLargest
}

// region grows the bounding rectangle by the crop buffer, shifting the origin by
// half of it.
func (p *Pipeline) region(c geometry.Contour) image.Rectangle {
	box := p.prims.BoundingRect(c)
	buf := p.cfg.CropBuffer
	x, y := box.Min.X-buf/2, box.Min.Y-buf/2
	return image.Rect(x, y, x+box.Dx()+buf, y+box.Dy()+buf)
}
