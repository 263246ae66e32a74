package vision

import (
	"image"
)

// TargetReport describes one sequenced target.
type TargetReport struct {
	XCenter   float64         `json:"x_center"`
	Center    [2]float64      `json:"center"`
	Size      [2]float64      `json:"size"`
	Angle     float64         `json:"angle"`
	Direction Direction       `json:"direction"`
	Area      float64         `json:"area"`
	Region    image.Rectangle `json:"region"`
}

// PairReport describes the selected pair.
type PairReport struct {
	Left         TargetReport `json:"left"`
	Right        TargetReport `json:"right"`
	Center       [2]float64   `json:"center"`
	Area         float64      `json:"area"`
	CenterOffset float64      `json:"center_offset"`
}

// Report is the JSON-friendly summary of a Result.
type Report struct {
	FrameID       string         `json:"frame_id"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	HorizontalRes float64        `json:"horizontal_res"`
	ContourCount  int            `json:"contour_count"`
	AcceptedCount int            `json:"accepted_count"`
	Rejections    []Rejection    `json:"rejections,omitempty"`
	Targets       []TargetReport `json:"targets"`
	Pair          *PairReport    `json:"pair,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// NewTargetReport snapshots the derived values of a target.
func NewTargetReport(t *OrientedTarget) TargetReport {
	r := t.Rect()
	return TargetReport{
		XCenter:   r.Center.X,
		Center:    [2]float64{r.Center.X, r.Center.Y},
		Size:      [2]float64{r.Size.X, r.Size.Y},
		Angle:     r.Angle,
		Direction: r.Direction(),
		Area:      t.Area(),
		Region:    t.Region(),
	}
}

// Report summarizes the result. Targets lists the sequenced targets when
// sequencing succeeded and every accepted target otherwise. err, when non-nil,
// is recorded in the Error field.
func (r *Result) Report(err error) Report {
	rep := Report{
		FrameID:       r.FrameID.String(),
		Width:         r.FrameSize.X,
		Height:        r.FrameSize.Y,
		HorizontalRes: r.HorizontalRes,
		ContourCount:  len(r.Contours),
		AcceptedCount: len(r.Accepted),
		Rejections:    r.Rejections,
	}
	targets := r.Sorted
	if targets == nil {
		targets = SortByXCenter(r.Targets)
	}
	rep.Targets = make([]TargetReport, len(targets))
	for i, t := range targets {
		rep.Targets[i] = NewTargetReport(t)
	}
	if r.Pair != nil {
		c := r.Pair.Center()
		rep.Pair = &PairReport{
			Left:         NewTargetReport(r.Pair.Left),
			Right:        NewTargetReport(r.Pair.Right),
			Center:       [2]float64{c.X, c.Y},
			Area:         r.Pair.Area(),
			CenterOffset: r.Pair.CenterOffset(r.HorizontalRes),
		}
	}
	if err != nil {
		rep.Error = err.Error()
	}
	return rep
}
