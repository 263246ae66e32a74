package vision

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNoContoursDetected means segmentation and extraction produced no contours.
	ErrNoContoursDetected = errors.New("no contours detected")

	// ErrInsufficientTargets means fewer than two targets were left to pair.
	ErrInsufficientTargets = errors.New("insufficient targets")

	// ErrUnpairableTargetSet means an odd number of targets survived edge trimming.
	ErrUnpairableTargetSet = errors.New("unpairable target set")

	// ErrDegenerateGeometry means a contour has no height or no hull area, so its
	// ratio or solidity cannot be computed.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// UnpairableError reports an odd post-trim target count together with the
// x-centers of the targets that were left, for tuning.
type UnpairableError struct {
	XCenters []float64
}

func (e *UnpairableError) Error() string {
	xs := make([]string, len(e.XCenters))
	for i, x := range e.XCenters {
		xs[i] = fmt.Sprintf("%.1f", x)
	}
	return fmt.Sprintf("%s: %d targets after trimming, x-centers [%s]",
		ErrUnpairableTargetSet, len(e.XCenters), strings.Join(xs, " "))
}

// Unwrap lets errors.Is match ErrUnpairableTargetSet.
func (e *UnpairableError) Unwrap() error {
	return ErrUnpairableTargetSet
}

// IsFrameSkippable reports whether err is one of the per-frame detection failures
// after which the caller should simply move on to the next frame.
func IsFrameSkippable(err error) bool {
	return errors.Is(err, ErrNoContoursDetected) ||
		errors.Is(err, ErrInsufficientTargets) ||
		errors.Is(err, ErrUnpairableTargetSet) ||
		errors.Is(err, ErrDegenerateGeometry)
}
