// Package opencv provides a vision.Primitives backend that runs thresholding,
// contour extraction and the polygon queries through OpenCV via gocv.
//
// The backend needs cgo and an installed OpenCV, so it is only compiled with the
// gocv build tag:
//
//	go build -tags gocv ./...
//
// Without the tag New returns an error and callers fall back to vision.Native.
//
// OpenCV reports minimum-area rectangles with angles in [-90, 0) before 4.5.1 and
// in (0, 90] from 4.5.1 on. The backend rotates both into [-90, 0) with
// geometry.Canonical, so a rectangle at exactly 45 degrees is LEFT on either
// version, as it is with the native backend.
//
// gocv v0.31 exposes the rectangle with integer center and size, so x-centers and
// pair centers from this backend are whole pixels. Targets whose centers differ
// by less than a pixel can tie in the left-to-right order, where the native
// backend would still separate them.
package opencv
