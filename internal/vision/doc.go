// Package vision selects a pair of retro-reflective tape targets from a camera frame.
//
// A frame flows strictly forward through the pipeline:
//
//	frame -> mask -> contours -> filtered contours -> oriented targets
//	      -> ordered targets -> target pair
//
// # Filtering
//
// Filter keeps the contours that pass every AcceptanceCriteria check (bounding
// width and height, area, perimeter, solidity, vertex count and aspect ratio).
//
// # Orientation
//
// Each accepted contour becomes an OrientedTarget. Its minimum-area rectangle is
// normalized so the angle lies in [-45, 45]: width and height are swapped and the
// angle moved by 90 degrees until it fits. A strictly positive angle means the tape
// leans RIGHT, anything else (including exactly zero) means LEFT.
//
// # Sequencing and Pairing
//
// Targets are sorted by x-center. A LEFT-leaning first target left of the frame
// midpoint and a RIGHT-leaning last target right of it are strays whose partner is
// out of frame, so they are dropped. The remaining targets must be even in number
// and are grouped positionally: (t0,t1), (t2,t3), ... The pair with the largest
// combined contour area wins; the first one wins ties.
//
// # Errors
//
// Every error returned by the pipeline is local to one frame. Callers should skip
// the frame and carry on with the next one; IsFrameSkippable identifies them.
package vision
