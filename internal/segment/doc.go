// Package segment turns camera frames into binary masks and masks into contours.
//
// # Segmentation
//
// HSVThreshold converts every pixel to HSV using the OpenCV 8-bit scale and keeps the
// pixels whose hue, saturation and value all fall inside an inclusive range:
//   - Hue: 0-180 (degrees halved)
//   - Saturation: 0-255
//   - Value: 0-255
//
// The mask is an *image.Gray holding 255 for accepted pixels and 0 elsewhere.
//
// # Cleanup
//
// Blur smooths a frame before thresholding and Open removes speckle from a mask
// (erosion followed by dilation). Both are optional and disabled by a zero radius.
//
// # Contour Extraction
//
// FindContours groups 8-connected foreground pixels into components and traces the
// outer boundary of each one with Moore-neighbour tracing. Boundaries are compressed
// the way OpenCV's CHAIN_APPROX_SIMPLE does: runs of horizontal, vertical or diagonal
// steps collapse to their end points. When externalOnly is false the boundaries of
// holes inside components are returned as well.
package segment
