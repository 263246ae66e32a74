// Package imaging holds the frame-level image helpers around the tape detector:
// a cache of decoded frames, pyramid downsampling, buffered crops of detected
// tape, HSV pixel sampling for threshold tuning, and the debug overlay.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left, X growing rightward
// and Y growing downward. Rectangles are half-open: Min is inclusive, Max is
// exclusive, matching image.Rectangle.
//
// # Thread Safety
//
// FrameCache is safe for concurrent use. The remaining functions never modify
// their input image and may run concurrently.
//
// # Color Scales
//
// HSV values are reported on the OpenCV scale used by the threshold stage:
// hue 0-180, saturation and value 0-255.
package imaging
