// Package server exposes the tape detector as JSON-RPC 2.0 tools over stdio.
//
// # Protocol
//
// The server reads one JSON-RPC request per line on stdin and writes one
// response per line on stdout. Supported methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Frame information:
//   - image_load: Frame metadata, including the downsampled detector size
//   - image_dimensions: Width and height
//
// Detection:
//   - tape_process_frame: Full detection report with the selected pair
//   - tape_threshold_mask: HSV threshold mask as PNG
//   - tape_list_targets: Accepted targets and rejection reasons
//   - tape_crop_target: Buffered crop of one target
//   - tape_sample_hsv: HSV values of pixels and regions for threshold tuning
//   - tape_annotate: Debug overlay of targets and pair
//   - tape_plot_centers: Scatter plot of target centers
//
// Configuration:
//   - tape_get_config: Detector configuration in effect
//
// All coordinates in tool results refer to the detector frame, which is the
// input frame after the configured downsampling.
//
// # Error Handling
//
// A frame in which no pair can be formed is a normal outcome, not a tool
// failure: tape_process_frame and tape_annotate return their result with an
// "error" field describing why. Unreadable files, bad arguments and other
// failures return a JSON-RPC error with code -32000 (or -32602 for
// malformed params).
//
// # Frame Caching
//
// Decoded frames are cached by path for the lifetime of the process.
package server
