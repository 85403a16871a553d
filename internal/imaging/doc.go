// Package imaging provides the per-frame image reductions used by the lane
// vision pipeline.
//
// This package turns a color camera frame into the one-dimensional signals the
// detection stage searches: binary masks built from luma or HSV predicates, and
// column projections that count mask activation inside a horizontal band.
// All operations work with standard Go image types and use a coordinate system
// where (0,0) is at the top-left corner, X increases rightward, and Y increases
// downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, XStart is inclusive and XEnd is exclusive
//
// # Masks
//
// A mask is an *image.Gray of the same size as its source frame. Every pixel is
// either 0 or MaskOn (255); no intermediate values are produced.
//
// # HSV Representation
//
// HSV values use the 8-bit scale common to machine vision toolkits:
//   - H: 0-180 (degrees divided by two; red wraps around 0/180)
//   - S: 0-255
//   - V: 0-255
//
// # Thread Safety
//
// The ImageCache and DebugWriter types are safe for concurrent use. All other
// operations are stateless and never mutate their inputs, so one frame may be
// read by several goroutines at once.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Nil or zero-sized frames (ErrEmptyFrame)
//   - Projection regions outside the mask (ErrRegionOutOfBounds)
//   - Non-positive projection divisors (ErrInvalidDivisor)
//   - File I/O and decoding errors during frame loading
package imaging
