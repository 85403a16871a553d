// Package detection finds the golf ball and the red boundary edge in a camera
// frame.
//
// A Detector runs one cycle per frame and reduces it to two integer offsets:
// where the brightest white object sits relative to the frame center, and
// where a red boundary marker was seen near the left or right side of the
// frame.
//
// # Pipeline
//
// Each cycle runs two paths over the same immutable frame:
//
//  1. Object path (synchronous): binarize on luma, project the band below the
//     horizontal midline column by column, and take the strongest column.
//  2. Edge path (its own goroutine): convert to HSV, mask the red hue bands,
//     and look for the first active column in a narrow strip at the left
//     side, then at the right side.
//
// When the object path finds nothing the detector waits for the edge path
// before publishing, because the edge is then the only usable signal.
// Otherwise it publishes immediately with whatever edge result is already
// available and joins the edge goroutine before the cycle ends.
//
// # Results
//
// Inside the package a missing result is an Offset with Found unset. The
// sentinels NoBallFound and NoEdgeFound only appear in ImageData, the record
// handed to the transport.
//
// # Thresholds
//
// ThresholdStore holds the two adjustable lower bounds (white luma and red
// value). It is the only state that survives between cycles and is safe to
// adjust from another goroutine while a cycle is running.
package detection
