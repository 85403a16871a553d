package detection

import "math"

// Sentinels used on the wire for missing results.
const (
	NoBallFound = -180
	NoEdgeFound = math.MaxInt32
)

// Offset is a signed pixel offset that may be absent.
type Offset struct {
	Value int
	Found bool
}

// NotFound is the absent Offset.
var NotFound = Offset{}

// Found wraps a detected offset.
func Found(v int) Offset {
	return Offset{Value: v, Found: true}
}

// Or returns the offset value, or sentinel when nothing was found.
func (o Offset) Or(sentinel int) int {
	if !o.Found {
		return sentinel
	}
	return o.Value
}

// Result is the outcome of one detection cycle.
type Result struct {
	// Object is the ball column minus the frame center.
	Object Offset

	// Edge is the folded offset of the first red boundary column.
	Edge Offset
}

// ImageData is the record published once per processed frame.
type ImageData struct {
	BallPosition   int32 `json:"ball_position"`
	CornerPosition int32 `json:"corner_position"`
}

// ImageData converts a result to its wire form, substituting the sentinels.
func (r Result) ImageData() ImageData {
	return ImageData{
		BallPosition:   int32(r.Object.Or(NoBallFound)),
		CornerPosition: int32(r.Edge.Or(NoEdgeFound)),
	}
}
