package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrEmptyFrame is returned when a frame is nil or has no pixels.
var ErrEmptyFrame = errors.New("empty frame")

// NormalizeFrame returns a copy of img with its origin at (0,0) and exactly
// width x height pixels.
//
// Parameters:
//   - img: The decoded camera frame, of any size and color model.
//   - width, height: The detection resolution. Both must be positive.
//
// Returns:
//   - *image.NRGBA: The normalized copy.
//   - error: Non-nil when the frame or the requested size is unusable.
//
// Frames that already have the requested size are cloned pixel for pixel.
// Frames of any other size are rescaled with a linear filter, which is how the
// acquisition side adapts camera output to the fixed detection resolution.
//
// The returned frame is never shared with the caller's image, so it can be read
// concurrently while the caller reuses its own buffer.
//
// # Errors
//
//   - ErrEmptyFrame if img is nil or has no pixels
//   - Returns error if width or height is not positive
func NormalizeFrame(img image.Image, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if img == nil {
		return nil, ErrEmptyFrame
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyFrame, bounds.Dx(), bounds.Dy())
	}

	if bounds.Dx() == width && bounds.Dy() == height {
		return imaging.Clone(img), nil
	}
	return imaging.Resize(img, width, height, imaging.Linear), nil
}
