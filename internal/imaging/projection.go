package imaging

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrRegionOutOfBounds is returned when a projection region extends past the mask.
	ErrRegionOutOfBounds = errors.New("region outside mask bounds")

	// ErrInvalidDivisor is returned for a projection divisor of zero or less.
	ErrInvalidDivisor = errors.New("projection divisor must be positive")
)

// DefaultDivisor scales a binary mask column sum down to a pixel count.
const DefaultDivisor = MaskOn

// Region selects the columns and the horizontal band of a mask to project.
//
// Columns run over [XStart, XEnd). Rows run from YTop (inclusive) down to
// YBottomMargin rows above the bottom edge, so the band is
// H - YTop - YBottomMargin rows tall.
type Region struct {
	XStart        int
	XEnd          int
	YTop          int
	YBottomMargin int
}

// Width returns the number of columns in the region, or 0 when degenerate.
func (r Region) Width() int {
	if r.XEnd <= r.XStart {
		return 0
	}
	return r.XEnd - r.XStart
}

// Projection holds one activation total per column of a scanned region.
// Index 0 corresponds to the region's XStart column.
type Projection []int

// ColumnProjection reduces a region of a mask to a per-column activation
// total.
//
// Each entry is the sum of mask values in the one-pixel-wide band at that
// column divided by divisor, truncated. With a binary mask and divisor 255 an
// entry is the number of active pixels in the column.
//
// A degenerate region (XEnd <= XStart) yields an empty, non-nil Projection.
// A band with no rows yields a Projection of zeros of the region's width.
//
// # Errors
//
//   - ErrInvalidDivisor if divisor <= 0
//   - ErrRegionOutOfBounds if the columns or band fall outside the mask
func ColumnProjection(mask *image.Gray, region Region, divisor int) (Projection, error) {
	if divisor <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDivisor, divisor)
	}
	if region.Width() == 0 {
		return Projection{}, nil
	}

	bounds := mask.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if region.XStart < 0 || region.XEnd > width || region.YTop < 0 || region.YBottomMargin < 0 ||
		region.YTop > height || region.YBottomMargin > height {
		return nil, fmt.Errorf("%w: columns [%d,%d) top %d bottom margin %d on %dx%d mask",
			ErrRegionOutOfBounds, region.XStart, region.XEnd, region.YTop, region.YBottomMargin, width, height)
	}

	yEnd := height - region.YBottomMargin
	projection := make(Projection, region.Width())
	for i := range projection {
		x := bounds.Min.X + region.XStart + i
		sum := 0
		for y := region.YTop; y < yEnd; y++ {
			sum += int(mask.Pix[mask.PixOffset(x, bounds.Min.Y+y)])
		}
		projection[i] = sum / divisor
	}
	return projection, nil
}
