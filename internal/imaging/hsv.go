package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is a color in 8-bit HSV space.
//
// H is the hue in degrees divided by two (0-180), S and V range over 0-255.
type HSV struct {
	H uint8 `json:"h"`
	S uint8 `json:"s"`
	V uint8 `json:"v"`
}

// HSVImage is a frame converted to HSV, stored as packed H,S,V triples.
type HSVImage struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// At returns the HSV value at (x, y) relative to the image origin.
func (m *HSVImage) At(x, y int) HSV {
	i := y*m.Stride + x*3
	return HSV{H: m.Pix[i], S: m.Pix[i+1], V: m.Pix[i+2]}
}

// Bounds returns the image rectangle, always anchored at (0,0).
func (m *HSVImage) Bounds() image.Rectangle {
	return m.Rect
}

// ToHSV converts a color frame to 8-bit HSV.
//
// Returns ErrEmptyFrame (wrapped) when the frame is nil or has no pixels; this
// is the only failure mode and callers are expected to treat it as "no signal"
// for the cycle rather than as a fatal error.
func ToHSV(img image.Image) (*HSVImage, error) {
	if img == nil {
		return nil, fmt.Errorf("hsv conversion: %w", ErrEmptyFrame)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("hsv conversion: %w", ErrEmptyFrame)
	}

	width, height := bounds.Dx(), bounds.Dy()
	out := &HSVImage{
		Pix:    make([]uint8, width*height*3),
		Stride: width * 3,
		Rect:   image.Rect(0, 0, width, height),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			c := colorful.Color{
				R: float64(r>>8) / 255.0,
				G: float64(g>>8) / 255.0,
				B: float64(b>>8) / 255.0,
			}
			h, s, v := c.Hsv()

			i := y*out.Stride + x*3
			out.Pix[i] = uint8(math.Round(h / 2))
			out.Pix[i+1] = uint8(math.Round(s * 255))
			out.Pix[i+2] = uint8(math.Round(v * 255))
		}
	}
	return out, nil
}

// HSVRange is an inclusive box in HSV space.
type HSVRange struct {
	Lower HSV
	Upper HSV
}

// Contains reports whether c lies inside the range on all three channels.
func (r HSVRange) Contains(c HSV) bool {
	return c.H >= r.Lower.H && c.H <= r.Upper.H &&
		c.S >= r.Lower.S && c.S <= r.Upper.S &&
		c.V >= r.Lower.V && c.V <= r.Upper.V
}

// InRange builds a mask whose pixels are on when their HSV value falls inside
// any of the given ranges. Passing several ranges is how hue bands that wrap
// around 0/180 are combined; overlapping ranges saturate at MaskOn.
func InRange(img *HSVImage, ranges ...HSVRange) *image.Gray {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	mask := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(x, y)
			for _, r := range ranges {
				if r.Contains(c) {
					mask.Pix[y*mask.Stride+x] = MaskOn
					break
				}
			}
		}
	}
	return mask
}
