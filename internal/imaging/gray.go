package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// MaskOn is the value of an active mask pixel.
const MaskOn = 255

// Binarize builds the white-object mask of a frame.
//
// The frame is reduced to luma using ITU-R BT.601 weights
// (0.299*R + 0.587*G + 0.114*B), and a pixel is on iff its luma lies in
// [lower, 255]. The mask always has the frame's dimensions with its origin at
// (0,0). A lower bound of 0 or less turns every pixel on; a bound above 255
// turns every pixel off.
func Binarize(frame image.Image, lower int) *image.Gray {
	gray := imaging.Grayscale(frame)
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	mask := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+width*4]
		dst := mask.Pix[y*mask.Stride : y*mask.Stride+width]
		for x := range dst {
			// R, G and B carry the same luma value after Grayscale
			if int(src[x*4]) >= lower {
				dst[x] = MaskOn
			}
		}
	}
	return mask
}
