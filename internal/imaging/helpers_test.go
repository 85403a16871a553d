package imaging

import (
	"image"
	"image/color"
)

// createInMemoryImage creates an opaque image filled with a single color
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// fillRect paints the rectangle [x1,x2) x [y1,y2) with c
func fillRect(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.Set(x, y, c)
		}
	}
}

// grayMask builds a mask from rows of 0/1 flags
func grayMask(rows ...[]int) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, v := range row {
			if v != 0 {
				mask.SetGray(x, y, color.Gray{Y: MaskOn})
			}
		}
	}
	return mask
}
