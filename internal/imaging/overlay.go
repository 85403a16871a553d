package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// Overlay colors used on debug frames.
var (
	ColorRed   = color.NRGBA{R: 255, A: 255}
	ColorGreen = color.NRGBA{G: 255, A: 255}
	ColorBlue  = color.NRGBA{B: 255, A: 255}
)

// ReferenceOverlay returns a copy of frame with the frame-of-reference box
// drawn in red.
//
// The box is a trapezoid whose top edge spans the horizontal midline with a
// 30 pixel inset on each side and whose bottom edge is the full bottom row:
//
//	(30, H/2) ---------- (W-30, H/2)
//	   /                        \
//	(0, H) ---------------- (W, H)
func ReferenceOverlay(frame image.Image) *image.NRGBA {
	result := imaging.Clone(frame)
	w, h := result.Bounds().Dx(), result.Bounds().Dy()

	topLeft := image.Pt(30, h/2)
	topRight := image.Pt(w-30, h/2)
	bottomLeft := image.Pt(0, h)
	bottomRight := image.Pt(w, h)

	DrawLine(result, topLeft, topRight, ColorRed, 2)
	DrawLine(result, topRight, bottomRight, ColorRed, 2)
	DrawLine(result, bottomRight, bottomLeft, ColorRed, 2)
	DrawLine(result, bottomLeft, topLeft, ColorRed, 2)
	return result
}

// LaneOverlay renders a binary mask in color with the frame center marked in
// blue and, when hasPeak is set, the detected peak column marked in green.
func LaneOverlay(mask *image.Gray, peak int, hasPeak bool) *image.NRGBA {
	bounds := mask.Bounds()
	result := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), mask, bounds.Min, draw.Src)

	w, h := result.Bounds().Dx(), result.Bounds().Dy()
	DrawLine(result, image.Pt(w/2, 0), image.Pt(w/2, h), ColorBlue, 3)
	if hasPeak {
		DrawLine(result, image.Pt(peak, 0), image.Pt(peak, h), ColorGreen, 2)
	}
	return result
}

// DrawLine draws a straight segment from a to b with the given thickness.
// Points outside the image are skipped, so segments may run past the border.
func DrawLine(img draw.Image, a, b image.Point, c color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	bounds := img.Bounds()
	half := thickness / 2

	plot := func(x, y int) {
		for dy := -half; dy < thickness-half; dy++ {
			for dx := -half; dx < thickness-half; dx++ {
				p := image.Pt(x+dx, y+dy)
				if p.In(bounds) {
					img.Set(p.X, p.Y, c)
				}
			}
		}
	}

	// Bresenham
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	x, y := a.X, a.Y
	for {
		plot(x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
