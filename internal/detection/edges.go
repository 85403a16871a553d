package detection

import (
	"image"

	"github.com/ironsheep/lane-vision/internal/imaging"
	"github.com/ironsheep/lane-vision/internal/logger"
)

// Red hue bands in 8-bit HSV. Red wraps around the hue origin, so it needs
// one band at each end of the circle.
const (
	redLowHueMax  = 10
	redHighHueMin = 170
	redHueMax     = 180
	redSatMin     = 120
)

// RedMask marks the pixels that are red enough to belong to the boundary
// marker: hue in [0,10] or [170,180], saturation >= 120 and value >= floor.
//
// Parameters:
//   - hsv: The frame in 8-bit HSV (hue 0-180, saturation and value 0-255).
//   - floor: Lower bound on value. Values outside 0-255 are clamped.
//
// Returns:
//   - *image.Gray: A mask of the same bounds as hsv with red pixels set to
//     imaging.MaskOn and all others 0.
func RedMask(hsv *imaging.HSVImage, floor int) *image.Gray {
	v := clampUint8(floor)
	return imaging.InRange(hsv,
		imaging.HSVRange{
			Lower: imaging.HSV{H: 0, S: redSatMin, V: v},
			Upper: imaging.HSV{H: redLowHueMax, S: 255, V: 255},
		},
		imaging.HSVRange{
			Lower: imaging.HSV{H: redHighHueMin, S: redSatMin, V: v},
			Upper: imaging.HSV{H: redHueMax, S: 255, V: 255},
		},
	)
}

// EdgeScanConfig describes the side strips searched for the boundary marker.
type EdgeScanConfig struct {
	// BoxWidth is the width of each side strip in pixels.
	BoxWidth int `json:"box_width" mapstructure:"box_width"`

	// PixelsFromTop is the first row of the scanned band.
	PixelsFromTop int `json:"pixels_from_top" mapstructure:"pixels_from_top"`

	// PixelsFromBottom is the number of rows excluded at the bottom.
	PixelsFromBottom int `json:"pixels_from_bottom" mapstructure:"pixels_from_bottom"`

	// Activation is the column total a column must exceed to count as a hit.
	Activation int `json:"activation" mapstructure:"activation"`

	// Divisor scales column sums; 255 turns them into pixel counts.
	Divisor int `json:"divisor" mapstructure:"divisor"`
}

// DefaultEdgeScanConfig returns the strip geometry tuned for a 360x240 frame.
func DefaultEdgeScanConfig() EdgeScanConfig {
	return EdgeScanConfig{
		BoxWidth:         40,
		PixelsFromTop:    160,
		PixelsFromBottom: 0,
		Activation:       5,
		Divisor:          imaging.DefaultDivisor,
	}
}

// Side identifies which strip produced an edge hit.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// EdgeHit is the outcome of an edge scan.
type EdgeHit struct {
	// Side is the strip that matched, SideNone when nothing did.
	Side Side

	// Column is the absolute frame column of the first active column.
	Column int

	// Offset is the reported edge offset. It is folded with the same
	// formula for both sides: width - column - width/2.
	Offset Offset
}

// EdgeScanner looks for the red boundary marker near the sides of a frame.
type EdgeScanner struct {
	cfg    EdgeScanConfig
	logger logger.Logger
}

// NewEdgeScanner creates a scanner for the given strip geometry.
func NewEdgeScanner(cfg EdgeScanConfig, log logger.Logger) *EdgeScanner {
	return &EdgeScanner{cfg: cfg, logger: log}
}

// Scan searches the left strip [0, BoxWidth) and then the right strip
// [W-BoxWidth, W) of a red mask for the first column whose activation
// exceeds the threshold.
//
// Both sides report width - column - width/2. For a left-strip hit this is
// positive; a right-strip hit yields a negative value. A strip that cannot be
// projected (for example one wider than the mask) counts as no hit.
func (s *EdgeScanner) Scan(mask *image.Gray) EdgeHit {
	width := mask.Bounds().Dx()

	strips := []struct {
		side   Side
		region imaging.Region
		msg    string
	}{
		{SideLeft, s.region(0, s.cfg.BoxWidth), "should turn right"},
		{SideRight, s.region(width-s.cfg.BoxWidth, width), "should turn left"},
	}

	for _, strip := range strips {
		projection, err := imaging.ColumnProjection(mask, strip.region, s.cfg.Divisor)
		if err != nil {
			s.logger.Warning("edges", "edge strip skipped", map[string]interface{}{
				"side":  strip.side.String(),
				"error": err.Error(),
			})
			continue
		}

		i, ok := FirstAbove(projection, s.cfg.Activation)
		if !ok {
			continue
		}

		column := strip.region.XStart + i
		s.logger.Debug("edges", strip.msg, map[string]interface{}{"column": column})
		return EdgeHit{
			Side:   strip.side,
			Column: column,
			Offset: Found(foldEdgeOffset(width, column)),
		}
	}

	return EdgeHit{Side: SideNone, Offset: NotFound}
}

// ScanFrame converts a frame to HSV, masks the red bands and scans them.
//
// A failed color conversion (nil or empty frame) is logged and reported as no
// hit; the returned mask is nil in that case.
func (s *EdgeScanner) ScanFrame(frame image.Image, floor int) (EdgeHit, *image.Gray) {
	hsv, err := imaging.ToHSV(frame)
	if err != nil {
		s.logger.Warning("edges", "could not convert frame to HSV", map[string]interface{}{
			"error": err.Error(),
		})
		return EdgeHit{Side: SideNone, Offset: NotFound}, nil
	}

	mask := RedMask(hsv, floor)
	return s.Scan(mask), mask
}

func (s *EdgeScanner) region(xStart, xEnd int) imaging.Region {
	return imaging.Region{
		XStart:        xStart,
		XEnd:          xEnd,
		YTop:          s.cfg.PixelsFromTop,
		YBottomMargin: s.cfg.PixelsFromBottom,
	}
}

func foldEdgeOffset(width, column int) int {
	return width - column - width/2
}

func clampUint8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
