package detection

import (
	"image"
	"sync"

	"github.com/ironsheep/lane-vision/internal/imaging"
	"github.com/ironsheep/lane-vision/internal/logger"
)

// Publisher accepts the record produced by each cycle.
type Publisher interface {
	Publish(data ImageData) error
}

// DebugSink receives debug frames. Implementations must not block.
type DebugSink interface {
	Show(name string, img image.Image) bool
}

// Debug stream names.
const (
	StreamRaw   = "raw_image"
	StreamFinal = "final_image"
	StreamRed   = "frame_red"
)

// Config holds the frame geometry the detector works at.
type Config struct {
	// Width and Height are the frame size the core assumes. Frames of any
	// other size are rescaled to it.
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`

	// LaneTopOffset is how far below the horizontal midline the object band
	// starts.
	LaneTopOffset int `json:"lane_top_offset" mapstructure:"lane_top_offset"`

	// Divisor scales object column sums.
	Divisor int `json:"divisor" mapstructure:"divisor"`

	Edge EdgeScanConfig `json:"edge" mapstructure:"edge"`
}

// DefaultConfig returns the 360x240 configuration.
func DefaultConfig() Config {
	return Config{
		Width:         360,
		Height:        240,
		LaneTopOffset: 10,
		Divisor:       imaging.DefaultDivisor,
		Edge:          DefaultEdgeScanConfig(),
	}
}

// State is a phase of a detection cycle.
type State int

const (
	StateStart State = iota
	StateProjectingLane
	StateSearchingPeak
	StateReconcileEdge
	StatePublish
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateProjectingLane:
		return "projecting_lane"
	case StateSearchingPeak:
		return "searching_peak"
	case StateReconcileEdge:
		return "reconcile_edge"
	case StatePublish:
		return "publish"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Cycle reports what one call to Process did.
type Cycle struct {
	// Result is the record that was published.
	Result Result

	// Edge is the completed edge scan. When the detector did not wait for it
	// before publishing, it may differ from Result.Edge.
	Edge EdgeHit

	// Awaited is set when publishing waited for the edge scan.
	Awaited bool

	// Peak is the object column, valid when Result.Object.Found is set.
	Peak int

	// Thresholds are the values the cycle ran with.
	Thresholds Thresholds
}

// Option configures a Detector.
type Option func(*Detector)

// WithPublisher sets the destination of each cycle's record.
func WithPublisher(p Publisher) Option {
	return func(d *Detector) { d.publisher = p }
}

// WithDebugSink enables debug frames.
func WithDebugSink(sink DebugSink) Option {
	return func(d *Detector) { d.debug = sink }
}

// Detector runs detection cycles. Cycles are serialized: at most one edge
// scan is in flight at any time, and every scan is joined before Process
// returns.
type Detector struct {
	cfg       Config
	store     *ThresholdStore
	edges     *EdgeScanner
	publisher Publisher
	debug     DebugSink
	logger    logger.Logger

	mu sync.Mutex
}

// NewDetector creates a detector reading its thresholds from store.
func NewDetector(cfg Config, store *ThresholdStore, log logger.Logger, opts ...Option) *Detector {
	d := &Detector{
		cfg:    cfg,
		store:  store,
		edges:  NewEdgeScanner(cfg.Edge, log),
		logger: log,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns the detector configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// edgeScan is a single edge scan running on its own goroutine. done is
// closed once hit and mask are set, so wait may be called any number of
// times.
type edgeScan struct {
	done chan struct{}
	hit  EdgeHit
	mask *image.Gray
}

func (d *Detector) startEdgeScan(frame image.Image, floor int) *edgeScan {
	scan := &edgeScan{done: make(chan struct{})}
	go func() {
		defer close(scan.done)
		scan.hit, scan.mask = d.edges.ScanFrame(frame, floor)
	}()
	return scan
}

func (s *edgeScan) wait() EdgeHit {
	<-s.done
	return s.hit
}

func (s *edgeScan) poll() (EdgeHit, bool) {
	select {
	case <-s.done:
		return s.hit, true
	default:
		return EdgeHit{Side: SideNone, Offset: NotFound}, false
	}
}

// Process runs one detection cycle over img and publishes its record.
//
// The edge scan starts first on its own goroutine. The object path then runs
// on the calling goroutine. If it finds no object, publishing waits for the
// edge scan; otherwise the record carries the edge result only if the scan
// has already finished. Either way the scan is joined before Process returns.
//
// A frame that cannot be normalized (nil or empty) produces a record with
// both sentinels.
func (d *Detector) Process(img image.Image) Cycle {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.enter(StateStart)
	thresholds := d.store.Snapshot()

	var frame *image.NRGBA
	normalized, err := imaging.NormalizeFrame(img, d.cfg.Width, d.cfg.Height)
	if err != nil {
		d.logger.Warning("detector", "frame rejected", map[string]interface{}{"error": err.Error()})
	} else {
		frame = normalized
	}

	// A nil *image.NRGBA inside the interface would defeat ToHSV's nil check.
	var edgeInput image.Image
	if frame != nil {
		edgeInput = frame
	}
	scan := d.startEdgeScan(edgeInput, thresholds.Red)

	object, peak, mask := d.findObject(frame, thresholds.Lower)

	d.enter(StateReconcileEdge)
	var edge EdgeHit
	awaited := false
	if !object.Found {
		edge = scan.wait()
		awaited = true
	} else {
		edge, _ = scan.poll()
	}

	d.enter(StatePublish)
	result := Result{Object: object, Edge: edge.Offset}
	if d.publisher != nil {
		if err := d.publisher.Publish(result.ImageData()); err != nil {
			d.logger.Error("detector", err, map[string]interface{}{"stage": "publish"})
		}
	}

	final := scan.wait()
	if final.Offset.Found && !result.Edge.Found {
		d.logger.Debug("detector", "edge resolved after publish", map[string]interface{}{
			"side":            final.Side.String(),
			"corner_position": final.Offset.Value,
		})
	}
	d.showDebug(frame, mask, scan.mask, peak, object.Found)
	d.enter(StateDone)

	return Cycle{
		Result:     result,
		Edge:       final,
		Awaited:    awaited,
		Peak:       peak,
		Thresholds: thresholds,
	}
}

// findObject binarizes the frame, projects the band below the midline and
// returns the strongest column as an offset from the frame center. A frame
// with no active pixel in the band, or whose strongest column is the first
// one, has no object.
func (d *Detector) findObject(frame *image.NRGBA, lower int) (Offset, int, *image.Gray) {
	if frame == nil {
		return NotFound, 0, nil
	}

	d.enter(StateProjectingLane)
	mask := imaging.Binarize(frame, lower)
	region := imaging.Region{
		XStart: 0,
		XEnd:   d.cfg.Width,
		YTop:   d.cfg.Height/2 + d.cfg.LaneTopOffset,
	}
	projection, err := imaging.ColumnProjection(mask, region, d.cfg.Divisor)
	if err != nil {
		d.logger.Warning("detector", "lane projection failed", map[string]interface{}{"error": err.Error()})
		return NotFound, 0, mask
	}

	d.enter(StateSearchingPeak)
	peak, err := PeakIndex(projection)
	// Column 0 folds to the no-ball sentinel on the wire, so it counts as no
	// object. An all-zero projection also peaks at 0.
	if err != nil || peak == 0 {
		return NotFound, 0, mask
	}
	return Found(peak - d.cfg.Width/2), peak, mask
}

func (d *Detector) showDebug(frame *image.NRGBA, mask, red *image.Gray, peak int, hasPeak bool) {
	if d.debug == nil {
		return
	}
	if frame != nil {
		d.debug.Show(StreamRaw, imaging.ReferenceOverlay(frame))
	}
	if mask != nil {
		d.debug.Show(StreamFinal, imaging.LaneOverlay(mask, peak, hasPeak))
	}
	if red != nil {
		d.debug.Show(StreamRed, red)
	}
}

func (d *Detector) enter(s State) {
	d.logger.Debug("detector", "cycle state", map[string]interface{}{"state": s.String()})
}
