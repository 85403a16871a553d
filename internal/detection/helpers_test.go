package detection

import (
	"image"
	"image/color"
	"sync"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

func newFrame(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill(img, 0, 0, width, height, c)
	return img
}

func fill(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.Set(x, y, c)
		}
	}
}

// recordingPublisher captures published records.
type recordingPublisher struct {
	mu      sync.Mutex
	records []ImageData
	err     error
}

func (p *recordingPublisher) Publish(data ImageData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, data)
	return p.err
}

func (p *recordingPublisher) all() []ImageData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ImageData(nil), p.records...)
}

// recordingSink captures debug stream names.
type recordingSink struct {
	mu      sync.Mutex
	streams map[string]image.Image
}

func (s *recordingSink) Show(name string, img image.Image) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streams == nil {
		s.streams = make(map[string]image.Image)
	}
	s.streams[name] = img
	return true
}

func imageColor(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// recordingLogger keeps debug messages and discards everything else.
type recordingLogger struct {
	mu    sync.Mutex
	debug []string
}

func (l *recordingLogger) Info(component, message string, fields map[string]interface{}) {}
func (l *recordingLogger) Error(component string, err error, fields map[string]interface{}) {}
func (l *recordingLogger) Warning(component, message string, fields map[string]interface{}) {}

func (l *recordingLogger) Debug(component, message string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, message)
}

func (l *recordingLogger) debugMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.debug...)
}
