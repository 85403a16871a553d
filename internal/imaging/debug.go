package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/lane-vision/internal/logger"
)

// DebugWriter persists debug frames as PNG files from a background goroutine.
//
// Each named stream keeps only its latest frame on disk (<dir>/<name>.png),
// which mirrors a live display window. Show never blocks: when the writer is
// still busy with earlier frames the new one is dropped.
//
// DebugWriter is safe for concurrent use.
type DebugWriter struct {
	dir    string
	frames chan debugFrame
	wg     sync.WaitGroup
	logger logger.Logger

	mu      sync.Mutex
	closed  bool
	dropped int
}

type debugFrame struct {
	name string
	img  image.Image
}

// NewDebugWriter creates the output directory and starts the writer.
// buffer is the number of frames that may be queued before Show drops.
func NewDebugWriter(dir string, buffer int, log logger.Logger) (*DebugWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create debug directory: %w", err)
	}
	if buffer < 1 {
		buffer = 1
	}

	w := &DebugWriter{
		dir:    dir,
		frames: make(chan debugFrame, buffer),
		logger: log,
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Show queues img for writing under name. It reports false when the frame
// was dropped because the queue was full or the writer is closed.
func (w *DebugWriter) Show(name string, img image.Image) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || img == nil {
		return false
	}

	select {
	case w.frames <- debugFrame{name: name, img: img}:
		return true
	default:
		w.dropped++
		return false
	}
}

// Dropped returns the number of frames discarded because the queue was full.
func (w *DebugWriter) Dropped() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dropped
}

// Close stops accepting frames and waits for queued frames to be written.
func (w *DebugWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.frames)
	w.mu.Unlock()

	w.wg.Wait()
}

// Path returns the file a stream is written to.
func (w *DebugWriter) Path(name string) string {
	return filepath.Join(w.dir, name+".png")
}

func (w *DebugWriter) run() {
	defer w.wg.Done()
	for f := range w.frames {
		if err := imgio.Save(w.Path(f.name), f.img, imgio.PNGEncoder()); err != nil {
			w.logger.Error("debug", err, map[string]interface{}{"stream": f.name})
		}
	}
}
