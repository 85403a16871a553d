package detection

import (
	"sync/atomic"

	"github.com/ironsheep/lane-vision/internal/logger"
)

// Default threshold values.
const (
	DefaultLowerThreshold = 180
	DefaultRedValue       = 195

	thresholdMin = 0
	thresholdMax = 255
)

// Thresholds is a snapshot of the adjustable lower bounds.
type Thresholds struct {
	// Lower is the minimum luma of a white (ball) pixel.
	Lower int `json:"lower_threshold" mapstructure:"lower_threshold"`

	// Red is the minimum HSV value of a red (edge) pixel.
	Red int `json:"red_value" mapstructure:"red_value"`
}

// DefaultThresholds returns the start-up thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Lower: DefaultLowerThreshold, Red: DefaultRedValue}
}

// ThresholdStore holds the thresholds shared between cycles.
//
// Each value is read and written atomically, so a cycle never observes a torn
// value while an adjustment lands from another goroutine. The two values are
// independent; no ordering between them is guaranteed.
type ThresholdStore struct {
	lower  atomic.Int32
	red    atomic.Int32
	logger logger.Logger
}

// NewThresholdStore creates a store holding initial.
func NewThresholdStore(initial Thresholds, log logger.Logger) *ThresholdStore {
	s := &ThresholdStore{logger: log}
	s.lower.Store(int32(initial.Lower))
	s.red.Store(int32(initial.Red))
	return s
}

// Snapshot returns the current thresholds.
func (s *ThresholdStore) Snapshot() Thresholds {
	return Thresholds{
		Lower: int(s.lower.Load()),
		Red:   int(s.red.Load()),
	}
}

// Adjust applies signed deltas to the thresholds and returns the new state.
//
// A delta is applied only when it is non-zero and the result stays within
// [0, 255]. Deltas that would leave the range are ignored, not clamped.
func (s *ThresholdStore) Adjust(lowerDelta, redDelta int) Thresholds {
	if v, ok := applyDelta(&s.lower, lowerDelta); ok {
		s.logger.Info("thresholds", "Lower Threshold", map[string]interface{}{"lower_threshold": v})
	}
	if v, ok := applyDelta(&s.red, redDelta); ok {
		s.logger.Info("thresholds", "Red Value", map[string]interface{}{"red_value": v})
	}
	return s.Snapshot()
}

func applyDelta(v *atomic.Int32, delta int) (int, bool) {
	if delta == 0 {
		return 0, false
	}
	for {
		old := v.Load()
		next := int(old) + delta
		if next < thresholdMin || next > thresholdMax {
			return int(old), false
		}
		if v.CompareAndSwap(old, int32(next)) {
			return next, true
		}
	}
}
