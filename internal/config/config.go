// Package config loads the runtime configuration of the lane vision service.
//
// Defaults match a 360x240 camera feed. A JSON file may override any subset of
// fields, and a few environment variables override the file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/multierr"

	"github.com/ironsheep/lane-vision/internal/detection"
)

// Environment variables read by Load.
const (
	EnvConfigPath = "LANE_VISION_CONFIG"
	EnvLogLevel   = "LANE_VISION_LOG_LEVEL"
	EnvDebugDir   = "LANE_VISION_DEBUG_DIR"
)

// Config is the complete service configuration.
type Config struct {
	Detection  detection.Config     `json:"detection" mapstructure:"detection"`
	Thresholds detection.Thresholds `json:"thresholds" mapstructure:"thresholds"`
	Debug      DebugConfig          `json:"debug" mapstructure:"debug"`
	LogLevel   string               `json:"log_level" mapstructure:"log_level"`
}

// DebugConfig controls the debug image channel.
type DebugConfig struct {
	// Dir is where debug frames are written. Empty disables the channel.
	Dir string `json:"dir" mapstructure:"dir"`

	// Buffer is how many frames may wait to be written before new ones are
	// dropped.
	Buffer int `json:"buffer" mapstructure:"buffer"`
}

// Enabled reports whether debug frames should be written.
func (d DebugConfig) Enabled() bool {
	return d.Dir != ""
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Detection:  detection.DefaultConfig(),
		Thresholds: detection.DefaultThresholds(),
		Debug:      DebugConfig{Buffer: 6},
		LogLevel:   "info",
	}
}

// Load builds the configuration from defaults, the optional JSON file at path
// and the environment. An empty path falls back to LANE_VISION_CONFIG; when
// that is unset too, only defaults and environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// mergeFile decodes a JSON file over the current values. Fields missing from
// the file keep their current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return c.merge(raw)
}

func (c *Config) merge(raw map[string]interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDebugDir)); v != "" {
		c.Debug.Dir = v
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var err error
	d := c.Detection

	if d.Width <= 0 || d.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("frame size must be positive, got %dx%d", d.Width, d.Height))
	}
	if d.Divisor <= 0 {
		err = multierr.Append(err, fmt.Errorf("detection divisor must be positive, got %d", d.Divisor))
	}
	if d.LaneTopOffset < -d.Height/2 || d.Height/2+d.LaneTopOffset >= d.Height {
		err = multierr.Append(err, fmt.Errorf("lane band starting %d below the midline is outside the frame", d.LaneTopOffset))
	}

	e := d.Edge
	if e.BoxWidth <= 0 || e.BoxWidth > d.Width {
		err = multierr.Append(err, fmt.Errorf("edge box width must be in [1,%d], got %d", d.Width, e.BoxWidth))
	}
	if e.PixelsFromTop < 0 || e.PixelsFromBottom < 0 || e.PixelsFromTop+e.PixelsFromBottom >= d.Height {
		err = multierr.Append(err, fmt.Errorf("edge band top %d bottom %d leaves no rows in a %d row frame",
			e.PixelsFromTop, e.PixelsFromBottom, d.Height))
	}
	if e.Divisor <= 0 {
		err = multierr.Append(err, fmt.Errorf("edge divisor must be positive, got %d", e.Divisor))
	}
	if e.Activation < 0 {
		err = multierr.Append(err, fmt.Errorf("edge activation must not be negative, got %d", e.Activation))
	}

	thresholds := []struct {
		name  string
		value int
	}{
		{"lower_threshold", c.Thresholds.Lower},
		{"red_value", c.Thresholds.Red},
	}
	for _, th := range thresholds {
		if th.value < 0 || th.value > 255 {
			err = multierr.Append(err, fmt.Errorf("%s must be in [0,255], got %d", th.name, th.value))
		}
	}

	if c.Debug.Buffer < 1 {
		err = multierr.Append(err, fmt.Errorf("debug buffer must be at least 1, got %d", c.Debug.Buffer))
	}
	return err
}
