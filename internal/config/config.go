// Package config holds the settings shared by every transformtoy command.
// Values come from defaults, then an optional YAML file, then
// TRANSFORMTOY_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCanvasSize = 500
	MaxCanvasSize     = 4096
	DefaultCatalog    = "examples.json"
)

type Config struct {
	// View
	CanvasSize      int     `yaml:"canvas_size" env:"TRANSFORMTOY_CANVAS_SIZE"`
	DisplayScale    float64 `yaml:"display_scale" env:"TRANSFORMTOY_DISPLAY_SCALE"`
	ShowBefore      bool    `yaml:"show_before" env:"TRANSFORMTOY_SHOW_BEFORE"`
	ShowAfter       bool    `yaml:"show_after" env:"TRANSFORMTOY_SHOW_AFTER"`
	ShowFinal       bool    `yaml:"show_final" env:"TRANSFORMTOY_SHOW_FINAL"`
	FinalShowBefore bool    `yaml:"final_show_before" env:"TRANSFORMTOY_FINAL_SHOW_BEFORE"`
	FinalShowAfter  bool    `yaml:"final_show_after" env:"TRANSFORMTOY_FINAL_SHOW_AFTER"`
	ShowTrace       bool    `yaml:"show_trace" env:"TRANSFORMTOY_SHOW_TRACE"`
	HideInterface   bool    `yaml:"hide_interface" env:"TRANSFORMTOY_HIDE_INTERFACE"`

	// Playback
	SliderStep        float64       `yaml:"slider_step" env:"TRANSFORMTOY_SLIDER_STEP"`
	AnimationDuration time.Duration `yaml:"animation_duration" env:"TRANSFORMTOY_ANIMATION_DURATION"`
	FPS               int           `yaml:"fps" env:"TRANSFORMTOY_FPS"`
	Loop              bool          `yaml:"loop" env:"TRANSFORMTOY_LOOP"`
	Reverse           bool          `yaml:"reverse" env:"TRANSFORMTOY_REVERSE"`

	// Catalogue
	Example      string        `yaml:"example" env:"TRANSFORMTOY_EXAMPLE"`
	Catalog      string        `yaml:"catalog" env:"TRANSFORMTOY_CATALOG"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"TRANSFORMTOY_FETCH_TIMEOUT"`

	// Export
	Output         string  `yaml:"output" env:"TRANSFORMTOY_OUTPUT"`
	ExportDuration float64 `yaml:"export_duration" env:"TRANSFORMTOY_EXPORT_DURATION"`
	Workers        int     `yaml:"workers" env:"TRANSFORMTOY_WORKERS"`
	VideoEncoder   string  `yaml:"video_encoder" env:"TRANSFORMTOY_VIDEO_ENCODER"`
	Quality        int     `yaml:"quality" env:"TRANSFORMTOY_QUALITY"`
	TracePanel     bool    `yaml:"trace_panel" env:"TRANSFORMTOY_TRACE_PANEL"`
	Timeline       string  `yaml:"timeline" env:"TRANSFORMTOY_TIMELINE"`
	ShowStats      bool    `yaml:"show_stats" env:"TRANSFORMTOY_SHOW_STATS"`

	LogLevel     string `yaml:"log_level" env:"TRANSFORMTOY_LOG_LEVEL"`
	BuildVersion string `yaml:"-"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		CanvasSize:        DefaultCanvasSize,
		DisplayScale:      2,
		ShowBefore:        true,
		ShowAfter:         true,
		ShowFinal:         true,
		FinalShowBefore:   true,
		FinalShowAfter:    false,
		ShowTrace:         true,
		SliderStep:        0.02,
		AnimationDuration: 300 * time.Millisecond,
		FPS:               60,
		Catalog:           DefaultCatalog,
		FetchTimeout:      10 * time.Second,
		Output:            "out",
		ExportDuration:    0,
		Workers:           0,
		VideoEncoder:      "",
		Quality:           23,
		TracePanel:        true,
		LogLevel:          "info",
	}
}

// LoadFile overlays the YAML file at path on cfg. Keys missing from the
// file keep their current values.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays TRANSFORMTOY_* environment variables on cfg.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.CanvasSize <= 0 || c.CanvasSize > MaxCanvasSize {
		errs = append(errs, fmt.Errorf("canvas size must be between 1 and %d, got %d", MaxCanvasSize, c.CanvasSize))
	}
	if c.DisplayScale <= 0 {
		errs = append(errs, fmt.Errorf("display scale must be positive, got %v", c.DisplayScale))
	}
	if c.SliderStep <= 0 {
		errs = append(errs, fmt.Errorf("slider step must be positive, got %v", c.SliderStep))
	}
	if c.AnimationDuration <= 0 {
		errs = append(errs, fmt.Errorf("animation duration must be positive, got %v", c.AnimationDuration))
	}
	if c.FPS <= 0 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps must be between 1 and 240, got %d", c.FPS))
	}
	if c.ExportDuration < 0 {
		errs = append(errs, fmt.Errorf("export duration must not be negative, got %v", c.ExportDuration))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Quality < 0 || c.Quality > 100 {
		errs = append(errs, fmt.Errorf("quality must be between 0 and 100, got %d", c.Quality))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}
