// Package config loads todate settings from ~/.todate/config.yaml and the
// TODATE_* environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/todate/internal/axis"
	"github.com/alexanderramin/todate/internal/render"
	"gopkg.in/yaml.v3"
)

// TimelineConfig tunes the timeline view and its interactive controller.
type TimelineConfig struct {
	Height     int     `yaml:"height"`
	Width      int     `yaml:"width"`
	LabelMinPx float64 `yaml:"label_min_px"`
	MaxSpan    float64 `yaml:"max_span"`
	// WheelSensitivity is the fraction of the span added or removed per wheel notch.
	WheelSensitivity float64 `yaml:"wheel_sensitivity"`
	// ZoomStep is the ratio applied by a single zoom key press.
	ZoomStep float64 `yaml:"zoom_step"`
}

// Config is the top-level application configuration.
type Config struct {
	DBPath      string `yaml:"db_path"`
	Locale      string `yaml:"locale"`
	IncludeTime bool   `yaml:"include_time"`
	LogUseCases bool   `yaml:"log_use_cases"`

	Timeline TimelineConfig `yaml:"timeline"`
	Render   render.Style   `yaml:"render"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		DBPath: defaultDBPath(),
		Locale: "en-US",
		Timeline: TimelineConfig{
			Height:           800,
			Width:            320,
			LabelMinPx:       axis.DefaultLabelMinPx,
			MaxSpan:          axis.MaxSpan,
			WheelSensitivity: 0.1,
			ZoomStep:         1.25,
		},
		Render: render.DefaultStyle(),
	}
}

// Normalize fills in missing or out-of-range values with defaults so that
// partially filled files still behave.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.DBPath == "" {
		c.DBPath = d.DBPath
	}
	if c.Locale == "" {
		c.Locale = d.Locale
	}
	t := &c.Timeline
	if t.Height <= 0 {
		t.Height = d.Timeline.Height
	}
	if t.Width <= 0 {
		t.Width = d.Timeline.Width
	}
	if t.LabelMinPx <= 0 {
		t.LabelMinPx = d.Timeline.LabelMinPx
	}
	if t.MaxSpan <= 0 || t.MaxSpan > axis.MaxSpan {
		t.MaxSpan = d.Timeline.MaxSpan
	}
	if t.WheelSensitivity <= 0 || t.WheelSensitivity >= 1 {
		t.WheelSensitivity = d.Timeline.WheelSensitivity
	}
	if t.ZoomStep <= 1 {
		t.ZoomStep = d.Timeline.ZoomStep
	}
	if c.Render.Width <= 0 {
		c.Render.Width = t.Width
	}
	if c.Render.Height <= 0 {
		c.Render.Height = t.Height
	}
}

// Path returns the config file location: TODATE_CONFIG or ~/.todate/config.yaml.
func Path() string {
	if v := os.Getenv("TODATE_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(homeDir(), ".todate", "config.yaml")
}

// LoadConfig reads the config file at Path, falling back to defaults when
// it does not exist, then applies environment overrides.
func LoadConfig() (*Config, error) {
	cfg, err := Load(Path())
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

// Load reads the YAML file at path over DefaultConfig and normalizes the
// result. A missing file yields DefaultConfig. Environment overrides are not applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the parent directory.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TODATE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TODATE_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("TODATE_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TODATE_LABEL_MIN_PX"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Timeline.LabelMinPx = f
		}
	}
	if v := os.Getenv("TODATE_MAX_SPAN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= axis.MaxSpan {
			cfg.Timeline.MaxSpan = f
		}
	}
}

func defaultDBPath() string {
	return filepath.Join(homeDir(), ".todate", "todate.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
