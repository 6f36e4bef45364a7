// Package config loads focus-border defaults from FOCUSBORDER_* environment
// variables. Command-line flags override these values.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/mj1618/focus-border/internal/model"
)

// Prefix is the environment variable prefix.
const Prefix = "FOCUSBORDER"

// Config holds all application configuration. The sections are embedded so
// their variables share the FOCUSBORDER_ prefix directly.
type Config struct {
	LogConfig
	BorderConfig
	BridgeConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"warn"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// BorderConfig holds overlay defaults.
type BorderConfig struct {
	Width        float64          `envconfig:"BORDER_WIDTH" default:"20"`
	Opacity      float64          `envconfig:"OPACITY" default:"0.3"`
	DefaultColor string           `envconfig:"DEFAULT_COLOR" default:"1,1,0"`
	Colors       ColorAssignments `envconfig:"COLORS"`
}

// ColorAssignments maps bundle identifiers to color strings. The environment
// form is "id=color" pairs separated by ";" so that "r,g,b" colors survive,
// e.g. "com.apple.Safari=0,1,1;com.apple.Terminal=red".
type ColorAssignments map[string]string

// Decode implements envconfig.Decoder.
func (a *ColorAssignments) Decode(value string) error {
	m := make(ColorAssignments)
	for _, pair := range strings.Split(value, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, color, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return fmt.Errorf("invalid color assignment %q: expected id=color", pair)
		}
		m[strings.TrimSpace(id)] = strings.TrimSpace(color)
	}
	*a = m
	return nil
}

// BridgeConfig holds event bridge policy.
type BridgeConfig struct {
	Coalesce bool `envconfig:"COALESCE" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that envconfig cannot express.
func (c *Config) Validate() error {
	if w := c.BorderConfig.Width; w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("invalid %s_BORDER_WIDTH %v: must be finite and non-negative", Prefix, c.BorderConfig.Width)
	}
	if o := c.BorderConfig.Opacity; o < 0 || o > 1 || math.IsNaN(o) {
		return fmt.Errorf("invalid %s_OPACITY %v: must be within 0..1", Prefix, c.BorderConfig.Opacity)
	}
	if _, err := c.ColorMap(); err != nil {
		return err
	}
	return nil
}

// ColorMap builds the per-application color table from the configuration.
func (c *Config) ColorMap() (*model.ColorMap, error) {
	def, err := model.ParseColor(c.BorderConfig.DefaultColor)
	if err != nil {
		return nil, fmt.Errorf("invalid %s_DEFAULT_COLOR: %w", Prefix, err)
	}
	m := model.NewColorMap(def)
	for id, raw := range c.BorderConfig.Colors {
		if err := m.Set(id + "=" + raw); err != nil {
			return nil, fmt.Errorf("invalid %s_COLORS: %w", Prefix, err)
		}
	}
	return m, nil
}
