package config

import (
	"testing"

	"github.com/mj1618/focus-border/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogConfig.Level != "warn" {
		t.Errorf("log level: got %q, want warn", cfg.LogConfig.Level)
	}
	if cfg.BorderConfig.Width != 20 {
		t.Errorf("width: got %v, want 20", cfg.BorderConfig.Width)
	}
	if cfg.BorderConfig.Opacity != 0.3 {
		t.Errorf("opacity: got %v, want 0.3", cfg.BorderConfig.Opacity)
	}
	if cfg.BridgeConfig.Coalesce {
		t.Error("coalescing should be off by default")
	}
	m, err := cfg.ColorMap()
	if err != nil {
		t.Fatal(err)
	}
	if m.Default != (model.Color{R: 1, G: 1, B: 0}) {
		t.Errorf("default color: got %+v, want yellow", m.Default)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("FOCUSBORDER_BORDER_WIDTH", "8")
	t.Setenv("FOCUSBORDER_OPACITY", "0.9")
	t.Setenv("FOCUSBORDER_DEFAULT_COLOR", "#00ff00")
	t.Setenv("FOCUSBORDER_COLORS", "com.apple.Safari=cyan; com.apple.Terminal=1,0,0")
	t.Setenv("FOCUSBORDER_COALESCE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BorderConfig.Width != 8 || cfg.BorderConfig.Opacity != 0.9 {
		t.Errorf("border: got %+v", cfg.BorderConfig)
	}
	if !cfg.BridgeConfig.Coalesce {
		t.Error("coalesce should be enabled")
	}

	m, err := cfg.ColorMap()
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Lookup("com.apple.Safari"); got != (model.Color{R: 0, G: 1, B: 1}) {
		t.Errorf("Safari: got %+v", got)
	}
	if got := m.Lookup("com.apple.Terminal"); got != (model.Color{R: 1, G: 0, B: 0}) {
		t.Errorf("Terminal: got %+v", got)
	}
	if got := m.Lookup("other"); got != (model.Color{R: 0, G: 1, B: 0}) {
		t.Errorf("default: got %+v", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, val string
	}{
		{"opacity above one", "FOCUSBORDER_OPACITY", "1.5"},
		{"opacity NaN", "FOCUSBORDER_OPACITY", "NaN"},
		{"negative width", "FOCUSBORDER_BORDER_WIDTH", "-1"},
		{"width NaN", "FOCUSBORDER_BORDER_WIDTH", "NaN"},
		{"width Inf", "FOCUSBORDER_BORDER_WIDTH", "+Inf"},
		{"unknown default color", "FOCUSBORDER_DEFAULT_COLOR", "nope"},
		{"unknown mapped color", "FOCUSBORDER_COLORS", "com.apple.Safari=nope"},
		{"assignment without color", "FOCUSBORDER_COLORS", "com.apple.Safari"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("%s=%s should fail to load", tt.key, tt.val)
			}
		})
	}
}

func TestColorAssignments_Decode(t *testing.T) {
	var a ColorAssignments
	if err := a.Decode("com.a=1,0,0; com.b = red ;"); err != nil {
		t.Fatal(err)
	}
	if len(a) != 2 || a["com.a"] != "1,0,0" || a["com.b"] != "red" {
		t.Errorf("got %v", a)
	}
	if err := a.Decode("=red"); err == nil {
		t.Error("empty id should be rejected")
	}
}
