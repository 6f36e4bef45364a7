package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_ValidLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		l, err := New(Config{Level: level})
		if err != nil {
			t.Errorf("New(%q): %v", level, err)
			continue
		}
		if !l.Core().Enabled(mustLevel(t, level)) {
			t.Errorf("logger at %q should enable its own level", level)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("New with unknown level should fail")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) should return a logger")
	}
	l := zap.NewExample()
	if OrNop(l) != l {
		t.Error("OrNop should return a non-nil logger unchanged")
	}
}

func mustLevel(t *testing.T, s string) zapcore.Level {
	t.Helper()
	l, err := parseLevel(s)
	if err != nil {
		t.Fatal(err)
	}
	return l
}
