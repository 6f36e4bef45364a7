package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/mj1618/focus-border/internal/model"
	"gopkg.in/yaml.v3"
)

var safari = model.FocusEvent{
	Seq:         1,
	TS:          1707500000,
	AppName:     "Safari",
	WindowTitle: "Example",
	BundleID:    "com.apple.Safari",
	URL:         "https://example.com",
	HasURL:      true,
}

// capture runs fn with stdout redirected and returns what it wrote.
func capture(t *testing.T, format Format, fn func() error) string {
	t.Helper()
	oldFormat := OutputFormat
	OutputFormat = format
	defer func() { OutputFormat = oldFormat }()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestPrint_TextEvent(t *testing.T) {
	out := capture(t, FormatText, func() error { return Print(safari) })

	want := "[1] App: Safari | Window: Example | ID: com.apple.Safari | URL: https://example.com\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestPrint_TextEventWithoutURL(t *testing.T) {
	ev := safari
	ev.URL, ev.HasURL = model.NoURL, false
	out := capture(t, FormatText, func() error { return Print(ev) })

	if !strings.HasSuffix(out, "URL: none\n") {
		t.Errorf("missing URL sentinel: %q", out)
	}
}

func TestPrint_TextOverlayResult(t *testing.T) {
	tests := []struct {
		name   string
		result OverlayResult
		want   string
	}{
		{
			name:   "create ok",
			result: OverlayResult{Action: "create", Color: &model.Color{R: 1, G: 1}, Width: 20, Opacity: 0.3, OK: true},
			want:   "overlay create ok: color=1.00,1.00,0.00 width=20 opacity=0.3",
		},
		{
			name:   "create failed",
			result: OverlayResult{Action: "create", Color: &model.Color{B: 1}, Width: 5, Opacity: 1, Error: "native status -1"},
			want:   "overlay create failed: color=0.00,0.00,1.00 width=5 opacity=1 native status -1",
		},
		{
			name:   "remove",
			result: OverlayResult{Action: "remove", OK: true},
			want:   "overlay remove ok:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Line(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrint_TextFallsBackToYAML(t *testing.T) {
	status := model.Status{Platform: "darwin", Supported: true}
	out := capture(t, FormatText, func() error { return Print(status) })

	if !strings.Contains(out, "platform: darwin") {
		t.Errorf("expected YAML fallback, got:\n%s", out)
	}
}

func TestPrint_JSONEvent(t *testing.T) {
	out := capture(t, FormatJSON, func() error { return Print(safari) })

	// Compact output should be a single line (plus newline from Encode)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}

	var decoded model.FocusEvent
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded != safari {
		t.Errorf("round trip: got %+v", decoded)
	}
}

func TestPrint_PrettyJSON(t *testing.T) {
	PrettyOutput = true
	defer func() { PrettyOutput = false }()

	out := capture(t, FormatJSON, func() error { return Print(safari) })
	if strings.Count(out, "\n") <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", out)
	}
}

func TestPrint_YAMLStream(t *testing.T) {
	second := safari
	second.Seq, second.AppName, second.URL, second.HasURL = 2, "Terminal", model.NoURL, false

	out := capture(t, FormatYAML, func() error {
		if err := Print(safari); err != nil {
			return err
		}
		return Print(second)
	})

	dec := yaml.NewDecoder(strings.NewReader(out))
	var got []model.FocusEvent
	for {
		var ev model.FocusEvent
		err := dec.Decode(&ev)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("output is not valid YAML: %v\n%s", err, out)
		}
		got = append(got, ev)
	}
	if len(got) != 2 {
		t.Fatalf("decoded %d documents, want 2", len(got))
	}
	if got[1].AppName != "Terminal" || got[1].HasURL {
		t.Errorf("second document: %+v", got[1])
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "yaml", "json"} {
		if f, err := ParseFormat(s); err != nil || string(f) != s {
			t.Errorf("ParseFormat(%q) = %q, %v", s, f, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestOverlayResult_OmitEmpty(t *testing.T) {
	data, err := json.Marshal(OverlayResult{Action: "remove", OK: true})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"color", "error", "width", "app"} {
		if _, ok := m[key]; ok {
			t.Errorf("%s should be omitted", key)
		}
	}
	// ok should always be present
	if _, ok := m["ok"]; !ok {
		t.Error("ok should always be present")
	}
}
