package platform

import "testing"

func TestNewRawNotification_URLPresence(t *testing.T) {
	absent := NewRawNotification("Safari", "Example", "com.apple.Safari", nil)
	if absent.HasURL() {
		t.Error("nil url should be absent")
	}

	empty := ""
	present := NewRawNotification("Safari", "Example", "com.apple.Safari", &empty)
	if !present.HasURL() {
		t.Error("empty url should still be present")
	}
	if len(present.URL) != 0 {
		t.Errorf("empty url should have zero length, got %d", len(present.URL))
	}
}

func TestRawNotification_Valid(t *testing.T) {
	tests := []struct {
		name string
		n    RawNotification
		want bool
	}{
		{"ascii", NewRawNotification("Safari", "Example", "com.apple.Safari", nil), true},
		{"unicode", NewRawNotification("Finder", "Téléchargements", "com.apple.finder", nil), true},
		{"bad title", RawNotification{AppName: []byte("a"), WindowTitle: []byte{0xff, 0xfe}, BundleID: []byte("b")}, false},
		{"bad url", RawNotification{AppName: []byte("a"), BundleID: []byte("b"), URL: []byte{0xc3}}, false},
	}
	for _, tt := range tests {
		if got := tt.n.Valid(); got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
