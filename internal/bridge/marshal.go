package bridge

import (
	"strings"
	"unicode/utf8"

	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// Marshal copies a native notification into an owned FocusEvent. It runs on
// the native thread inside the sink call, so it only copies and validates.
//
// A nil URL becomes model.NoURL with HasURL false. An empty AppName or BundleID
// becomes model.UnknownField. Invalid UTF-8 is replaced with U+FFFD and
// reported as a *DecodeError alongside the still-usable event.
func Marshal(n platform.RawNotification) (model.FocusEvent, error) {
	clean := n.Valid()
	var bad []string
	text := func(field string, b []byte) string {
		if clean || utf8.Valid(b) {
			return string(b)
		}
		bad = append(bad, field)
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}

	ev := model.FocusEvent{
		AppName:     text("app", n.AppName),
		WindowTitle: text("title", n.WindowTitle),
		BundleID:    text("id", n.BundleID),
	}
	if !n.HasURL() {
		ev.URL = model.NoURL
	} else {
		ev.URL = text("url", n.URL)
		ev.HasURL = true
	}

	if ev.AppName == "" {
		ev.AppName = model.UnknownField
	}
	if ev.BundleID == "" {
		ev.BundleID = model.UnknownField
	}

	if len(bad) > 0 {
		return ev, &DecodeError{Fields: bad}
	}
	return ev, nil
}
