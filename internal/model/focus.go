package model

// NoURL is the URL value of an event whose native source reported no document URL.
const NoURL = "none"

// UnknownField replaces a required field the native source left empty.
const UnknownField = "(unknown)"

// FocusEvent is one normalized focus change. All fields are owned copies of the
// native payload.
type FocusEvent struct {
	Seq         uint64 `yaml:"seq"          json:"seq"`
	TS          int64  `yaml:"ts"           json:"ts"`
	AppName     string `yaml:"app"          json:"app"`
	WindowTitle string `yaml:"title"        json:"title"`
	BundleID    string `yaml:"id"           json:"id"`
	URL         string `yaml:"url"          json:"url"`
	HasURL      bool   `yaml:"has_url"      json:"has_url"`
}

// SameTarget reports whether e and o describe the same focused window, ignoring
// delivery metadata (Seq, TS).
func (e FocusEvent) SameTarget(o FocusEvent) bool {
	return e.AppName == o.AppName &&
		e.WindowTitle == o.WindowTitle &&
		e.BundleID == o.BundleID &&
		e.URL == o.URL &&
		e.HasURL == o.HasURL
}

// SameApp reports whether e and o belong to the same application.
func (e FocusEvent) SameApp(o FocusEvent) bool {
	return e.BundleID == o.BundleID && e.AppName == o.AppName
}
