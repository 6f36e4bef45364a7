package platform

import "unicode/utf8"

// Valid reports whether every present field is well-formed UTF-8.
func (n RawNotification) Valid() bool {
	return utf8.Valid(n.AppName) &&
		utf8.Valid(n.WindowTitle) &&
		utf8.Valid(n.BundleID) &&
		(n.URL == nil || utf8.Valid(n.URL))
}

// HasURL reports whether the native source supplied a URL, even an empty one.
func (n RawNotification) HasURL() bool {
	return n.URL != nil
}

// NewRawNotification builds a notification from Go strings. A nil url means absent.
func NewRawNotification(app, title, id string, url *string) RawNotification {
	n := RawNotification{
		AppName:     []byte(app),
		WindowTitle: []byte(title),
		BundleID:    []byte(id),
	}
	if url != nil {
		n.URL = append([]byte{}, *url...)
	}
	return n
}
