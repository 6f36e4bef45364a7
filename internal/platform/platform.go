package platform

// RawNotification is a focus notification exactly as the native layer delivered
// it. The slices may alias native memory that is only valid for the duration of
// the Sink call; a nil URL means the native source reported no URL, while a
// non-nil empty URL means an empty one.
type RawNotification struct {
	AppName     []byte
	WindowTitle []byte
	BundleID    []byte
	URL         []byte
}

// Sink receives raw notifications on the native event thread. It must return
// quickly and must not retain the slices.
type Sink func(RawNotification)

// FocusSource delivers focus change notifications from the OS.
type FocusSource interface {
	// Subscribe registers sink with the native notification mechanism.
	// It fails if the mechanism is unavailable (permission denied, unsupported).
	Subscribe(sink Sink) error

	// Unsubscribe removes the registration. No sink calls start after it returns.
	Unsubscribe() error

	// Run pumps the native event loop on the calling thread until interrupted
	// or, for sources without an Interrupter, until the process exits.
	Run() error
}

// Interrupter is implemented by sources whose Run can be stopped from another
// goroutine. Implementations assert that Interrupt and Unsubscribe are safe to
// call concurrently with Run.
type Interrupter interface {
	Interrupt() error
}

// MainThreadBound is implemented by sources whose Run must execute on the
// process main thread.
type MainThreadBound interface {
	RequiresMainThread() bool
}

// OverlayRenderer draws the single process-wide border overlay. Both calls
// return 0 on success and a non-zero native status otherwise. CreateBorder
// replaces an existing border without showing both at once.
type OverlayRenderer interface {
	CreateBorder(r, g, b, width, opacity float64) int
	RemoveBorder() int
}

// WindowManager answers questions about the current desktop state.
type WindowManager interface {
	// GetFrontmostApp returns the name and PID of the frontmost application.
	GetFrontmostApp() (string, int, error)

	// IsTrusted reports whether the process holds the permission the focus
	// source needs (Accessibility on macOS).
	IsTrusted() bool
}
