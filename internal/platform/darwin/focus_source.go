//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework CoreFoundation -framework Foundation -framework QuartzCore
#include <stdlib.h>
#include <string.h>
#include "focus_bridge.h"
*/
import "C"
import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/mj1618/focus-border/internal/platform"
)

// runLoopSlice is how long each CFRunLoopRunInMode call may block before the
// stop flag is checked again.
const runLoopSlice = 0.25

var (
	errNotMainThread  = errors.New("macOS focus source must run on the main thread")
	errAlreadyStarted = errors.New("macOS focus observer already registered")
)

// active is the sink the exported callback forwards to. There is one native
// observer per process, so one sink.
var active struct {
	mu   sync.RWMutex
	sink platform.Sink
}

//export fbFocusNotify
func fbFocusNotify(app, title, id, url *C.char) {
	active.mu.RLock()
	defer active.mu.RUnlock()
	if active.sink == nil {
		return
	}
	n := platform.RawNotification{
		AppName:     cBytes(app),
		WindowTitle: cBytes(title),
		BundleID:    cBytes(id),
	}
	if url != nil {
		n.URL = cBytes(url)
	}
	active.sink(n)
}

// cBytes views a C string without copying. The view is only valid during the
// callback; the sink copies it.
func cBytes(s *C.char) []byte {
	if s == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(s)), int(C.strlen(s)))
}

// FocusSource implements platform.FocusSource with NSWorkspace activation
// notifications and an AXObserver on the active application. Its run loop is
// the process main run loop.
type FocusSource struct {
	stop atomic.Bool
}

// NewFocusSource creates a macOS focus source.
func NewFocusSource() *FocusSource {
	return &FocusSource{}
}

func (s *FocusSource) Subscribe(sink platform.Sink) error {
	active.mu.Lock()
	if active.sink != nil {
		active.mu.Unlock()
		return errAlreadyStarted
	}
	active.sink = sink
	active.mu.Unlock()

	switch status := C.fb_observer_start(); status {
	case C.FB_OK:
		return nil
	default:
		s.clearSink()
		switch status {
		case C.FB_NOT_TRUSTED:
			return CheckAccessibilityPermission()
		case C.FB_ALREADY_STARTED:
			return errAlreadyStarted
		case C.FB_MAIN_TIMEOUT:
			return fmt.Errorf("register focus observer: main run loop is not running")
		default:
			return fmt.Errorf("register focus observer: status %d", int(status))
		}
	}
}

func (s *FocusSource) Unsubscribe() error {
	// Clear the sink before touching the main thread: a callback blocked on
	// active.mu would otherwise hold up the main queue we wait on.
	s.clearSink()
	if status := C.fb_observer_stop(); status != C.FB_OK {
		return fmt.Errorf("unregister focus observer: status %d", int(status))
	}
	return nil
}

func (s *FocusSource) clearSink() {
	active.mu.Lock()
	active.sink = nil
	active.mu.Unlock()
}

// Run pumps the main run loop until Interrupt is called.
func (s *FocusSource) Run() error {
	if C.fb_is_main_thread() == 0 {
		return errNotMainThread
	}
	C.fb_app_init()
	for !s.stop.Load() {
		C.fb_run_loop_slice(C.double(runLoopSlice))
	}
	return nil
}

// Interrupt stops Run. CFRunLoopStop is safe from any thread; the flag covers
// a stop that lands between two slices.
func (s *FocusSource) Interrupt() error {
	s.stop.Store(true)
	C.fb_run_loop_stop()
	return nil
}

func (s *FocusSource) RequiresMainThread() bool { return true }
