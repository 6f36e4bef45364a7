//go:build darwin

package darwin

/*
#include "focus_bridge.h"
*/
import "C"

// mainTimeout is the status returned when the main run loop does not answer.
const mainTimeout = int(C.FB_MAIN_TIMEOUT)

// BorderRenderer implements platform.OverlayRenderer with a borderless,
// click-through NSWindow drawn over the focused window. Calls from other
// threads are forwarded to the main queue and fail with FB_MAIN_TIMEOUT (-2)
// when the main run loop is not being pumped. A call that fails this way is
// cancelled and leaves the current border as it was.
type BorderRenderer struct{}

// NewBorderRenderer creates a macOS border renderer.
func NewBorderRenderer() *BorderRenderer {
	return &BorderRenderer{}
}

func (BorderRenderer) CreateBorder(r, g, b, width, opacity float64) int {
	return int(C.fb_border_create(C.double(r), C.double(g), C.double(b), C.double(width), C.double(opacity)))
}

func (BorderRenderer) RemoveBorder() int {
	return int(C.fb_border_remove())
}

// borderShown reports whether a native border window exists. It returns
// false when the main run loop does not answer in time.
func borderShown() bool {
	return C.fb_border_present() == 1
}
