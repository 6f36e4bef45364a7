//go:build darwin

package darwin

/*
#include <stdlib.h>
#include "focus_bridge.h"
*/
import "C"
import (
	"fmt"
	"unsafe"
)

// DarwinWindowManager implements the platform.WindowManager interface for macOS.
type DarwinWindowManager struct{}

// NewWindowManager creates a new macOS window manager.
func NewWindowManager() *DarwinWindowManager {
	return &DarwinWindowManager{}
}

func (wm *DarwinWindowManager) GetFrontmostApp() (string, int, error) {
	var cName *C.char
	var cPid C.pid_t

	if C.fb_frontmost_app(&cName, &cPid) != 0 {
		return "", 0, fmt.Errorf("failed to get frontmost app")
	}
	defer C.free(unsafe.Pointer(cName))

	return C.GoString(cName), int(cPid), nil
}

func (wm *DarwinWindowManager) IsTrusted() bool {
	return IsAccessibilityTrusted()
}
