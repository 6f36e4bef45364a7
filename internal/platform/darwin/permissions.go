//go:build darwin

package darwin

/*
#include "focus_bridge.h"
*/
import "C"
import "fmt"

// CheckAccessibilityPermission checks if the process has macOS accessibility permission.
// Returns an error with instructions if permission is not granted.
func CheckAccessibilityPermission() error {
	if C.fb_is_trusted(0) == 0 {
		return fmt.Errorf(
			"accessibility permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Accessibility\n" +
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the terminal and try again.")
	}
	return nil
}

// IsAccessibilityTrusted returns true if the process has accessibility permission.
func IsAccessibilityTrusted() bool {
	return C.fb_is_trusted(0) != 0
}

// RequestAccessibilityPermission shows the system prompt when permission is missing.
func RequestAccessibilityPermission() {
	C.fb_is_trusted(1)
}
