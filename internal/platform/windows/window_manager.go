//go:build windows

package windows

import "fmt"

// WindowManager implements platform.WindowManager for Windows.
type WindowManager struct{}

// NewWindowManager creates a Windows window manager.
func NewWindowManager() *WindowManager {
	return &WindowManager{}
}

func (WindowManager) GetFrontmostApp() (string, int, error) {
	hwnd := foregroundWindow()
	if hwnd == 0 {
		return "", 0, fmt.Errorf("failed to get frontmost app")
	}
	info := describeWindow(hwnd)
	return info.appName(), int(info.pid), nil
}

// IsTrusted is always true: WinEvent hooks need no permission.
func (WindowManager) IsTrusted() bool {
	return true
}
