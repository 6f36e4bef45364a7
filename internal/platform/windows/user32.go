//go:build windows

package windows

import (
	"path/filepath"
	"strings"
	"syscall"
	"unsafe"
)

var (
	user32                       = syscall.NewLazyDLL("user32.dll")
	procSetWinEventHook          = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent           = user32.NewProc("UnhookWinEvent")
	procGetMessageW              = user32.NewProc("GetMessageW")
	procPeekMessageW             = user32.NewProc("PeekMessageW")
	procDispatchMessageW         = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW       = user32.NewProc("PostThreadMessageW")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")

	kernel32                       = syscall.NewLazyDLL("kernel32.dll")
	procGetCurrentThreadId         = kernel32.NewProc("GetCurrentThreadId")
	procOpenProcess                = kernel32.NewProc("OpenProcess")
	procQueryFullProcessImageNameW = kernel32.NewProc("QueryFullProcessImageNameW")
	procCloseHandle                = kernel32.NewProc("CloseHandle")
)

const (
	eventSystemForeground          = 0x0003
	wineventOutOfContext           = 0x0000
	wineventSkipOwnProcess         = 0x0002
	wmQuit                         = 0x0012
	pmNoRemove                     = 0x0000
	processQueryLimitedInformation = 0x1000
)

// msg mirrors the Win32 MSG structure.
type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	ptX     int32
	ptY     int32
}

// windowInfo is what we can learn about a top-level window.
type windowInfo struct {
	title   string
	pid     uint32
	exePath string
}

func (w windowInfo) appName() string {
	if w.exePath == "" {
		return ""
	}
	base := filepath.Base(w.exePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func foregroundWindow() uintptr {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return hwnd
}

func describeWindow(hwnd uintptr) windowInfo {
	var info windowInfo
	if hwnd == 0 {
		return info
	}

	if n, _, _ := procGetWindowTextLengthW.Call(hwnd); n > 0 {
		buf := make([]uint16, n+1)
		procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
		info.title = syscall.UTF16ToString(buf)
	}

	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&info.pid)))
	if info.pid != 0 {
		info.exePath = processImage(info.pid)
	}
	return info
}

func processImage(pid uint32) string {
	h, _, _ := procOpenProcess.Call(processQueryLimitedInformation, 0, uintptr(pid))
	if h == 0 {
		return ""
	}
	defer procCloseHandle.Call(h)

	buf := make([]uint16, syscall.MAX_PATH)
	size := uint32(len(buf))
	r, _, _ := procQueryFullProcessImageNameW.Call(h, 0, uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&size)))
	if r == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf[:size])
}

func currentThreadID() uint32 {
	tid, _, _ := procGetCurrentThreadId.Call()
	return uint32(tid)
}
