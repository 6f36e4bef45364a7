//go:build windows

package windows

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/mj1618/focus-border/internal/platform"
)

var errAlreadyStarted = errors.New("windows focus hook already registered")

// active is the sink the hook callback forwards to.
var active struct {
	mu   sync.RWMutex
	sink platform.Sink
}

// winEventCallback is created once; syscall callbacks are never freed.
var winEventCallback = syscall.NewCallback(func(hook, event, hwnd, idObject, idChild, thread, eventTime uintptr) uintptr {
	if event != eventSystemForeground || hwnd == 0 {
		return 0
	}
	active.mu.RLock()
	defer active.mu.RUnlock()
	if active.sink == nil {
		return 0
	}
	info := describeWindow(hwnd)
	active.sink(platform.RawNotification{
		AppName:     []byte(info.appName()),
		WindowTitle: []byte(info.title),
		BundleID:    []byte(info.exePath),
	})
	return 0
})

// FocusSource implements platform.FocusSource with an out-of-context
// EVENT_SYSTEM_FOREGROUND hook. The hook lives on the thread that calls Run,
// which pumps that thread's message queue.
type FocusSource struct {
	mu      sync.Mutex
	tid     uint32
	stopped bool
}

// NewFocusSource creates a Windows focus source.
func NewFocusSource() *FocusSource {
	return &FocusSource{}
}

func (s *FocusSource) Subscribe(sink platform.Sink) error {
	if err := procSetWinEventHook.Find(); err != nil {
		return fmt.Errorf("SetWinEventHook unavailable: %w", err)
	}
	active.mu.Lock()
	defer active.mu.Unlock()
	if active.sink != nil {
		return errAlreadyStarted
	}
	active.sink = sink
	return nil
}

func (s *FocusSource) Unsubscribe() error {
	active.mu.Lock()
	active.sink = nil
	active.mu.Unlock()
	return nil
}

// Run installs the hook and pumps messages until Interrupt posts WM_QUIT.
func (s *FocusSource) Run() error {
	// Make sure the thread has a message queue before publishing its id.
	var m msg
	procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmNoRemove)

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.tid = currentThreadID()
	s.mu.Unlock()

	hook, _, err := procSetWinEventHook.Call(
		eventSystemForeground, eventSystemForeground,
		0, winEventCallback, 0, 0,
		wineventOutOfContext|wineventSkipOwnProcess,
	)
	if hook == 0 {
		return fmt.Errorf("SetWinEventHook: %w", err)
	}
	defer procUnhookWinEvent.Call(hook)

	for {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case 0:
			return nil
		case -1:
			return fmt.Errorf("GetMessageW: %w", err)
		}
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// Interrupt posts WM_QUIT to the Run thread. Safe from any goroutine.
func (s *FocusSource) Interrupt() error {
	s.mu.Lock()
	s.stopped = true
	tid := s.tid
	s.mu.Unlock()
	if tid == 0 {
		return nil
	}
	if r, _, err := procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0); r == 0 {
		return fmt.Errorf("PostThreadMessageW: %w", err)
	}
	return nil
}
