//go:build darwin && cgo

package darwin

import (
	"os"
	"runtime"
	"testing"
	"time"
)

// mainCalls runs functions on the process main thread, which TestMain keeps
// idle otherwise so that the main queue is drained only on request.
var mainCalls = make(chan func())

func init() {
	runtime.LockOSThread()
}

func TestMain(m *testing.M) {
	done := make(chan int)
	go func() { done <- m.Run() }()
	for {
		select {
		case f := <-mainCalls:
			f()
		case code := <-done:
			os.Exit(code)
		}
	}
}

func onMain(f func()) {
	finished := make(chan struct{})
	mainCalls <- func() {
		defer close(finished)
		f()
	}
	<-finished
}

// pumpMain runs the main run loop for d, draining the main queue.
func pumpMain(d time.Duration) {
	src := NewFocusSource()
	time.AfterFunc(d, func() { _ = src.Interrupt() })
	onMain(func() { _ = src.Run() })
}

func TestCreateBorder_TimedOutCallIsCancelled(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the main queue timeout")
	}
	r := NewBorderRenderer()

	if status := r.CreateBorder(1, 0, 0, 4, 1); status != mainTimeout {
		t.Fatalf("CreateBorder with an idle main thread: got %d, want %d", status, mainTimeout)
	}
	pumpMain(300 * time.Millisecond)

	var shown bool
	onMain(func() { shown = borderShown() })
	if shown {
		t.Error("a timed-out create should not install a border once the main queue drains")
	}
}

func TestCreateBorder_OnMainThread(t *testing.T) {
	pumpMain(10 * time.Millisecond)
	r := NewBorderRenderer()

	var status int
	var shown bool
	onMain(func() {
		status = r.CreateBorder(0, 0, 1, 4, 1)
		shown = borderShown()
	})
	if status != 0 {
		t.Skipf("no screen available: status %d", status)
	}
	if !shown {
		t.Error("border should be shown after a successful create")
	}

	onMain(func() {
		status = r.RemoveBorder()
		shown = borderShown()
	})
	if status != 0 || shown {
		t.Errorf("remove: status %d, shown %v", status, shown)
	}
}
